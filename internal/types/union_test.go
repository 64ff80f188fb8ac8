package types

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionIdempotent(t *testing.T) {
	std := NewStdlib()
	i := NewClassType(std.Int, nil)
	s := NewClassType(std.Str, nil)
	u := NewUnion(i, s)
	assert.True(t, Equal(NewUnion(u, u), u))
}

func TestUnionCommutative(t *testing.T) {
	std := NewStdlib()
	i := NewClassType(std.Int, nil)
	s := NewClassType(std.Str, nil)
	assert.True(t, Equal(NewUnion(i, s), NewUnion(s, i)))
}

func TestUnionAssociative(t *testing.T) {
	std := NewStdlib()
	i := NewClassType(std.Int, nil)
	s := NewClassType(std.Str, nil)
	b := NewClassType(std.Bool, nil)
	left := NewUnion(NewUnion(i, s), b)
	right := NewUnion(i, NewUnion(s, b))
	assert.True(t, Equal(left, right))
}

func TestUnionFlattensNestedUnions(t *testing.T) {
	std := NewStdlib()
	i := NewClassType(std.Int, nil)
	s := NewClassType(std.Str, nil)
	b := NewClassType(std.Bool, nil)
	nested := NewUnion(NewUnion(i, s), b)
	u, ok := nested.(*UnionType)
	if !ok {
		t.Fatalf("expected *UnionType, got %T", nested)
	}
	assert.Len(t, u.Members, 3)
}

func TestUnionDropsNever(t *testing.T) {
	std := NewStdlib()
	i := NewClassType(std.Int, nil)
	assert.True(t, Equal(NewUnion(i, NewNeverType()), i))
}

func TestUnionAnyDominates(t *testing.T) {
	std := NewStdlib()
	i := NewClassType(std.Int, nil)
	any := NewAnyType(GradualProvenance{})
	assert.True(t, Equal(NewUnion(i, any), any))
}

func TestUnionSingletonCollapses(t *testing.T) {
	std := NewStdlib()
	i := NewClassType(std.Int, nil)
	assert.True(t, Equal(NewUnion(i), i))
}

func TestUnionDedupes(t *testing.T) {
	std := NewStdlib()
	i := NewClassType(std.Int, nil)
	u := NewUnion(i, i, i)
	assert.True(t, Equal(u, i))
}

func TestPromoteLiteralsWidensToGeneralClass(t *testing.T) {
	std := NewStdlib()
	lit := NewIntLiteral(big.NewInt(7))
	widened := PromoteLiterals(lit, std)
	assert.True(t, Equal(widened, NewClassType(std.Int, nil)))
}

func TestPromoteLiteralsRecursesIntoUnion(t *testing.T) {
	std := NewStdlib()
	u := NewUnion(NewIntLiteral(big.NewInt(1)), NewIntLiteral(big.NewInt(2)))
	widened := PromoteLiterals(u, std)
	assert.True(t, Equal(widened, NewClassType(std.Int, nil)))
}

func TestFreeQuantifiedsExcludesForallBound(t *testing.T) {
	tv := &QuantifiedType{Id: 1, Name: "T", Kind: QuantValue}
	forall := NewForallType([]*QuantifiedType{tv}, tv)
	assert.Empty(t, FreeQuantifieds(forall))
	assert.Len(t, FreeQuantifieds(tv), 1)
}

func TestSubstituteReplacesQuantified(t *testing.T) {
	std := NewStdlib()
	tv := &QuantifiedType{Id: 1, Name: "T", Kind: QuantValue}
	listT := NewClassType(std.List, []Type{tv})
	result := Substitute(Subst{1: NewClassType(std.Int, nil)}, listT)
	assert.True(t, Equal(result, NewClassType(std.List, []Type{NewClassType(std.Int, nil)})))
}

func TestPruneFollowsForcedVar(t *testing.T) {
	std := NewStdlib()
	v := NewVarType(1)
	v.Forced = NewClassType(std.Int, nil)
	assert.True(t, Equal(Prune(v), NewClassType(std.Int, nil)))
}

func TestLiteralStringDistinctFromStr(t *testing.T) {
	std := NewStdlib()
	assert.False(t, Equal(NewLiteralStringType(), NewClassType(std.Str, nil)))
}

func TestTupleUnpackedCollapsesToUnboundedWhenBare(t *testing.T) {
	std := NewStdlib()
	elem := NewClassType(std.Int, nil)
	unbounded := NewUnboundedTuple(elem)
	collapsed := NewUnpackedTuple(nil, unbounded, nil)
	assert.Same(t, unbounded, collapsed)
}
