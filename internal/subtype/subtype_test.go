package subtype

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typewell-lang/typewell/internal/class"
	"github.com/typewell-lang/typewell/internal/types"
)

func TestAnyIsBidirectionallySubsetEq(t *testing.T) {
	std := types.NewStdlib()
	any := types.NewAnyType(types.GradualProvenance{})
	i := types.NewClassType(std.Int, nil)
	assert.True(t, IsSubsetEq(any, i))
	assert.True(t, IsSubsetEq(i, any))
}

func TestNeverIsSubsetEqOfEverything(t *testing.T) {
	std := types.NewStdlib()
	assert.True(t, IsSubsetEq(types.NewNeverType(), types.NewClassType(std.Int, nil)))
}

func TestEverythingIsSubsetEqOfObject(t *testing.T) {
	std := types.NewStdlib()
	obj := types.NewClassType(std.Object, nil)
	assert.True(t, IsSubsetEq(types.NewClassType(std.Int, nil), obj))
	assert.True(t, IsSubsetEq(types.NewStrLiteral("x"), obj))
}

func TestIntLiteralIsSubsetEqOfInt(t *testing.T) {
	std := types.NewStdlib()
	lit := types.NewIntLiteral(big.NewInt(7))
	assert.True(t, IsSubsetEq(lit, types.NewClassType(std.Int, nil)))
	assert.False(t, IsSubsetEq(types.NewClassType(std.Int, nil), lit))
}

func TestUnionOnLeftRequiresAllMembers(t *testing.T) {
	std := types.NewStdlib()
	u := types.NewUnion(types.NewClassType(std.Int, nil), types.NewClassType(std.Str, nil))
	obj := types.NewClassType(std.Object, nil)
	assert.True(t, IsSubsetEq(u, obj))
	assert.False(t, IsSubsetEq(u, types.NewClassType(std.Int, nil)))
}

func TestUnionOnRightRequiresOneMember(t *testing.T) {
	std := types.NewStdlib()
	i := types.NewClassType(std.Int, nil)
	u := types.NewUnion(i, types.NewClassType(std.Str, nil))
	assert.True(t, IsSubsetEq(i, u))
}

func TestClassSubtypingWalksMRO(t *testing.T) {
	object := types.NewClass("object")
	animal := types.NewClass("Animal")
	animal.Bases = []*types.ClassType{types.NewClassType(object, nil)}
	require.NoError(t, class.Linearize(animal))
	dog := types.NewClass("Dog")
	dog.Bases = []*types.ClassType{types.NewClassType(animal, nil)}
	require.NoError(t, class.Linearize(dog))

	assert.True(t, IsSubsetEq(types.NewClassType(dog, nil), types.NewClassType(animal, nil)))
	assert.False(t, IsSubsetEq(types.NewClassType(animal, nil), types.NewClassType(dog, nil)))
}

func TestProtocolStructuralSubtyping(t *testing.T) {
	std := types.NewStdlib()
	sizedProto := types.NewClass("Sized")
	sizedProto.Protocol = true
	lenMethod := types.NewFunctionType(types.NewCallableType(nil, types.NewClassType(std.Int, nil)), types.FunctionMetadata{Name: "__len__"})
	sizedProto.Fields["__len__"] = &types.Field{Name: "__len__", Type: lenMethod, DefinedOn: sizedProto}

	box := types.NewClass("Box")
	box.Fields["__len__"] = &types.Field{Name: "__len__", Type: lenMethod, DefinedOn: box}
	box.MRO = []*types.Class{box}

	assert.True(t, IsSubsetEq(types.NewClassType(box, nil), types.NewClassType(sizedProto, nil)))

	empty := types.NewClass("Empty")
	empty.MRO = []*types.Class{empty}
	assert.False(t, IsSubsetEq(types.NewClassType(empty, nil), types.NewClassType(sizedProto, nil)))
}

func TestCallableContravariantParamsCovariantReturn(t *testing.T) {
	std := types.NewStdlib()
	object := types.NewClassType(std.Object, nil)
	i := types.NewClassType(std.Int, nil)

	// (object) -> int  <:  (int) -> object
	sub := types.NewCallableType([]*types.Param{types.NewParam("x", types.ParamPositionalOrKeyword, object, true)}, i)
	super := types.NewCallableType([]*types.Param{types.NewParam("x", types.ParamPositionalOrKeyword, i, true)}, object)
	assert.True(t, IsSubsetEq(sub, super))
	assert.False(t, IsSubsetEq(super, sub))
}

func TestTupleConcreteLengthMismatchFails(t *testing.T) {
	std := types.NewStdlib()
	i := types.NewClassType(std.Int, nil)
	a := types.NewConcreteTuple([]types.Type{i, i})
	b := types.NewConcreteTuple([]types.Type{i})
	assert.False(t, IsSubsetEq(a, b))
}

func TestConcreteTupleIsSubsetEqOfUnbounded(t *testing.T) {
	std := types.NewStdlib()
	i := types.NewClassType(std.Int, nil)
	concrete := types.NewConcreteTuple([]types.Type{i, i, i})
	unbounded := types.NewUnboundedTuple(i)
	assert.True(t, IsSubsetEq(concrete, unbounded))
}

func TestTypedDictRequiredFieldMustBePresent(t *testing.T) {
	std := types.NewStdlib()
	str := types.NewClassType(std.Str, nil)
	super := types.NewTypedDictType(nil, nil, []types.TypedDictField{
		{Name: "name", Type: str, Qual: types.TypedDictFieldQual{Required: true}},
	})
	subMissing := types.NewTypedDictType(nil, nil, nil)
	assert.False(t, IsSubsetEq(subMissing, super))

	subHas := types.NewTypedDictType(nil, nil, []types.TypedDictField{
		{Name: "name", Type: str, Qual: types.TypedDictFieldQual{Required: true}},
	})
	assert.True(t, IsSubsetEq(subHas, super))
}

func TestVarBindsLowerBoundAndForces(t *testing.T) {
	std := types.NewStdlib()
	i := types.NewClassType(std.Int, nil)
	v := types.NewVarType(1)
	solver := NewSolver()
	assert.True(t, solver.IsSubsetEq(i, v))
	assert.True(t, types.Equal(Force(v), i))
}
