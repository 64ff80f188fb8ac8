package class

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typewell-lang/typewell/internal/types"
)

func TestSynthesizeRecordOrdersKeywordOnlyLast(t *testing.T) {
	std := types.NewStdlib()
	c := types.NewClass("Point")
	fields := []RecordFieldSpec{
		{Name: "y", Type: types.NewClassType(std.Int, nil), KeywordOnly: true},
		{Name: "x", Type: types.NewClassType(std.Int, nil)},
	}
	errs, err := SynthesizeRecord(c, fields)
	require.NoError(t, err)
	assert.Empty(t, errs)

	init := c.Fields["__init__"].Type.(*types.FunctionType)
	require.Len(t, init.Callable.Params, 2)
	assert.Equal(t, "x", init.Callable.Params[0].Name)
	assert.Equal(t, "y", init.Callable.Params[1].Name)
	assert.Equal(t, types.ParamKeywordOnly, init.Callable.Params[1].Kind)
}

func TestSynthesizeRecordRejectsMutableDefault(t *testing.T) {
	std := types.NewStdlib()
	c := types.NewClass("Config")
	fields := []RecordFieldSpec{
		{Name: "tags", Type: types.NewClassType(std.List, []types.Type{types.NewClassType(std.Str, nil)}), MutableDefault: true, HasDefault: true},
	}
	errs, err := SynthesizeRecord(c, fields)
	require.NoError(t, err)
	assert.Len(t, errs, 1)
}

func TestSynthesizeNamedTupleAddsMatchArgsAndIter(t *testing.T) {
	std := types.NewStdlib()
	c := types.NewClass("Pair")
	fields := []RecordFieldSpec{
		{Name: "first", Type: types.NewClassType(std.Int, nil)},
		{Name: "second", Type: types.NewClassType(std.Str, nil)},
	}
	SynthesizeNamedTuple(c, std, fields)

	matchArgs := c.Fields["__match_args__"].Type.(*types.TupleType)
	require.Equal(t, types.TupleConcrete, matchArgs.Shape)
	require.Len(t, matchArgs.Elems, 2)
	assert.True(t, types.Equal(matchArgs.Elems[0], types.NewStrLiteral("first")))
	assert.True(t, c.Fields["__match_args__"].Qual.ReadOnly)

	_, ok := c.Fields["__iter__"]
	assert.True(t, ok)
	assert.Equal(t, types.SynthNamedTuple, c.Synth)
}

func TestSynthesizeEnumMembersAreLiteral(t *testing.T) {
	c := types.NewClass("Color")
	SynthesizeEnum(c, []string{"RED", "GREEN"})

	red := c.Fields["RED"]
	require.NotNil(t, red)
	lit := red.Type.(*types.LiteralType)
	assert.Equal(t, types.LitEnumMember, lit.Kind)
	assert.Equal(t, "RED", lit.EnumMember)
	assert.True(t, red.Qual.ClassVar)
}

func TestSynthesizeTypedDictRequiredFlowsFromQual(t *testing.T) {
	std := types.NewStdlib()
	c := types.NewClass("Movie")
	ctor := SynthesizeTypedDict(c, []types.TypedDictField{
		{Name: "title", Type: types.NewClassType(std.Str, nil), Qual: types.TypedDictFieldQual{Required: true}},
		{Name: "year", Type: types.NewClassType(std.Int, nil), Qual: types.TypedDictFieldQual{Required: false}},
	})
	require.Len(t, ctor.Callable.Params, 2)
	assert.True(t, ctor.Callable.Params[0].Required)
	assert.False(t, ctor.Callable.Params[1].Required)
	assert.Equal(t, types.SynthTypedDict, c.Synth)
}

func TestCheckOverridesRejectsFinalRedeclaration(t *testing.T) {
	std := types.NewStdlib()
	base := types.NewClass("Base")
	base.Fields["id"] = &types.Field{Name: "id", Type: types.NewClassType(std.Int, nil), Qual: types.FieldQual{Final: true}, DefinedOn: base}
	base.MRO = []*types.Class{base}

	sub := types.NewClass("Sub")
	sub.Bases = []*types.ClassType{types.NewClassType(base, nil)}
	sub.Fields["id"] = &types.Field{Name: "id", Type: types.NewClassType(std.Int, nil), DefinedOn: sub}

	errs := CheckOverrides(sub, func(a, b types.Type) bool { return true })
	assert.Len(t, errs, 1)
}

func TestCheckOverridesAllowsCompatibleMethod(t *testing.T) {
	std := types.NewStdlib()
	base := types.NewClass("Base")
	method := types.NewFunctionType(types.NewCallableType(nil, types.NewClassType(std.Int, nil)), types.FunctionMetadata{Name: "value"})
	base.Fields["value"] = &types.Field{Name: "value", Type: method, DefinedOn: base}
	base.MRO = []*types.Class{base}

	sub := types.NewClass("Sub")
	sub.Bases = []*types.ClassType{types.NewClassType(base, nil)}
	sub.Fields["value"] = &types.Field{Name: "value", Type: method, DefinedOn: sub}

	errs := CheckOverrides(sub, func(a, b types.Type) bool { return true })
	assert.Empty(t, errs)
}
