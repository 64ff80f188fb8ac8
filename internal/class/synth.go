package class

import (
	"fmt"

	"github.com/typewell-lang/typewell/internal/types"
)

// RecordFieldSpec is one declared field of a record class, named tuple
// or TypedDict before synthesis runs.
type RecordFieldSpec struct {
	Name         string
	Type         types.Type
	HasDefault   bool
	KeywordOnly  bool
	MutableDefault bool // a list/dict/set literal used as a default value
}

// SynthesizeRecord populates c.Fields with the declared fields plus an
// __init__ whose parameters follow declaration order (keyword-only
// fields moved after positional ones), matching pyre2's class_field.rs
// handling of dataclass-like record classes. A MutableDefault field
// produces an error, mirroring class_field.rs's rejection of mutable
// defaults shared across instances; the field and its __init__
// parameter are still synthesized.
func SynthesizeRecord(c *types.Class, fields []RecordFieldSpec) ([]error, error) {
	var errs []error
	params := make([]*types.Param, 0, len(fields))

	positional := make([]RecordFieldSpec, 0, len(fields))
	keywordOnly := make([]RecordFieldSpec, 0, len(fields))
	for _, f := range fields {
		if f.KeywordOnly {
			keywordOnly = append(keywordOnly, f)
		} else {
			positional = append(positional, f)
		}
		if f.MutableDefault {
			errs = append(errs, fmt.Errorf("%s.%s: mutable default value shared across instances", c.QualName, f.Name))
		}
		c.Fields[f.Name] = &types.Field{Name: f.Name, Type: f.Type, DefinedOn: c}
	}

	seenDefault := false
	for _, f := range positional {
		if f.HasDefault {
			seenDefault = true
		} else if seenDefault {
			errs = append(errs, fmt.Errorf("%s.%s: field without a default follows a field with a default", c.QualName, f.Name))
		}
		params = append(params, types.NewParam(f.Name, types.ParamPositionalOrKeyword, f.Type, !f.HasDefault))
	}
	for _, f := range keywordOnly {
		params = append(params, types.NewParam(f.Name, types.ParamKeywordOnly, f.Type, !f.HasDefault))
	}

	init := types.NewFunctionType(
		types.NewCallableType(params, types.NewNoneType()),
		types.FunctionMetadata{Name: "__init__", Kind: types.FnOrdinary, DefinedOn: c},
	)
	c.Fields["__init__"] = &types.Field{Name: "__init__", Type: init, DefinedOn: c}
	c.Synth = types.SynthRecord
	return errs, nil
}

// SynthesizeNamedTuple adds __init__ plus the two members that make a
// named tuple iterable and pattern-matchable: __iter__ (returning
// list[union of field types] as a stand-in for an iterator over them,
// after pyre2's named_tuple.rs)
// and __match_args__ (a literal tuple of field names, in declaration
// order).
func SynthesizeNamedTuple(c *types.Class, std *types.Stdlib, fields []RecordFieldSpec) {
	SynthesizeRecord(c, fields)

	fieldTypes := make([]types.Type, len(fields))
	matchArgs := make([]types.Type, len(fields))
	for i, f := range fields {
		fieldTypes[i] = f.Type
		matchArgs[i] = types.NewStrLiteral(f.Name)
	}
	elementUnion := types.NewUnion(fieldTypes...)

	iterReturn := types.NewClassType(std.List, []types.Type{elementUnion}) // iterator stand-in
	iterFn := types.NewFunctionType(
		types.NewCallableType(nil, iterReturn),
		types.FunctionMetadata{Name: "__iter__", Kind: types.FnOrdinary, DefinedOn: c},
	)
	c.Fields["__iter__"] = &types.Field{Name: "__iter__", Type: iterFn, DefinedOn: c}
	c.Fields["__match_args__"] = &types.Field{
		Name:      "__match_args__",
		Type:      types.NewConcreteTuple(matchArgs),
		Qual:      types.FieldQual{ClassVar: true, ReadOnly: true},
		DefinedOn: c,
	}
	c.Synth = types.SynthNamedTuple
}

// SynthesizeEnum adds one Literal[enum member] field per member name,
// per the spec's class-field synthesis rules for Enum subclasses. It
// adds no __members__ mapping.
func SynthesizeEnum(c *types.Class, memberNames []string) {
	for _, name := range memberNames {
		lit := types.NewEnumMemberLiteral(c, name)
		c.Fields[name] = &types.Field{
			Name:      name,
			Type:      lit,
			Qual:      types.FieldQual{ClassVar: true, ReadOnly: true},
			DefinedOn: c,
		}
	}
	c.Synth = types.SynthEnum
}

// SynthesizeTypedDict builds the constructor TypedDict instances are
// checked against: every field becomes a keyword-only parameter, its
// Required-ness carried straight from TypedDictFieldQual (Required and
// NotRequired are orthogonal to ReadOnly, per pyre2's typed_dict.rs).
func SynthesizeTypedDict(c *types.Class, fields []types.TypedDictField) *types.FunctionType {
	params := make([]*types.Param, len(fields))
	for i, f := range fields {
		params[i] = types.NewParam(f.Name, types.ParamKeywordOnly, f.Type, f.Qual.Required)
	}
	c.Synth = types.SynthTypedDict
	return types.NewFunctionType(
		types.NewCallableType(params, types.NewNoneType()),
		types.FunctionMetadata{Name: "__init__", Kind: types.FnOrdinary, DefinedOn: c},
	)
}

// CheckOverrides walks c's direct bases and reports every member of c
// that conflicts with an overridden base member: a Final field
// redeclared in a subclass, or a method overridden with an
// incompatible signature (signature compatibility itself is delegated
// to the subtype package's IsSubsetEq so this package stays free of a
// dependency on it; callers pass in the comparison as isSubtype).
func CheckOverrides(c *types.Class, isSubtype func(sub, super types.Type) bool) []error {
	var errs []error
	for name, field := range c.Fields {
		if field.DefinedOn != c {
			continue
		}
		for _, base := range c.Bases {
			baseField, ok := base.Class.Lookup(name)
			if !ok {
				continue
			}
			if baseField.Qual.Final {
				errs = append(errs, fmt.Errorf("%s.%s overrides a Final attribute declared on %s", c.QualName, name, baseField.DefinedOn.QualName))
				continue
			}
			if isFunctionLike(baseField.Type) && isFunctionLike(field.Type) {
				if !isSubtype(field.Type, baseField.Type) {
					errs = append(errs, fmt.Errorf("%s.%s has a signature incompatible with the overridden method on %s", c.QualName, name, baseField.DefinedOn.QualName))
				}
			}
		}
	}
	return errs
}

func isFunctionLike(t types.Type) bool {
	switch t.(type) {
	case *types.FunctionType, *types.OverloadType:
		return true
	default:
		return false
	}
}
