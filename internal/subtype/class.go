package subtype

import "github.com/typewell-lang/typewell/internal/types"

// classIsSubsetEq handles sub <: superT where superT is a ClassType: a
// literal widens to its general class first, then nominal subtyping
// walks MRO for ordinary classes while protocol classes fall back to
// structural matching (§4.B).
func (s *Solver) classIsSubsetEq(sub types.Type, superT *types.ClassType) bool {
	if lit, ok := sub.(*types.LiteralType); ok {
		general := lit.GeneralClass(stdlibFallback)
		if lit.Kind != types.LitEnumMember && general.Class.QualName == superT.Class.QualName {
			return true
		}
		sub = general
	}
	if _, ok := sub.(*types.LiteralStringType); ok {
		return superT.Class.QualName == "str"
	}

	subClass, ok := sub.(*types.ClassType)
	if !ok {
		return false
	}

	if superT.Class.Protocol {
		return s.structuralIsSubsetEq(subClass, superT)
	}

	if !isClassOrSubclass(subClass.Class, superT.Class) {
		return false
	}
	return s.typeArgsCompatible(subClass, superT)
}

// stdlibFallback backs literal widening: the solver holds no host
// Stdlib, so a builtin literal matches a super class by qualified name
// (the same way LiteralString matches `str`), and otherwise continues
// as an instance of this table's class.
var stdlibFallback = types.NewStdlib()

func isClassOrSubclass(sub, super *types.Class) bool {
	mro := sub.MRO
	if len(mro) == 0 {
		mro = []*types.Class{sub}
	}
	for _, k := range mro {
		if k == super {
			return true
		}
	}
	return false
}

// typeArgsCompatible checks type-argument compatibility once subClass is
// known to be (a subclass of) superT.Class; each parameter's declared
// variance governs the comparison direction (§3, §4.B).
func (s *Solver) typeArgsCompatible(subClass, superT *types.ClassType) bool {
	if len(superT.TypeArgs) == 0 {
		return true
	}
	if len(subClass.TypeArgs) != len(superT.TypeArgs) {
		// An un-specialized generic class (bare `list`) is treated as
		// fully dynamic in its type arguments.
		return len(subClass.TypeArgs) == 0
	}
	params := superT.Class.TypeParams
	for i, superArg := range superT.TypeArgs {
		subArg := subClass.TypeArgs[i]
		variance := types.VarianceInvariant
		if i < len(params) {
			variance = params[i].Variance
		}
		switch variance {
		case types.VarianceCovariant:
			if !s.IsSubsetEq(subArg, superArg) {
				return false
			}
		case types.VarianceContravariant:
			if !s.IsSubsetEq(superArg, subArg) {
				return false
			}
		default:
			if !s.IsSubsetEq(subArg, superArg) || !s.IsSubsetEq(superArg, subArg) {
				return false
			}
		}
	}
	return true
}

// structuralIsSubsetEq implements protocol matching: sub satisfies a
// Protocol class if it has a compatible member for every field the
// protocol declares, guarded against infinite recursion by the
// solver's assumption set (§4.B).
func (s *Solver) structuralIsSubsetEq(sub *types.ClassType, protocol *types.ClassType) bool {
	key := pairKey{sub: sub.Class, super: protocol.Class}
	if s.assumptions.contains(key) {
		return true
	}
	s.assumptions.add(key)
	defer s.assumptions.remove(key)

	mro := protocol.Class.MRO
	if len(mro) == 0 {
		mro = []*types.Class{protocol.Class}
	}
	for _, k := range mro {
		for name, field := range k.Fields {
			subField, ok := sub.Class.Lookup(name)
			if !ok {
				return false
			}
			if !s.IsSubsetEq(subField.Type, field.Type) {
				return false
			}
		}
	}
	return true
}
