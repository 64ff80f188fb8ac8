// Package subtype implements the assignability/subtyping judgment
// (component B): IsSubsetEq(sub, super) reports whether every value of
// sub's shape is usable where super is expected.
//
// Grounded on escalier's checker/unify.go cascade of type-pair cases,
// generalized from escalier's structural-only algebra to this spec's mix
// of nominal class subtyping (MRO-based), structural protocol
// subtyping, and literal/tuple/callable matching. Parameter-list
// matching follows original_source/pyrefly's
// pyre2/lib/solver/subset.rs::is_subset_param_list case-by-case.
package subtype

import (
	"github.com/typewell-lang/typewell/internal/types"
)

// Solver threads a recursion guard across a single top-level call so
// that mutually-referential protocols don't loop (§4.B); Vars bind and
// tighten bounds as a side effect of the comparisons that touch them.
type Solver struct {
	assumptions *assumptionSet
}

func NewSolver() *Solver {
	return &Solver{assumptions: newAssumptionSet()}
}

// IsSubsetEq is the package-level convenience entry point for a single,
// self-contained check (no Var binding needs to survive past the call).
func IsSubsetEq(sub, super types.Type) bool {
	return NewSolver().IsSubsetEq(sub, super)
}

func (s *Solver) IsSubsetEq(sub, super types.Type) bool {
	sub = types.Prune(sub)
	super = types.Prune(super)

	if v, ok := sub.(*types.VarType); ok {
		s.bindUpper(v, super)
		return true
	}
	if v, ok := super.(*types.VarType); ok {
		s.bindLower(v, sub)
		return true
	}

	if _, ok := sub.(*types.AnyType); ok {
		return true
	}
	if _, ok := super.(*types.AnyType); ok {
		return true
	}
	if _, ok := sub.(*types.NeverType); ok {
		return true
	}
	if _, ok := super.(*types.NeverType); ok {
		_, subIsNever := sub.(*types.NeverType)
		return subIsNever
	}

	if u, ok := sub.(*types.UnionType); ok {
		for _, m := range u.Members {
			if !s.IsSubsetEq(m, super) {
				return false
			}
		}
		return true
	}
	if u, ok := super.(*types.UnionType); ok {
		for _, m := range u.Members {
			if s.IsSubsetEq(sub, m) {
				return true
			}
		}
		return false
	}

	if i, ok := sub.(*types.IntersectType); ok {
		for _, m := range i.Members {
			if s.IsSubsetEq(m, super) {
				return true
			}
		}
		return false
	}
	if i, ok := super.(*types.IntersectType); ok {
		for _, m := range i.Members {
			if !s.IsSubsetEq(sub, m) {
				return false
			}
		}
		return true
	}

	if ov, ok := super.(*types.OverloadType); ok {
		for _, sig := range ov.Signatures {
			if s.IsSubsetEq(sub, sig) {
				return true
			}
		}
		return false
	}
	if ov, ok := sub.(*types.OverloadType); ok {
		for _, sig := range ov.Signatures {
			if s.IsSubsetEq(sig, super) {
				return true
			}
		}
		return false
	}

	if objClass, ok := classObjectClass(super); ok && objClass.QualName == "object" {
		return true
	}

	switch superT := super.(type) {
	case *types.NoneType:
		_, ok := sub.(*types.NoneType)
		return ok

	case *types.LiteralType:
		subLit, ok := sub.(*types.LiteralType)
		return ok && literalEqual(subLit, superT)

	case *types.LiteralStringType:
		_, isLit := sub.(*types.LiteralType)
		_, isLitStr := sub.(*types.LiteralStringType)
		return isLitStr || (isLit && sub.(*types.LiteralType).Kind == types.LitStr)

	case *types.ClassType:
		return s.classIsSubsetEq(sub, superT)

	case *types.ClassDefType:
		subDef, ok := sub.(*types.ClassDefType)
		return ok && isClassOrSubclass(subDef.Class, superT.Class)

	case *types.TypeFormType:
		subForm, ok := sub.(*types.TypeFormType)
		return ok && s.IsSubsetEq(subForm.Inner, superT.Inner)

	case *types.TupleType:
		subTuple, ok := sub.(*types.TupleType)
		return ok && s.tupleIsSubsetEq(subTuple, superT)

	case *types.TypedDictType:
		subTD, ok := sub.(*types.TypedDictType)
		return ok && s.typedDictIsSubsetEq(subTD, superT)

	case *types.CallableType:
		return s.callableIsSubsetEq(sub, superT)

	case *types.FunctionType:
		return s.callableIsSubsetEq(sub, superT.Callable)

	case *types.SelfType:
		subSelf, ok := sub.(*types.SelfType)
		return ok && subSelf.Class == superT.Class

	case *types.ModuleType:
		subMod, ok := sub.(*types.ModuleType)
		return ok && subMod.Name == superT.Name

	case *types.TypeGuardType, *types.TypeIsType:
		// TypeGuard/TypeIs are call-result-only markers; as ordinary
		// value types they behave like bool (any callable returning one
		// already reports a plain bool to unannotated callers).
		return isBoolLike(sub)
	}

	return types.Equal(sub, super)
}

func isBoolLike(t types.Type) bool {
	switch t := t.(type) {
	case *types.LiteralType:
		return t.Kind == types.LitBool
	case *types.ClassType:
		return t.Class.QualName == "bool"
	}
	return false
}

func literalEqual(a, b *types.LiteralType) bool {
	return types.Equal(a, b)
}

func classObjectClass(t types.Type) (*types.Class, bool) {
	if c, ok := t.(*types.ClassType); ok {
		return c.Class, true
	}
	return nil, false
}
