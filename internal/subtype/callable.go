package subtype

import "github.com/typewell-lang/typewell/internal/types"

// callableIsSubsetEq: sub <: super when sub accepts everything a caller
// targeting super could pass (parameters compared contravariantly) and
// sub's return is usable wherever super's is expected (covariant).
// Positional matching walks both parameter lists in lockstep by position
// (names are not compared); a *args/**kwargs on sub absorbs super's
// unmatched positional/keyword parameters, while a *args/**kwargs on
// super requires a matching one on sub. Structured after
// original_source/pyrefly's pyre2/lib/solver/subset.rs::is_subset_param_list.
func (s *Solver) callableIsSubsetEq(sub types.Type, super *types.CallableType) bool {
	var subCallable *types.CallableType
	switch t := sub.(type) {
	case *types.CallableType:
		subCallable = t
	case *types.FunctionType:
		subCallable = t.Callable
	default:
		return false
	}

	// `Callable[..., T]` is compatible with every parameter list in
	// both directions (§4.B); only the return type still matters.
	if subCallable.IsEllipsis || super.IsEllipsis {
		return s.IsSubsetEq(subCallable.Return, super.Return)
	}

	if !s.paramsCompatible(subCallable.Params, super.Params) {
		return false
	}
	return s.IsSubsetEq(subCallable.Return, super.Return)
}

func (s *Solver) paramsCompatible(subParams, superParams []*types.Param) bool {
	si, pi := 0, 0
	subVariadic := findParam(subParams, types.ParamVariadic)
	subKwVariadic := findParam(subParams, types.ParamKeywordVariadic)

	for pi < len(superParams) {
		sp := superParams[pi]

		switch sp.Kind {
		case types.ParamPositionalOnly, types.ParamPositionalOrKeyword:
			if si < len(subParams) && isPositionalKind(subParams[si].Kind) {
				subp := subParams[si]
				if !sp.Required && subp.Required {
					return false
				}
				if !s.IsSubsetEq(sp.Type, subp.Type) {
					return false
				}
				si++
			} else if subVariadic != nil {
				if !s.IsSubsetEq(sp.Type, subVariadic.Type) {
					return false
				}
			} else if sp.Required {
				return false
			}

		case types.ParamVariadic:
			// super accepts *args: sub must tolerate arbitrarily many
			// extra positional arguments of a compatible type, which a
			// plain fixed-arity sub signature cannot guarantee.
			if subVariadic == nil {
				return false
			}
			if !s.IsSubsetEq(sp.Type, subVariadic.Type) {
				return false
			}

		case types.ParamKeywordOnly:
			subp := findParamByName(subParams, sp.Name)
			if subp == nil {
				if subKwVariadic != nil {
					if !s.IsSubsetEq(sp.Type, subKwVariadic.Type) {
						return false
					}
					break
				}
				if sp.Required {
					return false
				}
				break
			}
			if !sp.Required && subp.Required {
				return false
			}
			if !s.IsSubsetEq(sp.Type, subp.Type) {
				return false
			}

		case types.ParamKeywordVariadic:
			if subKwVariadic == nil {
				return false
			}
			if !s.IsSubsetEq(sp.Type, subKwVariadic.Type) {
				return false
			}
		}
		pi++
	}

	// Any remaining required positional-or-keyword sub parameters the
	// caller targeting super could never supply make sub unusable as
	// super.
	for ; si < len(subParams); si++ {
		if isPositionalKind(subParams[si].Kind) && subParams[si].Required {
			return false
		}
	}
	return true
}

func isPositionalKind(k types.ParamKind) bool {
	return k == types.ParamPositionalOnly || k == types.ParamPositionalOrKeyword
}

func findParam(params []*types.Param, kind types.ParamKind) *types.Param {
	for _, p := range params {
		if p.Kind == kind {
			return p
		}
	}
	return nil
}

func findParamByName(params []*types.Param, name string) *types.Param {
	for _, p := range params {
		if p.Name == name {
			return p
		}
	}
	return nil
}
