package subtype

import "github.com/typewell-lang/typewell/internal/types"

// tupleIsSubsetEq covers the nine shape combinations a tuple pair can
// take (Concrete/Unbounded/Unpacked on each side, §3/§4.B).
func (s *Solver) tupleIsSubsetEq(sub, super *types.TupleType) bool {
	switch {
	case sub.Shape == types.TupleConcrete && super.Shape == types.TupleConcrete:
		if len(sub.Elems) != len(super.Elems) {
			return false
		}
		for i := range sub.Elems {
			if !s.IsSubsetEq(sub.Elems[i], super.Elems[i]) {
				return false
			}
		}
		return true

	case sub.Shape == types.TupleConcrete && super.Shape == types.TupleUnbounded:
		for _, e := range sub.Elems {
			if !s.IsSubsetEq(e, super.Elem) {
				return false
			}
		}
		return true

	case sub.Shape == types.TupleUnbounded && super.Shape == types.TupleUnbounded:
		return s.IsSubsetEq(sub.Elem, super.Elem)

	case sub.Shape == types.TupleUnbounded && super.Shape == types.TupleConcrete:
		// An unbounded tuple has unknown length and can't satisfy a
		// fixed-length expectation.
		return false

	case super.Shape == types.TupleUnpacked:
		return s.matchesUnpackedSuper(sub, super)

	case sub.Shape == types.TupleUnpacked:
		return s.unpackedSubMatches(sub, super)
	}
	return false
}

// matchesUnpackedSuper requires sub to supply at least len(Prefix)+len(Suffix)
// elements, with the boundary ones individually checked and everything in
// the middle checked against super.Middle's element type.
func (s *Solver) matchesUnpackedSuper(sub, super *types.TupleType) bool {
	elems, fixed := tupleFixedElems(sub)
	if !fixed {
		return false
	}
	need := len(super.Prefix) + len(super.Suffix)
	if len(elems) < need {
		return false
	}
	for i, p := range super.Prefix {
		if !s.IsSubsetEq(elems[i], p) {
			return false
		}
	}
	for i, suf := range super.Suffix {
		if !s.IsSubsetEq(elems[len(elems)-len(super.Suffix)+i], suf) {
			return false
		}
	}
	middleElems := elems[len(super.Prefix) : len(elems)-len(super.Suffix)]
	for _, e := range middleElems {
		if !s.IsSubsetEq(e, super.Middle) {
			return false
		}
	}
	return true
}

func (s *Solver) unpackedSubMatches(sub, super *types.TupleType) bool {
	if super.Shape == types.TupleUnbounded {
		for _, p := range sub.Prefix {
			if !s.IsSubsetEq(p, super.Elem) {
				return false
			}
		}
		if !s.IsSubsetEq(sub.Middle, super.Elem) {
			return false
		}
		for _, suf := range sub.Suffix {
			if !s.IsSubsetEq(suf, super.Elem) {
				return false
			}
		}
		return true
	}
	return false
}

func tupleFixedElems(t *types.TupleType) ([]types.Type, bool) {
	if t.Shape != types.TupleConcrete {
		return nil, false
	}
	return t.Elems, true
}
