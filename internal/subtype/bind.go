package subtype

import "github.com/typewell-lang/typewell/internal/types"

// bindUpper records that v must be a subtype of bound: v <: bound. Used
// when v appears on the left of an IsSubsetEq check (§4.B, §4.D).
func (s *Solver) bindUpper(v *types.VarType, bound types.Type) {
	if types.Equal(bound, v) {
		return
	}
	v.Upper = append(v.Upper, bound)
}

// bindLower records that bound must be a subtype of v: bound <: v.
func (s *Solver) bindLower(v *types.VarType, bound types.Type) {
	if types.Equal(bound, v) {
		return
	}
	v.Lower = append(v.Lower, bound)
}

// Force computes v's solved type from its accumulated bounds and writes
// it to v.Forced, the way a call-site Forall scope closes once every
// argument has been checked (§4.D): prefer the join of lower bounds (the
// most specific type wide enough for every argument seen), falling back
// to the meet of upper bounds, and finally Any if neither constrained v.
func Force(v *types.VarType) types.Type {
	if v.Forced != nil {
		return v.Forced
	}
	var solved types.Type
	switch {
	case len(v.Lower) > 0:
		solved = types.NewUnion(v.Lower...)
	case len(v.Upper) > 0:
		solved = types.NewIntersect(v.Upper...)
	default:
		solved = types.NewAnyType(types.GradualProvenance{})
	}
	v.Forced = solved
	return solved
}
