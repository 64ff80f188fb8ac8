package types

// NewUnion builds a union observing the §3 invariants: flatten nested
// unions, drop Never (the identity element), Any absorbs everything,
// deduplicate by structural equality, collapse a singleton to its lone
// member, and sort the result so structurally-equal unions always print
// and compare identically regardless of construction order.
func NewUnion(members ...Type) Type {
	flat := make([]Type, 0, len(members))
	for _, m := range members {
		m = Prune(m)
		if u, ok := m.(*UnionType); ok {
			flat = append(flat, u.Members...)
			continue
		}
		flat = append(flat, m)
	}

	// An explicit `Any` annotation dominates any propagated (gradual or
	// error) Any seen elsewhere in the union; among same-kind Anys, the
	// first one encountered wins (§4.A).
	var firstAny, explicitAny *AnyType
	kept := make([]Type, 0, len(flat))
	for _, m := range flat {
		if _, ok := m.(*NeverType); ok {
			continue
		}
		if a, ok := m.(*AnyType); ok {
			if firstAny == nil {
				firstAny = a
			}
			if explicitAny == nil {
				if _, isExplicit := a.Provenance.(ExplicitProvenance); isExplicit {
					explicitAny = a
				}
			}
			continue
		}
		kept = append(kept, m)
	}
	if explicitAny != nil {
		return explicitAny
	}
	if firstAny != nil {
		return firstAny
	}

	deduped := dedupeByEqual(kept)
	if len(deduped) == 0 {
		return NewNeverType()
	}
	if len(deduped) == 1 {
		return deduped[0]
	}
	sortedByPrint(deduped)
	return &UnionType{Members: deduped}
}

func dedupeByEqual(ts []Type) []Type {
	out := make([]Type, 0, len(ts))
	for _, t := range ts {
		dup := false
		for _, o := range out {
			if Equal(t, o) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}

// UnionMembers returns t's members if it is a union, or []Type{t} for any
// other type (treating every type as a trivial one-member union).
func UnionMembers(t Type) []Type {
	if u, ok := Prune(t).(*UnionType); ok {
		return u.Members
	}
	return []Type{t}
}

// NewIntersect mirrors NewUnion's normalization for the intersection
// case: flatten, dedupe, Never absorbs, Any is the identity element,
// collapse a singleton.
func NewIntersect(members ...Type) Type {
	flat := make([]Type, 0, len(members))
	for _, m := range members {
		m = Prune(m)
		if i, ok := m.(*IntersectType); ok {
			flat = append(flat, i.Members...)
			continue
		}
		flat = append(flat, m)
	}

	kept := make([]Type, 0, len(flat))
	for _, m := range flat {
		if _, ok := m.(*AnyType); ok {
			continue
		}
		if _, ok := m.(*NeverType); ok {
			return NewNeverType()
		}
		kept = append(kept, m)
	}

	deduped := dedupeByEqual(kept)
	if len(deduped) == 0 {
		return NewAnyType(GradualProvenance{})
	}
	if len(deduped) == 1 {
		return deduped[0]
	}
	sortedByPrint(deduped)
	return &IntersectType{Members: deduped}
}
