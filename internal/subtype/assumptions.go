package subtype

import (
	"github.com/typewell-lang/typewell/internal/set"
	"github.com/typewell-lang/typewell/internal/types"
)

// pairKey identifies a (sub, super) class pair under active comparison,
// the recursion guard structural subtyping needs for protocols that
// reference each other (§4.B).
type pairKey struct {
	sub, super *types.Class
}

type assumptionSet struct {
	seen set.Set[pairKey]
}

func newAssumptionSet() *assumptionSet {
	return &assumptionSet{seen: set.NewSet[pairKey]()}
}

func (a *assumptionSet) contains(k pairKey) bool { return a.seen.Contains(k) }
func (a *assumptionSet) add(k pairKey)            { a.seen.Add(k) }
func (a *assumptionSet) remove(k pairKey)         { a.seen.Remove(k) }
