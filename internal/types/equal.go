package types

import (
	"math/big"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Equal reports structural equality between two types (§8's testable
// equality properties). Classes compare by pointer identity (there is
// exactly one *Class per declared class in a host's binding graph,
// §6), big.Int literals compare by value rather than pointer, and two
// Anys compare equal whatever their provenance.
//
// Grounded on escalier's use of go-cmp with cmpopts.IgnoreUnexported for
// comparing its Type sum in tests.
func Equal(a, b Type) bool {
	a, b = Prune(a), Prune(b)
	return cmp.Equal(a, b, equalOpts...)
}

var equalOpts = []cmp.Option{
	cmp.Comparer(func(a, b *Class) bool { return a == b }),
	cmp.Comparer(func(a, b *big.Int) bool {
		if a == nil || b == nil {
			return a == b
		}
		return a.Cmp(b) == 0
	}),
	cmpopts.IgnoreUnexported(),
	cmp.Comparer(func(a, b *VarType) bool { return a == b }),
	cmp.Comparer(func(a, b *AnyType) bool { return (a == nil) == (b == nil) }),
}
