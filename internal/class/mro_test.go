package class

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typewell-lang/typewell/internal/types"
)

func TestLinearizeSingleBase(t *testing.T) {
	object := types.NewClass("object")
	a := types.NewClass("A")
	a.Bases = []*types.ClassType{types.NewClassType(object, nil)}

	require.NoError(t, Linearize(a))
	assert.Equal(t, []string{"A", "object"}, names(a.MRO))
}

// Classic "diamond" inheritance: D(B, C), B(A), C(A), A(object). C3 must
// keep local precedence order (B before C) while visiting each base only
// once.
func TestLinearizeDiamond(t *testing.T) {
	object := types.NewClass("object")
	a := types.NewClass("A")
	a.Bases = []*types.ClassType{types.NewClassType(object, nil)}
	require.NoError(t, Linearize(a))

	b := types.NewClass("B")
	b.Bases = []*types.ClassType{types.NewClassType(a, nil)}
	require.NoError(t, Linearize(b))

	c := types.NewClass("C")
	c.Bases = []*types.ClassType{types.NewClassType(a, nil)}
	require.NoError(t, Linearize(c))

	d := types.NewClass("D")
	d.Bases = []*types.ClassType{types.NewClassType(b, nil), types.NewClassType(c, nil)}
	require.NoError(t, Linearize(d))

	assert.Equal(t, []string{"D", "B", "C", "A", "object"}, names(d.MRO))
}

func TestLinearizeInconsistentOrderFails(t *testing.T) {
	object := types.NewClass("object")
	x := types.NewClass("X")
	x.Bases = []*types.ClassType{types.NewClassType(object, nil)}
	require.NoError(t, Linearize(x))
	y := types.NewClass("Y")
	y.Bases = []*types.ClassType{types.NewClassType(object, nil)}
	require.NoError(t, Linearize(y))

	// X2(object, Y)'s local order puts object before Y at the top level,
	// which contradicts Y's own linearization (Y before object).
	x2 := types.NewClass("X2")
	x2.Bases = []*types.ClassType{types.NewClassType(object, nil), types.NewClassType(y, nil)}

	err := Linearize(x2)
	assert.Error(t, err)
}

func names(cs []*types.Class) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.QualName
	}
	return out
}
