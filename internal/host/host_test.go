package host

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/typewell-lang/typewell/internal/types"
)

func TestLanguageVersionAtLeast(t *testing.T) {
	v := LanguageVersion{Major: 3, Minor: 12}
	assert.True(t, v.AtLeast(3, 10))
	assert.True(t, v.AtLeast(3, 12))
	assert.False(t, v.AtLeast(3, 13))
	assert.False(t, v.AtLeast(4, 0))
}

func TestFixtureResolvesRegisteredBinding(t *testing.T) {
	std := types.NewStdlib()
	f := NewFixture(ModuleInfo{Name: "m"}, std)
	f.BindName(1, Symbol{Kind: SymbolVariable, Type: types.NewClassType(std.Int, nil)})

	sym, ok := f.ResolveName(1)
	assert.True(t, ok)
	assert.True(t, types.Equal(sym.Type, types.NewClassType(std.Int, nil)))

	_, ok = f.ResolveName(2)
	assert.False(t, ok)
}

func TestFixtureEmitCollectsDiagnostics(t *testing.T) {
	std := types.NewStdlib()
	f := NewFixture(ModuleInfo{Name: "m"}, std)
	f.Emit(Diagnostic{Kind: "bad-assignment", Message: "oops"})
	assert.Len(t, f.Emitted(), 1)
}
