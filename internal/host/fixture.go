package host

import (
	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/types"
)

// Fixture is an in-memory Host used by tests and by cmd/typewell's
// demo CLI: every binding and class is registered up front rather than
// discovered from a binding graph. Grounded on escalier's test fixtures
// that construct a Context by hand instead of running a real resolver.
type Fixture struct {
	byBinding map[int]Symbol
	byDecl    map[ast.Node]Symbol
	classes   map[string]*types.Class
	info      ModuleInfo
	std       *types.Stdlib
	emitted   []Diagnostic
}

func NewFixture(info ModuleInfo, std *types.Stdlib) *Fixture {
	return &Fixture{
		byBinding: map[int]Symbol{},
		byDecl:    map[ast.Node]Symbol{},
		classes:   map[string]*types.Class{},
		info:      info,
		std:       std,
	}
}

func (f *Fixture) BindName(id int, sym Symbol) { f.byBinding[id] = sym }
func (f *Fixture) BindDecl(n ast.Node, sym Symbol) { f.byDecl[n] = sym }

func (f *Fixture) RegisterClass(c *types.Class) {
	f.classes[c.QualName] = c
}

func (f *Fixture) ResolveName(bindingID int) (Symbol, bool) {
	sym, ok := f.byBinding[bindingID]
	return sym, ok
}

func (f *Fixture) ResolveBinding(decl ast.Node) (Symbol, bool) {
	sym, ok := f.byDecl[decl]
	return sym, ok
}

func (f *Fixture) ClassInfo(qualName string) (*types.Class, bool) {
	c, ok := f.classes[qualName]
	return c, ok
}

func (f *Fixture) ModuleInfo() ModuleInfo { return f.info }

func (f *Fixture) Stdlib() *types.Stdlib { return f.std }

func (f *Fixture) Emit(d Diagnostic) { f.emitted = append(f.emitted, d) }

// Emitted returns every diagnostic recorded so far, for test assertions.
func (f *Fixture) Emitted() []Diagnostic { return f.emitted }
