// Package checker implements the expression/statement solver (components
// C through G): name resolution through a scope chain, call resolution,
// attribute/MRO lookup, and flow-sensitive narrowing, producing
// diagnostics through internal/diag and deferring every subtyping
// judgment to internal/subtype.
//
// Grounded on escalier's checker/checker.go (the Checker/Context/Scope
// split) and checker/infer_expr.go's per-expression-form dispatch,
// generalized to this spec's Python expression surface.
package checker

import (
	"github.com/typewell-lang/typewell/internal/diag"
	"github.com/typewell-lang/typewell/internal/host"
	"github.com/typewell-lang/typewell/internal/types"
)

// Checker holds the state threaded across one module's worth of
// checking: a fresh-Var counter, the host boundary, and the diagnostic
// sink every inference step reports through.
type Checker struct {
	varID     int
	quantID   int
	Host      host.Host
	Collector *diag.Collector
}

func NewChecker(h host.Host, collector *diag.Collector) *Checker {
	return &Checker{Host: h, Collector: collector}
}

func (c *Checker) FreshVar() *types.VarType {
	c.varID++
	return types.NewVarType(c.varID)
}

// freshQuantifiedID allocates an identity distinguishing two
// QuantifiedTypes that share a printed name across different
// definitions, so Substitute never conflates them.
func (c *Checker) freshQuantifiedID() int {
	c.quantID++
	return c.quantID
}

func (c *Checker) report(err diag.Error) {
	c.Collector.Add(err)
}

// Scope is a chained binding environment. Declared holds a binding's
// nominal/inferred type as the host resolved it; Narrowed overlays a
// flow-sensitive refinement (§4.G) that shadows Declared for as long as
// the current branch's narrowing stays in effect.
type Scope struct {
	parent   *Scope
	Declared map[int]types.Type
	Narrowed map[int]types.Type
}

func NewScope() *Scope {
	return &Scope{Declared: map[int]types.Type{}, Narrowed: map[int]types.Type{}}
}

func (s *Scope) Child() *Scope {
	return &Scope{parent: s, Declared: map[int]types.Type{}, Narrowed: map[int]types.Type{}}
}

// Lookup returns the effective type for bindingID: the narrowest
// binding visible in this scope or an enclosing one, narrowing taking
// precedence over the declared type (§4.G).
func (s *Scope) Lookup(bindingID int) (types.Type, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if t, ok := scope.Narrowed[bindingID]; ok {
			return t, true
		}
		if t, ok := scope.Declared[bindingID]; ok {
			return t, true
		}
	}
	return nil, false
}

func (s *Scope) Declare(bindingID int, t types.Type) {
	s.Declared[bindingID] = t
}

// Narrow installs a flow-sensitive refinement for bindingID visible
// only in this scope and its children, leaving Declared untouched so
// the refinement can be dropped when the branch it came from ends.
func (s *Scope) Narrow(bindingID int, t types.Type) {
	s.Narrowed[bindingID] = t
}

// Clone copies Narrowed (but shares Declared, which never changes after
// declaration) so two branches of a conditional can narrow independently
// from the same starting point (§4.G).
func (s *Scope) Clone() *Scope {
	narrowed := make(map[int]types.Type, len(s.Narrowed))
	for k, v := range s.Narrowed {
		narrowed[k] = v
	}
	return &Scope{parent: s.parent, Declared: s.Declared, Narrowed: narrowed}
}

// Context is the per-call-site state threaded through one inference
// pass over a function body.
type Context struct {
	Scope          *Scope
	ReturnType     types.Type // nil outside a function body
	InAsyncFunc    bool
}

func (ctx Context) WithScope(s *Scope) Context {
	ctx.Scope = s
	return ctx
}

func (ctx Context) WithReturnType(t types.Type) Context {
	ctx.ReturnType = t
	return ctx
}

// NewModuleContext starts a fresh top-level Context backed by a new
// scope.
func NewModuleContext() Context {
	return Context{Scope: NewScope()}
}
