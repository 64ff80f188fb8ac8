package checker

import (
	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/diag"
)

// CheckModule is the top-level entry point: check every statement of
// m's body in a fresh module-level Context and return the diagnostics
// the collector gathered, ending the collector's run (§2's "Check" data
// flow stage, from parsed module through bindings to diagnostics).
func (c *Checker) CheckModule(m *ast.Module) []diag.Error {
	ctx := NewModuleContext()
	c.CheckBlock(ctx, m.Body)
	return c.Collector.Finish()
}
