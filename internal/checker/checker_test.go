package checker_test

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/checker"
	"github.com/typewell-lang/typewell/internal/demo"
	"github.com/typewell-lang/typewell/internal/diag"
	"github.com/typewell-lang/typewell/internal/host"
	"github.com/typewell-lang/typewell/internal/types"
)

func TestBadAssignmentScenarioReportsBadAssignment(t *testing.T) {
	scenario, err := demo.Build("bad-assignment")
	require.NoError(t, err)

	errs := demo.Run(scenario)
	require.Len(t, errs, 1)
	assert.Equal(t, "bad-assignment", errs[0].Kind())
}

func TestRevealTypeScenarioReportsInferredLiteral(t *testing.T) {
	scenario, err := demo.Build("reveal-type")
	require.NoError(t, err)

	errs := demo.Run(scenario)
	require.Len(t, errs, 1)
	reveal, ok := errs[0].(diag.RevealTypeInfoError)
	require.True(t, ok)
	assert.Equal(t, "1", reveal.Type.String())
}

func TestBadOverrideScenarioReportsFinalRedeclaration(t *testing.T) {
	scenario, err := demo.Build("bad-override")
	require.NoError(t, err)

	errs := demo.Run(scenario)
	require.Len(t, errs, 1)
	_, ok := errs[0].(diag.FinalRedeclarationError)
	assert.True(t, ok)
}

func TestUnknownScenarioNameErrors(t *testing.T) {
	_, err := demo.Build("does-not-exist")
	assert.Error(t, err)
}

func span(line, col, width int) ast.Span {
	return ast.NewSpan(ast.Location{Line: line, Column: col}, ast.Location{Line: line, Column: col + width}, 0)
}

// A module-level function declared `-> int` that returns a str literal
// should fail with BadReturnError.
func TestFuncDefWithMismatchedReturnReportsBadReturn(t *testing.T) {
	std := types.NewStdlib()
	f := host.NewFixture(host.ModuleInfo{Name: "demo"}, std)
	f.BindName(1, host.Symbol{Kind: host.SymbolClass, Class: optional.Some(std.Int)})

	retAnn := ast.NewNameTypeAnn("int", 1, span(1, 1, 3))
	badReturn := ast.NewLitExpr(ast.LitStr, span(1, 1, 5))
	badReturn.Str = "no"

	fn := ast.NewFuncDef("f", nil, []ast.Stmt{
		ast.NewReturnStmt(badReturn, span(1, 1, 12)),
	}, span(1, 1, 20))
	fn.ReturnAnn = retAnn

	mod := &ast.Module{Source: ast.Source{Path: "demo.py", ID: 0}, Body: []ast.Stmt{fn}}

	collector := diag.NewCollector(diag.StyleDelayed, nil, nil)
	c := checker.NewChecker(f, collector)
	errs := c.CheckModule(mod)

	require.Len(t, errs, 1)
	_, ok := errs[0].(diag.BadReturnError)
	assert.True(t, ok)
}
