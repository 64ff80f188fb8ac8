// Package demo builds small hand-wired modules (AST plus a matching
// host.Fixture) that exercise the checker end to end without a parser,
// mirroring the fixture files escalier's cmd/escalier tests load from
// disk (fixture_test.go) — here there is no parser to feed text through
// (parsing is out of scope, §1), so the fixtures are built as Go values
// directly, the same shape a real host's binding-graph phase would hand
// the checker.
package demo

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/checker"
	"github.com/typewell-lang/typewell/internal/diag"
	"github.com/typewell-lang/typewell/internal/host"
	"github.com/typewell-lang/typewell/internal/types"
)

// Scenario is one named, self-contained demo: a module, the source
// text it notionally corresponds to (for error rendering only), and
// the fixture host backing its bindings.
type Scenario struct {
	Name        string
	Description string
	Source      string
	Module      *ast.Module
	Host        *host.Fixture
}

// span builds a single-line span covering [col, col+width) on line.
func span(line, col, width int) ast.Span {
	return ast.NewSpan(ast.Location{Line: line, Column: col}, ast.Location{Line: line, Column: col + width}, 0)
}

var registry = map[string]func() Scenario{
	"bad-assignment": badAssignmentScenario,
	"reveal-type":    revealTypeScenario,
	"bad-override":   badOverrideScenario,
}

// Names lists every registered scenario, in a stable order.
func Names() []string {
	return []string{"bad-assignment", "reveal-type", "bad-override"}
}

// Build looks up a scenario by name.
func Build(name string) (Scenario, error) {
	build, ok := registry[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario %q", name)
	}
	return build(), nil
}

// badAssignmentScenario is `x: int = "hello"`, which should fail
// because str is not assignable to int.
func badAssignmentScenario() Scenario {
	std := types.NewStdlib()
	f := host.NewFixture(host.ModuleInfo{Name: "demo", Path: "demo.py", Version: host.LanguageVersion{Major: 3, Minor: 12}}, std)
	f.BindName(1, host.Symbol{Kind: host.SymbolClass, Class: optional.Some(std.Int)})

	ann := ast.NewNameTypeAnn("int", 1, span(1, 4, 3))
	value := ast.NewLitExpr(ast.LitStr, span(1, 10, 7))
	value.Str = "hello"
	stmt := ast.NewAnnAssignStmt(ast.NewIdentPat("x", 2, span(1, 1, 1)), ann, value, span(1, 1, 16))

	return Scenario{
		Name:        "bad-assignment",
		Description: "assigning a str literal to an int-annotated variable",
		Source:      "x: int = \"hello\"\n",
		Module:      &ast.Module{Source: ast.Source{Path: "demo.py", ID: 0}, Body: []ast.Stmt{stmt}},
		Host:        f,
	}
}

// revealTypeScenario is `x = 1\nreveal_type(x)`, which should surface
// the inferred int literal type through RevealTypeInfoError.
func revealTypeScenario() Scenario {
	std := types.NewStdlib()
	f := host.NewFixture(host.ModuleInfo{Name: "demo", Path: "demo.py", Version: host.LanguageVersion{Major: 3, Minor: 12}}, std)

	lit := ast.NewLitExpr(ast.LitInt, span(1, 5, 1))
	lit.Int = "1"
	assign := ast.NewAssignStmt([]ast.Pat{ast.NewIdentPat("x", 1, span(1, 1, 1))}, lit, span(1, 1, 5))

	name := ast.NewNameExpr("x", 1, span(2, 13, 1))
	call := ast.NewCallExpr(ast.NewNameExpr("reveal_type", 0, span(2, 1, 11)), []ast.Expr{name}, nil, span(2, 1, 15))
	exprStmt := ast.NewExprStmt(call, span(2, 1, 15))

	return Scenario{
		Name:        "reveal-type",
		Description: "reveal_type surfaces the inferred type of a freshly assigned name",
		Source:      "x = 1\nreveal_type(x)\n",
		Module:      &ast.Module{Source: ast.Source{Path: "demo.py", ID: 0}, Body: []ast.Stmt{assign, exprStmt}},
		Host:        f,
	}
}

// badOverrideScenario resolves a base class with a Final method through
// the fixture's binding graph (the way a host pre-synthesizes every
// class before the module that uses it gets checked) and declares a
// subclass that redeclares that method, which should fail with
// FinalRedeclarationError.
func badOverrideScenario() Scenario {
	std := types.NewStdlib()
	f := host.NewFixture(host.ModuleInfo{Name: "demo", Path: "demo.py", Version: host.LanguageVersion{Major: 3, Minor: 12}}, std)

	base := types.NewClass("Base")
	base.MRO = []*types.Class{base, std.Object}
	base.Fields["greet"] = &types.Field{
		Name:      "greet",
		Type:      types.NewFunctionType(types.NewCallableType(nil, types.NewNoneType()), types.FunctionMetadata{Name: "greet", DefinedOn: base}),
		Qual:      types.FieldQual{Final: true},
		DefinedOn: base,
	}
	f.RegisterClass(base)
	f.BindName(2, host.Symbol{Kind: host.SymbolClass, Class: optional.Some(base)})

	sub := ast.NewClassDef("Sub", []ast.TypeAnn{ast.NewNameTypeAnn("Base", 2, span(1, 11, 4))}, span(1, 1, 14))
	sub.Methods = append(sub.Methods, ast.NewFuncDef("greet", nil, nil, span(2, 5, 15)))

	return Scenario{
		Name:        "bad-override",
		Description: "a subclass redeclares a base class's @final method",
		Source:      "class Sub(Base):\n    def greet(self): ...\n",
		Module:      &ast.Module{Source: ast.Source{Path: "demo.py", ID: 0}, Body: []ast.Stmt{sub}},
		Host:        f,
	}
}

// Run type-checks s.Module with a fresh Checker over s.Host and returns
// the diagnostics the collector produced.
func Run(s Scenario) []diag.Error {
	collector := diag.NewCollector(diag.StyleDelayed, nil, nil)
	c := checker.NewChecker(s.Host, collector)
	return c.CheckModule(s.Module)
}
