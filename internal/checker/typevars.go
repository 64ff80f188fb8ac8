package checker

import (
	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/types"
)

// interceptTypeVarCall recognizes the three type-parameter constructor
// calls (TypeVar, TypeVarTuple, ParamSpec) and evaluates their
// restriction/default keyword arguments rather than treating them as an
// ordinary call against whatever the host resolved that name to — a
// real host pre-binds these the same way it pre-binds a class, but a
// bare fixture exercising this solver standalone may not, so the
// checker recognizes the call shape directly (§4.D). The result is the
// QuantifiedType value `T = TypeVar(...)` binds, later looked up by
// resolveTypeName through host.SymbolTypeParam for any annotation that
// references it — this function only covers the assignment's RHS value,
// not that later resolution.
func (c *Checker) interceptTypeVarCall(ctx Context, e *ast.CallExpr) (types.Type, bool) {
	fn, ok := e.Func.(*ast.NameExpr)
	if !ok {
		return nil, false
	}

	var kind types.QuantifiedKind
	switch fn.Name {
	case "TypeVar":
		kind = types.QuantValue
	case "TypeVarTuple":
		kind = types.QuantVariadic
	case "ParamSpec":
		kind = types.QuantParamSpec
	default:
		return nil, false
	}

	name := fn.Name
	if len(e.Args) > 0 {
		if lit, ok := e.Args[0].(*ast.LitExpr); ok && lit.Kind == ast.LitStr {
			name = lit.Str
		}
	}

	q := &types.QuantifiedType{Id: c.freshQuantifiedID(), Name: name, Kind: kind}
	q.Restriction = types.Restriction{Kind: types.RestrictionUnrestricted}

	var constraints []types.Type
	for _, kw := range e.Keywords {
		switch kw.Name {
		case "bound":
			q.Restriction = types.Restriction{Kind: types.RestrictionUpperBound, UpperBound: c.inferTypeExpr(ctx, kw.Value)}
		case "default":
			q.Default = c.inferTypeExpr(ctx, kw.Value)
		case "covariant":
			if isTrueLit(kw.Value) {
				q.Variance = types.VarianceCovariant
			}
		case "contravariant":
			if isTrueLit(kw.Value) {
				q.Variance = types.VarianceContravariant
			}
		}
	}
	for _, arg := range e.Args[minArgSkip(e.Args):] {
		constraints = append(constraints, c.inferTypeExpr(ctx, arg))
	}
	if len(constraints) > 0 {
		q.Restriction = types.Restriction{Kind: types.RestrictionConstraints, Constraints: constraints}
	}

	return q, true
}

func isTrueLit(e ast.Expr) bool {
	lit, ok := e.(*ast.LitExpr)
	return ok && lit.Kind == ast.LitBool && lit.Bool
}

// minArgSkip skips the leading name-string argument all three
// constructors take positionally, so any remaining positional args are
// constraint types (`TypeVar("T", int, str)`).
func minArgSkip(args []ast.Expr) int {
	if len(args) == 0 {
		return 0
	}
	return 1
}
