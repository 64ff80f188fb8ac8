package checker

import (
	"math/big"
	"strings"

	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/diag"
	"github.com/typewell-lang/typewell/internal/types"
)

// inferLit assigns the most specific Literal type to a literal
// expression (§4.C); call sites that need the widened nominal type
// (e.g. a `list[...]` display's inferred element type) run
// types.PromoteLiterals afterward rather than widening here, so a bare
// `x = 1` can still be checked against `Literal[1]` when that's what
// the declared annotation calls for.
func (c *Checker) inferLit(lit *ast.LitExpr) types.Type {
	switch lit.Kind {
	case ast.LitBool:
		return types.NewBoolLiteral(lit.Bool)
	case ast.LitInt:
		n, ok := new(big.Int).SetString(lit.Int, 10)
		if !ok {
			n = big.NewInt(0)
		}
		return types.NewIntLiteral(n)
	case ast.LitFloat:
		return types.NewClassType(c.Host.Stdlib().Float, nil)
	case ast.LitBytes:
		return types.NewBytesLiteral(lit.Bytes)
	case ast.LitStr:
		return types.NewStrLiteral(lit.Str)
	case ast.LitNone:
		return types.NewNoneType()
	case ast.LitEllipsis:
		return types.NewEllipsisType()
	default:
		c.report(diag.InternalError{SpanV: lit.Span(), Detail: "unhandled literal kind"})
		return types.NewAnyType(types.ErrorProvenance{Reason: "internal-error"})
	}
}

func (c *Checker) inferFString(f *ast.FStringExpr, ctx Context) types.Type {
	allConst := true
	var text strings.Builder
	for _, part := range f.Parts {
		if part.Const {
			text.WriteString(part.Text)
			continue
		}
		allConst = false
		c.InferExpr(ctx, part.Expr)
	}
	if allConst {
		return types.NewStrLiteral(text.String())
	}
	return types.NewClassType(c.Host.Stdlib().Str, nil)
}
