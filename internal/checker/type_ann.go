package checker

import (
	"math/big"

	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/diag"
	"github.com/typewell-lang/typewell/internal/host"
	"github.com/typewell-lang/typewell/internal/types"
)

// InferTypeAnn converts annotation-position syntax into a types.Type
// (§4.C); special-form names (Literal, Callable, Optional, Union,
// ClassVar, Final, TypeGuard, TypeIs) are recognized structurally here
// rather than carried as dedicated AST nodes, matching how a real
// checker's annotation evaluator treats them as ordinary subscripted
// names until this step inspects the base name.
func (c *Checker) InferTypeAnn(ctx Context, ann ast.TypeAnn) types.Type {
	switch a := ann.(type) {
	case *ast.NoneTypeAnn:
		return types.NewNoneType()

	case *ast.EllipsisTypeAnn:
		return types.NewEllipsisType()

	case *ast.NameTypeAnn:
		return c.resolveTypeName(ctx, a.Name, a.BindingID, a.Span())

	case *ast.StrForwardRefTypeAnn:
		return c.resolveTypeName(ctx, a.Name, a.BindingID, a.Span())

	case *ast.AttrTypeAnn:
		// A dotted annotation (`module.Name`) is not resolved here and is
		// typed as Any; hosts that pre-resolve qualified names attach a
		// BindingID to the underlying NameTypeAnn instead, so this is
		// rarely reached.
		return types.NewAnyType(types.GradualProvenance{})

	case *ast.UnionTypeAnn:
		alts := make([]types.Type, len(a.Alts))
		for i, alt := range a.Alts {
			alts[i] = c.InferTypeAnn(ctx, alt)
		}
		return types.NewUnion(alts...)

	case *ast.TupleTypeAnn:
		elems := make([]types.Type, len(a.Elems))
		for i, el := range a.Elems {
			elems[i] = c.InferTypeAnn(ctx, el)
		}
		if a.Unbounded && len(elems) == 1 {
			return types.NewUnboundedTuple(elems[0])
		}
		return types.NewConcreteTuple(elems)

	case *ast.LitTypeAnn:
		lits := make([]types.Type, len(a.Values))
		for i, v := range a.Values {
			lits[i] = c.literalAnnValue(v)
		}
		return types.NewUnion(lits...)

	case *ast.SubscriptTypeAnn:
		return c.inferSubscriptTypeAnn(ctx, a)

	default:
		return types.NewAnyType(types.GradualProvenance{})
	}
}

func (c *Checker) resolveTypeName(ctx Context, name string, bindingID int, span ast.Span) types.Type {
	switch name {
	case "None":
		return types.NewNoneType()
	case "Any":
		return types.NewAnyType(types.ExplicitProvenance{})
	case "object":
		return types.NewClassType(c.Host.Stdlib().Object, nil)
	case "LiteralString":
		return types.NewLiteralStringType()
	case "Self":
		return types.NewSelfType(nil)
	}
	if sym, ok := c.Host.ResolveName(bindingID); ok {
		if sym.Kind == host.SymbolTypeParam {
			return sym.Type
		}
		if sym.Class.IsSome() {
			return types.NewClassType(sym.Class.Unwrap(), nil)
		}
		return sym.Type
	}
	c.report(diag.UnknownNameError{SpanV: span, Name: name})
	return types.NewAnyType(types.ErrorProvenance{Reason: "unknown-type-name"})
}

func (c *Checker) literalAnnValue(e ast.Expr) types.Type {
	lit, ok := e.(*ast.LitExpr)
	if !ok {
		return types.NewAnyType(types.GradualProvenance{})
	}
	switch lit.Kind {
	case ast.LitBool:
		return types.NewBoolLiteral(lit.Bool)
	case ast.LitInt:
		n, _ := new(big.Int).SetString(lit.Int, 10)
		if n == nil {
			n = big.NewInt(0)
		}
		return types.NewIntLiteral(n)
	case ast.LitStr:
		return types.NewStrLiteral(lit.Str)
	case ast.LitNone:
		return types.NewNoneType()
	default:
		return types.NewAnyType(types.GradualProvenance{})
	}
}

func (c *Checker) inferSubscriptTypeAnn(ctx Context, a *ast.SubscriptTypeAnn) types.Type {
	baseName, ok := a.Base.(*ast.NameTypeAnn)
	if !ok {
		return types.NewAnyType(types.GradualProvenance{})
	}

	switch baseName.Name {
	case "Optional":
		if len(a.Args) == 1 {
			return types.NewUnion(c.InferTypeAnn(ctx, a.Args[0]), types.NewNoneType())
		}
	case "Union":
		alts := make([]types.Type, len(a.Args))
		for i, arg := range a.Args {
			alts[i] = c.InferTypeAnn(ctx, arg)
		}
		return types.NewUnion(alts...)
	case "ClassVar", "Final", "ReadOnly", "Required", "NotRequired", "Annotated":
		if len(a.Args) >= 1 {
			return c.InferTypeAnn(ctx, a.Args[0])
		}
	case "Literal":
		lits := make([]types.Type, len(a.Args))
		for i, arg := range a.Args {
			lits[i] = c.inferLiteralArgTypeAnn(arg)
		}
		return types.NewUnion(lits...)
	case "Callable":
		return c.inferCallableTypeAnn(ctx, a)
	case "TypeGuard":
		if len(a.Args) == 1 {
			return types.NewTypeGuardType(c.InferTypeAnn(ctx, a.Args[0]))
		}
	case "TypeIs":
		if len(a.Args) == 1 {
			return types.NewTypeIsType(c.InferTypeAnn(ctx, a.Args[0]))
		}
	case "type":
		if len(a.Args) == 1 {
			return types.NewTypeFormType(c.InferTypeAnn(ctx, a.Args[0]))
		}
	}

	base := c.resolveTypeName(ctx, baseName.Name, baseName.BindingID, baseName.Span())
	baseClass, ok := types.Prune(base).(*types.ClassType)
	if !ok {
		return base
	}
	args := make([]types.Type, len(a.Args))
	for i, arg := range a.Args {
		args[i] = c.InferTypeAnn(ctx, arg)
	}
	return types.NewClassType(baseClass.Class, args)
}

func (c *Checker) inferLiteralArgTypeAnn(arg ast.TypeAnn) types.Type {
	lt, ok := arg.(*ast.LitTypeAnn)
	if !ok || len(lt.Values) != 1 {
		return types.NewAnyType(types.GradualProvenance{})
	}
	return c.literalAnnValue(lt.Values[0])
}

func (c *Checker) inferCallableTypeAnn(ctx Context, a *ast.SubscriptTypeAnn) types.Type {
	if len(a.Args) != 2 {
		return types.NewAnyType(types.GradualProvenance{})
	}
	ret := c.InferTypeAnn(ctx, a.Args[1])
	paramsAnn, ok := a.Args[0].(*ast.TupleTypeAnn)
	if !ok {
		// `Callable[..., T]` (Ellipsis for params): fully dynamic
		// parameter list.
		return types.NewEllipsisCallableType(ret)
	}
	params := make([]*types.Param, len(paramsAnn.Elems))
	for i, p := range paramsAnn.Elems {
		params[i] = types.NewParam("", types.ParamPositionalOnly, c.InferTypeAnn(ctx, p), true)
	}
	return types.NewCallableType(params, ret)
}
