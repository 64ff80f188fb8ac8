package checker

import (
	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/diag"
	"github.com/typewell-lang/typewell/internal/subtype"
	"github.com/typewell-lang/typewell/internal/types"
)

// BuildTypeParams converts a FuncDef/ClassDef's declared type parameters
// into QuantifiedTypes with fresh identities. A NameTypeAnn referring
// back to one of these within the same signature resolves through the
// host's binding graph (host.SymbolTypeParam), which is expected to
// have already associated that reference's BindingID with the
// QuantifiedType built here; this function only establishes the
// identities, it does not re-wire host resolution.
func (c *Checker) BuildTypeParams(ctx Context, decls []*ast.TypeParamDecl) ([]*types.QuantifiedType, Context) {
	params := make([]*types.QuantifiedType, len(decls))
	inner := ctx
	for i, d := range decls {
		q := &types.QuantifiedType{
			Id:   c.freshQuantifiedID(),
			Name: d.Name,
		}
		switch d.Kind {
		case ast.TypeParamVariadic:
			q.Kind = types.QuantVariadic
		case ast.TypeParamParamSpec:
			q.Kind = types.QuantParamSpec
		default:
			q.Kind = types.QuantValue
		}
		switch {
		case d.Constraint != nil:
			q.Restriction = types.Restriction{Kind: types.RestrictionUpperBound, UpperBound: c.InferTypeAnn(inner, d.Constraint)}
		case len(d.Constraints) > 0:
			cs := make([]types.Type, len(d.Constraints))
			for j, ca := range d.Constraints {
				cs[j] = c.InferTypeAnn(inner, ca)
			}
			q.Restriction = types.Restriction{Kind: types.RestrictionConstraints, Constraints: cs}
		default:
			q.Restriction = types.Restriction{Kind: types.RestrictionUnrestricted}
		}
		if d.Default != nil {
			q.Default = c.InferTypeAnn(inner, d.Default)
		}
		switch {
		case d.Covariant:
			q.Variance = types.VarianceCovariant
		case d.Contravariant:
			q.Variance = types.VarianceContravariant
		default:
			q.Variance = types.VarianceInvariant
		}
		params[i] = q
	}
	return params, inner
}

// BuildFunctionSignature produces the FunctionType (or, when the
// definition declares type parameters, the ForallType wrapping one) a
// FuncDef denotes, without checking its body.
func (c *Checker) BuildFunctionSignature(ctx Context, decl *ast.FuncDef, definedOn *types.Class) types.Type {
	typeParams, sigCtx := c.BuildTypeParams(ctx, decl.TypeParams)

	params := make([]*types.Param, len(decl.Params))
	for i, p := range decl.Params {
		var pt types.Type
		if p.TypeAnn != nil {
			pt = c.InferTypeAnn(sigCtx, p.TypeAnn)
		} else {
			pt = types.NewAnyType(types.GradualProvenance{})
		}
		var kind types.ParamKind
		switch p.Kind {
		case ast.ParamPositionalOnly:
			kind = types.ParamPositionalOnly
		case ast.ParamVariadic:
			kind = types.ParamVariadic
		case ast.ParamKeywordOnly:
			kind = types.ParamKeywordOnly
		case ast.ParamKeywordVariadic:
			kind = types.ParamKeywordVariadic
		default:
			kind = types.ParamPositionalOrKeyword
		}
		params[i] = types.NewParam(p.Name, kind, pt, p.Default == nil)
	}

	var ret types.Type
	if decl.ReturnAnn != nil {
		ret = c.InferTypeAnn(sigCtx, decl.ReturnAnn)
	} else {
		ret = types.NewAnyType(types.GradualProvenance{})
	}

	kind := types.FnOrdinary
	for _, d := range decl.Decorators {
		if name, ok := d.Expr.(*ast.NameExpr); ok {
			switch name.Name {
			case "staticmethod":
				kind = types.FnStaticMethod
			case "classmethod":
				kind = types.FnClassMethod
			case "property":
				kind = types.FnProperty
			}
		}
	}
	if definedOn == nil {
		kind = types.FnModuleLevel
	}

	fn := types.NewFunctionType(types.NewCallableType(params, ret), types.FunctionMetadata{
		Name:       decl.Name,
		Kind:       kind,
		DefinedOn:  definedOn,
		TypeParams: typeParams,
	})

	if len(typeParams) == 0 {
		return fn
	}
	return types.NewForallType(typeParams, fn)
}

// CheckFuncBody type-checks decl's body against the signature it
// declares, binding each parameter and Self (when definedOn is set),
// and reporting BadReturnError for any `return` whose value isn't a
// subtype of the declared return type (§4.D). Unannotated parameters
// are bound to the signature's inferred Any, not re-inferred from call
// sites — this solver checks one definition at a time rather than doing
// cross-call-site return-type inference.
func (c *Checker) CheckFuncBody(ctx Context, decl *ast.FuncDef, sig types.Type, definedOn *types.Class) {
	fn, ok := types.Prune(sig).(*types.FunctionType)
	if !ok {
		if forall, ok := types.Prune(sig).(*types.ForallType); ok {
			fn, ok = forall.Body.(*types.FunctionType)
			if !ok {
				return
			}
		} else {
			return
		}
	}

	scope := ctx.Scope.Child()
	bodyCtx := ctx.WithScope(scope).WithReturnType(fn.Callable.Return)
	bodyCtx.InAsyncFunc = decl.IsAsync

	if definedOn != nil && len(decl.Params) > 0 {
		scope.Declare(selfBindingID(decl), types.NewSelfType(definedOn))
	}
	for i, p := range decl.Params {
		if definedOn != nil && i == 0 {
			continue // self/cls already bound above
		}
		scope.Declare(paramBindingID(decl, i), fn.Callable.Params[minInt(i, len(fn.Callable.Params)-1)].Type)
	}

	c.CheckBlock(bodyCtx, decl.Body)
}

// selfBindingID/paramBindingID assign scope slots for a function's
// parameters. A host that resolves bindings ahead of time (the normal
// case) attaches BindingIDs to each ast.Param directly; since
// ast.Param doesn't carry one in this AST, this solver derives a
// stable per-definition slot from the FuncDef's own BindingID instead.
func selfBindingID(decl *ast.FuncDef) int { return decl.BindingID*1000 + 1 }
func paramBindingID(decl *ast.FuncDef, i int) int { return decl.BindingID*1000 + 2 + i }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// CheckReturn reports a BadReturnError when value's type isn't
// consistent with ctx.ReturnType.
func (c *Checker) CheckReturn(ctx Context, value types.Type, span ast.Span) {
	if ctx.ReturnType == nil {
		return
	}
	if !subtype.IsSubsetEq(value, ctx.ReturnType) {
		c.report(diag.BadReturnError{SpanV: span, Declared: ctx.ReturnType, Actual: value})
	}
}
