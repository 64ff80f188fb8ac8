package checker

import (
	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/diag"
	"github.com/typewell-lang/typewell/internal/subtype"
	"github.com/typewell-lang/typewell/internal/types"
)

// inferCall resolves a call expression's result type: a Forall is
// freshened into per-call-site Vars before argument checking so each
// call solves its own type parameters independently (§4.D); an Overload
// tries each signature in order and commits to the first that accepts
// every argument, matching the spec's "first match wins" rule.
func (c *Checker) inferCall(ctx Context, callee types.Type, args []types.Type, kwargs map[string]types.Type, span ast.Span) types.Type {
	callee = types.Prune(callee)

	if _, ok := callee.(*types.AnyType); ok {
		return types.NewAnyType(types.GradualProvenance{})
	}

	if forall, ok := callee.(*types.ForallType); ok {
		fresh := types.Subst{}
		for _, p := range forall.Params {
			fresh[p.Id] = c.FreshVar()
		}
		instantiated := types.Substitute(fresh, forall.Body)
		result := c.inferCall(ctx, instantiated, args, kwargs, span)
		for _, v := range fresh {
			if vv, ok := v.(*types.VarType); ok {
				subtype.Force(vv)
			}
		}
		return result
	}

	if bm, ok := callee.(*types.BoundMethodType); ok {
		return c.inferCall(ctx, bm.Callable, append([]types.Type{bm.Self}, args...), kwargs, span)
	}

	if ov, ok := callee.(*types.OverloadType); ok {
		for _, sig := range ov.Signatures {
			if c.argsMatchSignature(sig.Callable, args, kwargs) {
				return sig.Callable.Return
			}
		}
		c.report(diag.NoMatchingOverloadError{SpanV: span, Name: ov.Meta.Name})
		return types.NewAnyType(types.ErrorProvenance{Reason: "no-matching-overload"})
	}

	if cd, ok := callee.(*types.ClassDefType); ok {
		return c.inferConstructorCall(ctx, cd, args, kwargs, span)
	}

	var callable *types.CallableType
	switch ct := callee.(type) {
	case *types.CallableType:
		callable = ct
	case *types.FunctionType:
		callable = ct.Callable
	default:
		c.report(diag.NotCallableError{SpanV: span, Type: callee})
		return types.NewAnyType(types.ErrorProvenance{Reason: "not-callable"})
	}

	c.checkArgs(callable, args, kwargs, span)
	return callable.Return
}

// inferConstructorCall runs the constructor protocol for `Cls(...)`
// (§4.D): fresh Vars stand in for cls's own type parameters while
// __new__ (falling back to __init__) checks the call's arguments, and
// the forced solutions become the constructed instance's type
// arguments. A user-defined metaclass `__call__` would run ahead of
// this and could construct something other than a plain instance of
// cls, but internal/types.Class has no metaclass slot to represent
// that, so construction always goes straight to __new__/__init__.
func (c *Checker) inferConstructorCall(ctx Context, cd *types.ClassDefType, args []types.Type, kwargs map[string]types.Type, span ast.Span) types.Type {
	cls := cd.Class

	fresh := make([]types.Type, len(cls.TypeParams))
	subst := types.Subst{}
	for i, tp := range cls.TypeParams {
		fv := c.FreshVar()
		fresh[i] = fv
		subst[tp.Id] = fv
	}

	member, ok := cls.Lookup("__new__")
	if !ok {
		member, ok = cls.Lookup("__init__")
	}
	if ok {
		if callable := constructorCallable(subst, member.Type); callable != nil {
			c.checkArgs(callable, args, kwargs, span)
		}
	}

	for _, t := range fresh {
		if v, ok := t.(*types.VarType); ok {
			subtype.Force(v)
		}
	}
	return types.NewClassType(cls, fresh)
}

// constructorCallable binds a constructor member's class-level type
// parameters to subst and strips its leading self/cls parameter,
// producing the Callable a constructor call's arguments check against.
func constructorCallable(subst types.Subst, member types.Type) *types.CallableType {
	member = types.Prune(member)
	if forall, ok := member.(*types.ForallType); ok {
		member = types.Prune(forall.Body)
	}

	var callable *types.CallableType
	switch m := member.(type) {
	case *types.FunctionType:
		callable = m.Callable
	case *types.OverloadType:
		if len(m.Signatures) == 0 {
			return nil
		}
		callable = m.Signatures[0].Callable
	default:
		return nil
	}

	bound, ok := types.Substitute(subst, callable).(*types.CallableType)
	if !ok {
		return nil
	}
	if len(bound.Params) == 0 {
		return bound
	}
	return &types.CallableType{Params: bound.Params[1:], Return: bound.Return, IsEllipsis: bound.IsEllipsis}
}

// argsMatchSignature reports whether args/kwargs could be passed to
// callable without producing a diagnostic, used by overload resolution
// to probe a signature without committing its errors to the collector.
func (c *Checker) argsMatchSignature(callable *types.CallableType, args []types.Type, kwargs map[string]types.Type) bool {
	probe := diag.NewCollector(diag.StyleDelayed, nil, nil)
	saved := c.Collector
	c.Collector = probe
	defer func() { c.Collector = saved }()
	c.checkArgs(callable, args, kwargs, ast.NoSpan)
	return len(probe.Finish()) == 0
}

func (c *Checker) checkArgs(callable *types.CallableType, args []types.Type, kwargs map[string]types.Type, span ast.Span) {
	if callable.IsEllipsis {
		return
	}
	positional := positionalParams(callable.Params)
	if len(args) > len(positional) && findVariadic(callable.Params) == nil {
		c.report(diag.BadArgumentCountError{SpanV: span, Expected: len(positional), Got: len(args)})
		return
	}
	for i, arg := range args {
		var p *types.Param
		if i < len(positional) {
			p = positional[i]
		} else {
			p = findVariadic(callable.Params)
		}
		if p == nil {
			continue
		}
		if !subtype.IsSubsetEq(arg, p.Type) {
			c.report(diag.BadArgumentTypeError{SpanV: span, ParamName: p.Name, Expected: p.Type, Got: arg})
		}
	}
	for name, arg := range kwargs {
		p := findParamByNameC(callable.Params, name)
		if p == nil {
			continue
		}
		if !subtype.IsSubsetEq(arg, p.Type) {
			c.report(diag.BadArgumentTypeError{SpanV: span, ParamName: name, Expected: p.Type, Got: arg})
		}
	}
}

func positionalParams(params []*types.Param) []*types.Param {
	var out []*types.Param
	for _, p := range params {
		if p.Kind == types.ParamPositionalOnly || p.Kind == types.ParamPositionalOrKeyword {
			out = append(out, p)
		}
	}
	return out
}

func findVariadic(params []*types.Param) *types.Param {
	for _, p := range params {
		if p.Kind == types.ParamVariadic {
			return p
		}
	}
	return nil
}

func findParamByNameC(params []*types.Param, name string) *types.Param {
	for _, p := range params {
		if p.Name == name {
			return p
		}
	}
	return nil
}
