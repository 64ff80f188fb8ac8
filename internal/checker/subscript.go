package checker

import (
	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/diag"
	"github.com/typewell-lang/typewell/internal/types"
)

// inferSubscript covers every use of `[]` the solver sees in expression
// position: generic specialization of a class object or Forall (`list[int]`,
// `generic_fn[int]`), constant tuple indexing, TypedDict key lookup by
// string literal, ordinary container indexing, and slicing (§4.C).
func (c *Checker) inferSubscript(ctx Context, e *ast.SubscriptExpr) types.Type {
	value := c.InferExpr(ctx, e.Value)
	value = types.Prune(value)

	if _, ok := value.(*types.AnyType); ok {
		return types.NewAnyType(types.GradualProvenance{})
	}

	if e.Slice != nil {
		return c.inferSlice(ctx, value, e.Slice)
	}

	indexArgs := subscriptArgs(e.Index)

	switch v := value.(type) {
	case *types.ClassDefType:
		return c.specializeClassDef(ctx, v, indexArgs)

	case *types.ForallType:
		return c.instantiateForall(ctx, v, indexArgs)

	case *types.TupleType:
		if len(indexArgs) == 1 {
			if idx, ok := constIntIndex(ctx, c, indexArgs[0]); ok {
				return c.tupleConstIndex(v, idx, e.Span())
			}
		}
		return tupleElementUnion(v)

	case *types.TypedDictType:
		if len(indexArgs) == 1 {
			if key, ok := constStrKey(indexArgs[0]); ok {
				field, found := v.Field(key)
				if !found {
					c.report(diag.MissingTypedDictKeyError{SpanV: e.Span(), Key: key})
					return types.NewAnyType(types.ErrorProvenance{Reason: "missing-typeddict-key"})
				}
				return field.Type
			}
		}
		return types.NewAnyType(types.GradualProvenance{})

	case *types.ClassType:
		return c.classInstanceSubscript(ctx, v, indexArgs)

	case *types.UnionType:
		results := make([]types.Type, len(v.Members))
		for i, m := range v.Members {
			results[i] = c.subscriptOn(ctx, m, e)
		}
		return types.NewUnion(results...)

	default:
		c.report(diag.NotIterableError{SpanV: e.Span(), Type: value})
		return types.NewAnyType(types.ErrorProvenance{Reason: "not-subscriptable"})
	}
}

// subscriptOn re-dispatches a single union member through inferSubscript's
// value-already-known cases, used when distributing subscripting over a
// union receiver.
func (c *Checker) subscriptOn(ctx Context, value types.Type, e *ast.SubscriptExpr) types.Type {
	switch v := types.Prune(value).(type) {
	case *types.TupleType:
		if idxArgs := subscriptArgs(e.Index); len(idxArgs) == 1 {
			if idx, ok := constIntIndex(ctx, c, idxArgs[0]); ok {
				return c.tupleConstIndex(v, idx, e.Span())
			}
		}
		return tupleElementUnion(v)
	case *types.ClassType:
		return c.classInstanceSubscript(ctx, v, subscriptArgs(e.Index))
	case *types.TypedDictType:
		if idxArgs := subscriptArgs(e.Index); len(idxArgs) == 1 {
			if key, ok := constStrKey(idxArgs[0]); ok {
				if field, ok := v.Field(key); ok {
					return field.Type
				}
			}
		}
		return types.NewAnyType(types.GradualProvenance{})
	default:
		return types.NewAnyType(types.GradualProvenance{})
	}
}

func (c *Checker) inferSlice(ctx Context, value types.Type, slice *ast.SliceSpec) types.Type {
	for _, part := range []ast.Expr{slice.Lower, slice.Upper, slice.Step} {
		if part != nil {
			c.InferExpr(ctx, part)
		}
	}
	switch v := value.(type) {
	case *types.TupleType:
		// A slice of a tuple is no longer a fixed-length tuple in
		// general; widen to the unbounded form over its members.
		return types.NewUnboundedTuple(tupleElementUnion(v))
	default:
		return value
	}
}

// specializeClassDef evaluates `Cls[arg, ...]` in expression position
// (e.g. the right side of a type alias), producing `type[Cls[arg, ...]]`:
// a TypeFormType wrapping the parameterized ClassType. isinstance's
// second argument is not this path — that is a bare name or tuple of
// names.
func (c *Checker) specializeClassDef(ctx Context, v *types.ClassDefType, argExprs []ast.Expr) types.Type {
	args := make([]types.Type, len(argExprs))
	for i, a := range argExprs {
		args[i] = c.inferTypeExpr(ctx, a)
	}
	args = c.arityCheckTypeArgs(v.Class, args, argsSpan(argExprs))
	return types.NewTypeFormType(types.NewClassType(v.Class, args))
}

// arityCheckTypeArgs checks a class specialization's argument count
// against cls's declared type parameters (§4.A): too many args are
// reported and truncated; too few are padded from each missing
// parameter's Default when one exists, else padded with an error-Any and
// reported once.
func (c *Checker) arityCheckTypeArgs(cls *types.Class, args []types.Type, span ast.Span) []types.Type {
	n := len(cls.TypeParams)
	if n == 0 {
		return args
	}
	if len(args) > n {
		c.report(diag.TypeArgumentMismatchError{SpanV: span, Class: cls.QualName, Expected: n, Got: len(args)})
		return args[:n]
	}
	if len(args) == n {
		return args
	}

	out := append([]types.Type{}, args...)
	missingRequired := false
	for i := len(args); i < n; i++ {
		if def := cls.TypeParams[i].Default; def != nil {
			out = append(out, def)
			continue
		}
		missingRequired = true
		out = append(out, types.NewAnyType(types.ErrorProvenance{Reason: "missing-type-argument"}))
	}
	if missingRequired {
		c.report(diag.TypeArgumentMismatchError{SpanV: span, Class: cls.QualName, Expected: n, Got: len(args)})
	}
	return out
}

func argsSpan(exprs []ast.Expr) ast.Span {
	if len(exprs) == 0 {
		return ast.NoSpan
	}
	return exprs[0].Span()
}

func (c *Checker) instantiateForall(ctx Context, v *types.ForallType, argExprs []ast.Expr) types.Type {
	subst := types.Subst{}
	for i, p := range v.Params {
		if i < len(argExprs) {
			subst[p.Id] = c.inferTypeExpr(ctx, argExprs[i])
		}
	}
	return types.Substitute(subst, v.Body)
}

func (c *Checker) classInstanceSubscript(ctx Context, v *types.ClassType, argExprs []ast.Expr) types.Type {
	args := make([]types.Type, len(argExprs))
	for i, a := range argExprs {
		args[i] = c.InferExpr(ctx, a)
	}
	dunder, ok := v.Class.Lookup("__getitem__")
	if !ok {
		if len(v.TypeArgs) > 0 {
			return v.TypeArgs[len(v.TypeArgs)-1]
		}
		return types.NewAnyType(types.GradualProvenance{})
	}
	bound := types.Substitute(classArgsSubst(v), dunder.Type)
	return c.inferCall(ctx, bound, args, nil, ast.NoSpan)
}

func (c *Checker) tupleConstIndex(t *types.TupleType, idx int, span ast.Span) types.Type {
	switch t.Shape {
	case types.TupleConcrete:
		n := len(t.Elems)
		i := idx
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			c.report(diag.IndexOutOfRangeError{SpanV: span, Length: n, Index: idx})
			return types.NewAnyType(types.ErrorProvenance{Reason: "tuple-index-out-of-range"})
		}
		return t.Elems[i]
	case types.TupleUnbounded:
		return t.Elem
	default:
		return tupleElementUnion(t)
	}
}

func tupleElementUnion(t *types.TupleType) types.Type {
	switch t.Shape {
	case types.TupleConcrete:
		return types.NewUnion(t.Elems...)
	case types.TupleUnbounded:
		return t.Elem
	case types.TupleUnpacked:
		members := append(append(append([]types.Type{}, t.Prefix...), t.Middle), t.Suffix...)
		return types.NewUnion(members...)
	default:
		return types.NewAnyType(types.GradualProvenance{})
	}
}

// subscriptArgs normalizes a subscript's Index into a flat argument list:
// `x[a, b]` parses as a single TupleExpr index, `x[a]` as a bare index.
func subscriptArgs(index ast.Expr) []ast.Expr {
	if index == nil {
		return nil
	}
	if tup, ok := index.(*ast.TupleExpr); ok {
		return tup.Elems
	}
	return []ast.Expr{index}
}

func constIntIndex(ctx Context, c *Checker, e ast.Expr) (int, bool) {
	t := types.Prune(c.InferExpr(ctx, e))
	lit, ok := t.(*types.LiteralType)
	if !ok || lit.Kind != types.LitInt {
		return 0, false
	}
	if !lit.Int.IsInt64() {
		return 0, false
	}
	return int(lit.Int.Int64()), true
}

func constStrKey(e ast.Expr) (string, bool) {
	lit, ok := e.(*ast.LitExpr)
	if !ok || lit.Kind != ast.LitStr {
		return "", false
	}
	return lit.Str, true
}
