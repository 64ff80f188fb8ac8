package checker

import (
	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/diag"
	"github.com/typewell-lang/typewell/internal/subtype"
	"github.com/typewell-lang/typewell/internal/types"
)

// CheckBlock checks each statement of body in turn, each one starting
// from the Context the previous one returned, so narrowing flows forward
// in source order: an `if` without an else whose body always returns or
// raises, for instance, leaves its test's negative narrowing in effect
// for the statements that follow it in the enclosing block (§4.G; see
// checkIf).
func (c *Checker) CheckBlock(ctx Context, body []ast.Stmt) Context {
	for _, s := range body {
		ctx = c.CheckStmt(ctx, s)
	}
	return ctx
}

// CheckStmt checks one statement and returns the (possibly narrowed)
// Context visible to whatever statement follows it in the same block.
func (c *Checker) CheckStmt(ctx Context, s ast.Stmt) Context {
	switch s := s.(type) {
	case *ast.ExprStmt:
		c.InferExpr(ctx, s.Value)
		return ctx

	case *ast.AssignStmt:
		value := c.InferExpr(ctx, s.Value)
		for _, target := range s.Targets {
			c.assignPat(ctx, target, value, s.Span())
		}
		return ctx

	case *ast.AnnAssignStmt:
		declared := c.InferTypeAnn(ctx, s.TypeAnn)
		ctx.Scope.Declare(s.Target.BindingID, declared)
		if s.Value != nil {
			value := c.InferExpr(ctx, s.Value)
			if !subtype.IsSubsetEq(value, declared) {
				c.report(diag.BadAssignmentError{SpanV: s.Span(), Target: declared, Value: value})
			}
		}
		return ctx

	case *ast.AugAssignStmt:
		c.InferExpr(ctx, s.Target)
		c.InferExpr(ctx, s.Value)
		return ctx

	case *ast.IfStmt:
		return c.checkIf(ctx, s)

	case *ast.WhileStmt:
		return c.checkWhile(ctx, s)

	case *ast.ForStmt:
		return c.checkFor(ctx, s)

	case *ast.WithStmt:
		return c.checkWith(ctx, s)

	case *ast.AssertStmt:
		c.InferExpr(ctx, s.Test)
		if s.Msg != nil {
			c.InferExpr(ctx, s.Msg)
		}
		c.Narrow(ctx, s.Test).applyTo(ctx.Scope)
		return ctx

	case *ast.ReturnStmt:
		var value types.Type = types.NewNoneType()
		if s.Value != nil {
			value = c.InferExpr(ctx, s.Value)
		}
		c.CheckReturn(ctx, value, s.Span())
		return ctx

	case *ast.RaiseStmt:
		if s.Exc != nil {
			c.InferExpr(ctx, s.Exc)
		}
		if s.Cause != nil {
			c.InferExpr(ctx, s.Cause)
		}
		return ctx

	case *ast.PassStmt:
		return ctx

	case *ast.MatchStmt:
		return c.checkMatch(ctx, s)

	case *ast.FuncDef:
		sig := c.BuildFunctionSignature(ctx, s, nil)
		ctx.Scope.Declare(s.BindingID, sig)
		c.CheckFuncBody(ctx, s, sig, nil)
		return ctx

	case *ast.ClassDef:
		cls := c.BuildClass(ctx, s)
		ctx.Scope.Declare(s.BindingID, types.NewClassDefType(cls))
		c.CheckClassBody(ctx, s, cls)
		return ctx

	default:
		return ctx
	}
}

func (c *Checker) assignPat(ctx Context, target ast.Pat, value types.Type, span ast.Span) {
	switch t := target.(type) {
	case *ast.IdentPat:
		if declared, ok := ctx.Scope.Lookup(t.BindingID); ok {
			if !subtype.IsSubsetEq(value, declared) {
				c.report(diag.BadAssignmentError{SpanV: span, Target: declared, Value: value})
			}
			ctx.Scope.Narrow(t.BindingID, value)
			return
		}
		ctx.Scope.Declare(t.BindingID, value)

	case *ast.TuplePat:
		members := types.UnionMembers(value)
		if mt, ok := types.Prune(value).(*types.TupleType); ok && mt.Shape == types.TupleConcrete {
			members = mt.Elems
		}
		if len(members) == len(t.Elems) {
			for i, sub := range t.Elems {
				c.assignPat(ctx, sub, members[i], span)
			}
			return
		}
		for _, sub := range t.Elems {
			c.assignPat(ctx, sub, value, span)
		}

	case *ast.StarPat, *ast.WildcardPat:
		// no binding to check/update
	}
}

func (c *Checker) checkIf(ctx Context, s *ast.IfStmt) Context {
	c.InferExpr(ctx, s.Test)

	thenScope := ctx.Scope.Clone()
	c.Narrow(ctx, s.Test).applyTo(thenScope)
	c.CheckBlock(ctx.WithScope(thenScope), s.Then)

	elseScope := ctx.Scope.Clone()
	c.narrowNegative(ctx, s.Test).applyTo(elseScope)
	if len(s.Else) > 0 {
		c.CheckBlock(ctx.WithScope(elseScope), s.Else)
	}

	if blockAlwaysExits(s.Then) && len(s.Else) == 0 {
		c.narrowNegative(ctx, s.Test).applyTo(ctx.Scope)
	} else if blockAlwaysExits(s.Else) && len(s.Then) > 0 {
		c.Narrow(ctx, s.Test).applyTo(ctx.Scope)
	}
	return ctx
}

// blockAlwaysExits reports whether body's last statement is a return or
// a raise — used
// only for the narrow-past-an-early-return convenience in checkIf,
// never for exhaustive reachability analysis (that is out of scope for
// this solver, §9 Non-goals).
func blockAlwaysExits(body []ast.Stmt) bool {
	if len(body) == 0 {
		return false
	}
	switch body[len(body)-1].(type) {
	case *ast.ReturnStmt, *ast.RaiseStmt:
		return true
	default:
		return false
	}
}

func (c *Checker) checkWhile(ctx Context, s *ast.WhileStmt) Context {
	c.InferExpr(ctx, s.Test)
	bodyScope := ctx.Scope.Clone()
	c.Narrow(ctx, s.Test).applyTo(bodyScope)
	// The body is checked twice: first on a throwaway copy of the
	// narrowed scope, then for real. Narrowings made during the first
	// pass are dropped with the copy (new declarations go to the shared
	// Declared map and persist), so the second pass starts from the same
	// narrowing as the first; no narrowing is carried from the end of one
	// iteration back to the top of the loop.
	c.CheckBlock(ctx.WithScope(bodyScope.Clone()), s.Body)
	c.CheckBlock(ctx.WithScope(bodyScope), s.Body)

	afterScope := ctx.Scope.Clone()
	c.narrowNegative(ctx, s.Test).applyTo(afterScope)
	return ctx.WithScope(afterScope)
}

func (c *Checker) checkFor(ctx Context, s *ast.ForStmt) Context {
	iterType := c.InferExpr(ctx, s.Iter)
	elemType := iterElementType(iterType)
	bodyScope := ctx.Scope.Child()
	bodyCtx := ctx.WithScope(bodyScope)
	c.bindPat(bodyCtx, s.Target, elemType)
	c.CheckBlock(bodyCtx, s.Body)
	return ctx
}

func (c *Checker) checkWith(ctx Context, s *ast.WithStmt) Context {
	scope := ctx.Scope.Child()
	inner := ctx.WithScope(scope)
	for _, item := range s.Items {
		t := c.InferExpr(inner, item.Context)
		if item.Target != nil {
			enterType := c.contextManagerEnterType(t)
			c.bindPat(inner, item.Target, enterType)
		}
	}
	c.CheckBlock(inner, s.Body)
	return ctx
}

// contextManagerEnterType looks up `__enter__` on t's class, matching
// the value `with expr as name` binds name to; anything without a
// resolvable `__enter__` binds dynamically (§4.C).
func (c *Checker) contextManagerEnterType(t types.Type) types.Type {
	ct, ok := types.Prune(t).(*types.ClassType)
	if !ok {
		return types.NewAnyType(types.GradualProvenance{})
	}
	field, ok := ct.Class.Lookup("__enter__")
	if !ok {
		return types.NewAnyType(types.GradualProvenance{})
	}
	fn, ok := types.Prune(field.Type).(*types.FunctionType)
	if !ok {
		return types.NewAnyType(types.GradualProvenance{})
	}
	return fn.Callable.Return
}

// checkMatch checks subject against every case's pattern, narrowing the
// subject's binding (when it is itself a bare name) within each arm and
// subtracting every preceding case's class pattern from what a trailing
// wildcard arm can still match (the rule spec §4.G calls out explicitly
// for exhaustiveness-adjacent narrowing).
func (c *Checker) checkMatch(ctx Context, s *ast.MatchStmt) Context {
	subjectType := c.InferExpr(ctx, s.Subject)
	subjectName, subjectIsName := s.Subject.(*ast.NameExpr)

	remaining := subjectType
	for _, arm := range s.Cases {
		caseScope := ctx.Scope.Clone()
		caseCtx := ctx.WithScope(caseScope)

		narrowed := c.bindMatchPattern(caseCtx, arm.Pattern, remaining)
		if subjectIsName {
			caseScope.Narrow(subjectName.BindingID, narrowed)
		}
		if arm.Guard != nil {
			c.InferExpr(caseCtx, arm.Guard)
		}
		c.CheckBlock(caseCtx, arm.Body)

		if consumed, ok := c.matchPatternClassType(caseCtx, arm.Pattern); ok {
			remaining = subtractAll(remaining, []types.Type{consumed})
		}
	}
	return ctx
}

// bindMatchPattern declares every name arm.Pattern binds and returns the
// type it narrows the matched value to within that arm's body.
func (c *Checker) bindMatchPattern(ctx Context, p ast.Pat, subject types.Type) types.Type {
	switch p := p.(type) {
	case *ast.IdentPat:
		ctx.Scope.Declare(p.BindingID, subject)
		return subject

	case *ast.ClassPat:
		classT := c.resolveMatchClassName(ctx, p.ClassName)
		for _, sub := range p.Positional {
			c.bindMatchPattern(ctx, sub, types.NewAnyType(types.GradualProvenance{}))
		}
		for _, sub := range p.Keyword {
			c.bindMatchPattern(ctx, sub, types.NewAnyType(types.GradualProvenance{}))
		}
		return classT

	case *ast.TuplePat:
		members := types.UnionMembers(subject)
		if len(members) == len(p.Elems) {
			for i, sub := range p.Elems {
				c.bindMatchPattern(ctx, sub, members[i])
			}
		} else {
			for _, sub := range p.Elems {
				c.bindMatchPattern(ctx, sub, subject)
			}
		}
		return subject

	case *ast.OrPat:
		alts := make([]types.Type, len(p.Alts))
		for i, alt := range p.Alts {
			alts[i] = c.bindMatchPattern(ctx, alt, subject)
		}
		return types.NewUnion(alts...)

	case *ast.ValuePat:
		return c.InferExpr(ctx, p.Value)

	case *ast.MappingPat:
		for _, entry := range p.Entries {
			c.bindMatchPattern(ctx, entry.Value, types.NewAnyType(types.GradualProvenance{}))
		}
		return subject

	case *ast.WildcardPat:
		return subject

	default:
		c.bindPat(ctx, p, subject)
		return subject
	}
}

// resolveMatchClassName looks up a ClassPat's bare class name through
// the host's binding graph rather than InferTypeAnn, since a pattern's
// class reference carries no BindingID of its own in this AST (unlike
// an annotation's NameTypeAnn) — so this solver conservatively types it
// as the class the host's ClassInfo returns for that qualified name,
// falling back to Any when the host doesn't recognize it yet.
func (c *Checker) resolveMatchClassName(ctx Context, name string) types.Type {
	if cls, ok := c.Host.ClassInfo(name); ok {
		return types.NewClassType(cls, nil)
	}
	return types.NewAnyType(types.GradualProvenance{})
}

// matchPatternClassType reports the class type a ClassPat arm matches,
// for subtracting from the next arm's remaining possibilities.
func (c *Checker) matchPatternClassType(ctx Context, p ast.Pat) (types.Type, bool) {
	cp, ok := p.(*ast.ClassPat)
	if !ok {
		return nil, false
	}
	t := c.resolveMatchClassName(ctx, cp.ClassName)
	if cls, ok := types.Prune(t).(*types.ClassType); ok {
		return cls, true
	}
	return nil, false
}
