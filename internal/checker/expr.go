package checker

import (
	"fmt"
	"math/big"

	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/diag"
	"github.com/typewell-lang/typewell/internal/subtype"
	"github.com/typewell-lang/typewell/internal/types"
)

// binOpDunder/binOpReflected name the dunder method an operator dispatches
// to on its left operand, and the reflected method it falls back to on its
// right operand when the left class has none (§4.C).
var binOpDunder = map[ast.BinaryOp]string{
	ast.BinAdd:      "__add__",
	ast.BinSub:      "__sub__",
	ast.BinMul:      "__mul__",
	ast.BinDiv:      "__truediv__",
	ast.BinFloorDiv: "__floordiv__",
	ast.BinMod:      "__mod__",
	ast.BinPow:      "__pow__",
	ast.BinMatMul:   "__matmul__",
	ast.BinLShift:   "__lshift__",
	ast.BinRShift:   "__rshift__",
	ast.BinBitAnd:   "__and__",
	ast.BinBitOr:    "__or__",
	ast.BinBitXor:   "__xor__",
}

var binOpReflected = map[ast.BinaryOp]string{
	ast.BinAdd:      "__radd__",
	ast.BinSub:      "__rsub__",
	ast.BinMul:      "__rmul__",
	ast.BinDiv:      "__rtruediv__",
	ast.BinFloorDiv: "__rfloordiv__",
	ast.BinMod:      "__rmod__",
	ast.BinPow:      "__rpow__",
	ast.BinMatMul:   "__rmatmul__",
	ast.BinLShift:   "__rlshift__",
	ast.BinRShift:   "__rrshift__",
	ast.BinBitAnd:   "__rand__",
	ast.BinBitOr:    "__ror__",
	ast.BinBitXor:   "__rxor__",
}

// InferExpr dispatches over every expression form the solver
// understands, delegating subtyping judgments to internal/subtype and
// never inspecting a Type's shape directly outside this package's own
// files (§4.C).
func (c *Checker) InferExpr(ctx Context, e ast.Expr) types.Type {
	switch e := e.(type) {
	case *ast.NameExpr:
		return c.inferName(ctx, e)

	case *ast.LitExpr:
		return c.inferLit(e)

	case *ast.FStringExpr:
		return c.inferFString(e, ctx)

	case *ast.BoolOpExpr:
		return c.inferBoolOp(ctx, e)

	case *ast.CompareExpr:
		for _, comp := range append([]ast.Expr{e.Left}, e.Comps...) {
			c.InferExpr(ctx, comp)
		}
		return types.NewClassType(c.Host.Stdlib().Bool, nil)

	case *ast.UnaryExpr:
		return c.inferUnary(ctx, e)

	case *ast.BinaryExpr:
		return c.inferBinary(ctx, e)

	case *ast.CallExpr:
		return c.inferCallExpr(ctx, e)

	case *ast.SubscriptExpr:
		return c.inferSubscript(ctx, e)

	case *ast.AttributeExpr:
		recv := c.InferExpr(ctx, e.Value)
		return c.resolveAttr(ctx, recv, e.Attr, e.Span())

	case *ast.ListExpr:
		return c.inferContainer(ctx, e.Elems, c.Host.Stdlib().List)

	case *ast.SetExpr:
		return c.inferContainer(ctx, e.Elems, c.Host.Stdlib().Set)

	case *ast.TupleExpr:
		elemTypes := make([]types.Type, len(e.Elems))
		for i, el := range e.Elems {
			elemTypes[i] = c.InferExpr(ctx, el)
		}
		return types.NewConcreteTuple(elemTypes)

	case *ast.DictExpr:
		return c.inferDict(ctx, e)

	case *ast.StarredExpr:
		return c.InferExpr(ctx, e.Value)

	case *ast.ComprehensionExpr:
		return c.inferComprehension(ctx, e)

	case *ast.LambdaExpr:
		return c.inferLambda(ctx, e)

	case *ast.ConditionalExpr:
		return c.inferConditional(ctx, e)

	case *ast.AwaitExpr:
		return c.InferExpr(ctx, e.Value)

	case *ast.YieldExpr:
		if e.Value != nil {
			return c.InferExpr(ctx, e.Value)
		}
		return types.NewNoneType()

	case *ast.YieldFromExpr:
		return c.InferExpr(ctx, e.Value)

	case *ast.NamedExpr:
		t := c.InferExpr(ctx, e.Value)
		ctx.Scope.Declare(e.BindingID, t)
		return t

	default:
		c.report(diag.InternalError{SpanV: e.Span(), Detail: "unhandled expression form"})
		return types.NewAnyType(types.ErrorProvenance{Reason: "internal-error"})
	}
}

func (c *Checker) inferName(ctx Context, e *ast.NameExpr) types.Type {
	if t, ok := ctx.Scope.Lookup(e.BindingID); ok {
		return t
	}
	if sym, ok := c.Host.ResolveName(e.BindingID); ok {
		return sym.Type
	}
	c.report(diag.UnknownNameError{SpanV: e.Span(), Name: e.Name})
	return types.NewAnyType(types.ErrorProvenance{Reason: "unknown-name"})
}

// inferBoolOp types `and`/`or`: each non-last operand contributes its
// truthy- (for `and`) or falsy- (for `or`) narrowed type, since
// evaluation only reaches the next operand when the previous one was
// truthy (and) or falsy (or); the final operand always contributes its
// full, unnarrowed type (§4.C).
func (c *Checker) inferBoolOp(ctx Context, e *ast.BoolOpExpr) types.Type {
	results := make([]types.Type, 0, len(e.Operands))
	scope := ctx.Scope
	for i, operand := range e.Operands {
		operandCtx := ctx.WithScope(scope)
		t := c.InferExpr(operandCtx, operand)
		last := i == len(e.Operands)-1
		if !last {
			if e.Op == ast.BoolAnd {
				t = narrowTruthy(t)
			}
			child := scope.Clone()
			if e.Op == ast.BoolAnd {
				c.Narrow(operandCtx, operand).applyTo(child)
			} else {
				c.narrowNegative(operandCtx, operand).applyTo(child)
			}
			scope = child
		}
		results = append(results, t)
	}
	return types.NewUnion(results...)
}

func (c *Checker) inferUnary(ctx Context, e *ast.UnaryExpr) types.Type {
	operand := c.InferExpr(ctx, e.Operand)
	if e.Op == ast.UnaryNot {
		if lit, ok := types.Prune(operand).(*types.LiteralType); ok && lit.Kind == types.LitBool {
			return types.NewBoolLiteral(!lit.Bool)
		}
		return types.NewClassType(c.Host.Stdlib().Bool, nil)
	}
	if lit, ok := types.Prune(operand).(*types.LiteralType); ok && lit.Kind == types.LitInt && e.Op == ast.UnaryNeg {
		return types.NewIntLiteral(new(big.Int).Neg(lit.Int))
	}
	return operand
}

func (c *Checker) inferBinary(ctx Context, e *ast.BinaryExpr) types.Type {
	left := c.InferExpr(ctx, e.Left)
	right := c.InferExpr(ctx, e.Right)

	if e.Op == ast.BinBitOr {
		if leftForm, ok := types.Prune(left).(*types.TypeFormType); ok {
			if rightForm, ok := types.Prune(right).(*types.TypeFormType); ok {
				return types.NewTypeFormType(types.NewUnion(leftForm.Inner, rightForm.Inner))
			}
		}
	}

	return c.dunderBinaryResult(ctx, left, right, e.Op, e.Span())
}

// dunderBinaryResult looks up the dunder method matching op on the left
// operand's class, falling back to the reflected method on the right
// operand's class when the left class has none (§4.C's operator dispatch
// rule), matching Python's own fallback order.
func (c *Checker) dunderBinaryResult(ctx Context, left, right types.Type, op ast.BinaryOp, span ast.Span) types.Type {
	left, right = types.Prune(left), types.Prune(right)
	if _, ok := left.(*types.AnyType); ok {
		return types.NewAnyType(types.GradualProvenance{})
	}
	if _, ok := right.(*types.AnyType); ok {
		return types.NewAnyType(types.GradualProvenance{})
	}

	std := c.Host.Stdlib()
	if name, ok := binOpDunder[op]; ok {
		if cls, ok := operandClass(left, std); ok {
			if field, ok := cls.Lookup(name); ok {
				method := types.Substitute(classArgsSubstFor(left), field.Type)
				return c.inferCall(ctx, method, []types.Type{right}, nil, span)
			}
		}
	}
	if name, ok := binOpReflected[op]; ok {
		if cls, ok := operandClass(right, std); ok {
			if field, ok := cls.Lookup(name); ok {
				method := types.Substitute(classArgsSubstFor(right), field.Type)
				return c.inferCall(ctx, method, []types.Type{left}, nil, span)
			}
		}
	}

	c.report(diag.UnsupportedError{SpanV: span, Detail: fmt.Sprintf("no operator method for %s and %s", left, right)})
	return types.NewAnyType(types.ErrorProvenance{Reason: "unsupported-operator"})
}

// operandClass extracts the nominal class a binary operator's operand
// dispatches dunder lookups against: a class instance directly, or a
// literal's general class (§4.C).
func operandClass(t types.Type, std *types.Stdlib) (*types.Class, bool) {
	switch v := t.(type) {
	case *types.ClassType:
		return v.Class, true
	case *types.LiteralType:
		return v.GeneralClass(std).Class, true
	}
	return nil, false
}

// classArgsSubstFor builds the type-argument substitution for t if it is
// a generic class instance, or the empty substitution otherwise.
func classArgsSubstFor(t types.Type) types.Subst {
	if ct, ok := t.(*types.ClassType); ok {
		return classArgsSubst(ct)
	}
	return types.Subst{}
}

func (c *Checker) inferCallExpr(ctx Context, e *ast.CallExpr) types.Type {
	if t, ok := c.interceptTypeVarCall(ctx, e); ok {
		return t
	}

	if fn, ok := e.Func.(*ast.NameExpr); ok {
		switch fn.Name {
		case "assert_type":
			if len(e.Args) == 2 {
				actual := c.InferExpr(ctx, e.Args[0])
				expected := c.inferTypeExpr(ctx, e.Args[1])
				if !(subtype.IsSubsetEq(actual, expected) && subtype.IsSubsetEq(expected, actual)) {
					c.report(diag.AssertTypeFailureError{SpanV: e.Span(), Expected: expected, Actual: actual})
				}
				return actual
			}
		case "reveal_type":
			if len(e.Args) == 1 {
				actual := c.InferExpr(ctx, e.Args[0])
				c.report(diag.RevealTypeInfoError{SpanV: e.Span(), Type: actual})
				return actual
			}
		}
	}

	callee := c.InferExpr(ctx, e.Func)
	args := make([]types.Type, 0, len(e.Args))
	for _, a := range e.Args {
		args = append(args, c.InferExpr(ctx, a))
	}
	kwargs := map[string]types.Type{}
	for _, kw := range e.Keywords {
		if kw.Unpack {
			continue
		}
		kwargs[kw.Name] = c.InferExpr(ctx, kw.Value)
	}
	return c.inferCall(ctx, callee, args, kwargs, e.Span())
}

// inferTypeExpr evaluates an expression used in annotation position at
// runtime (assert_type's second argument, isinstance's class argument)
// by reusing the ordinary expression solver: a bare class reference
// already has type ClassDefType, and a subscripted generic alias
// produces a TypeFormType (§4.C).
func (c *Checker) inferTypeExpr(ctx Context, e ast.Expr) types.Type {
	t := c.InferExpr(ctx, e)
	if form, ok := types.Prune(t).(*types.TypeFormType); ok {
		return form.Inner
	}
	if cd, ok := types.Prune(t).(*types.ClassDefType); ok {
		return types.NewClassType(cd.Class, nil)
	}
	return t
}

func (c *Checker) inferContainer(ctx Context, elems []ast.Expr, cls *types.Class) types.Type {
	elemTypes := make([]types.Type, 0, len(elems))
	for _, el := range elems {
		elemTypes = append(elemTypes, c.InferExpr(ctx, el))
	}
	elemUnion := types.NewUnion(elemTypes...)
	elemUnion = types.PromoteLiterals(elemUnion, c.Host.Stdlib())
	return types.NewClassType(cls, []types.Type{elemUnion})
}

func (c *Checker) inferDict(ctx Context, e *ast.DictExpr) types.Type {
	std := c.Host.Stdlib()
	keyTypes := make([]types.Type, 0, len(e.Entries))
	valueTypes := make([]types.Type, 0, len(e.Entries))
	for _, entry := range e.Entries {
		if entry.Key != nil {
			keyTypes = append(keyTypes, c.InferExpr(ctx, entry.Key))
		}
		valueTypes = append(valueTypes, c.InferExpr(ctx, entry.Value))
	}
	keyUnion := types.PromoteLiterals(types.NewUnion(keyTypes...), std)
	valueUnion := types.PromoteLiterals(types.NewUnion(valueTypes...), std)
	return types.NewClassType(std.Dict, []types.Type{keyUnion, valueUnion})
}

func (c *Checker) inferComprehension(ctx Context, e *ast.ComprehensionExpr) types.Type {
	scope := ctx.Scope.Child()
	inner := ctx.WithScope(scope)
	for _, gen := range e.Generators {
		iterType := c.InferExpr(inner, gen.Iter)
		elemType := iterElementType(iterType)
		c.bindPat(inner, gen.Target, elemType)
		for _, cond := range gen.Ifs {
			c.InferExpr(inner, cond)
		}
	}
	std := c.Host.Stdlib()
	switch e.Kind {
	case ast.CompDict:
		key := types.PromoteLiterals(c.InferExpr(inner, e.Element), std)
		value := types.PromoteLiterals(c.InferExpr(inner, e.DictValue), std)
		return types.NewClassType(std.Dict, []types.Type{key, value})
	case ast.CompSet:
		elem := types.PromoteLiterals(c.InferExpr(inner, e.Element), std)
		return types.NewClassType(std.Set, []types.Type{elem})
	default:
		elem := types.PromoteLiterals(c.InferExpr(inner, e.Element), std)
		return types.NewClassType(std.List, []types.Type{elem})
	}
}

// iterElementType extracts the element type a `for` target binds to
// when iterating t: a class instance with type arguments (list, set,
// dict, ...) yields its first type argument (so a dict iterates its
// keys), a concrete tuple yields the union of its members, an unbounded
// tuple yields its element type, and anything else is treated as
// dynamically typed.
func iterElementType(t types.Type) types.Type {
	t = types.Prune(t)
	switch t := t.(type) {
	case *types.ClassType:
		if len(t.TypeArgs) > 0 {
			return t.TypeArgs[0]
		}
		return types.NewAnyType(types.GradualProvenance{})
	case *types.TupleType:
		switch t.Shape {
		case types.TupleConcrete:
			return types.NewUnion(t.Elems...)
		case types.TupleUnbounded:
			return t.Elem
		}
	}
	return types.NewAnyType(types.GradualProvenance{})
}

func (c *Checker) inferLambda(ctx Context, e *ast.LambdaExpr) types.Type {
	scope := ctx.Scope.Child()
	inner := ctx.WithScope(scope)
	params := make([]*types.Param, len(e.Params))
	for i, p := range e.Params {
		pt := types.Type(types.NewAnyType(types.GradualProvenance{}))
		scope.Declare(i+1, pt)
		params[i] = types.NewParam(p.Name, types.ParamPositionalOrKeyword, pt, p.Default == nil)
	}
	ret := c.InferExpr(inner, e.Body)
	return types.NewCallableType(params, ret)
}

// inferConditional types `Then if Test else Else`. When Test's value is
// known at check time (a literal, None, or Never), only the branch that
// would actually run contributes to the result, matching how a
// `TYPE_CHECKING`-style constant guard is expected to eliminate the
// unreachable branch's errors (§4.C).
func (c *Checker) inferConditional(ctx Context, e *ast.ConditionalExpr) types.Type {
	testType := c.InferExpr(ctx, e.Test)

	if truthy, known := definiteTruthiness(testType); known {
		if truthy {
			thenScope := ctx.Scope.Clone()
			c.Narrow(ctx, e.Test).applyTo(thenScope)
			return c.InferExpr(ctx.WithScope(thenScope), e.Then)
		}
		elseScope := ctx.Scope.Clone()
		c.narrowNegative(ctx, e.Test).applyTo(elseScope)
		return c.InferExpr(ctx.WithScope(elseScope), e.Else)
	}

	thenScope := ctx.Scope.Clone()
	c.Narrow(ctx, e.Test).applyTo(thenScope)
	thenType := c.InferExpr(ctx.WithScope(thenScope), e.Then)

	elseScope := ctx.Scope.Clone()
	c.narrowNegative(ctx, e.Test).applyTo(elseScope)
	elseType := c.InferExpr(ctx.WithScope(elseScope), e.Else)

	return types.NewUnion(thenType, elseType)
}

// definiteTruthiness reports t's compile-time-known truth value, if any:
// bool/int/str/bytes literals and None/Never are decidable, anything
// else depends on a runtime value.
func definiteTruthiness(t types.Type) (value bool, known bool) {
	switch v := types.Prune(t).(type) {
	case *types.LiteralType:
		switch v.Kind {
		case types.LitBool:
			return v.Bool, true
		case types.LitInt:
			return v.Int.Sign() != 0, true
		case types.LitStr:
			return v.Str != "", true
		case types.LitBytes:
			return v.Bytes != "", true
		}
	case *types.NoneType:
		return false, true
	case *types.NeverType:
		return false, true
	}
	return false, false
}

// bindPat declares every name a pattern binds with the given type,
// covering the comprehension/for-loop destructuring forms (§4.G); full
// pattern-driven narrowing for `match` lives in stmt.go.
func (c *Checker) bindPat(ctx Context, p ast.Pat, t types.Type) {
	switch p := p.(type) {
	case *ast.IdentPat:
		ctx.Scope.Declare(p.BindingID, t)
	case *ast.TuplePat:
		members := types.UnionMembers(t)
		elemT := t
		if len(members) == len(p.Elems) {
			for i, sub := range p.Elems {
				c.bindPat(ctx, sub, members[i])
			}
			return
		}
		for _, sub := range p.Elems {
			c.bindPat(ctx, sub, elemT)
		}
	case *ast.StarPat:
		// no declared name to bind to beyond presence
	case *ast.WildcardPat:
		// binds nothing
	}
}
