package checker

import (
	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/subtype"
	"github.com/typewell-lang/typewell/internal/types"
)

// narrowing is the refinement a test produces for the positive branch;
// applyTo installs each entry as an overlay on top of whatever that
// binding's type already is in scope.
type narrowing map[int]types.Type

func (n narrowing) applyTo(scope *Scope) {
	for id, t := range n {
		scope.Narrow(id, t)
	}
}

// Narrow computes the refinement test produces for its positive branch
// (an `if`/`while`'s Then, an `assert`'s continuation) and, separately,
// for its negative branch (the `if`'s Else) — see narrowNegative.
// Covers isinstance/issubclass, identity/equality against None or a
// literal, truthiness, and boolean combination (§4.G).
func (c *Checker) Narrow(ctx Context, test ast.Expr) narrowing {
	switch e := test.(type) {
	case *ast.CallExpr:
		return c.narrowCall(ctx, e)

	case *ast.CompareExpr:
		return c.narrowCompare(ctx, e)

	case *ast.UnaryExpr:
		if e.Op == ast.UnaryNot {
			return c.narrowNegative(ctx, e.Operand)
		}

	case *ast.BoolOpExpr:
		if e.Op == ast.BoolAnd {
			return c.narrowAnd(ctx, e.Operands)
		}
		if e.Op == ast.BoolOr {
			return c.narrowOr(ctx, e.Operands)
		}

	case *ast.NamedExpr:
		n := c.Narrow(ctx, e.Value)
		n[e.BindingID] = c.InferExpr(ctx, e.Value)
		return n

	case *ast.NameExpr:
		declared, _ := ctx.Scope.Lookup(e.BindingID)
		narrowed := narrowTruthy(declared)
		return narrowing{e.BindingID: narrowed}
	}
	return narrowing{}
}

// narrowNegative computes the refinement for test's negative branch
// (used for `if`'s Else and for `not test`'s positive branch).
func (c *Checker) narrowNegative(ctx Context, test ast.Expr) narrowing {
	switch e := test.(type) {
	case *ast.CallExpr:
		if name, args, ok := isinstanceOrIssubclassCall(e); ok {
			targets := c.classArgTargets(ctx, args[1], name == "issubclass")
			recvName, ok := args[0].(*ast.NameExpr)
			if !ok {
				return narrowing{}
			}
			declared, _ := ctx.Scope.Lookup(recvName.BindingID)
			return narrowing{recvName.BindingID: subtractAll(declared, targets)}
		}
		// A TypeGuard only claims something about the positive branch;
		// TypeIs (§4.G) additionally lets the negative branch subtract
		// its target.
		if len(e.Args) > 0 {
			if recv, ok := e.Args[0].(*ast.NameExpr); ok {
				callee := c.InferExpr(ctx, e.Func)
				if isTypeIsGuard(callee) {
					if target := guardReturnType(callee); target != nil {
						declared, _ := ctx.Scope.Lookup(recv.BindingID)
						return narrowing{recv.BindingID: subtractAll(declared, []types.Type{target})}
					}
				}
			}
		}
		return narrowing{}

	case *ast.UnaryExpr:
		if e.Op == ast.UnaryNot {
			return c.Narrow(ctx, e.Operand)
		}

	case *ast.CompareExpr:
		return c.narrowCompare(ctx, negateCompare(e))

	case *ast.BoolOpExpr:
		// De Morgan: not(A and B) == (not A) or (not B), and vice versa.
		negated := make([]ast.Expr, len(e.Operands))
		for i, o := range e.Operands {
			negated[i] = ast.NewUnaryExpr(ast.UnaryNot, o, o.Span())
		}
		op := ast.BoolOr
		if e.Op == ast.BoolOr {
			op = ast.BoolAnd
		}
		return c.Narrow(ctx, ast.NewBoolOpExpr(op, negated, e.Span()))

	case *ast.NameExpr:
		declared, _ := ctx.Scope.Lookup(e.BindingID)
		return narrowing{e.BindingID: narrowFalsy(declared)}
	}
	return narrowing{}
}

func (c *Checker) narrowCall(ctx Context, e *ast.CallExpr) narrowing {
	if name, args, ok := isinstanceOrIssubclassCall(e); ok {
		recvName, ok := args[0].(*ast.NameExpr)
		if !ok {
			return narrowing{}
		}
		targets := c.classArgTargets(ctx, args[1], name == "issubclass")
		return narrowing{recvName.BindingID: types.NewUnion(targets...)}
	}
	if target, recv, ok := c.guardCallTarget(ctx, e); ok {
		return narrowing{recv.BindingID: target}
	}
	if n, ok := c.testFrameworkNarrow(ctx, e); ok {
		return n
	}
	return narrowing{}
}

// guardCallTarget recognizes a call to a user-defined function whose
// return annotation is `TypeGuard[T]` or `TypeIs[T]` (§4.G) and reports
// the refinement its first argument (when a bare name) should receive on
// the positive branch.
func (c *Checker) guardCallTarget(ctx Context, e *ast.CallExpr) (types.Type, *ast.NameExpr, bool) {
	if len(e.Args) == 0 {
		return nil, nil, false
	}
	recv, ok := e.Args[0].(*ast.NameExpr)
	if !ok {
		return nil, nil, false
	}
	callee := c.InferExpr(ctx, e.Func)
	target := guardReturnType(callee)
	if target == nil {
		return nil, nil, false
	}
	return target, recv, true
}

// guardReturnType extracts the Target of a TypeGuard/TypeIs return type
// from a function, overload, or forall-wrapped function value.
func guardReturnType(t types.Type) types.Type {
	t = types.Prune(t)
	switch f := t.(type) {
	case *types.ForallType:
		return guardReturnType(f.Body)
	case *types.FunctionType:
		return guardTarget(f.Callable.Return)
	case *types.OverloadType:
		for _, sig := range f.Signatures {
			if target := guardTarget(sig.Callable.Return); target != nil {
				return target
			}
		}
	}
	return nil
}

func guardTarget(ret types.Type) types.Type {
	switch r := types.Prune(ret).(type) {
	case *types.TypeGuardType:
		return r.Target
	case *types.TypeIsType:
		return r.Target
	}
	return nil
}

// isTypeIsGuard reports whether callee's return type is specifically
// TypeIs[T] rather than TypeGuard[T] — only TypeIs narrows the negative
// branch, since TypeGuard makes no claim about non-matching values.
func isTypeIsGuard(t types.Type) bool {
	t = types.Prune(t)
	switch f := t.(type) {
	case *types.ForallType:
		return isTypeIsGuard(f.Body)
	case *types.FunctionType:
		_, ok := types.Prune(f.Callable.Return).(*types.TypeIsType)
		return ok
	case *types.OverloadType:
		for _, sig := range f.Signatures {
			if _, ok := types.Prune(sig.Callable.Return).(*types.TypeIsType); ok {
				return true
			}
		}
	}
	return false
}

// testFrameworkNarrow recognizes the common unittest/pytest-style
// assertion helpers (`self.assertTrue(x)`, `self.assertIsNone(x)`, ...)
// called as a method, delegating to the same refinement an `if`/`assert`
// on the first argument would produce.
func (c *Checker) testFrameworkNarrow(ctx Context, e *ast.CallExpr) (narrowing, bool) {
	attr, ok := e.Func.(*ast.AttributeExpr)
	if !ok || len(e.Args) == 0 {
		return nil, false
	}
	switch attr.Attr {
	case "assertTrue":
		return c.Narrow(ctx, e.Args[0]), true
	case "assertFalse":
		return c.narrowNegative(ctx, e.Args[0]), true
	case "assertIsNone":
		recvName, ok := e.Args[0].(*ast.NameExpr)
		if !ok {
			return narrowing{}, true
		}
		return narrowing{recvName.BindingID: types.NewNoneType()}, true
	case "assertIsNotNone":
		recvName, ok := e.Args[0].(*ast.NameExpr)
		if !ok {
			return narrowing{}, true
		}
		declared, _ := ctx.Scope.Lookup(recvName.BindingID)
		return narrowing{recvName.BindingID: subtractAll(declared, []types.Type{types.NewNoneType()})}, true
	case "assertIsInstance":
		if len(e.Args) != 2 {
			return narrowing{}, true
		}
		recvName, ok := e.Args[0].(*ast.NameExpr)
		if !ok {
			return narrowing{}, true
		}
		targets := c.classArgTargets(ctx, e.Args[1], false)
		return narrowing{recvName.BindingID: types.NewUnion(targets...)}, true
	}
	return nil, false
}

func isinstanceOrIssubclassCall(e *ast.CallExpr) (string, []ast.Expr, bool) {
	name, ok := e.Func.(*ast.NameExpr)
	if !ok || len(e.Args) != 2 {
		return "", nil, false
	}
	if name.Name != "isinstance" && name.Name != "issubclass" {
		return "", nil, false
	}
	return name.Name, e.Args, true
}

// classArgTargets evaluates isinstance/issubclass's second argument,
// which is either a single class object or a tuple literal of them, and
// returns the corresponding types to narrow toward: an instance type for
// isinstance, or `type[T]` for issubclass, since issubclass's receiver is
// itself a class object (§4.G).
func (c *Checker) classArgTargets(ctx Context, arg ast.Expr, asTypeForm bool) []types.Type {
	var classExprs []ast.Expr
	if tup, ok := arg.(*ast.TupleExpr); ok {
		classExprs = tup.Elems
	} else {
		classExprs = []ast.Expr{arg}
	}
	targets := make([]types.Type, 0, len(classExprs))
	for _, ce := range classExprs {
		t := c.InferExpr(ctx, ce)
		if cd, ok := types.Prune(t).(*types.ClassDefType); ok {
			inst := types.Type(types.NewClassType(cd.Class, nil))
			if asTypeForm {
				targets = append(targets, types.NewTypeFormType(inst))
			} else {
				targets = append(targets, inst)
			}
		}
	}
	return targets
}

func (c *Checker) narrowCompare(ctx Context, e *ast.CompareExpr) narrowing {
	if len(e.Ops) != 1 {
		return narrowing{}
	}
	left, ok := e.Left.(*ast.NameExpr)
	if !ok {
		return narrowing{}
	}
	declared, _ := ctx.Scope.Lookup(left.BindingID)

	target, ok := c.narrowCompareTarget(ctx, e.Comps[0])
	if !ok {
		return narrowing{}
	}
	switch e.Ops[0] {
	case ast.CmpIs, ast.CmpEq:
		return narrowing{left.BindingID: target}
	case ast.CmpIsNot, ast.CmpNotEq:
		return narrowing{left.BindingID: subtractAll(declared, []types.Type{target})}
	}
	return narrowing{}
}

// narrowCompareTarget evaluates a comparison's constant-ish right-hand
// side into the type a matching left-hand binding should narrow to:
// None, a bool/int/str/bytes literal, an enum member, or a class object
// identity-compared with `is`/`==` (§4.G).
func (c *Checker) narrowCompareTarget(ctx Context, rhs ast.Expr) (types.Type, bool) {
	if isNoneLit(rhs) {
		return types.NewNoneType(), true
	}
	if lit, ok := rhs.(*ast.LitExpr); ok {
		switch lit.Kind {
		case ast.LitBool, ast.LitInt, ast.LitStr, ast.LitBytes:
			return c.inferLit(lit), true
		}
	}
	t := types.Prune(c.InferExpr(ctx, rhs))
	switch r := t.(type) {
	case *types.LiteralType:
		if r.Kind == types.LitEnumMember {
			return r, true
		}
	case *types.ClassDefType:
		return r, true
	}
	return nil, false
}

func negateCompare(e *ast.CompareExpr) *ast.CompareExpr {
	if len(e.Ops) != 1 {
		return e
	}
	negated := map[ast.CompareOp]ast.CompareOp{
		ast.CmpEq: ast.CmpNotEq, ast.CmpNotEq: ast.CmpEq,
		ast.CmpIs: ast.CmpIsNot, ast.CmpIsNot: ast.CmpIs,
	}
	op, ok := negated[e.Ops[0]]
	if !ok {
		return e
	}
	return ast.NewCompareExpr(e.Left, []ast.CompareOp{op}, e.Comps, e.Span())
}

func isNoneLit(e ast.Expr) bool {
	lit, ok := e.(*ast.LitExpr)
	return ok && lit.Kind == ast.LitNone
}

func (c *Checker) narrowAnd(ctx Context, operands []ast.Expr) narrowing {
	result := narrowing{}
	scope := ctx.Scope.Clone()
	for _, o := range operands {
		n := c.Narrow(ctx.WithScope(scope), o)
		n.applyTo(scope)
		for id, t := range n {
			result[id] = t
		}
	}
	return result
}

// narrowOr unions each operand's refinement for bindings every operand
// narrows; a binding only one operand touches contributes no refinement
// to the whole expression (§4.G).
func (c *Checker) narrowOr(ctx Context, operands []ast.Expr) narrowing {
	perOperand := make([]narrowing, len(operands))
	for i, o := range operands {
		perOperand[i] = c.Narrow(ctx, o)
	}
	result := narrowing{}
	for id, t := range perOperand[0] {
		all := []types.Type{t}
		inEvery := true
		for _, n := range perOperand[1:] {
			other, ok := n[id]
			if !ok {
				inEvery = false
				break
			}
			all = append(all, other)
		}
		if inEvery {
			result[id] = types.NewUnion(all...)
		}
	}
	return result
}

func narrowTruthy(t types.Type) types.Type {
	if t == nil {
		return nil
	}
	return subtractAll(t, []types.Type{types.NewNoneType(), types.NewBoolLiteral(false)})
}

func narrowFalsy(t types.Type) types.Type {
	return t
}

// subtractAll removes from t's union membership every member that is a
// subset of one of targets, the same operation a WildcardPat uses to
// subtract earlier `match` cases (§4.G).
func subtractAll(t types.Type, targets []types.Type) types.Type {
	if t == nil {
		return nil
	}
	members := types.UnionMembers(t)
	kept := make([]types.Type, 0, len(members))
	for _, m := range members {
		remove := false
		for _, target := range targets {
			if subtype.IsSubsetEq(m, target) {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, m)
		}
	}
	return types.NewUnion(kept...)
}
