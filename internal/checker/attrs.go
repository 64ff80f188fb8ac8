package checker

import (
	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/diag"
	"github.com/typewell-lang/typewell/internal/types"
)

// resolveAttr looks up attr on recv's type, walking MRO for a class
// instance and binding a method found that way to recv (producing a
// BoundMethodType, §3/§4.E). TypedDict attribute access instead looks
// up a field by name among its declared keys.
func (c *Checker) resolveAttr(ctx Context, recv types.Type, attr string, span ast.Span) types.Type {
	recv = types.Prune(recv)

	if _, ok := recv.(*types.AnyType); ok {
		return types.NewAnyType(types.GradualProvenance{})
	}

	switch r := recv.(type) {
	case *types.ClassType:
		return c.resolveInstanceAttr(ctx, r, attr, span)

	case *types.ClassDefType:
		return c.resolveClassDefAttr(ctx, r, attr, span)

	case *types.TypedDictType:
		field, ok := r.Field(attr)
		if !ok {
			c.report(diag.MissingAttributeError{SpanV: span, Type: recv, Attribute: attr})
			return types.NewAnyType(types.ErrorProvenance{Reason: "missing-attribute"})
		}
		return field.Type

	case *types.UnionType:
		results := make([]types.Type, len(r.Members))
		for i, m := range r.Members {
			results[i] = c.resolveAttr(ctx, m, attr, span)
		}
		return types.NewUnion(results...)

	case *types.ModuleType:
		if r.Members != nil {
			if t, ok := r.Members[attr]; ok {
				return t
			}
		}
		c.report(diag.MissingAttributeError{SpanV: span, Type: recv, Attribute: attr})
		return types.NewAnyType(types.ErrorProvenance{Reason: "missing-attribute"})

	case *types.LiteralType:
		if r.Kind == types.LitEnumMember && attr == "_name_" {
			return types.NewStrLiteral(r.EnumMember)
		}
		c.report(diag.MissingAttributeError{SpanV: span, Type: recv, Attribute: attr})
		return types.NewAnyType(types.ErrorProvenance{Reason: "missing-attribute"})

	default:
		c.report(diag.MissingAttributeError{SpanV: span, Type: recv, Attribute: attr})
		return types.NewAnyType(types.ErrorProvenance{Reason: "missing-attribute"})
	}
}

// resolveInstanceAttr looks attr up via r's MRO and dispatches on the
// member's kind (§3/§4.E): a descriptor's __get__ runs, a staticmethod
// is returned unbound, a classmethod binds to r's class object rather
// than the instance, a property's getter is invoked, and everything else
// (an ordinary method) binds to the instance.
func (c *Checker) resolveInstanceAttr(ctx Context, r *types.ClassType, attr string, span ast.Span) types.Type {
	field, ok := r.Class.Lookup(attr)
	if !ok {
		c.report(diag.MissingAttributeError{SpanV: span, Type: types.Type(r), Attribute: attr})
		return types.NewAnyType(types.ErrorProvenance{Reason: "missing-attribute"})
	}
	subst := classArgsSubst(r)
	bound := types.Substitute(subst, field.Type)

	if descGet, ok := descriptorGet(bound); ok {
		return c.inferCall(ctx, descGet, []types.Type{r, types.NewTypeFormType(r)}, nil, span)
	}

	switch functionKindOf(bound) {
	case types.FnStaticMethod:
		return bound
	case types.FnClassMethod:
		return types.NewBoundMethodType(types.NewClassDefType(r.Class), bound)
	case types.FnProperty:
		return c.inferCall(ctx, bound, nil, nil, span)
	}

	if isCallableLike(bound) {
		return types.NewBoundMethodType(r, bound)
	}
	return bound
}

// resolveClassDefAttr looks attr up on the class object itself: a
// staticmethod/classmethod/property/ordinary method is accessible
// straight off the class (unbound, except a classmethod which binds to
// the class itself), while a plain data field is only reachable this way
// when it is an explicit ClassVar (§4.A) — an instance-only field
// reached through the class object is an error, and a ClassVar whose
// type still mentions the class's own type parameters can't be given a
// meaningful type without an instance to bind them from.
func (c *Checker) resolveClassDefAttr(ctx Context, r *types.ClassDefType, attr string, span ast.Span) types.Type {
	field, ok := r.Class.Lookup(attr)
	if !ok {
		c.report(diag.MissingAttributeError{SpanV: span, Type: types.Type(r), Attribute: attr})
		return types.NewAnyType(types.ErrorProvenance{Reason: "missing-attribute"})
	}

	switch functionKindOf(field.Type) {
	case types.FnStaticMethod, types.FnProperty:
		return field.Type
	case types.FnClassMethod:
		return types.NewBoundMethodType(r, field.Type)
	case types.FnOrdinary:
		if isCallableLike(field.Type) {
			return field.Type
		}
	}

	if !field.Qual.ClassVar {
		c.report(diag.InstanceOnlyAttributeError{SpanV: span, Class: r.Class.QualName, Attribute: attr})
		return types.NewAnyType(types.ErrorProvenance{Reason: "instance-only-attribute"})
	}
	if dependsOnTypeParams(field.Type, r.Class) {
		c.report(diag.GenericClassAttributeError{SpanV: span, Class: r.Class.QualName, Attribute: attr})
		return types.NewAnyType(types.ErrorProvenance{Reason: "generic-class-attribute"})
	}
	return field.Type
}

// functionKindOf extracts a member's FunctionMetadata.Kind, looking
// through a Forall wrapper for a generic method; a non-function member
// reports FnOrdinary, same as an actual ordinary method — callers that
// need to tell those apart check isCallableLike/isFunctionLike first.
func functionKindOf(t types.Type) types.FunctionKind {
	t = types.Prune(t)
	if forall, ok := t.(*types.ForallType); ok {
		t = types.Prune(forall.Body)
	}
	switch f := t.(type) {
	case *types.FunctionType:
		return f.Meta.Kind
	case *types.OverloadType:
		return f.Meta.Kind
	}
	return types.FnOrdinary
}

// descriptorGet reports whether t is a class instance whose class
// defines __get__ (the descriptor protocol, §4.E), returning that
// member's type substituted for t's own type arguments.
func descriptorGet(t types.Type) (types.Type, bool) {
	ct, ok := types.Prune(t).(*types.ClassType)
	if !ok {
		return nil, false
	}
	field, ok := ct.Class.Lookup("__get__")
	if !ok {
		return nil, false
	}
	return types.Substitute(classArgsSubst(ct), field.Type), true
}

// dependsOnTypeParams reports whether t's structure still mentions one
// of cls's own type parameters, which a class-level (rather than
// instance-level) access has no type arguments to substitute away.
func dependsOnTypeParams(t types.Type, cls *types.Class) bool {
	ids := make(map[int]bool, len(cls.TypeParams))
	for _, tp := range cls.TypeParams {
		ids[tp.Id] = true
	}
	found := false
	types.Transform(t, func(inner types.Type) types.Type {
		if q, ok := inner.(*types.QuantifiedType); ok && ids[q.Id] {
			found = true
		}
		return inner
	})
	return found
}

func classArgsSubst(c *types.ClassType) types.Subst {
	subst := types.Subst{}
	for i, tp := range c.Class.TypeParams {
		if i < len(c.TypeArgs) {
			subst[tp.Id] = c.TypeArgs[i]
		}
	}
	return subst
}

func isCallableLike(t types.Type) bool {
	switch t.(type) {
	case *types.FunctionType, *types.OverloadType:
		return true
	default:
		return false
	}
}
