package types

// Subst maps a QuantifiedType's Id to the Type it should be replaced by,
// used both for Forall instantiation (§4.D, fresh Vars) and for explicit
// specialization (`list[int]`'s T -> int, §4.A).
type Subst map[int]Type

// Substitute performs a bottom-up replacement of every QuantifiedType
// reachable in t per subst (§4.A). It is capture-free because every
// QuantifiedType carries a unique Id; a nested Forall's parameters do not
// shadow subst, so a QuantifiedType whose Id is in subst is replaced
// wherever it appears, including inside a nested Forall.
func Substitute(subst Subst, t Type) Type {
	if len(subst) == 0 {
		return t
	}
	return Transform(t, func(t Type) Type {
		if q, ok := t.(*QuantifiedType); ok {
			if repl, ok := subst[q.Id]; ok {
				return repl
			}
		}
		return t
	})
}

// Transform applies f bottom-up over t's structure, the way escalier's
// Type.Accept(TypeVisitor) rewrites a tree: children are transformed
// first, then f runs on the rebuilt node. f must not itself recurse.
func Transform(t Type, f func(Type) Type) Type {
	switch t := t.(type) {
	case *AnyType, *NeverType, *NoneType, *EllipsisType, *LiteralType,
		*LiteralStringType, *ModuleType, *QuantifiedType:
		return f(t)

	case *ClassType:
		args := transformAll(t.TypeArgs, f)
		return f(&ClassType{Class: t.Class, TypeArgs: args})

	case *ClassDefType:
		return f(t)

	case *TypeFormType:
		return f(&TypeFormType{Inner: Transform(t.Inner, f)})

	case *TypedDictType:
		fields := make([]TypedDictField, len(t.Fields))
		for i, fld := range t.Fields {
			fields[i] = TypedDictField{Name: fld.Name, Type: Transform(fld.Type, f), Qual: fld.Qual}
		}
		return f(&TypedDictType{Class: t.Class, TypeArgs: transformAll(t.TypeArgs, f), Fields: fields})

	case *TupleType:
		switch t.Shape {
		case TupleConcrete:
			return f(&TupleType{Shape: TupleConcrete, Elems: transformAll(t.Elems, f)})
		case TupleUnbounded:
			return f(&TupleType{Shape: TupleUnbounded, Elem: Transform(t.Elem, f)})
		default:
			return f(&TupleType{
				Shape:  TupleUnpacked,
				Prefix: transformAll(t.Prefix, f),
				Middle: Transform(t.Middle, f),
				Suffix: transformAll(t.Suffix, f),
			})
		}

	case *CallableType:
		return f(&CallableType{Params: transformParams(t.Params, f), Return: Transform(t.Return, f), IsEllipsis: t.IsEllipsis})

	case *FunctionType:
		callable := Transform(t.Callable, f).(*CallableType)
		return f(&FunctionType{Callable: callable, Meta: t.Meta})

	case *OverloadType:
		sigs := make([]*FunctionType, len(t.Signatures))
		for i, s := range t.Signatures {
			sigs[i] = Transform(s, f).(*FunctionType)
		}
		return f(&OverloadType{Signatures: sigs, Meta: t.Meta})

	case *BoundMethodType:
		return f(&BoundMethodType{Self: Transform(t.Self, f), Callable: Transform(t.Callable, f)})

	case *ForallType:
		return f(&ForallType{Params: t.Params, Body: Transform(t.Body, f)})

	case *VarType:
		if t.Forced != nil {
			return Transform(t.Forced, f)
		}
		return f(t)

	case *UnionType:
		return f(NewUnion(transformAll(t.Members, f)...))

	case *IntersectType:
		return f(NewIntersect(transformAll(t.Members, f)...))

	case *SelfType:
		return f(t)

	case *TypeGuardType:
		return f(&TypeGuardType{Target: Transform(t.Target, f)})

	case *TypeIsType:
		return f(&TypeIsType{Target: Transform(t.Target, f)})

	case *ParamSpecValueType:
		return f(&ParamSpecValueType{Params: transformParams(t.Params, f)})

	case *ConcatenateType:
		return f(&ConcatenateType{Prefix: transformAll(t.Prefix, f), Spec: Transform(t.Spec, f)})

	default:
		// Structural backstop: every concrete Type variant above is
		// handled, so this is unreachable in practice, but per §7 no
		// invariant violation aborts the solve.
		return f(t)
	}
}

func transformAll(ts []Type, f func(Type) Type) []Type {
	if ts == nil {
		return nil
	}
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = Transform(t, f)
	}
	return out
}

func transformParams(params []*Param, f func(Type) Type) []*Param {
	out := make([]*Param, len(params))
	for i, p := range params {
		out[i] = &Param{Name: p.Name, Kind: p.Kind, Required: p.Required, Unpacked: p.Unpacked, Type: Transform(p.Type, f)}
	}
	return out
}

// FreeQuantifieds collects the distinct QuantifiedTypes reachable in t
// that are not bound by an enclosing ForallType within t itself — i.e.
// the parameters a caller still needs to supply (§4.A).
func FreeQuantifieds(t Type) []*QuantifiedType {
	bound := map[int]bool{}
	seen := map[int]bool{}
	var free []*QuantifiedType
	var walk func(Type)
	walk = func(t Type) {
		t = Prune(t)
		switch t := t.(type) {
		case *QuantifiedType:
			if !bound[t.Id] && !seen[t.Id] {
				seen[t.Id] = true
				free = append(free, t)
			}
		case *ForallType:
			added := make([]int, 0, len(t.Params))
			for _, p := range t.Params {
				if !bound[p.Id] {
					bound[p.Id] = true
					added = append(added, p.Id)
				}
			}
			walk(t.Body)
			for _, id := range added {
				delete(bound, id)
			}
		case *ClassType:
			for _, a := range t.TypeArgs {
				walk(a)
			}
		case *TypeFormType:
			walk(t.Inner)
		case *TypedDictType:
			for _, a := range t.TypeArgs {
				walk(a)
			}
			for _, fld := range t.Fields {
				walk(fld.Type)
			}
		case *TupleType:
			for _, e := range t.Elems {
				walk(e)
			}
			if t.Elem != nil {
				walk(t.Elem)
			}
			for _, e := range t.Prefix {
				walk(e)
			}
			if t.Middle != nil {
				walk(t.Middle)
			}
			for _, e := range t.Suffix {
				walk(e)
			}
		case *CallableType:
			for _, p := range t.Params {
				walk(p.Type)
			}
			walk(t.Return)
		case *FunctionType:
			walk(t.Callable)
		case *OverloadType:
			for _, s := range t.Signatures {
				walk(s)
			}
		case *BoundMethodType:
			walk(t.Self)
			walk(t.Callable)
		case *UnionType:
			for _, m := range t.Members {
				walk(m)
			}
		case *IntersectType:
			for _, m := range t.Members {
				walk(m)
			}
		case *TypeGuardType:
			walk(t.Target)
		case *TypeIsType:
			walk(t.Target)
		case *ParamSpecValueType:
			for _, p := range t.Params {
				walk(p.Type)
			}
		case *ConcatenateType:
			for _, p := range t.Prefix {
				walk(p)
			}
			walk(t.Spec)
		}
	}
	walk(t)
	return free
}

// PromoteLiterals widens every Literal/LiteralString reachable in t to
// its general nominal class (§4.A), e.g. for the type of a `list`
// display whose elements are literals but whose declared element type
// should be the join of their general classes.
func PromoteLiterals(t Type, std *Stdlib) Type {
	return Transform(t, func(t Type) Type {
		switch t := t.(type) {
		case *LiteralType:
			return t.GeneralClass(std)
		case *LiteralStringType:
			return NewClassType(std.Str, nil)
		default:
			return t
		}
	})
}
