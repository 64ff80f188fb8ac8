// Package types implements the type algebra (§3, §4.A of the spec): the
// central Type sum and its structural operations. Types are immutable
// values except Var, whose bounds tighten monotonically while an
// inference scope is open and are frozen when that scope closes.
//
// Grounded on internal/type_system/types.go of the teacher repository,
// generalized from escalier's TypeScript-flavored structural algebra to
// the Python-flavored nominal-plus-protocol algebra this spec describes.
package types

import (
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Provenance tags where a type value came from; it never participates in
// equality or subtyping, only in diagnostics (e.g. distinguishing an
// explicit `Any` annotation from one propagated after an error, §3).
type Provenance interface{ isProvenance() }

type ExplicitProvenance struct{}
type GradualProvenance struct{}
type ErrorProvenance struct{ Reason string }

func (ExplicitProvenance) isProvenance() {}
func (GradualProvenance) isProvenance()  {}
func (ErrorProvenance) isProvenance()    {}

// Type is the central sum described in §3.
//
//sumtype:decl
type Type interface {
	isType()
	String() string
}

func (*AnyType) isType()         {}
func (*NeverType) isType()       {}
func (*NoneType) isType()        {}
func (*EllipsisType) isType()    {}
func (*LiteralType) isType()     {}
func (*LiteralStringType) isType() {}
func (*ClassType) isType()       {}
func (*ClassDefType) isType()    {}
func (*TypeFormType) isType()    {}
func (*TypedDictType) isType()   {}
func (*TupleType) isType()       {}
func (*CallableType) isType()    {}
func (*FunctionType) isType()    {}
func (*OverloadType) isType()    {}
func (*BoundMethodType) isType() {}
func (*ForallType) isType()      {}
func (*QuantifiedType) isType()  {}
func (*VarType) isType()         {}
func (*UnionType) isType()       {}
func (*IntersectType) isType()   {}
func (*SelfType) isType()        {}
func (*TypeGuardType) isType()   {}
func (*TypeIsType) isType()      {}
func (*ModuleType) isType()      {}
func (*ParamSpecValueType) isType() {}
func (*ConcatenateType) isType() {}

// --- Any / Never / None / Ellipsis -----------------------------------

type AnyType struct{ Provenance Provenance }

func NewAnyType(p Provenance) *AnyType { return &AnyType{Provenance: p} }
func (t *AnyType) String() string      { return "Any" }

// IsErrorAny reports whether this Any was synthesized to recover from an
// already-reported diagnostic (§7 local recovery).
func (t *AnyType) IsErrorAny() bool {
	_, ok := t.Provenance.(ErrorProvenance)
	return ok
}

type NeverType struct{}

func NewNeverType() *NeverType  { return &NeverType{} }
func (t *NeverType) String() string { return "Never" }

type NoneType struct{}

func NewNoneType() *NoneType   { return &NoneType{} }
func (t *NoneType) String() string { return "None" }

type EllipsisType struct{}

func NewEllipsisType() *EllipsisType { return &EllipsisType{} }
func (t *EllipsisType) String() string { return "ellipsis" }

// --- Literal / LiteralString ------------------------------------------

type LitKind int

const (
	LitBool LitKind = iota
	LitInt
	LitBytes
	LitStr
	LitEnumMember
)

// LiteralType is one of {bool, arbitrary-precision int, bytes, str, enum
// member} (§3). EnumClass/EnumMember are only set when Kind==LitEnumMember.
type LiteralType struct {
	Kind       LitKind
	Bool       bool
	Int        *big.Int
	Bytes      string
	Str        string
	EnumClass  *Class
	EnumMember string
}

func NewBoolLiteral(v bool) *LiteralType    { return &LiteralType{Kind: LitBool, Bool: v} }
func NewIntLiteral(v *big.Int) *LiteralType { return &LiteralType{Kind: LitInt, Int: v} }
func NewBytesLiteral(v string) *LiteralType { return &LiteralType{Kind: LitBytes, Bytes: v} }
func NewStrLiteral(v string) *LiteralType   { return &LiteralType{Kind: LitStr, Str: v} }
func NewEnumMemberLiteral(cls *Class, member string) *LiteralType {
	return &LiteralType{Kind: LitEnumMember, EnumClass: cls, EnumMember: member}
}

func (t *LiteralType) String() string {
	switch t.Kind {
	case LitBool:
		return strconv.FormatBool(t.Bool)
	case LitInt:
		return t.Int.String()
	case LitBytes:
		return "b" + strconv.Quote(t.Bytes)
	case LitStr:
		return strconv.Quote(t.Str)
	case LitEnumMember:
		return t.EnumClass.QualName + "." + t.EnumMember
	default:
		return "<unknown-literal>"
	}
}

// GeneralClass returns the nominal class a literal of this kind widens to
// under PromoteLiterals (§4.A), e.g. an int literal becomes `int`.
func (t *LiteralType) GeneralClass(std *Stdlib) *ClassType {
	switch t.Kind {
	case LitBool:
		return NewClassType(std.Bool, nil)
	case LitInt:
		return NewClassType(std.Int, nil)
	case LitBytes:
		return NewClassType(std.Bytes, nil)
	case LitStr:
		return NewClassType(std.Str, nil)
	case LitEnumMember:
		return NewClassType(t.EnumClass, nil)
	default:
		// Unreachable for any LiteralType built through this package's
		// constructors; fall back to object rather than abort (§7).
		return NewClassType(std.Object, nil)
	}
}

// LiteralStringType is the supertype of all string literals and itself a
// subtype of str (§3).
type LiteralStringType struct{}

func NewLiteralStringType() *LiteralStringType { return &LiteralStringType{} }
func (t *LiteralStringType) String() string     { return "LiteralString" }

// --- Class instance / class object / type[] ---------------------------

// ClassType is a nominal instance type: a class handle plus its type
// arguments (§3).
type ClassType struct {
	Class    *Class
	TypeArgs []Type
}

func NewClassType(cls *Class, args []Type) *ClassType {
	return &ClassType{Class: cls, TypeArgs: args}
}

func (t *ClassType) String() string {
	if len(t.TypeArgs) == 0 {
		return t.Class.QualName
	}
	parts := make([]string, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		parts[i] = a.String()
	}
	return t.Class.QualName + "[" + strings.Join(parts, ", ") + "]"
}

// ClassDefType is the class object itself, distinct from ClassType (§3).
type ClassDefType struct{ Class *Class }

func NewClassDefType(cls *Class) *ClassDefType { return &ClassDefType{Class: cls} }
func (t *ClassDefType) String() string          { return "type[" + t.Class.QualName + "]" }

// TypeFormType is the static-type value `type[inner]` (§3) — distinct
// from ClassDefType because Inner need not be a bare class (e.g.
// `type[int | str]`).
type TypeFormType struct{ Inner Type }

func NewTypeFormType(inner Type) *TypeFormType { return &TypeFormType{Inner: inner} }
func (t *TypeFormType) String() string          { return "type[" + t.Inner.String() + "]" }

// --- TypedDict ----------------------------------------------------------

type TypedDictFieldQual struct {
	Required bool
	ReadOnly bool
}

type TypedDictField struct {
	Name string
	Type Type
	Qual TypedDictFieldQual
}

// TypedDictType is a record-like mapping type (§3); Fields preserves
// declaration order (an invariant, §3).
type TypedDictType struct {
	Class    *Class
	TypeArgs []Type
	Fields   []TypedDictField
}

func NewTypedDictType(cls *Class, args []Type, fields []TypedDictField) *TypedDictType {
	return &TypedDictType{Class: cls, TypeArgs: args, Fields: fields}
}

func (t *TypedDictType) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		req := ""
		if !f.Qual.Required {
			req = "NotRequired["
		}
		suffix := ""
		if !f.Qual.Required {
			suffix = "]"
		}
		parts[i] = f.Name + ": " + req + f.Type.String() + suffix
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (t *TypedDictType) Field(name string) (TypedDictField, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return TypedDictField{}, false
}

// --- Tuple --------------------------------------------------------------

type TupleShape int

const (
	TupleConcrete TupleShape = iota
	TupleUnbounded
	TupleUnpacked
)

// TupleType covers the three shapes of §3: Concrete(Elems), Unbounded(the
// single Elem repeated), and Unpacked(Prefix, Middle, Suffix).
type TupleType struct {
	Shape  TupleShape
	Elems  []Type // Concrete
	Elem   Type   // Unbounded
	Prefix []Type // Unpacked
	Middle Type   // Unpacked
	Suffix []Type // Unpacked
}

func NewConcreteTuple(elems []Type) *TupleType {
	return &TupleType{Shape: TupleConcrete, Elems: elems}
}

func NewUnboundedTuple(elem Type) *TupleType {
	return &TupleType{Shape: TupleUnbounded, Elem: elem}
}

// NewUnpackedTuple collapses to Concrete/Unbounded per the §3 invariant
// when prefix and suffix are both empty and middle is a concrete or
// unbounded tuple.
func NewUnpackedTuple(prefix []Type, middle Type, suffix []Type) *TupleType {
	if len(prefix) == 0 && len(suffix) == 0 {
		if u, ok := middle.(*TupleType); ok && (u.Shape == TupleUnbounded || u.Shape == TupleConcrete) {
			return u
		}
	}
	return &TupleType{Shape: TupleUnpacked, Prefix: prefix, Middle: middle, Suffix: suffix}
}

func (t *TupleType) String() string {
	switch t.Shape {
	case TupleConcrete:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.String()
		}
		return "tuple[" + strings.Join(parts, ", ") + "]"
	case TupleUnbounded:
		return "tuple[" + t.Elem.String() + ", ...]"
	case TupleUnpacked:
		parts := make([]string, 0, len(t.Prefix)+len(t.Suffix)+1)
		for _, e := range t.Prefix {
			parts = append(parts, e.String())
		}
		parts = append(parts, "*"+t.Middle.String())
		for _, e := range t.Suffix {
			parts = append(parts, e.String())
		}
		return "tuple[" + strings.Join(parts, ", ") + "]"
	default:
		return "tuple[<unknown-shape>]"
	}
}

// --- Parameters / Callable ----------------------------------------------

type ParamKind int

const (
	ParamPositionalOnly ParamKind = iota
	ParamPositionalOrKeyword
	ParamVariadic
	ParamKeywordOnly
	ParamKeywordVariadic
)

// Param mirrors §3's tagged Parameter; Name is empty for positional-only
// parameters that carry no usable keyword name.
type Param struct {
	Name     string
	Kind     ParamKind
	Type     Type
	Required bool
	Unpacked bool // *args: *tuple[...] or **kwargs: Unpack[TD]
}

func NewParam(name string, kind ParamKind, t Type, required bool) *Param {
	return &Param{Name: name, Kind: kind, Type: t, Required: required}
}

func (p *Param) String() string {
	s := p.Name
	if s != "" {
		s += ": "
	}
	switch p.Kind {
	case ParamVariadic:
		s = "*" + s
	case ParamKeywordVariadic:
		s = "**" + s
	}
	s += p.Type.String()
	if !p.Required && p.Kind != ParamVariadic && p.Kind != ParamKeywordVariadic {
		s += " = ..."
	}
	return s
}

// CallableType is an anonymous function signature (§3). IsEllipsis
// marks `Callable[..., T]`: a fully dynamic parameter list, distinct
// from a zero-parameter callable `() -> T` (§4.B) — Params is always
// empty when IsEllipsis is set.
type CallableType struct {
	Params     []*Param
	Return     Type
	IsEllipsis bool
}

func NewCallableType(params []*Param, ret Type) *CallableType {
	return &CallableType{Params: params, Return: ret}
}

// NewEllipsisCallableType builds `Callable[..., T]`: a callable
// compatible with any parameter list in both directions (§4.B).
func NewEllipsisCallableType(ret Type) *CallableType {
	return &CallableType{Return: ret, IsEllipsis: true}
}

func (t *CallableType) String() string {
	ret := "None"
	if t.Return != nil {
		ret = t.Return.String()
	}
	if t.IsEllipsis {
		return "(...) -> " + ret
	}
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + ret
}

// FunctionKind tags a Function's origin (§3).
type FunctionKind int

const (
	FnOrdinary FunctionKind = iota
	FnStaticMethod
	FnClassMethod
	FnProperty
	FnPropertySetter
	FnRecordFieldConstructor
	FnModuleLevel
)

// FunctionMetadata carries identity and dispatch-relevant kind (§3).
type FunctionMetadata struct {
	Name       string
	Kind       FunctionKind
	DefinedOn  *Class // nil for a bare function
	TypeParams []*QuantifiedType
}

// FunctionType pairs a Callable with metadata (§3).
type FunctionType struct {
	Callable *CallableType
	Meta     FunctionMetadata
}

func NewFunctionType(callable *CallableType, meta FunctionMetadata) *FunctionType {
	return &FunctionType{Callable: callable, Meta: meta}
}

func (t *FunctionType) String() string {
	name := t.Meta.Name
	if name == "" {
		name = "<lambda>"
	}
	return "def " + name + t.Callable.String()
}

// OverloadType is an ordered set of signatures sharing metadata (§3); the
// first matching signature in order wins during call resolution (§4.D).
type OverloadType struct {
	Signatures []*FunctionType
	Meta       FunctionMetadata
}

func NewOverloadType(sigs []*FunctionType, meta FunctionMetadata) *OverloadType {
	return &OverloadType{Signatures: sigs, Meta: meta}
}

func (t *OverloadType) String() string {
	parts := make([]string, len(t.Signatures))
	for i, s := range t.Signatures {
		parts[i] = s.Callable.String()
	}
	return "overload(" + strings.Join(parts, " | ") + ")"
}

// BoundMethodType pairs a receiver value type with the underlying
// callable variant (a Function or Overload) with `self` elided (§3).
type BoundMethodType struct {
	Self     Type
	Callable Type // *FunctionType or *OverloadType
}

func NewBoundMethodType(self Type, callable Type) *BoundMethodType {
	return &BoundMethodType{Self: self, Callable: callable}
}

func (t *BoundMethodType) String() string { return "bound method " + t.Callable.String() }

// --- Forall / Quantified / Var -------------------------------------------

// ForallType is a universally-quantified scheme (§3); freshening (§4.D)
// replaces each parameter with a fresh Var bound to the call site.
type ForallType struct {
	Params []*QuantifiedType
	Body   Type
}

func NewForallType(params []*QuantifiedType, body Type) *ForallType {
	return &ForallType{Params: params, Body: body}
}

func (t *ForallType) String() string {
	names := make([]string, len(t.Params))
	for i, p := range t.Params {
		names[i] = p.Name
	}
	return "[" + strings.Join(names, ", ") + "] " + t.Body.String()
}

type QuantifiedKind int

const (
	QuantValue QuantifiedKind = iota
	QuantVariadic
	QuantParamSpec
)

type RestrictionKind int

const (
	RestrictionUnrestricted RestrictionKind = iota
	RestrictionUpperBound
	RestrictionConstraints
)

type Restriction struct {
	Kind        RestrictionKind
	UpperBound  Type
	Constraints []Type
}

type Variance int

const (
	VarianceInvariant Variance = iota
	VarianceCovariant
	VarianceContravariant
)

// QuantifiedType is a type parameter (§3): a TypeVar, TypeVarTuple, or
// ParamSpec. Id disambiguates parameters that share a printed Name across
// different Forall scopes (capture-free substitution, §4.A).
type QuantifiedType struct {
	Id          int
	Name        string
	Kind        QuantifiedKind
	Restriction Restriction
	Default     Type // nil if absent
	Variance    Variance
}

func (t *QuantifiedType) String() string { return t.Name }

// --- Var ------------------------------------------------------------------

// VarType is an inference variable owned by the subtype solver (§3, §4.B).
// Bounds tighten monotonically; Forced records the solved type once the
// owning call-site scope closes.
type VarType struct {
	Id       int
	Lower    []Type
	Upper    []Type
	Forced   Type // nil until the scope closes
	Variance Variance
}

func NewVarType(id int) *VarType { return &VarType{Id: id} }

func (t *VarType) String() string {
	if t.Forced != nil {
		return t.Forced.String()
	}
	return "?" + strconv.Itoa(t.Id)
}

// --- Union / Intersect ------------------------------------------------------

// UnionType is a sorted, deduplicated, non-empty set of types (§3
// invariant: never nests a Union, never contains Never, never a
// singleton — NewUnion enforces all three).
type UnionType struct{ Members []Type }

func (t *UnionType) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

// IntersectType is rarely constructed; used for internal bounds (§3).
type IntersectType struct{ Members []Type }

func (t *IntersectType) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " & ")
}

// --- Self / TypeGuard / TypeIs / Module / ParamSpecValue / Concatenate ----

type SelfType struct{ Class *Class }

func NewSelfType(cls *Class) *SelfType { return &SelfType{Class: cls} }
func (t *SelfType) String() string     { return "Self" }

type TypeGuardType struct{ Target Type }

func NewTypeGuardType(target Type) *TypeGuardType { return &TypeGuardType{Target: target} }
func (t *TypeGuardType) String() string            { return "TypeGuard[" + t.Target.String() + "]" }

type TypeIsType struct{ Target Type }

func NewTypeIsType(target Type) *TypeIsType { return &TypeIsType{Target: target} }
func (t *TypeIsType) String() string         { return "TypeIs[" + t.Target.String() + "]" }

// ModuleType is a module object's own type (§3, §4.E); Members holds
// the exported names a host's binding graph resolved for it, keyed by
// name. Members is nil for a module handle a host hasn't populated,
// in which case every attribute access reports missing-attribute.
type ModuleType struct {
	Name    string
	Members map[string]Type
}

func NewModuleType(name string) *ModuleType { return &ModuleType{Name: name} }
func (t *ModuleType) String() string         { return "module(" + t.Name + ")" }

// ParamSpecValueType is a concrete parameter list standing in for a
// ParamSpec (§3).
type ParamSpecValueType struct{ Params []*Param }

func NewParamSpecValueType(params []*Param) *ParamSpecValueType {
	return &ParamSpecValueType{Params: params}
}

func (t *ParamSpecValueType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ConcatenateType prepends fixed positional types onto a ParamSpec (§3).
type ConcatenateType struct {
	Prefix []Type
	Spec   Type // *QuantifiedType(kind=ParamSpec) or *ParamSpecValueType
}

func NewConcatenateType(prefix []Type, spec Type) *ConcatenateType {
	return &ConcatenateType{Prefix: prefix, Spec: spec}
}

func (t *ConcatenateType) String() string {
	parts := make([]string, len(t.Prefix))
	for i, p := range t.Prefix {
		parts[i] = p.String()
	}
	return "Concatenate[" + strings.Join(parts, ", ") + ", " + t.Spec.String() + "]"
}

// --- helpers shared across the package --------------------------------

// Prune follows a forced Var to its solution, the way escalier's
// `type_system.Prune` follows a unification-bound TypeVarType.
func Prune(t Type) Type {
	if v, ok := t.(*VarType); ok && v.Forced != nil {
		return Prune(v.Forced)
	}
	return t
}

func sortedByPrint(ts []Type) {
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].String() < ts[j].String() })
}
