package ast

// ParamKind mirrors the five parameter kinds of §3's Parameter tag.
type ParamKind int

const (
	ParamPositionalOnly ParamKind = iota
	ParamPositionalOrKeyword
	ParamVariadic
	ParamKeywordOnly
	ParamKeywordVariadic
)

type Param struct {
	Name     string
	Kind     ParamKind
	TypeAnn  TypeAnn // nil when unannotated (binding graph supplies the type)
	Default  Expr    // nil when required
	Unpacked bool    // true for `*args: *Ts` / `**kwargs: Unpack[TD]`
}

type TypeParamKind int

const (
	TypeParamValue TypeParamKind = iota
	TypeParamVariadic
	TypeParamParamSpec
)

type TypeParamDecl struct {
	Name        string
	Kind        TypeParamKind
	Constraint  TypeAnn   // upper-bound form
	Constraints []TypeAnn // finite-constraints form; mutually exclusive with Constraint
	Default     TypeAnn
	Covariant   bool
	Contravariant bool
	InferVariance bool
}

// Decorator is a decorator expression applied to a FuncDef/ClassDef;
// structural recognition of a small set of names (staticmethod,
// classmethod, property, setter, final, a record-class marker) happens in
// the checker (§9) rather than here.
type Decorator struct {
	Expr Expr
}

type FuncDef struct {
	Name       string
	TypeParams []*TypeParamDecl
	Params     []*Param
	ReturnAnn  TypeAnn // nil when unannotated
	Body       []Stmt
	Decorators []Decorator
	IsAsync    bool
	IsGenerator bool
	BindingID  int
	span       Span
}

func (d *FuncDef) Span() Span { return d.span }
func NewFuncDef(name string, params []*Param, body []Stmt, span Span) *FuncDef {
	return &FuncDef{Name: name, Params: params, Body: body, span: span}
}

// FieldDecl is a class-body field: `name: Ann = init` or a bare method.
type FieldDecl struct {
	Name      string
	TypeAnn   TypeAnn
	Init      Expr // nil when absent
	IsClassVar bool
	span      Span
}

func (f *FieldDecl) Span() Span { return f.span }

type ClassDef struct {
	Name       string
	TypeParams []*TypeParamDecl
	Bases      []TypeAnn // base classes and, for protocols/generics, Protocol[...]/Generic[...]
	Fields     []*FieldDecl
	Methods    []*FuncDef
	Decorators []Decorator
	BindingID  int
	span       Span
}

func (d *ClassDef) Span() Span { return d.span }
func NewClassDef(name string, bases []TypeAnn, span Span) *ClassDef {
	return &ClassDef{Name: name, Bases: bases, span: span}
}

// Module is the top-level unit the checker solves (§2 data flow entry).
type Module struct {
	Source Source
	Body   []Stmt
}

// TypeAnn is annotation-position syntax; §4.C's inferTypeAnn converts one
// of these into a types.Type.
//
//sumtype:decl
type TypeAnn interface {
	isTypeAnn()
	Span() Span
}

func (*NameTypeAnn) isTypeAnn()      {}
func (*AttrTypeAnn) isTypeAnn()      {}
func (*SubscriptTypeAnn) isTypeAnn() {}
func (*UnionTypeAnn) isTypeAnn()     {}
func (*TupleTypeAnn) isTypeAnn()     {}
func (*LitTypeAnn) isTypeAnn()       {}
func (*StrForwardRefTypeAnn) isTypeAnn() {}
func (*EllipsisTypeAnn) isTypeAnn()  {}
func (*NoneTypeAnn) isTypeAnn()      {}

type NameTypeAnn struct {
	Name      string
	BindingID int
	span      Span
}

func (t *NameTypeAnn) Span() Span { return t.span }
func NewNameTypeAnn(name string, bindingID int, span Span) *NameTypeAnn {
	return &NameTypeAnn{Name: name, BindingID: bindingID, span: span}
}

type AttrTypeAnn struct {
	Value TypeAnn
	Attr  string
	span  Span
}

func (t *AttrTypeAnn) Span() Span { return t.span }

// SubscriptTypeAnn is `Base[Args...]`, e.g. `list[int]`, `Literal["a"]`,
// `Callable[[int], str]`.
type SubscriptTypeAnn struct {
	Base TypeAnn
	Args []TypeAnn
	span Span
}

func (t *SubscriptTypeAnn) Span() Span { return t.span }
func NewSubscriptTypeAnn(base TypeAnn, args []TypeAnn, span Span) *SubscriptTypeAnn {
	return &SubscriptTypeAnn{Base: base, Args: args, span: span}
}

// UnionTypeAnn is `A | B | ...` (annotation-position bitwise-or, §4.C).
type UnionTypeAnn struct {
	Alts []TypeAnn
	span Span
}

func (t *UnionTypeAnn) Span() Span { return t.span }
func NewUnionTypeAnn(alts []TypeAnn, span Span) *UnionTypeAnn {
	return &UnionTypeAnn{Alts: alts, span: span}
}

type TupleTypeAnn struct {
	Elems    []TypeAnn
	Unbounded bool // true for `tuple[T, ...]`
	span     Span
}

func (t *TupleTypeAnn) Span() Span { return t.span }

// LitTypeAnn is `Literal[1, "a", True]`'s per-value payload, built from an
// already-parsed literal expression.
type LitTypeAnn struct {
	Values []Expr
	span   Span
}

func (t *LitTypeAnn) Span() Span { return t.span }
func NewLitTypeAnn(values []Expr, span Span) *LitTypeAnn {
	return &LitTypeAnn{Values: values, span: span}
}

// StrForwardRefTypeAnn is a quoted forward reference, e.g. `x: "Foo"`; the
// host re-resolves the quoted text through its binding graph.
type StrForwardRefTypeAnn struct {
	Name      string
	BindingID int
	span      Span
}

func (t *StrForwardRefTypeAnn) Span() Span { return t.span }

type EllipsisTypeAnn struct{ span Span }

func (t *EllipsisTypeAnn) Span() Span { return t.span }

type NoneTypeAnn struct{ span Span }

func (t *NoneTypeAnn) Span() Span { return t.span }
func NewNoneTypeAnn(span Span) *NoneTypeAnn { return &NoneTypeAnn{span: span} }
