package ast

// Expr is the sum type of expression syntax the solver type-checks.
//
//sumtype:decl
type Expr interface {
	isExpr()
	Span() Span
}

func (*NameExpr) isExpr()          {}
func (*LitExpr) isExpr()           {}
func (*FStringExpr) isExpr()       {}
func (*BoolOpExpr) isExpr()        {}
func (*CompareExpr) isExpr()       {}
func (*UnaryExpr) isExpr()         {}
func (*BinaryExpr) isExpr()        {}
func (*CallExpr) isExpr()          {}
func (*SubscriptExpr) isExpr()     {}
func (*AttributeExpr) isExpr()     {}
func (*ListExpr) isExpr()          {}
func (*SetExpr) isExpr()           {}
func (*DictExpr) isExpr()          {}
func (*TupleExpr) isExpr()         {}
func (*StarredExpr) isExpr()       {}
func (*ComprehensionExpr) isExpr() {}
func (*LambdaExpr) isExpr()        {}
func (*ConditionalExpr) isExpr()   {}
func (*AwaitExpr) isExpr()         {}
func (*YieldExpr) isExpr()         {}
func (*YieldFromExpr) isExpr()     {}
func (*NamedExpr) isExpr()         {}

// NameExpr is a simple identifier reference, resolved through the host's
// binding graph (§6 resolve_binding).
type NameExpr struct {
	Name      string
	BindingID int // opaque id the host's binding graph assigned to this occurrence
	span      Span
}

func (e *NameExpr) Span() Span { return e.span }

func NewNameExpr(name string, bindingID int, span Span) *NameExpr {
	return &NameExpr{Name: name, BindingID: bindingID, span: span}
}

// LitKind tags the closed set of literal forms §3 describes.
type LitKind int

const (
	LitBool LitKind = iota
	LitInt
	LitFloat // not itself a Literal type variant but folds to float class
	LitBytes
	LitStr
	LitNone
	LitEllipsis
)

type LitExpr struct {
	Kind    LitKind
	Bool    bool
	Int     string // arbitrary-precision decimal text; see types.NewIntLiteral
	Float   float64
	Bytes   []byte
	Str     string
	span    Span
}

func (e *LitExpr) Span() Span { return e.span }

func NewLitExpr(kind LitKind, span Span) *LitExpr { return &LitExpr{Kind: kind, span: span} }

// FStringExpr models an f-string: Parts alternates textual Const segments
// (all-constant ⇒ result is a literal string, §4.C) with interpolated Exprs.
type FStringExpr struct {
	Parts []FStringPart
	span  Span
}

type FStringPart struct {
	Const bool
	Text  string
	Expr  Expr
}

func (e *FStringExpr) Span() Span { return e.span }

func NewFStringExpr(parts []FStringPart, span Span) *FStringExpr {
	return &FStringExpr{Parts: parts, span: span}
}

type BoolOp int

const (
	BoolAnd BoolOp = iota
	BoolOr
)

// BoolOpExpr is `and`/`or` chained across two or more operands (§4.C).
type BoolOpExpr struct {
	Op       BoolOp
	Operands []Expr
	span     Span
}

func (e *BoolOpExpr) Span() Span { return e.span }

func NewBoolOpExpr(op BoolOp, operands []Expr, span Span) *BoolOpExpr {
	return &BoolOpExpr{Op: op, Operands: operands, span: span}
}

type CompareOp int

const (
	CmpEq CompareOp = iota
	CmpNotEq
	CmpLt
	CmpLtE
	CmpGt
	CmpGtE
	CmpIs
	CmpIsNot
	CmpIn
	CmpNotIn
)

// CompareExpr is a (possibly chained) comparison; result is always bool
// (§4.C) but the solver still records operands for narrowing (§4.G).
type CompareExpr struct {
	Left  Expr
	Ops   []CompareOp
	Comps []Expr
	span  Span
}

func (e *CompareExpr) Span() Span { return e.span }

func NewCompareExpr(left Expr, ops []CompareOp, comps []Expr, span Span) *CompareExpr {
	return &CompareExpr{Left: left, Ops: ops, Comps: comps, span: span}
}

type UnaryOp int

const (
	UnaryNot UnaryOp = iota
	UnaryNeg
	UnaryPos
	UnaryInvert
)

type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
	span    Span
}

func (e *UnaryExpr) Span() Span { return e.span }

func NewUnaryExpr(op UnaryOp, operand Expr, span Span) *UnaryExpr {
	return &UnaryExpr{Op: op, Operand: operand, span: span}
}

type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinFloorDiv
	BinMod
	BinPow
	BinMatMul
	BinLShift
	BinRShift
	BinBitAnd
	BinBitOr // also union-forming when both operands are TypeForm, §4.C
	BinBitXor
)

type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	span  Span
}

func (e *BinaryExpr) Span() Span { return e.span }

func NewBinaryExpr(op BinaryOp, left, right Expr, span Span) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right, span: span}
}

// Keyword is a `name=value` call argument, or a `**expr` unpack when Name
// is empty and Unpack is true.
type Keyword struct {
	Name   string
	Value  Expr
	Unpack bool
}

// CallExpr covers ordinary calls as well as the magic `assert_type` and
// `reveal_type` forms intercepted in §4.C.
type CallExpr struct {
	Func     Expr
	Args     []Expr // may contain *StarredExpr for `*args` unpacks
	Keywords []Keyword
	span     Span
}

func (e *CallExpr) Span() Span { return e.span }

func NewCallExpr(fn Expr, args []Expr, keywords []Keyword, span Span) *CallExpr {
	return &CallExpr{Func: fn, Args: args, Keywords: keywords, span: span}
}

// SliceSpec is a `lower:upper:step` subscript component; a bare index
// subscript has Slice == nil.
type SliceSpec struct {
	Lower Expr
	Upper Expr
	Step  Expr
}

type SubscriptExpr struct {
	Value Expr
	Index Expr // nil when Slice is set
	Slice *SliceSpec
	span  Span
}

func (e *SubscriptExpr) Span() Span { return e.span }

func NewSubscriptExpr(value Expr, index Expr, span Span) *SubscriptExpr {
	return &SubscriptExpr{Value: value, Index: index, span: span}
}

func NewSliceExpr(value Expr, slice *SliceSpec, span Span) *SubscriptExpr {
	return &SubscriptExpr{Value: value, Slice: slice, span: span}
}

type AttributeExpr struct {
	Value Expr
	Attr  string
	span  Span
}

func (e *AttributeExpr) Span() Span { return e.span }

func NewAttributeExpr(value Expr, attr string, span Span) *AttributeExpr {
	return &AttributeExpr{Value: value, Attr: attr, span: span}
}

type ListExpr struct {
	Elems []Expr // may contain *StarredExpr
	span  Span
}

func (e *ListExpr) Span() Span { return e.span }
func NewListExpr(elems []Expr, span Span) *ListExpr { return &ListExpr{Elems: elems, span: span} }

type SetExpr struct {
	Elems []Expr
	span  Span
}

func (e *SetExpr) Span() Span { return e.span }
func NewSetExpr(elems []Expr, span Span) *SetExpr { return &SetExpr{Elems: elems, span: span} }

type DictEntry struct {
	Key   Expr // nil for a `**expr` unpack entry
	Value Expr
}

type DictExpr struct {
	Entries []DictEntry
	span    Span
}

func (e *DictExpr) Span() Span { return e.span }
func NewDictExpr(entries []DictEntry, span Span) *DictExpr {
	return &DictExpr{Entries: entries, span: span}
}

type TupleExpr struct {
	Elems []Expr
	span  Span
}

func (e *TupleExpr) Span() Span { return e.span }
func NewTupleExpr(elems []Expr, span Span) *TupleExpr { return &TupleExpr{Elems: elems, span: span} }

// StarredExpr is `*expr` inside a call's argument list or a display.
type StarredExpr struct {
	Value Expr
	span  Span
}

func (e *StarredExpr) Span() Span { return e.span }
func NewStarredExpr(value Expr, span Span) *StarredExpr {
	return &StarredExpr{Value: value, span: span}
}

type ComprehensionKind int

const (
	CompList ComprehensionKind = iota
	CompSet
	CompDict
	CompGenerator
)

type Generator struct {
	Target  Pat
	Iter    Expr
	Ifs     []Expr
	IsAsync bool
}

// ComprehensionExpr models list/set/dict/generator comprehensions (§4.C);
// DictValue is only set when Kind == CompDict.
type ComprehensionExpr struct {
	Kind       ComprehensionKind
	Element    Expr
	DictValue  Expr
	Generators []Generator
	span       Span
}

func (e *ComprehensionExpr) Span() Span { return e.span }

func NewComprehensionExpr(kind ComprehensionKind, element Expr, generators []Generator, span Span) *ComprehensionExpr {
	return &ComprehensionExpr{Kind: kind, Element: element, Generators: generators, span: span}
}

type LambdaParam struct {
	Name    string
	Default Expr // nil if required
}

// LambdaExpr has no annotations of its own (§4.C). The checker types
// every lambda parameter as Any; neither an expected callable hint nor
// the binding graph supplies parameter types.
type LambdaExpr struct {
	Params []LambdaParam
	Body   Expr
	span   Span
}

func (e *LambdaExpr) Span() Span { return e.span }

func NewLambdaExpr(params []LambdaParam, body Expr, span Span) *LambdaExpr {
	return &LambdaExpr{Params: params, Body: body, span: span}
}

// ConditionalExpr is `then if test else els`.
type ConditionalExpr struct {
	Test Expr
	Then Expr
	Else Expr
	span Span
}

func (e *ConditionalExpr) Span() Span { return e.span }

func NewConditionalExpr(test, then, els Expr, span Span) *ConditionalExpr {
	return &ConditionalExpr{Test: test, Then: then, Else: els, span: span}
}

type AwaitExpr struct {
	Value Expr
	span  Span
}

func (e *AwaitExpr) Span() Span { return e.span }
func NewAwaitExpr(value Expr, span Span) *AwaitExpr { return &AwaitExpr{Value: value, span: span} }

type YieldExpr struct {
	Value Expr // nil for a bare `yield`
	span  Span
}

func (e *YieldExpr) Span() Span { return e.span }
func NewYieldExpr(value Expr, span Span) *YieldExpr { return &YieldExpr{Value: value, span: span} }

type YieldFromExpr struct {
	Value Expr
	span  Span
}

func (e *YieldFromExpr) Span() Span { return e.span }
func NewYieldFromExpr(value Expr, span Span) *YieldFromExpr {
	return &YieldFromExpr{Value: value, span: span}
}

// NamedExpr is the walrus `target := value`.
type NamedExpr struct {
	Target    *NameExpr
	Value     Expr
	BindingID int
	span      Span
}

func (e *NamedExpr) Span() Span { return e.span }

func NewNamedExpr(target *NameExpr, value Expr, bindingID int, span Span) *NamedExpr {
	return &NamedExpr{Target: target, Value: value, BindingID: bindingID, span: span}
}
