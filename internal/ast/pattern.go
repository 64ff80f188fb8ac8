package ast

// Pat is the sum type of binding-position patterns: comprehension/for
// targets, tuple/object destructuring, and `match` case patterns (§4.G).
//
//sumtype:decl
type Pat interface {
	isPat()
	Span() Span
}

func (*IdentPat) isPat()     {}
func (*WildcardPat) isPat()  {}
func (*TuplePat) isPat()     {}
func (*ClassPat) isPat()     {}
func (*ValuePat) isPat()     {}
func (*OrPat) isPat()        {}
func (*MappingPat) isPat()   {}
func (*StarPat) isPat()      {}

// IdentPat binds the matched value to a name (a capture pattern).
type IdentPat struct {
	Name      string
	BindingID int
	span      Span
}

func (p *IdentPat) Span() Span { return p.span }
func NewIdentPat(name string, bindingID int, span Span) *IdentPat {
	return &IdentPat{Name: name, BindingID: bindingID, span: span}
}

// WildcardPat is `_`: matches anything, binds nothing, and in narrowing
// subtracts every type covered by earlier cases from the scrutinee (§4.G).
type WildcardPat struct{ span Span }

func (p *WildcardPat) Span() Span { return p.span }
func NewWildcardPat(span Span) *WildcardPat { return &WildcardPat{span: span} }

// StarPat is `*rest` inside a sequence pattern.
type StarPat struct {
	Name string // empty for a bare `*_`
	span Span
}

func (p *StarPat) Span() Span { return p.span }
func NewStarPat(name string, span Span) *StarPat { return &StarPat{Name: name, span: span} }

type TuplePat struct {
	Elems []Pat
	span  Span
}

func (p *TuplePat) Span() Span { return p.span }
func NewTuplePat(elems []Pat, span Span) *TuplePat { return &TuplePat{Elems: elems, span: span} }

// ClassPat is `ClassName(pos..., kw=pat...)`: narrows the scrutinee to
// ClassName and recursively matches sub-patterns against fields (§4.G).
type ClassPat struct {
	ClassName string
	Positional []Pat
	Keyword    map[string]Pat
	span       Span
}

func (p *ClassPat) Span() Span { return p.span }
func NewClassPat(className string, positional []Pat, keyword map[string]Pat, span Span) *ClassPat {
	return &ClassPat{ClassName: className, Positional: positional, Keyword: keyword, span: span}
}

// ValuePat matches a literal or a dotted constant reference (e.g. an enum
// member); narrows the scrutinee to that literal type (§4.G).
type ValuePat struct {
	Value Expr
	span  Span
}

func (p *ValuePat) Span() Span { return p.span }
func NewValuePat(value Expr, span Span) *ValuePat { return &ValuePat{Value: value, span: span} }

// OrPat is `pat1 | pat2 | ...`; narrowing unions the alternatives (§4.G).
type OrPat struct {
	Alts []Pat
	span Span
}

func (p *OrPat) Span() Span { return p.span }
func NewOrPat(alts []Pat, span Span) *OrPat { return &OrPat{Alts: alts, span: span} }

type MappingEntry struct {
	Key   Expr
	Value Pat
}

type MappingPat struct {
	Entries []MappingEntry
	Rest    string // non-empty for `**rest`
	span    Span
}

func (p *MappingPat) Span() Span { return p.span }
func NewMappingPat(entries []MappingEntry, rest string, span Span) *MappingPat {
	return &MappingPat{Entries: entries, Rest: rest, span: span}
}
