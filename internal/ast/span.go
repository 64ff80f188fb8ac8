// Package ast holds the minimal syntax-tree surface the solver consumes.
//
// Parsing and AST construction are host responsibilities (see §1 of the
// spec); this package only defines the node shapes the expression solver
// walks. A host builds these nodes from its own parser and hands them to
// the checker.
package ast

import "strconv"

// Source identifies a single parsed module by id; the host owns the
// mapping from SourceID to file path and contents.
type Source struct {
	Path string
	ID   int
}

type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Column)
}

type Span struct {
	Start    Location
	End      Location
	SourceID int
}

func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

func (s Span) Contains(loc Location) bool {
	return (s.Start.Line < loc.Line || (s.Start.Line == loc.Line && s.Start.Column <= loc.Column)) &&
		(s.End.Line > loc.Line || (s.End.Line == loc.Line && s.End.Column >= loc.Column))
}

func NewSpan(start, end Location, sourceID int) Span {
	return Span{Start: start, End: end, SourceID: sourceID}
}

func MergeSpans(a, b Span) Span {
	if a.Start.Line < b.Start.Line || (a.Start.Line == b.Start.Line && a.Start.Column < b.Start.Column) {
		return Span{Start: a.Start, End: b.End, SourceID: a.SourceID}
	}
	return Span{Start: b.Start, End: a.End, SourceID: a.SourceID}
}

var NoSpan = Span{SourceID: -1}
