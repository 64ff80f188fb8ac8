package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/types"
)

func span(line int) ast.Span {
	return ast.NewSpan(ast.Location{Line: line, Column: 1}, ast.Location{Line: line, Column: 2}, 0)
}

func TestCollectorDedupesIdenticalErrors(t *testing.T) {
	std := types.NewStdlib()
	c := NewCollector(StyleDelayed, nil, nil)
	err := BadAssignmentError{SpanV: span(1), Target: types.NewClassType(std.Int, nil), Value: types.NewClassType(std.Str, nil)}
	c.Add(err)
	c.Add(err)
	assert.Len(t, c.Finish(), 1)
}

func TestCollectorOffStyleDiscardsEverything(t *testing.T) {
	c := NewCollector(StyleOff, nil, nil)
	c.Add(UnreachableCodeError{SpanV: span(1)})
	assert.Empty(t, c.Finish())
}

func TestCollectorImmediateStyleCallsHook(t *testing.T) {
	var got []Error
	c := NewCollector(StyleImmediate, nil, func(e Error) { got = append(got, e) })
	c.Add(UnreachableCodeError{SpanV: span(3)})
	assert.Len(t, got, 1)
}

func TestCollectorSortsByPosition(t *testing.T) {
	c := NewCollector(StyleDelayed, nil, nil)
	c.Add(UnreachableCodeError{SpanV: span(5)})
	c.Add(UnreachableCodeError{SpanV: span(2)})
	finished := c.Finish()
	assert.Equal(t, 2, finished[0].Span().Start.Line)
	assert.Equal(t, 5, finished[1].Span().Start.Line)
}

func TestSuppressionSilencesMatchingLine(t *testing.T) {
	src := ast.Source{Path: "m.py", ID: 0}
	suppressions := ScanComments(src, []Comment{{Line: 4, Text: "# typewell: ignore"}})
	c := NewCollector(StyleDelayed, suppressions, nil)
	c.Add(UnreachableCodeError{SpanV: span(4)})
	assert.Empty(t, c.Finish())
	assert.Len(t, c.Suppressed(), 1)
}

func TestSuppressionIsCaseInsensitive(t *testing.T) {
	src := ast.Source{Path: "m.py", ID: 0}
	suppressions := ScanComments(src, []Comment{{Line: 1, Text: "# TYPEWELL: IGNORE"}})
	assert.True(t, suppressions.IsSuppressed(span(1)))
}

func TestSuppressionDoesNotMatchUnrelatedComment(t *testing.T) {
	src := ast.Source{Path: "m.py", ID: 0}
	suppressions := ScanComments(src, []Comment{{Line: 1, Text: "# a normal comment"}})
	assert.False(t, suppressions.IsSuppressed(span(1)))
}
