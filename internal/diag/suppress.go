package diag

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"

	"github.com/typewell-lang/typewell/internal/ast"
)

// suppressionMarker is the inline comment text that silences diagnostics
// on the line it appears on, e.g. `x: int = "no"  # typewell: ignore`.
const suppressionMarker = "typewell: ignore"

var foldCase = cases.Fold()

// Suppressions records which source lines carry an inline suppression
// comment. Comment text is width-folded (full-width punctuation some
// editors insert) and case-folded before matching, so
// `# TYPEWELL: IGNORE` and `#　typewell： ignore` (full-width colon)
// both suppress.
type Suppressions struct {
	source ast.Source
	lines  map[int]bool
}

// ScanComments builds a Suppressions from every raw comment's line
// number and text found while lexing; a host's tokenizer supplies this
// list since comment text isn't preserved in the AST (§1's ambient
// stack: the checker never re-lexes source itself).
func ScanComments(source ast.Source, comments []Comment) *Suppressions {
	s := &Suppressions{source: source, lines: map[int]bool{}}
	for _, c := range comments {
		normalized := foldCase.String(width.Fold.String(c.Text))
		if strings.Contains(normalized, suppressionMarker) {
			s.lines[c.Line] = true
		}
	}
	return s
}

// Comment is a single line comment's raw text and 1-based source line,
// as a host's lexer reports it.
type Comment struct {
	Line int
	Text string
}

// IsSuppressed reports whether span's starting line carries a
// suppression comment.
func (s *Suppressions) IsSuppressed(span ast.Span) bool {
	if s == nil {
		return false
	}
	return s.lines[span.Start.Line]
}
