package diag

import (
	"sort"
	"sync"
)

// Style controls when/whether errors reach the caller, mirroring
// original_source/pyrefly's ErrorStyle: Immediate is for one-shot CLI
// runs, Delayed batches everything until Finish for an IDE-style
// session that wants a single coherent publish, Off discards
// everything (used for speculative re-checks the caller will discard).
type Style int

const (
	StyleImmediate Style = iota
	StyleDelayed
	StyleOff
)

type dedupKey struct {
	spanStr string
	kind    string
	message string
}

// Collector accumulates Errors for one module, applying suppression and
// dedup before a caller ever sees them. Additions are serialized under
// mu so the collector tolerates being shared with synthesis subroutines
// that may run their own transient side-diagnostic passes (§5).
type Collector struct {
	style       Style
	suppression *Suppressions
	onImmediate func(Error)

	mu    sync.Mutex
	seen  map[dedupKey]bool
	shown []Error
	suppressed []Error
}

// NewCollector builds a Collector. onImmediate is called synchronously
// from Add for StyleImmediate and ignored otherwise.
func NewCollector(style Style, suppression *Suppressions, onImmediate func(Error)) *Collector {
	return &Collector{style: style, suppression: suppression, onImmediate: onImmediate, seen: map[dedupKey]bool{}}
}

// Add records err, applying line-comment suppression and (span, kind,
// message) dedup before it's kept.
func (c *Collector) Add(err Error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.style == StyleOff {
		return
	}
	key := dedupKey{spanStr: err.Span().String(), kind: err.Kind(), message: err.Message()}
	if c.seen[key] {
		return
	}
	c.seen[key] = true

	if c.suppression != nil && c.suppression.IsSuppressed(err.Span()) {
		c.suppressed = append(c.suppressed, err)
		return
	}

	c.shown = append(c.shown, err)
	if c.style == StyleImmediate && c.onImmediate != nil {
		c.onImmediate(err)
	}
}

// Finish returns every shown (non-suppressed, deduped) error sorted by
// source position, for StyleDelayed callers that batch-publish once a
// module finishes checking.
func (c *Collector) Finish() []Error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.SliceStable(c.shown, func(i, j int) bool {
		a, b := c.shown[i].Span(), c.shown[j].Span()
		if a.Start.Line != b.Start.Line {
			return a.Start.Line < b.Start.Line
		}
		return a.Start.Column < b.Start.Column
	})
	return c.shown
}

func (c *Collector) Suppressed() []Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suppressed
}
