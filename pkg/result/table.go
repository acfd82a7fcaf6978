// Package result collects and checkpoints the outcome of running
// conformance images against the core, adapted from the teacher's own
// rule-table package (which collected discovered peephole-optimization
// rules instead of pass/fail test outcomes).
package result

import (
	"sort"
	"sync"
)

// ImageResult is the outcome of running a single conformance image (a
// ZEXALL/ZEXDOC-style .com test, or any other BDOS-trapping test binary) to
// completion or timeout.
type ImageResult struct {
	Name             string
	Pass             bool
	Timeout          bool
	Output           string
	InstructionCount uint64
}

// Table stores the outcome of every conformance image run so far.
type Table struct {
	mu      sync.Mutex
	results []ImageResult
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Add inserts a result into the table.
func (t *Table) Add(r ImageResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.results = append(t.results, r)
}

// Results returns a copy of every recorded result, sorted by image name.
func (t *Table) Results() []ImageResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]ImageResult, len(t.results))
	copy(out, t.results)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of recorded results.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.results)
}

// Passed returns how many recorded results passed.
func (t *Table) Passed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, r := range t.results {
		if r.Pass {
			n++
		}
	}
	return n
}
