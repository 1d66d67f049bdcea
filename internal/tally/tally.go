// Package tally counts unresolved terms so curators can extend the tables.
package tally

import (
	"sort"
	"strings"

	"github.com/ppiankov/termresolve/internal/model"
)

// Tally records unresolved external strings. Implementations must be safe
// for concurrent use.
type Tally interface {
	// Record counts one miss and returns the new count for term at stage.
	Record(term string, stage model.Stage) int64
	Count(term string) int64
	Total() int64
	Snapshot() []model.UnresolvedTerm
	Reset()
}

const sep = "\x1f"

// Key builds the storage key for a term at a stage.
func Key(stage model.Stage, term string) string {
	return string(stage) + sep + term
}

func splitKey(k string) (model.Stage, string) {
	stage, term, _ := strings.Cut(k, sep)
	return model.Stage(stage), term
}

// Sort orders entries by count descending, then term, then stage.
func Sort(entries []model.UnresolvedTerm) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Term != b.Term {
			return a.Term < b.Term
		}
		return a.Stage < b.Stage
	})
}
