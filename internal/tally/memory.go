package tally

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/termresolve/internal/model"
)

// MemoryTally keeps counts in an in-process go-cache store. Entries never
// expire; the janitor is disabled.
type MemoryTally struct {
	cache *gocache.Cache
}

// NewMemoryTally creates an empty tally.
func NewMemoryTally() *MemoryTally {
	return &MemoryTally{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Record counts one miss for term at stage.
func (t *MemoryTally) Record(term string, stage model.Stage) int64 {
	k := Key(stage, term)
	for {
		if err := t.cache.Add(k, int64(1), gocache.NoExpiration); err == nil {
			return 1
		}
		// Add fails only when the key exists; Increment fails only if a
		// concurrent Reset removed it, in which case Add is retried.
		if n, err := t.cache.IncrementInt64(k, 1); err == nil {
			return n
		}
	}
}

// Count returns the misses recorded for term across all stages.
func (t *MemoryTally) Count(term string) int64 {
	var n int64
	for _, stage := range []model.Stage{model.StageUntranslated, model.StageUnmapped} {
		if v, ok := t.cache.Get(Key(stage, term)); ok {
			n += v.(int64)
		}
	}
	return n
}

// Total returns the number of misses recorded.
func (t *MemoryTally) Total() int64 {
	var n int64
	for _, item := range t.cache.Items() {
		n += item.Object.(int64)
	}
	return n
}

// Snapshot returns all entries, sorted.
func (t *MemoryTally) Snapshot() []model.UnresolvedTerm {
	items := t.cache.Items()
	out := make([]model.UnresolvedTerm, 0, len(items))
	for k, item := range items {
		stage, term := splitKey(k)
		out = append(out, model.UnresolvedTerm{
			Term:  term,
			Stage: stage,
			Count: item.Object.(int64),
		})
	}
	Sort(out)
	return out
}

// Reset drops all counts.
func (t *MemoryTally) Reset() {
	t.cache.Flush()
}
