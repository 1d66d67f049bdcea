package tally

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/termresolve/internal/model"
)

func TestMemoryTally_Record(t *testing.T) {
	tl := NewMemoryTally()

	assert.Equal(t, int64(1), tl.Record("foo", model.StageUntranslated))
	assert.Equal(t, int64(2), tl.Record("foo", model.StageUntranslated))
	assert.Equal(t, int64(1), tl.Record("bar", model.StageUnmapped))

	assert.Equal(t, int64(2), tl.Count("foo"))
	assert.Equal(t, int64(1), tl.Count("bar"))
	assert.Equal(t, int64(0), tl.Count("baz"))
	assert.Equal(t, int64(3), tl.Total())
}

func TestMemoryTally_Snapshot(t *testing.T) {
	tl := NewMemoryTally()
	tl.Record("b", model.StageUntranslated)
	tl.Record("a", model.StageUntranslated)
	tl.Record("c", model.StageUnmapped)
	tl.Record("c", model.StageUnmapped)

	got := tl.Snapshot()
	want := []model.UnresolvedTerm{
		{Term: "c", Stage: model.StageUnmapped, Count: 2},
		{Term: "a", Stage: model.StageUntranslated, Count: 1},
		{Term: "b", Stage: model.StageUntranslated, Count: 1},
	}
	assert.Equal(t, want, got)
}

func TestMemoryTally_TermWithSeparatorLikeText(t *testing.T) {
	tl := NewMemoryTally()
	tl.Record("Pathogenic/Likely pathogenic; other", model.StageUntranslated)

	snap := tl.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "Pathogenic/Likely pathogenic; other", snap[0].Term)
}

func TestMemoryTally_Reset(t *testing.T) {
	tl := NewMemoryTally()
	tl.Record("foo", model.StageUntranslated)
	tl.Reset()

	assert.Equal(t, int64(0), tl.Total())
	assert.Empty(t, tl.Snapshot())
	assert.Equal(t, int64(1), tl.Record("foo", model.StageUntranslated))
}

func TestMemoryTally_Concurrent(t *testing.T) {
	tl := NewMemoryTally()

	const goroutines, perGoroutine = 8, 250
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				tl.Record("shared", model.StageUntranslated)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(goroutines*perGoroutine), tl.Count("shared"))
}
