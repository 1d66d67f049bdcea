package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/termresolve/internal/model"
	"github.com/ppiankov/termresolve/internal/tally"
	"github.com/ppiankov/termresolve/internal/worker"
)

func sampleResults() ([]*worker.RecordResult, tally.Tally) {
	tl := tally.NewMemoryTally()
	tl.Record("Mosaic", model.StageUntranslated)
	tl.Record("mosaic|x", model.StageUntranslated)

	results := []*worker.RecordResult{
		{Index: 0, Term: model.ResolvedTerm{External: "single nucleotide variant", Label: "SNV", ID: "SO:0001483", Stage: model.StageResolved}},
		{Index: 1, Term: model.ResolvedTerm{External: "Pathogenic", Label: "pathogenic", ID: "GENO:0000840", Stage: model.StageResolved}},
		{Index: 2, Term: model.ResolvedTerm{External: "Mosaic", Stage: model.StageUntranslated}},
		{Index: 3, Term: model.ResolvedTerm{External: "mosaic|x", Label: "indeterminate", ID: "GENO:0000137", Stage: model.StageUntranslated, Fallback: true}},
	}
	return results, tl
}

func TestBuild(t *testing.T) {
	results, tl := sampleResults()
	meta := Meta{Source: "clinvar", GlobalTable: "global_terms.yaml", LocalTable: "clinvar.yaml", Input: "records.txt"}

	r := Build(meta, results, tl, false)

	assert.Equal(t, "clinvar", r.Source)
	assert.Equal(t, model.Totals{Records: 4, Resolved: 2, Unresolved: 2, Fallback: 1}, r.Totals)
	assert.Equal(t, map[string]int{"SO": 1, "GENO": 2}, r.Prefixes)
	assert.Len(t, r.Unresolved, 2)
	assert.Empty(t, r.Results)
	assert.InDelta(t, 0.5, r.Totals.Coverage(), 1e-9)

	withResults := Build(meta, results, tl, true)
	assert.Len(t, withResults.Results, 4)
}

func TestCoverage_NoRecords(t *testing.T) {
	assert.Equal(t, 0.0, model.Totals{}.Coverage())
}

func TestRenderJSON(t *testing.T) {
	results, tl := sampleResults()
	r := Build(Meta{Source: "clinvar"}, results, tl, false)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, NewRenderer(true).RenderJSON(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded model.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, r.Totals, decoded.Totals)
	assert.Equal(t, r.Unresolved, decoded.Unresolved)
}

func TestWriteMarkdown(t *testing.T) {
	results, tl := sampleResults()
	r := Build(Meta{Source: "clinvar", Input: "records.txt"}, results, tl, false)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(true).WriteMarkdown(&buf, r))
	md := buf.String()

	assert.Contains(t, md, "# Term resolution: clinvar")
	assert.Contains(t, md, "| 4 | 2 | 2 | 1 | 50.0% |")
	assert.Contains(t, md, "| GENO | 2 |")
	assert.Contains(t, md, "`mosaic\\|x`")
	assert.Contains(t, md, "\n---\n_Untranslated terms")

	buf.Reset()
	require.NoError(t, NewRenderer(false).WriteMarkdown(&buf, r))
	assert.NotContains(t, buf.String(), "\n---\n")
	assert.NotContains(t, buf.String(), "_Untranslated terms")
}

func TestWriteMarkdown_NothingUnresolved(t *testing.T) {
	r := Build(Meta{Source: "impc"}, nil, tally.NewMemoryTally(), false)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(false).WriteMarkdown(&buf, r))
	assert.Contains(t, buf.String(), "None.")
}

func TestRenderMarkdown(t *testing.T) {
	results, tl := sampleResults()
	r := Build(Meta{Source: "clinvar"}, results, tl, false)

	path := filepath.Join(t.TempDir(), "report.md")
	require.NoError(t, NewRenderer(false).RenderMarkdown(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Term resolution: clinvar"))
}

func TestRenderSummary(t *testing.T) {
	tl := tally.NewMemoryTally()
	for i := 0; i < 12; i++ {
		tl.Record(strings.Repeat("x", i+1), model.StageUntranslated)
	}
	r := Build(Meta{}, nil, tl, false)

	var buf bytes.Buffer
	NewRenderer(false).RenderSummary(&buf, r)
	assert.Contains(t, buf.String(), "(12 distinct)")
	assert.Contains(t, buf.String(), "... 2 more")
}
