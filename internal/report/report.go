// Package report builds and renders the curator report for a batch run.
package report

import (
	"time"

	"github.com/ppiankov/termresolve/internal/model"
	"github.com/ppiankov/termresolve/internal/table"
	"github.com/ppiankov/termresolve/internal/tally"
	"github.com/ppiankov/termresolve/internal/worker"
)

// Meta identifies the run a report describes.
type Meta struct {
	Source      string
	GlobalTable string
	LocalTable  string
	Input       string
}

// Build assembles a report from batch results and the resolver's tally.
// Per-record results are attached only when includeResults is set.
func Build(meta Meta, results []*worker.RecordResult, t tally.Tally, includeResults bool) *model.Report {
	r := &model.Report{
		Source:      meta.Source,
		GlobalTable: meta.GlobalTable,
		LocalTable:  meta.LocalTable,
		Input:       meta.Input,
		GeneratedAt: time.Now().UTC(),
		Prefixes:    make(map[string]int),
		Unresolved:  t.Snapshot(),
	}

	for _, res := range results {
		r.Totals.Records++
		term := res.Term
		if term.Stage == model.StageResolved {
			r.Totals.Resolved++
		} else {
			r.Totals.Unresolved++
			if term.Fallback {
				r.Totals.Fallback++
			}
		}
		if term.Resolved() {
			r.Prefixes[table.Prefix(term.ID)]++
		}
		if includeResults {
			r.Results = append(r.Results, term)
		}
	}

	return r
}
