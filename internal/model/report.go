package model

import "time"

// Report summarizes a batch resolution run for curators.
type Report struct {
	Source      string    `json:"source"`       // Source name (e.g., "clinvar")
	GlobalTable string    `json:"global_table"` // Global terms table used
	LocalTable  string    `json:"local_table"`  // Translation table used
	Input       string    `json:"input"`        // Record file that was resolved
	GeneratedAt time.Time `json:"generated_at"`

	Totals   Totals         `json:"totals"`
	Prefixes map[string]int `json:"prefixes"` // Records carrying an identifier, per prefix

	Unresolved []UnresolvedTerm `json:"unresolved"` // Sorted by count desc, then term
	Results    []ResolvedTerm   `json:"results,omitempty"`
}

// Totals holds record counts for a run.
type Totals struct {
	Records    int `json:"records"`
	Resolved   int `json:"resolved"`
	Unresolved int `json:"unresolved"`
	Fallback   int `json:"fallback"` // Unresolved records that took the default label
}

// UnresolvedTerm is one entry of the unresolved-term tally.
type UnresolvedTerm struct {
	Term  string `json:"term"`
	Stage Stage  `json:"stage"`
	Count int64  `json:"count"`
}

// Coverage returns the resolved share of records in [0,1].
func (t Totals) Coverage() float64 {
	if t.Records == 0 {
		return 0
	}
	return float64(t.Resolved) / float64(t.Records)
}
