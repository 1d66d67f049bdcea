package model

// Stage records how far a lookup got through the translation chain.
type Stage string

const (
	StageResolved     Stage = "resolved"     // external string -> label -> identifier
	StageUntranslated Stage = "untranslated" // no translation table entry
	StageUnmapped     Stage = "unmapped"     // label has no global terms entry
)

// ResolvedTerm is the outcome of resolving one external string.
type ResolvedTerm struct {
	External string `json:"external"`           // Raw value as it appeared in the source
	Label    string `json:"label,omitempty"`    // Canonical label
	ID       string `json:"id,omitempty"`       // Ontology identifier (PREFIX:local_id)
	Stage    Stage  `json:"stage"`              // Where resolution stopped
	Fallback bool   `json:"fallback,omitempty"` // Label/ID come from a caller-supplied default
}

// Resolved reports whether the term carries a usable identifier.
func (r ResolvedTerm) Resolved() bool {
	return r.ID != "" && (r.Stage == StageResolved || r.Fallback)
}
