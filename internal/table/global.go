package table

import (
	"regexp"
	"strings"

	"go.uber.org/multierr"
)

// idPattern matches compact identifiers of the form PREFIX:local_id.
var idPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*:\S+$`)

// Global is the canonical label to ontology identifier table. Identifiers are
// unique, so the table also answers reverse lookups.
type Global struct {
	*Table
	labels map[string]string
}

// NewGlobal validates t as a global terms table: every value must be a
// well-formed PREFIX:local_id identifier and no identifier may be shared by
// two labels.
func NewGlobal(t *Table) (*Global, error) {
	g := &Global{
		Table:  t,
		labels: make(map[string]string, t.Len()),
	}

	var errs error
	for _, label := range t.keys {
		id := t.entries[label]
		line := t.lines[label]

		if !idPattern.MatchString(id) {
			errs = multierr.Append(errs, problemf(t.name, line, ErrMalformedID,
				"%q for label %q", id, label))
			continue
		}
		if other, dup := g.labels[id]; dup {
			errs = multierr.Append(errs, problemf(t.name, line, ErrDuplicateID,
				"%q used by %q and %q", id, other, label))
			continue
		}
		g.labels[id] = label
	}

	if errs != nil {
		return nil, errs
	}
	return g, nil
}

// LoadGlobal loads and validates a global terms table file.
func LoadGlobal(path string) (*Global, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewGlobal(t)
}

// ID returns the ontology identifier for a canonical label.
func (g *Global) ID(label string) (string, bool) {
	return g.Get(label)
}

// Label returns the canonical label for an ontology identifier.
func (g *Global) Label(id string) (string, bool) {
	l, ok := g.labels[id]
	return l, ok
}

// Prefix returns the PREFIX part of an identifier, or "" when id has none.
func Prefix(id string) string {
	i := strings.IndexByte(id, ':')
	if i <= 0 {
		return ""
	}
	return id[:i]
}

// CheckReferences verifies that every value of the translation table is a
// canonical label defined in g. All dangling references are reported.
func CheckReferences(g *Global, local *Table) error {
	var errs error
	for _, ext := range local.keys {
		label := local.entries[ext]
		if !g.Has(label) {
			errs = multierr.Append(errs, problemf(local.name, local.lines[ext], ErrDanglingLabel,
				"%q -> %q (not in %s)", ext, label, g.Name()))
		}
	}
	return errs
}
