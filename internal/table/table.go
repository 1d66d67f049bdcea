// Package table parses and holds the static key-value tables used for term
// normalization.
//
// A table file holds one `"key": "value"` mapping per line. Lines starting
// with # and blank lines are ignored. The format is a strict subset of YAML,
// so it is decoded with yaml.v3 at the node level; this keeps line numbers and
// lets duplicate keys be reported instead of silently overwritten.
package table

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Table is an immutable string-to-string mapping loaded from a table file.
// It is safe for concurrent use because nothing mutates it after Parse.
type Table struct {
	name    string
	entries map[string]string
	lines   map[string]int
	keys    []string
}

// Name returns the name the table was loaded under (usually its file name).
func (t *Table) Name() string {
	return t.name
}

// Get returns the value stored for key.
func (t *Table) Get(key string) (string, bool) {
	v, ok := t.entries[key]
	return v, ok
}

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	_, ok := t.entries[key]
	return ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Keys returns the keys in file order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Line returns the 1-based line where key is defined, or 0.
func (t *Table) Line(key string) int {
	return t.lines[key]
}

// Load reads and parses the table file at path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return Parse(filepath.Base(path), data)
}

// Parse decodes a serialized table. All problems found are returned together
// as a combined error; each of them is a *Problem.
func Parse(name string, data []byte) (*Table, error) {
	t := &Table{
		name:    name,
		entries: make(map[string]string),
		lines:   make(map[string]int),
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		// Only comments or nothing at all.
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		return nil, &Problem{Table: name, Err: fmt.Errorf("%w: %v", ErrMalformedLine, err)}
	}

	// A table is a single document; rows after a --- separator would
	// otherwise be dropped without notice.
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, &Problem{Table: name, Err: fmt.Errorf("%w: %v", ErrMalformedLine, err)}
		}
		return nil, problemf(name, extra.Line, ErrMalformedLine, "unexpected second document (--- separator)")
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return t, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode || root.Style&yaml.FlowStyle != 0 {
		return nil, problemf(name, root.Line, ErrMalformedLine, "expected \"key\": \"value\" lines")
	}

	var errs error
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]

		if !isString(k) || !isString(v) {
			errs = multierr.Append(errs, problemf(name, k.Line, ErrMalformedLine,
				"key and value must both be double-quoted strings"))
			continue
		}
		if k.Value == "" {
			errs = multierr.Append(errs, problemf(name, k.Line, ErrMalformedLine, "empty key"))
			continue
		}

		if first, dup := t.lines[k.Value]; dup {
			errs = multierr.Append(errs, problemf(name, k.Line, ErrDuplicateKey,
				"%q (first defined on line %d)", k.Value, first))
			continue
		}

		t.entries[k.Value] = v.Value
		t.lines[k.Value] = k.Line
		t.keys = append(t.keys, k.Value)
	}

	if errs != nil {
		return nil, errs
	}
	return t, nil
}

func isString(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!str" && n.Style&yaml.DoubleQuotedStyle != 0
}
