// Package bundled embeds the term tables shipped with the binary.
package bundled

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/ppiankov/termresolve/internal/table"
)

// GlobalFile is the embedded global terms table.
const GlobalFile = "global_terms.yaml"

//go:embed *.yaml
var files embed.FS

// Global parses the embedded global terms table.
func Global() (*table.Global, error) {
	data, err := files.ReadFile(GlobalFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded %s: %w", GlobalFile, err)
	}
	t, err := table.Parse(GlobalFile, data)
	if err != nil {
		return nil, err
	}
	return table.NewGlobal(t)
}

// Source parses the embedded translation table for a source, e.g. "clinvar".
func Source(name string) (*table.Table, error) {
	file := name + ".yaml"
	if file == GlobalFile {
		return nil, fmt.Errorf("unknown source %q", name)
	}
	data, err := files.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("unknown source %q (available: %s)", name, strings.Join(Sources(), ", "))
	}
	return table.Parse(file, data)
}

// Sources lists the embedded translation tables by source name.
func Sources() []string {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.Name() == GlobalFile {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}
