package resolve

import (
	"fmt"

	"github.com/ppiankov/termresolve/internal/bundled"
	"github.com/ppiankov/termresolve/internal/model"
	"github.com/ppiankov/termresolve/internal/table"
)

// Open loads the tables named by cfg and builds a Resolver. An empty Global
// or Local path selects the table embedded in the binary; the embedded
// translation table is chosen by cfg.Source.
func Open(cfg model.TablesConfig, opts ...Option) (*Resolver, error) {
	var (
		global *table.Global
		err    error
	)
	if cfg.Global != "" {
		global, err = table.LoadGlobal(cfg.Global)
	} else {
		global, err = bundled.Global()
	}
	if err != nil {
		return nil, fmt.Errorf("load global terms: %w", err)
	}

	var local *table.Table
	if cfg.Local != "" {
		local, err = table.Load(cfg.Local)
	} else {
		local, err = bundled.Source(cfg.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("load translation table: %w", err)
	}

	return New(global, local, opts...)
}
