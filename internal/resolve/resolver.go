// Package resolve implements the two-stage term lookup: an external source
// string is translated to a canonical label, and the label is mapped to an
// ontology identifier.
//
// A Resolver is built once per run from validated tables and never changes
// afterwards, so any number of goroutines may call Resolve concurrently. The
// only shared mutable state is the unresolved-term tally, which is itself
// safe for concurrent use.
package resolve

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ppiankov/termresolve/internal/model"
	"github.com/ppiankov/termresolve/internal/table"
	"github.com/ppiankov/termresolve/internal/tally"
)

// Resolver resolves external strings against a global terms table and one
// source translation table.
type Resolver struct {
	global *table.Global
	local  *table.Table
	tally  tally.Tally
	logger *zap.Logger
	warn   *rate.Sometimes
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for unresolved-term warnings.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTally replaces the default in-memory tally.
func WithTally(t tally.Tally) Option {
	return func(r *Resolver) {
		if t != nil {
			r.tally = t
		}
	}
}

// WithWarnThrottle logs the first n unresolved terms, then at most one per
// interval. Counting is not affected.
func WithWarnThrottle(first int, interval time.Duration) Option {
	return func(r *Resolver) {
		r.warn = &rate.Sometimes{First: first, Interval: interval}
	}
}

// New validates that every label in local is defined in global and returns a
// Resolver over both tables. A validation failure lists every dangling label.
func New(global *table.Global, local *table.Table, opts ...Option) (*Resolver, error) {
	if err := table.CheckReferences(global, local); err != nil {
		return nil, fmt.Errorf("validate %s against %s: %w", local.Name(), global.Name(), err)
	}
	return newResolver(global, local, opts...), nil
}

func newResolver(global *table.Global, local *table.Table, opts ...Option) *Resolver {
	r := &Resolver{
		global: global,
		local:  local,
		tally:  tally.NewMemoryTally(),
		logger: zap.NewNop(),
		warn:   &rate.Sometimes{First: 20, Interval: time.Second},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve looks external up verbatim (no case folding, no trimming). A miss
// at either stage returns an unresolved term and increments the tally; it is
// never an error.
func (r *Resolver) Resolve(external string) model.ResolvedTerm {
	label, ok := r.local.Get(external)
	if !ok {
		return r.miss(external, "", model.StageUntranslated)
	}

	id, ok := r.global.ID(label)
	if !ok {
		return r.miss(external, label, model.StageUnmapped)
	}

	return model.ResolvedTerm{
		External: external,
		Label:    label,
		ID:       id,
		Stage:    model.StageResolved,
	}
}

// ResolveOr resolves external and, when that fails, substitutes the canonical
// label fallback. The miss is still tallied. If fallback is not a global
// label the plain unresolved result is returned.
func (r *Resolver) ResolveOr(external, fallback string) model.ResolvedTerm {
	res := r.Resolve(external)
	if res.Resolved() {
		return res
	}

	id, ok := r.global.ID(fallback)
	if !ok {
		return res
	}
	res.Label = fallback
	res.ID = id
	res.Fallback = true
	return res
}

// Lookup returns the ontology identifier for a canonical label.
func (r *Resolver) Lookup(label string) (string, bool) {
	return r.global.ID(label)
}

// LabelOf returns the canonical label for an ontology identifier.
func (r *Resolver) LabelOf(id string) (string, bool) {
	return r.global.Label(id)
}

// Tally returns the unresolved-term tally.
func (r *Resolver) Tally() tally.Tally {
	return r.tally
}

// Global returns the global terms table.
func (r *Resolver) Global() *table.Global {
	return r.global
}

// Local returns the source translation table.
func (r *Resolver) Local() *table.Table {
	return r.local
}

func (r *Resolver) miss(external, label string, stage model.Stage) model.ResolvedTerm {
	n := r.tally.Record(external, stage)
	r.warn.Do(func() {
		r.logger.Warn("unresolved term",
			zap.String("term", external),
			zap.String("stage", string(stage)),
			zap.String("label", label),
			zap.String("table", r.local.Name()),
			zap.Int64("count", n))
	})
	return model.ResolvedTerm{
		External: external,
		Label:    label,
		Stage:    stage,
	}
}
