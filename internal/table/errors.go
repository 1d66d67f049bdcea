package table

import (
	"errors"
	"fmt"
)

// Sentinel errors for load-time validation. Every problem found while loading
// a table wraps exactly one of these.
var (
	ErrMalformedLine = errors.New("malformed line")
	ErrDuplicateKey  = errors.New("duplicate key")
	ErrDuplicateID   = errors.New("duplicate ontology identifier")
	ErrMalformedID   = errors.New("malformed ontology identifier")
	ErrDanglingLabel = errors.New("label not defined in global terms")
)

// Problem locates a single validation failure inside a table file.
type Problem struct {
	Table string // table name or path
	Line  int    // 1-based, 0 when unknown
	Err   error
}

func (p *Problem) Error() string {
	if p.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", p.Table, p.Line, p.Err)
	}
	return fmt.Sprintf("%s: %v", p.Table, p.Err)
}

func (p *Problem) Unwrap() error {
	return p.Err
}

func problemf(table string, line int, sentinel error, format string, args ...any) *Problem {
	return &Problem{
		Table: table,
		Line:  line,
		Err:   fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...),
	}
}
