package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/termresolve/internal/model"
)

// TermResolver defines the lookup used by batch jobs.
type TermResolver interface {
	Resolve(external string) model.ResolvedTerm
	ResolveOr(external, fallback string) model.ResolvedTerm
}

// Record is one external string read from a record file.
type Record struct {
	Line int    // 1-based line in the input file
	Term string // Raw value, passed to the resolver verbatim
}

// ResolveJob resolves a single record
type ResolveJob struct {
	Index    int
	Record   Record
	Resolver TermResolver
	Fallback string
}

// Execute executes the resolve job
func (j *ResolveJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &RecordResult{Index: j.Index, Record: j.Record, Error: err}
	}

	var term model.ResolvedTerm
	if j.Fallback != "" {
		term = j.Resolver.ResolveOr(j.Record.Term, j.Fallback)
	} else {
		term = j.Resolver.Resolve(j.Record.Term)
	}
	return &RecordResult{Index: j.Index, Record: j.Record, Term: term}
}

// RecordResult represents the result of a resolve job. An unresolved term is
// not an error; Error is set only when the job did not run.
type RecordResult struct {
	Index  int
	Record Record
	Term   model.ResolvedTerm
	Error  error
}

// GetError returns the error from the record result
func (r *RecordResult) GetError() error {
	return r.Error
}

// BatchProcessor resolves many records concurrently
type BatchProcessor struct {
	resolver    TermResolver
	concurrency int
	fallback    string
}

// NewBatchProcessor creates a new batch processor. A non-empty fallback is
// used as the canonical label for records that do not resolve.
func NewBatchProcessor(resolver TermResolver, concurrency int, fallback string) *BatchProcessor {
	return &BatchProcessor{
		resolver:    resolver,
		concurrency: concurrency,
		fallback:    fallback,
	}
}

// ProcessRecords resolves records concurrently and returns results in input
// order. If ctx is cancelled before every record ran, ctx.Err() is returned
// along with the results gathered so far.
func (b *BatchProcessor) ProcessRecords(ctx context.Context, records []Record) ([]*RecordResult, error) {
	if len(records) == 0 {
		return []*RecordResult{}, nil
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, rec := range records {
		job := &ResolveJob{
			Index:    i,
			Record:   rec,
			Resolver: b.resolver,
			Fallback: b.fallback,
		}
		if !pool.Submit(job) {
			break
		}
	}

	results := pool.Wait()

	out := make([]*RecordResult, 0, len(results))
	for _, result := range results {
		rr := result.(*RecordResult)
		if rr.Error != nil {
			continue
		}
		out = append(out, rr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })

	if len(out) < len(records) {
		if err := ctx.Err(); err != nil {
			return out, err
		}
	}
	return out, nil
}

// ProcessFile reads records from a file and resolves them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string, column int, delimiter string) ([]*RecordResult, error) {
	records, err := ReadRecordsFromFile(filePath, column, delimiter)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	return b.ProcessRecords(ctx, records)
}

// ReadRecordsFromFile reads one record per line. Blank lines and lines
// starting with # are skipped. With column > 0 the record is the column-th
// field (1-based) split on delimiter; otherwise it is the whole line.
// Records are not trimmed or de-duplicated.
func ReadRecordsFromFile(filePath string, column int, delimiter string) ([]Record, error) {
	if column > 0 && delimiter == "" {
		return nil, fmt.Errorf("column %d requires a delimiter", column)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var records []Record

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		// Skip empty lines and comments
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		term := line
		if column > 0 {
			fields := strings.Split(line, delimiter)
			if column > len(fields) {
				return nil, fmt.Errorf("line %d: column %d requested, only %d fields", lineNo, column, len(fields))
			}
			term = fields[column-1]
		}

		records = append(records, Record{Line: lineNo, Term: term})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return records, nil
}
