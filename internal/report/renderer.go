package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/termresolve/internal/model"
)

// Renderer writes reports as JSON, Markdown and a short console summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON to path
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as Markdown to path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create markdown: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close markdown: %w", closeErr)
		}
	}()

	return r.WriteMarkdown(f, report)
}

// WriteMarkdown renders the Markdown report to w
func (r *Renderer) WriteMarkdown(w io.Writer, report *model.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Term resolution: %s\n\n", report.Source)
	fmt.Fprintf(&b, "- Input: `%s`\n", report.Input)
	fmt.Fprintf(&b, "- Global terms: `%s`\n", report.GlobalTable)
	fmt.Fprintf(&b, "- Translation table: `%s`\n", report.LocalTable)
	fmt.Fprintf(&b, "- Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	t := report.Totals
	b.WriteString("## Totals\n\n")
	b.WriteString("| Records | Resolved | Unresolved | Fallback | Coverage |\n")
	b.WriteString("|--------:|---------:|-----------:|---------:|---------:|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %.1f%% |\n\n", t.Records, t.Resolved, t.Unresolved, t.Fallback, 100*t.Coverage())

	if len(report.Prefixes) > 0 {
		b.WriteString("## Identifiers by prefix\n\n")
		b.WriteString("| Prefix | Records |\n|--------|--------:|\n")
		prefixes := make([]string, 0, len(report.Prefixes))
		for p := range report.Prefixes {
			prefixes = append(prefixes, p)
		}
		sort.Strings(prefixes)
		for _, p := range prefixes {
			fmt.Fprintf(&b, "| %s | %d |\n", p, report.Prefixes[p])
		}
		b.WriteString("\n")
	}

	b.WriteString("## Unresolved terms\n\n")
	if len(report.Unresolved) == 0 {
		b.WriteString("None.\n")
	} else {
		b.WriteString("| Term | Stage | Count |\n|------|-------|------:|\n")
		for _, u := range report.Unresolved {
			fmt.Fprintf(&b, "| `%s` | %s | %d |\n", escapeCell(u.Term), u.Stage, u.Count)
		}
	}

	if r.includeFooter {
		b.WriteString("\n---\n")
		b.WriteString("_Untranslated terms need a row in the source translation table; unmapped labels need a row in the global terms table._\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderSummary prints a short summary to w
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	t := report.Totals
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Records:     %d\n", t.Records)
	fmt.Fprintf(w, "  Resolved:    %d (%.1f%%)\n", t.Resolved, 100*t.Coverage())
	fmt.Fprintf(w, "  Unresolved:  %d (%d distinct)\n", t.Unresolved, len(report.Unresolved))
	if t.Fallback > 0 {
		fmt.Fprintf(w, "  Fallback:    %d\n", t.Fallback)
	}

	limit := len(report.Unresolved)
	if limit > 10 {
		limit = 10
	}
	for _, u := range report.Unresolved[:limit] {
		fmt.Fprintf(w, "    ✗ %q (%s) x%d\n", u.Term, u.Stage, u.Count)
	}
	if len(report.Unresolved) > limit {
		fmt.Fprintf(w, "    ... %d more\n", len(report.Unresolved)-limit)
	}
	fmt.Fprintf(w, "\n")
}

func escapeCell(s string) string {
	return strings.NewReplacer("|", "\\|", "`", "'", "\n", " ").Replace(s)
}
