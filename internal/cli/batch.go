package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/termresolve/internal/report"
	"github.com/ppiankov/termresolve/internal/worker"
)

var (
	outJSON      string
	outMD        string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Resolve every record of a file and report unresolved terms",
	Long: `Batch resolves a file of source values concurrently:
- Read one value per line (# comments and blank lines are skipped)
- Optionally pick one field of a delimited record with --column
- Resolve each value exactly as written
- Tally unresolved values and write a curator report

Unresolved values never stop the run. Use --fallback to substitute a
canonical label for them, as an ETL step would.

Example:
  termresolve batch variant_types.txt
  termresolve batch variant_summary.tsv --column 2 --json report.json --md report.md
  termresolve batch zygosity.txt --source impc --fallback indeterminate`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	flags := batchCmd.Flags()
	flags.StringVar(&outJSON, "json", "", "output JSON report path")
	flags.StringVar(&outMD, "md", "", "output Markdown report path")
	flags.DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	flags.Int("concurrency", 0, "number of concurrent workers (default from config)")
	flags.Int("column", 0, "1-based field to resolve in delimited records (0 = whole line)")
	flags.String("delimiter", "", "field delimiter for --column (default: tab)")
	flags.String("fallback", "", "canonical label to use for unresolved records")
	flags.Bool("include-results", false, "include every record's result in the JSON report")
	flags.Bool("no-footer", false, "disable footer in Markdown reports")

	_ = viper.BindPFlag("batch.workers", flags.Lookup("concurrency"))
	_ = viper.BindPFlag("batch.column", flags.Lookup("column"))
	_ = viper.BindPFlag("batch.delimiter", flags.Lookup("delimiter"))
	_ = viper.BindPFlag("batch.fallback", flags.Lookup("fallback"))
	_ = viper.BindPFlag("output.include_results", flags.Lookup("include-results"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noFooter, _ := cmd.Flags().GetBool("no-footer"); noFooter {
		cfg.Output.IncludeFooter = false
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Term Resolution Batch\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Source:       %s\n", sourceName(cfg))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Batch.Workers)
	if cfg.Batch.Column > 0 {
		fmt.Fprintf(os.Stderr, "  Column:       %d\n", cfg.Batch.Column)
	}
	if cfg.Batch.Fallback != "" {
		fmt.Fprintf(os.Stderr, "  Fallback:     %s\n", cfg.Batch.Fallback)
	}
	fmt.Fprintf(os.Stderr, "\n")

	r, err := openResolver(cfg)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	if cfg.Batch.Fallback != "" {
		if _, ok := r.Lookup(cfg.Batch.Fallback); !ok {
			return fmt.Errorf("fallback %q is not a label in %s", cfg.Batch.Fallback, r.Global().Name())
		}
	}

	processor := worker.NewBatchProcessor(r, cfg.Batch.Workers, cfg.Batch.Fallback)

	start := time.Now()
	results, err := processor.ProcessFile(ctx, file, cfg.Batch.Column, cfg.Batch.Delimiter)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}
	logger.Info("batch complete",
		zap.String("input", file),
		zap.Int("records", len(results)),
		zap.Int64("unresolved", r.Tally().Total()),
		zap.Duration("elapsed", time.Since(start)))

	rep := report.Build(report.Meta{
		Source:      sourceName(cfg),
		GlobalTable: r.Global().Name(),
		LocalTable:  r.Local().Name(),
		Input:       filepath.Base(file),
	}, results, r.Tally(), cfg.Output.IncludeResults)

	renderer := report.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(rep, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(rep, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
	}

	renderer.RenderSummary(cmd.OutOrStdout(), rep)
	return nil
}
