package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/termresolve/internal/bundled"
	"github.com/ppiankov/termresolve/internal/model"
	"github.com/ppiankov/termresolve/internal/resolve"
)

var validateAll bool

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate the term tables",
	Long: `Validate parses the global terms table and the translation table and checks:
- no key repeats within a table
- every ontology identifier is PREFIX:local_id and used by one label only
- every translation points at a label defined in the global terms table

All problems are listed with file and line. A non-zero exit status means the
tables must not be used for an ETL run.

Example:
  termresolve validate
  termresolve validate --all
  termresolve validate --global global_terms.yaml --local clinvar.yaml`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateAll, "all", false, "validate every embedded translation table")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	targets := []model.TablesConfig{cfg.Tables}
	if validateAll {
		targets = targets[:0]
		for _, source := range bundled.Sources() {
			targets = append(targets, model.TablesConfig{Global: cfg.Tables.Global, Source: source})
		}
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, tables := range targets {
		c := *cfg
		c.Tables = tables
		r, err := resolve.Open(tables)
		if err != nil {
			failed++
			fmt.Fprintf(out, "✗ %s\n", sourceName(&c))
			for _, e := range problems(err) {
				fmt.Fprintf(out, "    %v\n", e)
			}
			continue
		}
		fmt.Fprintf(out, "✓ %s: %d translations -> %s: %d terms\n",
			r.Local().Name(), r.Local().Len(), r.Global().Name(), r.Global().Len())
	}

	if failed > 0 {
		return fmt.Errorf("validation failed for %d of %d table sets", failed, len(targets))
	}
	return nil
}

// problems flattens a combined validation error into its individual problems.
func problems(err error) []error {
	var combined interface{ Unwrap() []error }
	if errors.As(err, &combined) {
		return combined.Unwrap()
	}
	return []error{err}
}
