package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/termresolve/internal/model"
)

var (
	resolveJSON     bool
	resolveStrict   bool
	resolveFallback string
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <term> [term...]",
	Short: "Resolve source terms to canonical labels and ontology identifiers",
	Long: `Resolve looks up each argument verbatim in the translation table, then maps
the canonical label to its ontology identifier. Matching is exact: quote terms
containing spaces and keep their original casing.

Example:
  termresolve resolve "single nucleotide variant"
  termresolve resolve --source clinvar "Pathogenic/Likely pathogenic" Benign
  termresolve resolve --source impc --fallback indeterminate heterozygote mosaic
  termresolve resolve --json Deletion`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "print results as JSON")
	resolveCmd.Flags().BoolVar(&resolveStrict, "strict", false, "exit non-zero if any term has no identifier (fallbacks count as resolved)")
	resolveCmd.Flags().StringVar(&resolveFallback, "fallback", "", "canonical label to use for unresolved terms")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	r, err := openResolver(cfg)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	if resolveFallback != "" {
		if _, ok := r.Lookup(resolveFallback); !ok {
			return fmt.Errorf("fallback %q is not a label in %s", resolveFallback, r.Global().Name())
		}
	}

	results := make([]model.ResolvedTerm, 0, len(args))
	for _, arg := range args {
		if resolveFallback != "" {
			results = append(results, r.ResolveOr(arg, resolveFallback))
		} else {
			results = append(results, r.Resolve(arg))
		}
	}

	unresolved := 0
	for _, res := range results {
		if !res.Resolved() {
			unresolved++
		}
	}

	out := cmd.OutOrStdout()
	if resolveJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
	} else {
		for _, res := range results {
			switch {
			case res.Fallback:
				fmt.Fprintf(out, "~ %q -> %s -> %s (fallback, %s)\n", res.External, res.Label, res.ID, res.Stage)
			case res.Resolved():
				fmt.Fprintf(out, "✓ %q -> %s -> %s\n", res.External, res.Label, res.ID)
			default:
				fmt.Fprintf(out, "✗ %q unresolved (%s)\n", res.External, res.Stage)
			}
		}
	}

	if resolveStrict && unresolved > 0 {
		return fmt.Errorf("%d of %d terms unresolved", unresolved, len(args))
	}
	return nil
}
