package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup <label|id>",
	Short: "Look up a canonical label or ontology identifier in the global terms",
	Long: `Lookup queries the global terms table directly, skipping the translation
table. A canonical label prints its identifier; an identifier prints its label.

Example:
  termresolve lookup pathogenic
  termresolve lookup SO:0001483`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	r, err := openResolver(cfg)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}

	key := args[0]
	out := cmd.OutOrStdout()
	if id, ok := r.Lookup(key); ok {
		fmt.Fprintf(out, "%s\t%s\n", key, id)
		return nil
	}
	if label, ok := r.LabelOf(key); ok {
		fmt.Fprintf(out, "%s\t%s\n", label, key)
		return nil
	}
	return fmt.Errorf("%q is neither a label nor an identifier in %s", key, r.Global().Name())
}
