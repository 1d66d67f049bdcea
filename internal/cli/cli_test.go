package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/termresolve/internal/model"
)

// resetFlags restores every flag to its default so commands can run again.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}

func TestResolveCommand(t *testing.T) {
	out, err := execute(t, "resolve", "single nucleotide variant", "Pathogenic/Likely pathogenic", "totally-unknown-term")
	require.NoError(t, err)

	assert.Contains(t, out, `✓ "single nucleotide variant" -> SNV -> SO:0001483`)
	assert.Contains(t, out, `✓ "Pathogenic/Likely pathogenic" -> pathogenic -> GENO:0000840`)
	assert.Contains(t, out, `✗ "totally-unknown-term" unresolved (untranslated)`)
}

func TestResolveCommand_JSON(t *testing.T) {
	out, err := execute(t, "resolve", "--json", "Deletion")
	require.NoError(t, err)

	var results []model.ResolvedTerm
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "SO:0000159", results[0].ID)
}

func TestResolveCommand_Strict(t *testing.T) {
	_, err := execute(t, "resolve", "--strict", "Deletion", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 terms unresolved")

	_, err = execute(t, "resolve", "--strict", "Deletion")
	assert.NoError(t, err)
}

func TestResolveCommand_SourceAndFallback(t *testing.T) {
	out, err := execute(t, "resolve", "--source", "impc", "--fallback", "indeterminate", "homozygote", "mosaic")
	require.NoError(t, err)

	assert.Contains(t, out, `✓ "homozygote" -> homozygous -> GENO:0000136`)
	assert.Contains(t, out, `~ "mosaic" -> indeterminate -> GENO:0000137 (fallback, untranslated)`)
}

func TestResolveCommand_InvalidFallback(t *testing.T) {
	out, err := execute(t, "resolve", "--fallback", "no_such_label", "Deletion")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `fallback "no_such_label"`)
	assert.Empty(t, out)
}

func TestResolveCommand_StrictWithFallback(t *testing.T) {
	_, err := execute(t, "resolve", "--source", "impc", "--strict", "--fallback", "indeterminate", "homozygote", "mosaic")
	assert.NoError(t, err, "terms rescued by the fallback carry an identifier")

	_, err = execute(t, "resolve", "--source", "impc", "--strict", "homozygote", "mosaic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 terms unresolved")
}

func TestLookupCommand(t *testing.T) {
	out, err := execute(t, "lookup", "pathogenic")
	require.NoError(t, err)
	assert.Equal(t, "pathogenic\tGENO:0000840\n", out)

	out, err = execute(t, "lookup", "SO:0001483")
	require.NoError(t, err)
	assert.Equal(t, "SNV\tSO:0001483\n", out)

	_, err = execute(t, "lookup", "Pathogenic")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ clinvar.yaml")
	assert.Contains(t, out, "✓ impc.yaml")
}

func TestValidateCommand_Failures(t *testing.T) {
	local := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(local, []byte(`"Deletion": "deletion"
"Mosaic": "mosaic"
"Chimeric": "chimera"
`), 0o644))

	out, err := execute(t, "validate", "--local", local)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken")
	assert.Contains(t, out, "broken.yaml:2")
	assert.Contains(t, out, "broken.yaml:3")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "records.tsv")
	require.NoError(t, os.WriteFile(input, []byte(`#id	type
1	single nucleotide variant
2	Deletion
3	Mosaic
4	Mosaic
`), 0o644))
	jsonPath := filepath.Join(dir, "report.json")
	mdPath := filepath.Join(dir, "report.md")

	out, err := execute(t, "batch", input, "--column", "2", "--json", jsonPath, "--md", mdPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Records:     4")

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var rep model.Report
	require.NoError(t, json.Unmarshal(data, &rep))

	assert.Equal(t, "clinvar", rep.Source)
	assert.Equal(t, model.Totals{Records: 4, Resolved: 2, Unresolved: 2}, rep.Totals)
	require.Len(t, rep.Unresolved, 1)
	assert.Equal(t, model.UnresolvedTerm{Term: "Mosaic", Stage: model.StageUntranslated, Count: 2}, rep.Unresolved[0])

	_, err = os.Stat(mdPath)
	assert.NoError(t, err)
}

func TestBatchCommand_InvalidFallback(t *testing.T) {
	input := filepath.Join(t.TempDir(), "records.txt")
	require.NoError(t, os.WriteFile(input, []byte("Deletion\n"), 0o644))

	_, err := execute(t, "batch", input, "--fallback", "no_such_label")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_label")
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".termresolve", "config.yaml")
	require.NoError(t, writeDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "source: clinvar")
	assert.Contains(t, string(data), "warn_interval: 1s")

	assert.Error(t, writeDefaultConfig(path), "existing file must not be overwritten")
}

func TestConfigShow(t *testing.T) {
	t.Setenv("TERMRESOLVE_TABLES_SOURCE", "impc")

	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "source: impc")
}
