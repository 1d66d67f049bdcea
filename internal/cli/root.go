package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ppiankov/termresolve/internal/model"
	"github.com/ppiankov/termresolve/internal/resolve"
)

const version = "termresolve v0.3.0"

var (
	cfgFile string
	verbose bool

	// Logger
	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "termresolve",
	Short: "termresolve - normalize source vocabulary terms to ontology identifiers",
	Long: `termresolve maps free-text labels from biomedical data sources (variant
types, clinical significance calls, evidence codes, provenance terms) to a
controlled vocabulary of canonical labels, and those labels to ontology
identifiers (SO, GENO, SEPIO, ECO, RO, NCBITaxon, ...).

Two tables drive every lookup:
  global terms       canonical label -> ontology identifier
  translation table  source string   -> canonical label

Lookups are exact. Terms that do not resolve are counted and reported so the
tables can be extended.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err = newLogger(cfg.Log.Level, cfg.Output.Verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.termresolve/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.String("source", "", "embedded translation table to use (clinvar, impc)")
	flags.String("global", "", "path to a global terms table (default: embedded)")
	flags.String("local", "", "path to a translation table (overrides --source)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("tables.source", flags.Lookup("source"))
	_ = viper.BindPFlag("tables.global", flags.Lookup("global"))
	_ = viper.BindPFlag("tables.local", flags.Lookup("local"))

	setDefaults(model.DefaultConfig())

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.termresolve")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match TERMRESOLVE_*
	viper.SetEnvPrefix("TERMRESOLVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key with viper so that environment
// variables are picked up even when no config file sets the key.
func setDefaults(cfg *model.Config) {
	viper.SetDefault("tables.source", cfg.Tables.Source)
	viper.SetDefault("tables.global", cfg.Tables.Global)
	viper.SetDefault("tables.local", cfg.Tables.Local)
	viper.SetDefault("batch.workers", cfg.Batch.Workers)
	viper.SetDefault("batch.column", cfg.Batch.Column)
	viper.SetDefault("batch.delimiter", cfg.Batch.Delimiter)
	viper.SetDefault("batch.fallback", cfg.Batch.Fallback)
	viper.SetDefault("log.level", cfg.Log.Level)
	viper.SetDefault("log.warn_first", cfg.Log.WarnFirst)
	viper.SetDefault("log.warn_interval", cfg.Log.WarnInterval)
	viper.SetDefault("output.verbose", cfg.Output.Verbose)
	viper.SetDefault("output.include_results", cfg.Output.IncludeResults)
	viper.SetDefault("output.include_footer", cfg.Output.IncludeFooter)
}

// loadConfig merges defaults, config file, environment and flags.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(lvl)

	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

// openResolver loads and validates the configured tables.
func openResolver(cfg *model.Config) (*resolve.Resolver, error) {
	logger.Debug("loading tables",
		zap.String("source", cfg.Tables.Source),
		zap.String("global", cfg.Tables.Global),
		zap.String("local", cfg.Tables.Local))

	r, err := resolve.Open(cfg.Tables,
		resolve.WithLogger(logger),
		resolve.WithWarnThrottle(cfg.Log.WarnFirst, cfg.Log.WarnInterval))
	if err != nil {
		return nil, err
	}

	logger.Debug("tables loaded",
		zap.String("global", r.Global().Name()),
		zap.Int("terms", r.Global().Len()),
		zap.String("local", r.Local().Name()),
		zap.Int("translations", r.Local().Len()))
	return r, nil
}

// sourceName names the translation table in reports.
func sourceName(cfg *model.Config) string {
	if cfg.Tables.Local != "" {
		return strings.TrimSuffix(filepath.Base(cfg.Tables.Local), ".yaml")
	}
	return cfg.Tables.Source
}
