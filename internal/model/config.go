package model

import "time"

// Config is the complete termresolve configuration. Field names double as
// viper keys (mapstructure) and config file keys (yaml).
type Config struct {
	Tables TablesConfig `yaml:"tables" mapstructure:"tables"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// TablesConfig selects the tables to load. Empty paths fall back to the
// tables embedded in the binary.
type TablesConfig struct {
	Source string `yaml:"source" mapstructure:"source"` // Embedded translation table name
	Global string `yaml:"global" mapstructure:"global"` // Path to a global terms table
	Local  string `yaml:"local" mapstructure:"local"`   // Path to a translation table
}

// BatchConfig controls record file processing.
type BatchConfig struct {
	Workers   int    `yaml:"workers" mapstructure:"workers"`
	Column    int    `yaml:"column" mapstructure:"column"`       // 1-based field index, 0 = whole line
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"` // Field separator when Column > 0
	Fallback  string `yaml:"fallback" mapstructure:"fallback"`   // Canonical label for unresolved records
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level        string        `yaml:"level" mapstructure:"level"`
	WarnFirst    int           `yaml:"warn_first" mapstructure:"warn_first"`       // Unresolved warnings always logged
	WarnInterval time.Duration `yaml:"warn_interval" mapstructure:"warn_interval"` // Then at most one per interval
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose        bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeResults bool `yaml:"include_results" mapstructure:"include_results"`
	IncludeFooter  bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Tables: TablesConfig{
			Source: "clinvar",
		},
		Batch: BatchConfig{
			Workers:   4,
			Delimiter: "\t",
		},
		Log: LogConfig{
			Level:        "info",
			WarnFirst:    20,
			WarnInterval: time.Second,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
