// Package config loads rowql settings from defaults, a rowql.yaml file,
// ROWQL_ environment variables and command-line flags.
package config

import (
	"time"

	"github.com/leapstack-labs/rowql/internal/cli/output"
	"github.com/leapstack-labs/rowql/internal/engine"
	"github.com/leapstack-labs/rowql/internal/loader"
	"github.com/leapstack-labs/rowql/pkg/core"
)

// Default configuration values.
const (
	DefaultOutput        = output.FormatTable
	DefaultWatchDebounce = 100 * time.Millisecond
	DefaultHistoryFile   = ".rowql_history"
)

// ConfigFileNames are searched for, in order, from the working directory up.
var ConfigFileNames = []string{"rowql.yaml", "rowql.yml"}

// Config holds all CLI configuration options.
type Config struct {
	// Table is the path or DSN of the table source.
	Table string `koanf:"table"`
	// SourceTable names the table inside a database source.
	SourceTable string          `koanf:"source_table"`
	TableName   string          `koanf:"table_name"`
	Mode        core.Mode       `koanf:"mode"`
	Precedence  core.Precedence `koanf:"precedence"`
	Output      output.Format   `koanf:"output"`
	Verbose     bool            `koanf:"verbose"`

	Workers           int `koanf:"workers"`
	ParallelThreshold int `koanf:"parallel_threshold"`

	HistoryFile   string        `koanf:"history_file"`
	Watch         bool          `koanf:"watch"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`
}

// Options returns the query options the config selects.
func (c *Config) Options() core.Options {
	return core.Options{
		Mode:       c.Mode,
		Precedence: c.Precedence,
		TableName:  c.TableName,
	}.WithDefaults()
}

// EngineConfig returns the engine configuration, minus the logger.
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		Options:           c.Options(),
		Workers:           c.Workers,
		ParallelThreshold: c.ParallelThreshold,
	}
}

// LoaderOptions returns the loader options, minus the logger.
func (c *Config) LoaderOptions() loader.Options {
	return loader.Options{SourceTable: c.SourceTable}
}
