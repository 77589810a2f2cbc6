package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/leapstack-labs/rowql/internal/loader"
)

// ErrNoTable is returned by RequireTable when no table source is set.
var ErrNoTable = errors.New("no table source: pass --table or set table in rowql.yaml")

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.ParallelThreshold < 0 {
		return fmt.Errorf("parallel_threshold must be >= 0, got %d", c.ParallelThreshold)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must be >= 0, got %s", c.WatchDebounce)
	}
	if c.TableName == "" || strings.IndexFunc(c.TableName, notWordRune) >= 0 {
		return fmt.Errorf("table_name must be a single word, got %q", c.TableName)
	}
	return nil
}

// RequireTable checks that a table source is configured and supported.
func (c *Config) RequireTable() error {
	if c.Table == "" {
		return ErrNoTable
	}
	format, err := loader.DetectFormat(c.Table)
	if err != nil {
		return err
	}
	if !format.IsFile() || format == loader.FormatSQLite || format == loader.FormatDuckDB {
		if c.SourceTable == "" {
			return fmt.Errorf("%w (table %s)", loader.ErrNoSourceTable, c.Table)
		}
	}
	return nil
}

func notWordRune(r rune) bool {
	return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
