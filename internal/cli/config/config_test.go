package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/rowql/internal/cli/output"
	"github.com/leapstack-labs/rowql/pkg/core"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("table", "", "")
	flags.String("source-table", "", "")
	flags.String("mode", "", "")
	flags.String("precedence", "", "")
	flags.StringP("output", "o", "", "")
	flags.Int("workers", 0, "")
	flags.BoolP("verbose", "v", false, "")
	return flags
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "rowql.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	defer ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.Table)
	assert.Equal(t, core.DefaultTableName, cfg.TableName)
	assert.Equal(t, core.ModeStrict, cfg.Mode)
	assert.Equal(t, core.PrecedenceLegacy, cfg.Precedence)
	assert.Equal(t, output.FormatTable, cfg.Output)
	assert.Equal(t, DefaultWatchDebounce, cfg.WatchDebounce)
	assert.Empty(t, GetConfigFileUsed())
	assert.Equal(t, core.DefaultOptions(), cfg.Options())
}

func TestLoadConfig_FileFoundUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
table: data/states.json
mode: permissive
precedence: standard
output: markdown
workers: 4
watch: true
watch_debounce: 250ms
`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)
	defer ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "data", "states.json"), cfg.Table)
	assert.Equal(t, core.ModePermissive, cfg.Mode)
	assert.Equal(t, core.PrecedenceStandard, cfg.Precedence)
	assert.Equal(t, output.FormatMarkdown, cfg.Output)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Watch)
	assert.Equal(t, 250*time.Millisecond, cfg.WatchDebounce)
	assert.Equal(t, filepath.Join(root, "rowql.yaml"), GetConfigFileUsed())
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "mode: permissive\noutput: csv\nworkers: 2\n")
	t.Chdir(t.TempDir())
	defer ResetConfig()

	t.Setenv("ROWQL_OUTPUT", "json")
	t.Setenv("ROWQL_WORKERS", "8")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--mode", "strict", "--table", "states.json"}))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)

	assert.Equal(t, core.ModeStrict, cfg.Mode, "flag beats file")
	assert.Equal(t, output.FormatJSON, cfg.Output, "env beats file")
	assert.Equal(t, 8, cfg.Workers, "env is weakly typed")
	assert.Equal(t, "states.json", cfg.Table, "flag paths stay relative to CWD")
}

func TestLoadConfig_UnchangedFlagsDoNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "precedence: standard\n")
	defer ResetConfig()

	flags := newFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, core.PrecedenceStandard, cfg.Precedence)
}

func TestLoadConfig_DSNNotResolved(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "table: postgres://app@localhost/db\nsource_table: states\n")
	defer ResetConfig()

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres://app@localhost/db", cfg.Table)
	assert.NoError(t, cfg.RequireTable())
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"unknown mode", "mode: lenient\n", "unknown mode"},
		{"unknown precedence", "precedence: pemdas\n", "unknown precedence"},
		{"unknown output", "output: xml\n", "unknown output format"},
		{"negative workers", "workers: -1\n", "workers must be >= 0"},
		{"bad table name", "table_name: my table\n", "table_name must be a single word"},
		{"bad yaml", "mode: [\n", "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer ResetConfig()
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := LoadConfig(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_RequireTable(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing", Config{}, "no table source"},
		{"json", Config{Table: "states.json"}, ""},
		{"unsupported", Config{Table: "states.txt"}, "unsupported table source"},
		{"sqlite without source table", Config{Table: "w.db"}, "source_table is required"},
		{"sqlite with source table", Config{Table: "w.db", SourceTable: "states"}, ""},
		{"postgres without source table", Config{Table: "postgres://localhost/db"}, "source_table is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.RequireTable()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetLogger_Fallback(t *testing.T) {
	logger := GetLogger(context.Background())
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(context.Background(), -8))
}
