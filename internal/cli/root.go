// Package cli provides the command-line interface for rowql.
package cli

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/rowql/internal/cli/commands"
	"github.com/leapstack-labs/rowql/internal/cli/config"
	"github.com/leapstack-labs/rowql/internal/cli/output"
	"github.com/leapstack-labs/rowql/pkg/core"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "rowql [SQL]",
		Short: "rowql - SELECT queries over a single table",
		Long: `rowql runs a restricted SQL SELECT against one table of rows loaded from
JSON, YAML, CSV, SQLite, DuckDB or PostgreSQL.

  SELECT <*|col, ...> FROM TABLE [WHERE <condition>] [LIMIT <n>];

Without a statement and with a terminal on stdin, rowql starts an
interactive session. Otherwise it runs the statement given as arguments or
piped on stdin.`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := config.NewLogger(cfg, cmd.ErrOrStderr())
			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}

			cmd.SetContext(config.WithContext(cmd.Context(), cfg, logger))
			return nil
		},
		RunE:          commands.RunDefault,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
` + fmt.Sprintf("commit %s, built %s\n", GitCommit, BuildDate))

	// Global persistent flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: rowql.yaml, searched upward)")
	flags.StringP("table", "t", "", "Table source: .json, .yaml, .csv, .db, .duckdb file or postgres:// DSN")
	flags.String("source-table", "", "Table to read from a database source")
	flags.String("table-name", "", "Placeholder name FROM must use (default TABLE)")
	flags.StringP("mode", "m", "", "Condition handling: strict or permissive")
	flags.String("precedence", "", "AND/OR precedence: legacy or standard")
	flags.StringP("output", "o", "", "Output format (table|json|csv|md)")
	flags.Int("workers", 0, "Goroutines used to filter large tables (0 or 1: sequential)")
	flags.Int("parallel-threshold", 0, "Minimum rows before filtering in parallel")
	flags.String("history-file", "", "REPL history file (default ~/.rowql_history)")
	flags.Bool("watch", false, "Reload the table file when it changes (REPL)")
	flags.BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(output.Formats))
		for i, f := range output.Formats {
			names[i] = string(f)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("mode", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(core.ModeStrict), string(core.ModePermissive)}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("precedence", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(core.PrecedenceLegacy), string(core.PrecedenceStandard)}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("table", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "yaml", "yml", "csv", "db", "sqlite", "sqlite3", "duckdb"}, cobra.ShellCompDirectiveFilterFileExt
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewREPLCommand())
	rootCmd.AddCommand(commands.NewColumnsCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for rowql.

To load completions:

Bash:
  $ source <(rowql completion bash)

Zsh:
  $ rowql completion zsh > "${fpath[1]}/_rowql"

Fish:
  $ rowql completion fish | source

PowerShell:
  PS> rowql completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
