package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/rowql/internal/cli/output"
	"github.com/spf13/cobra"
)

// ErrNoQuery is returned when no statement was given and stdin is a terminal.
var ErrNoQuery = errors.New("no query given: pass a statement, --input or pipe SQL on stdin")

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Input string
	// Stdin is read when no statement is given; the command's input by default.
	Stdin io.Reader
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Run one SELECT statement against the table",
		Long: `Run a single SELECT statement against the loaded table and print the result.

The statement comes from the arguments, from --input, or from stdin when it
is piped. A missing trailing semicolon is added.`,
		Example: `  # All columns
  rowql query --table states.json "SELECT * FROM TABLE;"

  # Filter and limit
  rowql query -t states.csv "SELECT state FROM TABLE WHERE pop > 20000000 LIMIT 5;"

  # From a file, as JSON
  rowql query -t states.yaml --input report.sql -o json

  # From a SQLite table
  rowql query -t warehouse.db --source-table states "SELECT * FROM TABLE;"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	if opts.Stdin == nil {
		opts.Stdin = cmd.InOrStdin()
	}
	text, err := readStatement(args, opts)
	if err != nil {
		return err
	}

	cc := NewCommandContext(cmd)
	table, err := cc.LoadTable(cmd.Context())
	if err != nil {
		return err
	}

	result, err := cc.Engine.Query(cmd.Context(), table, text)
	if err != nil {
		return err
	}
	return cc.Renderer.Result(result)
}

// readStatement picks the statement from args, the input file or piped
// stdin, in that order.
func readStatement(args []string, opts *QueryOptions) (string, error) {
	var text string
	switch {
	case len(args) > 0:
		text = strings.Join(args, " ")
	case opts.Input != "":
		data, err := os.ReadFile(opts.Input)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		text = string(data)
	default:
		if opts.Stdin == nil || output.IsTerminal(opts.Stdin) {
			return "", ErrNoQuery
		}
		data, err := io.ReadAll(opts.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoQuery
	}
	if !strings.HasSuffix(text, ";") {
		text += ";"
	}
	return text, nil
}

// RunDefault starts the REPL when no statement was given and stdin is a
// terminal, and runs a one-shot query otherwise.
func RunDefault(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && output.IsTerminal(cmd.InOrStdin()) {
		return runREPL(cmd)
	}
	return runQuery(cmd, args, &QueryOptions{})
}
