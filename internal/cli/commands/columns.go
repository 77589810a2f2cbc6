package commands

import (
	"github.com/leapstack-labs/rowql/internal/cli/output"
	"github.com/leapstack-labs/rowql/pkg/core"
	"github.com/spf13/cobra"
)

// NewColumnsCommand creates the columns command.
func NewColumnsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "List the columns of the table",
		Long: `List the keys of the table's first row, in order.

These are the columns "SELECT *" returns.`,
		Example: `  rowql columns --table states.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			table, err := cc.LoadTable(cmd.Context())
			if err != nil {
				return err
			}
			return renderColumns(cc.Renderer, table)
		},
	}
}

// renderColumns prints one row per column of the table's first row.
func renderColumns(r *output.Renderer, table core.Table) error {
	result := &core.Result{Columns: []string{"column"}, Rows: core.Table{}}
	for _, col := range table.Columns() {
		result.Rows = append(result.Rows, core.RowOf("column", col))
	}
	return r.Result(result)
}
