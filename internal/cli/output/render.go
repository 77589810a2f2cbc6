// Package output renders query results and terminal messages.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/leapstack-labs/rowql/pkg/core"
)

// Format is a result output format.
type Format string

// Result formats.
const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatTable, FormatJSON, FormatCSV, FormatMarkdown}

// ColumnWidth is the minimum width of a table column.
const ColumnWidth = 20

// ParseFormat parses a format name. "markdown" is accepted for md and
// the empty string selects table.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json, csv or md)", s)
}

// Render writes result to w in the given format.
func Render(w io.Writer, format Format, result *core.Result) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, result)
	case FormatCSV:
		newWriter(w, result).RenderCSV()
		return nil
	case FormatMarkdown:
		newWriter(w, result).RenderMarkdown()
		return nil
	case FormatTable, "":
		return renderTable(w, result)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func newWriter(w io.Writer, result *core.Result) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := make(table.Row, len(result.Columns))
	for i, col := range result.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, row := range result.Rows {
		cells := make(table.Row, len(result.Columns))
		for i, col := range result.Columns {
			v, _ := row.Get(col)
			cells[i] = FormatValue(v)
		}
		t.AppendRow(cells)
	}
	return t
}

func renderTable(w io.Writer, result *core.Result) error {
	t := newWriter(w, result)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault

	configs := make([]table.ColumnConfig, len(result.Columns))
	for i := range result.Columns {
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignCenter,
			AlignHeader: text.AlignCenter,
			WidthMin:    ColumnWidth,
		}
	}
	t.SetColumnConfigs(configs)

	t.Render()
	_, err := fmt.Fprintf(w, "(%d rows)\n", result.Len())
	return err
}

// renderJSON writes an array of objects whose keys follow the result's
// column order.
func renderJSON(w io.Writer, result *core.Result) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range result.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range result.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			v, _ := row.Get(col)
			key, err := json.Marshal(col)
			if err != nil {
				return err
			}
			val, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("column %s: %w", col, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(w)
	return err
}

// FormatValue renders a cell. Absent values print as NULL and whole
// numbers print without an exponent.
func FormatValue(v core.Value) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	}
	return fmt.Sprintf("%v", v)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
