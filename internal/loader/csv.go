package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/leapstack-labs/rowql/pkg/core"
)

// DecodeCSV reads CSV with a header row. Numeric cells become float64,
// true and false become bool, everything else stays a string. Short
// records omit their missing keys.
func DecodeCSV(r io.Reader) (core.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return core.Table{}, nil
	}
	if err != nil {
		return nil, err
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		if header[i] == "" {
			return nil, fmt.Errorf("header column %d is empty", i+1)
		}
	}

	table := core.Table{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %d fields, header has %d", line, len(record), len(header))
		}

		row := core.NewRow(len(header))
		for i, cell := range record {
			row.Set(header[i], csvValue(cell))
		}
		table = append(table, row)
	}
	return table, nil
}

func csvValue(cell string) core.Value {
	switch strings.ToLower(cell) {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return cell
}
