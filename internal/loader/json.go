package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/leapstack-labs/rowql/pkg/core"
)

// DecodeJSON reads a JSON array of flat objects. Numbers become float64.
func DecodeJSON(r io.Reader) (core.Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, fmt.Errorf("expected a JSON array of objects: %w", err)
	}

	var table core.Table
	for dec.More() {
		row, err := decodeJSONRow(dec, len(table))
		if err != nil {
			return nil, err
		}
		table = append(table, row)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after the top-level array")
	}
	if table == nil {
		table = core.Table{}
	}
	return table, nil
}

func decodeJSONRow(dec *json.Decoder, index int) (*core.Row, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("row %d: expected an object: %w", index, err)
	}

	row := core.NewRow(8)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", index, err)
		}
		key, _ := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("row %d, key %q: %w", index, key, err)
		}

		var v core.Value
		switch x := valTok.(type) {
		case json.Delim:
			return nil, fmt.Errorf("row %d, key %q: nested values are not supported", index, key)
		case json.Number:
			f, err := x.Float64()
			if err != nil {
				return nil, fmt.Errorf("row %d, key %q: %w", index, key, err)
			}
			v = f
		default:
			v = x // string, bool or nil
		}
		row.Set(key, v)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("row %d: %w", index, err)
	}
	return row, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
