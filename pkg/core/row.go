package core

import (
	"fmt"
	"strings"
)

// Value is a scalar cell value: string, float64, bool, or nil for an
// absent value. Use NormalizeValue when building rows from foreign data.
type Value = any

// NormalizeValue converts v to one of the scalar kinds a Row holds.
// All integer and float kinds become float64 so that numbers from
// different sources compare equal.
func NormalizeValue(v any) (Value, error) {
	switch x := v.(type) {
	case nil, string, bool, float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case []byte:
		return string(x), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// Row is one record: a mapping from column name to value that remembers
// the order in which its keys were first set.
type Row struct {
	keys   []string
	values map[string]Value
}

// NewRow creates an empty row with room for n columns.
func NewRow(n int) *Row {
	return &Row{
		keys:   make([]string, 0, n),
		values: make(map[string]Value, n),
	}
}

// RowOf builds a row from alternating key/value pairs, normalized as by
// Set. It panics on an odd number of arguments or a non-string key,
// and is intended for tests and literals.
func RowOf(kv ...any) *Row {
	if len(kv)%2 != 0 {
		panic("core.RowOf: odd number of arguments")
	}
	r := NewRow(len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("core.RowOf: key %v is not a string", kv[i]))
		}
		r.Set(key, kv[i+1])
	}
	return r
}

// Set assigns v to key. A new key is appended to the key order; an
// existing key keeps its position. Numeric kinds are stored as float64
// and []byte as string; other unsupported kinds are stored unchanged.
func (r *Row) Set(key string, v Value) {
	if nv, err := NormalizeValue(v); err == nil {
		v = nv
	}
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value for key and whether the key is present.
func (r *Row) Get(key string) (Value, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present in the row.
func (r *Row) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Keys returns the row's keys in insertion order.
func (r *Row) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of columns in the row.
func (r *Row) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Map returns a copy of the row as a plain map.
func (r *Row) Map() map[string]Value {
	out := make(map[string]Value, r.Len())
	if r == nil {
		return out
	}
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Project returns a new row holding exactly columns, in that order.
// Columns missing from r project as nil.
func (r *Row) Project(columns []string) *Row {
	out := NewRow(len(columns))
	for _, c := range columns {
		v, _ := r.Get(c)
		out.Set(c, v)
	}
	return out
}

// Equal reports whether both rows hold the same keys, in the same order,
// with equal values.
func (r *Row) Equal(other *Row) bool {
	if r.Len() != other.Len() {
		return false
	}
	if r.Len() == 0 {
		return true
	}
	for i, k := range r.keys {
		if other.keys[i] != k || r.values[k] != other.values[k] {
			return false
		}
	}
	return true
}

func (r *Row) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range r.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q: %v", k, r.values[k])
	}
	sb.WriteByte('}')
	return sb.String()
}

// Table is the ordered sequence of rows a query runs against. Rows need
// not share a schema.
type Table []*Row

// Columns returns the key order of the first row, or nil for an empty table.
func (t Table) Columns() []string {
	if len(t) == 0 {
		return nil
	}
	return t[0].Keys()
}
