package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_KeyOrder(t *testing.T) {
	r := NewRow(3)
	r.Set("state", "CA")
	r.Set("pop", 39000000.0)
	r.Set("state", "OH") // existing key keeps its position

	assert.Equal(t, []string{"state", "pop"}, r.Keys())
	v, ok := r.Get("state")
	require.True(t, ok)
	assert.Equal(t, "OH", v)
	assert.False(t, r.Has("region"))
}

func TestRow_Project(t *testing.T) {
	r := RowOf("state", "CA", "pop", 39000000.0)

	p := r.Project([]string{"pop", "region"})
	assert.Equal(t, []string{"pop", "region"}, p.Keys())
	v, ok := p.Get("region")
	assert.True(t, ok, "missing columns project as present nil values")
	assert.Nil(t, v)

	// The source row is untouched.
	assert.Equal(t, []string{"state", "pop"}, r.Keys())
}

func TestRow_Equal(t *testing.T) {
	a := RowOf("x", 1.0, "y", "z")
	assert.True(t, a.Equal(RowOf("x", 1.0, "y", "z")))
	assert.False(t, a.Equal(RowOf("y", "z", "x", 1.0)), "order matters")
	assert.False(t, a.Equal(RowOf("x", 2.0, "y", "z")))
	assert.True(t, NewRow(0).Equal(NewRow(0)))
}

func TestRow_SetNormalizes(t *testing.T) {
	r := RowOf("pop", 39000000, "small", int8(3), "raw", []byte("b"))
	r.Set("area", float32(1.5))
	r.Set("list", []int{1})

	for key, want := range map[string]Value{"pop": 39000000.0, "small": 3.0, "raw": "b", "area": 1.5} {
		v, _ := r.Get(key)
		assert.Equal(t, want, v, key)
	}
	v, _ := r.Get("list")
	assert.Equal(t, []int{1}, v, "unsupported kinds are stored unchanged")
}

func TestRowOf_PanicsOnOddArgs(t *testing.T) {
	assert.Panics(t, func() { RowOf("a") })
	assert.Panics(t, func() { RowOf(1, "a") })
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		in   any
		want Value
	}{
		{nil, nil},
		{"s", "s"},
		{true, true},
		{int64(7), 7.0},
		{uint8(3), 3.0},
		{float32(1.5), 1.5},
		{[]byte("b"), "b"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%T", tt.in), func(t *testing.T) {
			got, err := NormalizeValue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := NormalizeValue([]int{1})
	assert.Error(t, err)
}

func TestTable_Columns(t *testing.T) {
	assert.Nil(t, Table{}.Columns())
	tbl := Table{RowOf("a", 1.0, "b", 2.0), RowOf("c", 3.0)}
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
}

func TestQuery_LimitValue(t *testing.T) {
	zero, five := 0, 5
	assert.Equal(t, 0, (&Query{}).LimitValue())
	assert.Equal(t, 0, (&Query{Limit: &zero}).LimitValue())
	assert.Equal(t, 5, (&Query{Limit: &five}).LimitValue())

	assert.True(t, (&Query{Columns: []string{"*"}}).IsWildcard())
	assert.False(t, (&Query{Columns: []string{"*", "a"}}).IsWildcard())
}

func TestOptions(t *testing.T) {
	o := Options{}.WithDefaults()
	assert.Equal(t, DefaultOptions(), o)
	assert.True(t, o.Strict())
	assert.False(t, Options{Mode: ModePermissive}.Strict())

	m, err := ParseMode(" Permissive ")
	require.NoError(t, err)
	assert.Equal(t, ModePermissive, m)
	_, err = ParseMode("lenient")
	assert.Error(t, err)

	p, err := ParsePrecedence("STANDARD")
	require.NoError(t, err)
	assert.Equal(t, PrecedenceStandard, p)
	_, err = ParsePrecedence("sql")
	assert.Error(t, err)
}

func TestErrors_Is(t *testing.T) {
	err := fmt.Errorf("query failed: %w", NewParseError(ErrUnknownTable, "table %q", "users"))
	assert.True(t, errors.Is(err, ErrUnknownTable))
	assert.False(t, errors.Is(err, ErrMalformedStatement))

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Error(), `unknown table: table "users"`)

	assert.ErrorIs(t, NewEvaluationError(ErrTypeMismatch, "x"), ErrTypeMismatch)
	assert.ErrorIs(t, NewExecutionError(ErrEmptyTable, "x"), ErrEmptyTable)
}

func TestExprString(t *testing.T) {
	e := Or(Compare("pop", ">", "1000"), And(True(), False()))
	assert.Equal(t, "(pop > 1000 OR (TRUE AND FALSE))", e.String())
}
