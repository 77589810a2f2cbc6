package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	t.Run("keeps key order per row", func(t *testing.T) {
		table, err := DecodeJSON(strings.NewReader(`[{"b": 1, "a": "x", "c": null}, {"c": true, "a": "y"}]`))
		require.NoError(t, err)
		require.Len(t, table, 2)
		assert.Equal(t, []string{"b", "a", "c"}, table[0].Keys())
		assert.Equal(t, []string{"c", "a"}, table[1].Keys())

		b, _ := table[0].Get("b")
		assert.Equal(t, 1.0, b)
		c, ok := table[0].Get("c")
		assert.True(t, ok)
		assert.Nil(t, c)
	})

	t.Run("duplicate key keeps first position and last value", func(t *testing.T) {
		table, err := DecodeJSON(strings.NewReader(`[{"a": 1, "b": 2, "a": 3}]`))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, table[0].Keys())
		a, _ := table[0].Get("a")
		assert.Equal(t, 3.0, a)
	})

	t.Run("empty array", func(t *testing.T) {
		table, err := DecodeJSON(strings.NewReader(`[]`))
		require.NoError(t, err)
		assert.NotNil(t, table)
		assert.Empty(t, table)
	})

	errorTests := []struct {
		name  string
		input string
		msg   string
	}{
		{"top-level object", `{"a": 1}`, "expected a JSON array"},
		{"array of scalars", `[1, 2]`, "row 0: expected an object"},
		{"nested object", `[{"a": {"b": 1}}]`, `key "a": nested values are not supported`},
		{"nested array", `[{"a": [1]}]`, "nested values are not supported"},
		{"trailing data", `[] []`, "unexpected data"},
		{"truncated", `[{"a": 1}`, ""},
	}
	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	t.Run("anchors and aliases", func(t *testing.T) {
		table, err := DecodeYAML(strings.NewReader(`
- name: &n Ohio
  pop: 11000000
- name: *n
  pop: 12
`))
		require.NoError(t, err)
		name, _ := table[1].Get("name")
		assert.Equal(t, "Ohio", name)
	})

	t.Run("null values", func(t *testing.T) {
		table, err := DecodeYAML(strings.NewReader("- a: ~\n  b: x\n"))
		require.NoError(t, err)
		a, ok := table[0].Get("a")
		assert.True(t, ok)
		assert.Nil(t, a)
	})

	t.Run("empty document", func(t *testing.T) {
		table, err := DecodeYAML(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, table)
	})

	t.Run("mapping at top level", func(t *testing.T) {
		_, err := DecodeYAML(strings.NewReader("a: 1\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected a sequence")
	})

	t.Run("nested value", func(t *testing.T) {
		_, err := DecodeYAML(strings.NewReader("- a:\n    b: 1\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nested values are not supported")
	})
}

func TestDecodeCSV(t *testing.T) {
	t.Run("typed cells", func(t *testing.T) {
		table, err := DecodeCSV(strings.NewReader("name,n,flag,note\nOhio,1.5,TRUE,\nTexas,-2,no,NaN\n"))
		require.NoError(t, err)
		require.Len(t, table, 2)

		n, _ := table[0].Get("n")
		assert.Equal(t, 1.5, n)
		flag, _ := table[0].Get("flag")
		assert.Equal(t, true, flag)
		note, _ := table[0].Get("note")
		assert.Equal(t, "", note)

		n, _ = table[1].Get("n")
		assert.Equal(t, -2.0, n)
		flag, _ = table[1].Get("flag")
		assert.Equal(t, "no", flag)
		note, _ = table[1].Get("note")
		assert.Equal(t, "NaN", note)
	})

	t.Run("short record omits keys", func(t *testing.T) {
		table, err := DecodeCSV(strings.NewReader("a,b,c\n1,2\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, table[0].Keys())
	})

	t.Run("long record", func(t *testing.T) {
		_, err := DecodeCSV(strings.NewReader("a,b\n1,2,3\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "header has 2")
	})

	t.Run("empty header column", func(t *testing.T) {
		_, err := DecodeCSV(strings.NewReader("a,,c\n1,2,3\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "header column 2 is empty")
	})

	t.Run("empty input", func(t *testing.T) {
		table, err := DecodeCSV(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, table)
	})
}
