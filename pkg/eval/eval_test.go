package eval

import (
	"testing"

	"github.com/leapstack-labs/rowql/pkg/core"
	"github.com/leapstack-labs/rowql/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateRow() *core.Row {
	return core.RowOf("state", "CA", "pop", 39000000.0, "pop_male", 19500000.0, "capital", "Sacramento", "coastal", true)
}

func TestEvaluate_Literals(t *testing.T) {
	rows := []*core.Row{stateRow(), core.NewRow(0), nil}
	for _, r := range rows {
		got, err := Evaluate(r, core.True())
		require.NoError(t, err)
		assert.True(t, got)

		got, err = Evaluate(r, core.False())
		require.NoError(t, err)
		assert.False(t, got)
	}
}

func TestEvaluate_Comparisons(t *testing.T) {
	tests := []struct {
		name string
		expr core.Expr
		want bool
	}{
		{"column greater than number", core.Compare("pop", token.GT, "20000000"), true},
		{"column less than number", core.Compare("pop", token.LT, "20000000"), false},
		{"column equals string", core.Compare("state", token.EQ, "CA"), true},
		{"column not equals string", core.Compare("state", token.NE, "CA"), false},
		{"literal on the left", core.Compare("20000000", token.LT, "pop"), true},
		{"column to column", core.Compare("pop_male", token.LT, "pop"), true},
		{"string ordering", core.Compare("capital", token.GT, "Austin"), true},
		{"number equals digits", core.Compare("pop", token.EQ, "39000000"), true},
		{"number never equals string", core.Compare("state", token.EQ, "39000000"), false},
		{"unknown column stays text", core.Compare("region", token.EQ, "region"), true},
		{"leading zeros", core.Compare("007", token.EQ, "7"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(stateRow(), tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_Logical(t *testing.T) {
	big := core.Compare("pop", token.GT, "1000000000")
	mid := core.Compare("pop", token.GT, "1000000")
	notCA := core.Compare("state", token.NE, "CA")

	tests := []struct {
		name string
		row  *core.Row
		want bool
	}{
		{"CA excluded", core.RowOf("state", "CA", "pop", 39000000.0), false},
		{"OH included", core.RowOf("state", "OH", "pop", 11000000.0), true},
		{"TX included", core.RowOf("state", "TX", "pop", 29000000.0), true},
		{"small state excluded", core.RowOf("state", "WY", "pop", 580000.0), false},
	}
	expr := core.Or(big, core.And(mid, notCA))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.row, expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_TypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		expr core.Expr
	}{
		{"number vs string", core.Compare("pop", token.GT, "many")},
		{"string vs number", core.Compare("state", token.LT, "5")},
		{"boolean ordering", core.Compare("coastal", token.GT, "0")},
		{"empty operand", core.Compare("pop", token.GT, "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, mode := range []core.Mode{core.ModeStrict, core.ModePermissive} {
				_, err := New(core.Options{Mode: mode}).Evaluate(stateRow(), tt.expr)
				require.Error(t, err)
				assert.ErrorIs(t, err, core.ErrTypeMismatch)
			}
		})
	}
}

func TestEvaluate_BothSidesEvaluated(t *testing.T) {
	// OR does not short-circuit: an error on the right side surfaces even
	// when the left side is already true.
	expr := core.Or(core.True(), core.Compare("pop", token.GT, "many"))
	_, err := Evaluate(stateRow(), expr)
	assert.ErrorIs(t, err, core.ErrTypeMismatch)
}

func TestEvaluate_Malformed(t *testing.T) {
	tests := []struct {
		name string
		expr core.Expr
	}{
		{"nil expression", nil},
		{"missing right", &core.Logical{Left: core.True(), Op: token.OpAnd}},
		{"missing left", &core.Logical{Op: token.OpOr, Right: core.True()}},
		{"bad logical op", &core.Logical{Left: core.True(), Op: "XOR", Right: core.True()}},
		{"bad comparison op", core.Compare("pop", "<=", "5")},
		{"typed nil literal", (*core.Literal)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(stateRow(), tt.expr)
			assert.ErrorIs(t, err, core.ErrMalformedExpression)

			got, err := New(core.Options{Mode: core.ModePermissive}).Evaluate(stateRow(), tt.expr)
			require.NoError(t, err)
			assert.False(t, got)
		})
	}
}

func TestResolve(t *testing.T) {
	r := core.RowOf("pop", 5.0, "123", "column named with digits", "nothing", nil)

	assert.Equal(t, 5.0, Resolve(r, "pop"))
	assert.Equal(t, "column named with digits", Resolve(r, "123"), "row keys win over numbers")
	assert.Nil(t, Resolve(r, "nothing"))
	assert.Equal(t, 42.0, Resolve(r, "42"))
	assert.Equal(t, "4.2", Resolve(r, "4.2"), "only all-digit operands become numbers")
	assert.Equal(t, "-1", Resolve(r, "-1"))
}

func TestCompare_Null(t *testing.T) {
	eq, err := Compare(nil, token.EQ, nil)
	require.NoError(t, err)
	assert.True(t, eq)

	ne, err := Compare(nil, token.NE, "x")
	require.NoError(t, err)
	assert.True(t, ne)

	_, err = Compare(nil, token.LT, 1.0)
	assert.ErrorIs(t, err, core.ErrTypeMismatch)
}

func TestEvaluate_IntegerValuedRow(t *testing.T) {
	r := core.NewRow(2)
	r.Set("state", "CA")
	r.Set("pop", 39000000)

	tests := []struct {
		name string
		expr core.Expr
		want bool
	}{
		{"greater than", core.Compare("pop", token.GT, "20000000"), true},
		{"less than", core.Compare("pop", token.LT, "20000000"), false},
		{"equal", core.Compare("pop", token.EQ, "39000000"), true},
		{"not equal", core.Compare("pop", token.NE, "39000000"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(r, tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare_MixedNumericKinds(t *testing.T) {
	gt, err := Compare(int64(39000000), token.GT, uint16(20000))
	require.NoError(t, err)
	assert.True(t, gt)

	eq, err := Compare(int32(7), token.EQ, 7.0)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = Compare([]byte("CA"), token.EQ, "CA")
	require.NoError(t, err)
	assert.True(t, eq)
}
