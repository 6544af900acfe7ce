package netelab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr   string
		params []Param
		want   uint64
	}{
		{"3 * 4", nil, 12},
		{"8'hff & 8'h0f", nil, 15},
		{"W - 1", []Param{{"W", "8"}}, 7},
		{"H - 1", []Param{{"W", "4"}, {"H", "W * 2"}}, 7},
		{"W == 8 ? 5 : 6", []Param{{"W", "8"}}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, err := Evaluate(tt.expr, tt.params...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Uint64())
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	_, err := Evaluate("a + 1")
	require.ErrorIs(t, err, ErrNotConstant)

	_, err = Evaluate("1 +")
	require.Error(t, err)

	_, err = Evaluate("P", Param{"P", "1"}, Param{"P", "2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defined twice")

	_, err = Evaluate("P", Param{"P", "q"})
	require.ErrorIs(t, err, ErrNotConstant)
}
