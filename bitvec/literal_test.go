package bitvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		text   string
		binary string
		hasLen bool
		signed bool
	}{
		{"12", "01100", false, true},
		{"0", "0", false, true},
		{"1_000", "01111101000", false, true},
		{"'d5", "101", false, false},
		{"'dx", "x", false, false},
		{"'hF0", "11110000", false, false},
		{"4'b1", "0001", true, false},
		{"4'b10xz", "10xz", true, false},
		{"4'bx", "xxxx", true, false},
		{"8'hz", "zzzzzzzz", true, false},
		{"6'o17", "001111", true, false},
		{"3'b1111", "111", true, false},
		{"4'b1_0x", "010x", true, false},
		{"8'shFF", "11111111", true, true},
		{"4'SD3", "0011", true, true},
		{"8'd255", "11111111", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			v, err := ParseLiteral(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.binary, v.Binary())
			assert.Equal(t, tt.hasLen, v.HasLen())
			assert.Equal(t, tt.signed, v.Signed())
		})
	}
}

func TestParseLiteralErrors(t *testing.T) {
	for _, text := range []string{"", "abc", "4'q1", "'b102", "0'b1", "4'h", "'", "8'hG"} {
		_, err := ParseLiteral(text)
		assert.Error(t, err, "literal %q", text)
	}
}

func TestParseLiteralValues(t *testing.T) {
	assert.Equal(t, int64(-1), mustParse(t, "8'shFF").Int64())
	assert.Equal(t, int64(12), mustParse(t, "12").Int64())
	assert.Equal(t, uint64(5), mustParse(t, "'d5").Uint64())
}
