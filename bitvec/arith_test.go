package bitvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddWidth(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Vector
		width int
	}{
		{"unsigned equal", FromUint(3, 4), FromUint(5, 4), 4},
		{"unsigned mixed", FromUint(3, 4), FromUint(1, 8), 8},
		{"signed both", FromInt(3), FromInt(-1), 4},
		{"signed and unsigned", FromInt(3), FromUint(1, 5), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := Add(tt.a, tt.b)
			assert.Equal(t, tt.width, sum.Len())
			assert.Equal(t, tt.a.Signed() && tt.b.Signed(), sum.Signed())
		})
	}
}

func TestAddValues(t *testing.T) {
	assert.Equal(t, int64(2), Add(FromInt(3), FromInt(-1)).Int64())
	assert.Equal(t, int64(8), Add(mustParse(t, "4'sb0111"), mustParse(t, "4'sb0001")).Int64())
	assert.Equal(t, uint64(0), Add(FromUint(15, 4), FromUint(1, 4)).Uint64(), "unsigned carry is dropped")
	assert.Equal(t, "xxxx", Add(FromUint(1, 4), mustParse(t, "4'b000x")).Binary())
}

func TestSubAndNeg(t *testing.T) {
	assert.Equal(t, uint64(254), Sub(FromUint(5, 8), FromUint(7, 8)).Uint64())
	assert.Equal(t, int64(-2), Sub(FromInt(5), FromInt(7)).Int64())

	n := Neg(FromUint(3, 4))
	assert.Equal(t, 5, n.Len())
	assert.True(t, n.Signed())
	assert.Equal(t, int64(-3), n.Int64())

	assert.Equal(t, int64(1), Neg(mustParse(t, "2'sb11")).Int64())
}

func TestMul(t *testing.T) {
	p := Mul(FromInt(3), FromInt(4))
	assert.Equal(t, int64(12), p.Int64())
	assert.Equal(t, "01100", p.Binary())

	assert.Equal(t, int64(-12), Mul(FromInt(-3), FromInt(4)).Int64())
	assert.Equal(t, uint64(225), Mul(FromUint(15, 4), FromUint(15, 4)).Uint64())
	assert.Equal(t, 8, Mul(FromUint(15, 4), FromUint(15, 4)).Len(), "sized product keeps full width")

	undef := Mul(FromUint(1, 3), mustParse(t, "5'bz0000"))
	assert.Equal(t, 8, undef.Len())
	assert.Equal(t, "xxxxxxxx", undef.Binary())
}

func TestDivMod(t *testing.T) {
	assert.Equal(t, uint64(14), Div(FromUint(100, 8), FromUint(7, 8)).Uint64())
	assert.Equal(t, uint64(2), Mod(FromUint(100, 8), FromUint(7, 8)).Uint64())
	assert.Equal(t, int64(-3), Div(FromInt(-7), FromInt(2)).Int64())
	assert.Equal(t, int64(-1), Mod(FromInt(-7), FromInt(2)).Int64())

	wide := Fill(B1, 130, true)
	q := Div(wide, FromUint(1, 130))
	assert.Equal(t, wide.Binary(), q.Binary(), "division is not limited to machine words")
}

func TestDivideByZero(t *testing.T) {
	for _, a := range []Vector{FromUint(9, 4), FromInt(-100), mustParse(t, "6'b1x0101"), FromString("hi")} {
		q := Div(a, Fill(B0, 4, true))
		require.Equal(t, a.Len(), q.Len())
		assert.Equal(t, Fill(Bx, a.Len(), false).Binary(), q.Binary())

		r := Mod(a, Fill(B0, 2, true))
		assert.Equal(t, Fill(Bx, a.Len(), false).Binary(), r.Binary())
	}
}

func TestBitwiseZeroExtends(t *testing.T) {
	a := mustParse(t, "2'b11")
	b := mustParse(t, "4'b1111")
	assert.Equal(t, "0011", And(a, b).Binary())
	assert.Equal(t, "1111", Or(a, b).Binary())
	assert.Equal(t, "1100", Xor(a, b).Binary())
	assert.Equal(t, "1100", Nand(a, b).Binary())
	assert.Equal(t, "0000", Nor(a, b).Binary())
	assert.Equal(t, "0011", Xnor(a, b).Binary())
	assert.Equal(t, "0x10", Not(mustParse(t, "4'b1z01")).Binary())
}

func TestReductions(t *testing.T) {
	v := mustParse(t, "4'b1011")
	assert.Equal(t, B0, ReduceAnd(v))
	assert.Equal(t, B1, ReduceNand(v))
	assert.Equal(t, B1, ReduceOr(v))
	assert.Equal(t, B0, ReduceNor(v))
	assert.Equal(t, B1, ReduceXor(v))
	assert.Equal(t, B0, ReduceXnor(v))

	u := mustParse(t, "4'b00x0")
	assert.Equal(t, B0, ReduceAnd(u))
	assert.Equal(t, Bx, ReduceOr(u))
	assert.Equal(t, B1, ReduceOr(mustParse(t, "4'b01x0")))

	assert.Equal(t, B1, LogicalNot(Fill(B0, 3, true)))
	assert.Equal(t, B1, LogicalAnd(FromUint(2, 4), FromUint(1, 1)))
	assert.Equal(t, B0, LogicalOr(FromUint(0, 4), FromUint(0, 1)))
}

func TestEquality(t *testing.T) {
	a := mustParse(t, "4'b10xz")
	b := mustParse(t, "4'b10xz")
	assert.Equal(t, B1, CaseEq(a, b))
	assert.Equal(t, B0, CaseNe(a, b))
	assert.Equal(t, Bx, Eq(a, b))
	assert.Equal(t, Bx, Ne(a, b))

	assert.Equal(t, B0, Eq(mustParse(t, "4'b00x1"), mustParse(t, "4'b01x1")), "known mismatch decides")
	assert.Equal(t, B0, Eq(FromUint(1, 4), FromUint(1, 8)), "different lengths are unequal")
	assert.Equal(t, B1, Eq(FromUint(6, 4), FromUint(6, 4)))
	assert.Equal(t, B0, CaseEq(mustParse(t, "2'bx0"), mustParse(t, "2'bz0")))
}

func TestRelational(t *testing.T) {
	assert.Equal(t, B1, Less(FromUint(3, 4), FromUint(12, 8)))
	assert.Equal(t, B0, Less(FromUint(16, 8), FromUint(3, 4)), "excess high bit decides")
	assert.Equal(t, B1, LessEq(FromUint(3, 4), FromUint(3, 2)))
	assert.Equal(t, B0, Less(FromUint(3, 4), FromUint(3, 2)))
	assert.Equal(t, B1, Greater(FromUint(5, 4), FromUint(4, 4)))
	assert.Equal(t, B1, GreaterEq(FromUint(4, 4), FromUint(4, 4)))
	assert.Equal(t, Bx, Less(mustParse(t, "4'b000x"), FromUint(9, 4)))
}

func TestShift(t *testing.T) {
	v := mustParse(t, "8'b00001111")
	assert.Equal(t, "00111100", Shl(v, 2).Binary())
	assert.Equal(t, "00000011", Shr(v, 2).Binary())
	assert.Equal(t, "00000000", Shl(v, 8).Binary())
	assert.Equal(t, "00111100", ShlBy(v, FromUint(2, 3)).Binary())
	assert.Equal(t, "00000000", ShrBy(v, Fill(B1, 70, true)).Binary())
	assert.Equal(t, "xxxxxxxx", ShlBy(v, mustParse(t, "2'b1x")).Binary())
}

func TestArithmeticShiftRight(t *testing.T) {
	neg := mustParse(t, "8'sb10010110")
	assert.Equal(t, "11100101", Ashr(neg, 2).Binary())
	assert.True(t, Ashr(neg, 2).Signed())
	assert.Equal(t, "11111111", Ashr(neg, 8).Binary())
	assert.Equal(t, "11111111", AshrBy(neg, Fill(B1, 70, true)).Binary())
	assert.Equal(t, "10010110", Ashr(neg, 0).Binary())

	pos := mustParse(t, "8'sb01010110")
	assert.Equal(t, "00010101", Ashr(pos, 2).Binary())

	unsigned := mustParse(t, "8'b10010110")
	assert.Equal(t, "00100101", AshrBy(unsigned, FromUint(2, 2)).Binary())
	assert.Equal(t, "xxxxxxxx", AshrBy(neg, mustParse(t, "2'bz1")).Binary())
}

func TestConcatRepeat(t *testing.T) {
	c := Concat(mustParse(t, "4'b0001"), mustParse(t, "4'b0010"))
	require.Equal(t, 8, c.Len())
	assert.Equal(t, "00010010", c.Binary())
	assert.Equal(t, B0, c.Get(0))
	assert.True(t, c.HasLen())

	assert.Equal(t, "101010", Repeat(mustParse(t, "2'b10"), 3).Binary())
	assert.Equal(t, 0, Repeat(mustParse(t, "2'b10"), 0).Len())
}
