package bitvec

import (
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"
)

// Vector is a four-valued bit vector.
//
// The zero Vector is an empty, unsigned, unsized value. Copies made by
// assignment share bit storage; use Clone before calling Set on a copy.
type Vector struct {
	bits   []Bit
	hasLen bool
	signed bool
	str    bool
}

// Fill returns an n-bit vector with every bit set to b.
func Fill(b Bit, n int, hasLen bool) Vector {
	bits := make([]Bit, max(n, 0))
	if b != B0 {
		for i := range bits {
			bits[i] = b
		}
	}
	return Vector{bits: bits, hasLen: hasLen}
}

// FromUint returns the low n bits of val as a sized, unsigned vector.
func FromUint(val uint64, n int) Vector {
	bits := make([]Bit, max(n, 0))
	for i := range bits {
		if i < 64 && (val>>uint(i))&1 == 1 {
			bits[i] = B1
		}
	}
	return Vector{bits: bits, hasLen: true}
}

// FromInt returns val in the minimal two's-complement width that holds it.
// The result is signed and has no definite length.
func FromInt(val int64) Vector {
	n := 1
	for tmp := val; tmp != 0 && tmp != -1; tmp >>= 1 {
		n++
	}
	bits := make([]Bit, n)
	for i := range bits {
		if (val>>uint(min(i, 63)))&1 == 1 {
			bits[i] = B1
		}
	}
	return Vector{bits: bits, signed: true}
}

// FromBits copies bits (LSB first) into a new unsigned vector.
func FromBits(bits []Bit, hasLen bool) Vector {
	return Vector{bits: slices.Clone(bits), hasLen: hasLen}
}

// FromString packs s at 8 bits per byte. The first byte of s lands in
// the most significant byte of the vector.
func FromString(s string) Vector {
	n := len(s) * 8
	bits := make([]Bit, n)
	for i := range bits {
		c := s[len(s)-1-i/8]
		if c&(1<<uint(i%8)) != 0 {
			bits[i] = B1
		}
	}
	return Vector{bits: bits, hasLen: true, str: true}
}

// Resize copies v into a vector of n bits. Bits above the old length are
// copies of the sign bit when v is signed and zero otherwise. The result
// keeps v's signedness and has a definite length.
func Resize(v Vector, n int) Vector {
	bits := make([]Bit, max(n, 0))
	copy(bits, v.bits)
	if v.signed && len(v.bits) > 0 && n > len(v.bits) {
		sign := v.bits[len(v.bits)-1]
		for i := len(v.bits); i < n; i++ {
			bits[i] = sign
		}
	}
	return Vector{bits: bits, hasLen: true, signed: v.signed}
}

// Len returns the number of bits.
func (v Vector) Len() int { return len(v.bits) }

// HasLen reports whether the length was given explicitly.
func (v Vector) HasLen() bool { return v.hasLen }

// Signed reports whether the value is signed.
func (v Vector) Signed() bool { return v.signed }

// IsString reports whether the value came from a string literal.
func (v Vector) IsString() bool { return v.str }

// Get returns bit idx. It panics if idx is out of range.
func (v Vector) Get(idx int) Bit { return v.bits[idx] }

// MSB returns the most significant bit, or B0 for an empty vector.
func (v Vector) MSB() Bit {
	if len(v.bits) == 0 {
		return B0
	}
	return v.bits[len(v.bits)-1]
}

// Bits returns a copy of the bits, LSB first.
func (v Vector) Bits() []Bit { return slices.Clone(v.bits) }

// Clone returns a copy that shares no storage with v.
func (v Vector) Clone() Vector {
	v.bits = slices.Clone(v.bits)
	return v
}

// Set replaces bit idx in place. It panics if idx is not below Len.
func (v *Vector) Set(idx int, b Bit) {
	if idx < 0 || idx >= len(v.bits) {
		panic(fmt.Sprintf("bitvec: Set index %d out of range for %d-bit vector", idx, len(v.bits)))
	}
	v.bits[idx] = b
}

// WithSigned returns a copy of v with the signed flag replaced.
func (v Vector) WithSigned(signed bool) Vector {
	out := v.Clone()
	out.signed = signed
	return out
}

// WithHasLen returns a copy of v with the definite-length flag replaced.
func (v Vector) WithHasLen(hasLen bool) Vector {
	out := v.Clone()
	out.hasLen = hasLen
	return out
}

// IsDefined reports whether no bit is x or z.
func (v Vector) IsDefined() bool {
	for _, b := range v.bits {
		if !b.IsKnown() {
			return false
		}
	}
	return true
}

// IsZero reports whether every bit is 0.
func (v Vector) IsZero() bool {
	for _, b := range v.bits {
		if b != B0 {
			return false
		}
	}
	return true
}

// Uint64 returns the low 64 bits as an unsigned integer, or 0 when v is
// not fully defined.
func (v Vector) Uint64() uint64 {
	if !v.IsDefined() {
		return 0
	}
	var val uint64
	for i := range min(len(v.bits), 64) {
		if v.bits[i] == B1 {
			val |= 1 << uint(i)
		}
	}
	return val
}

// Int64 returns the value as a signed integer, or 0 when v is not fully
// defined. A signed vector with its top bit set is sign-extended; values
// wider than 64 bits keep only their low 64 bits.
func (v Vector) Int64() int64 {
	if !v.IsDefined() || len(v.bits) == 0 {
		return 0
	}
	val := int64(v.Uint64())
	if v.signed && v.MSB() == B1 && len(v.bits) < 64 {
		val |= -1 << uint(len(v.bits))
	}
	return val
}

// Text decodes a packed string, most significant byte first.
func (v Vector) Text() string {
	n := len(v.bits) / 8
	buf := make([]byte, 0, n)
	for i := n - 1; i >= 0; i-- {
		var c byte
		for k := range 8 {
			if v.bits[i*8+k] == B1 {
				c |= 1 << uint(k)
			}
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// bitAt returns bit i, or the padding bit past the top: the sign bit when
// signExt is set, 0 otherwise.
func (v Vector) bitAt(i int, signExt bool) Bit {
	if i < len(v.bits) {
		return v.bits[i]
	}
	if signExt && len(v.bits) > 0 {
		return v.bits[len(v.bits)-1]
	}
	return B0
}

// toBig interprets a fully defined vector as an integer.
func (v Vector) toBig(signed bool) *big.Int {
	x := new(big.Int)
	for i := len(v.bits) - 1; i >= 0; i-- {
		x.Lsh(x, 1)
		if v.bits[i] == B1 {
			x.SetBit(x, 0, 1)
		}
	}
	if signed && v.MSB() == B1 {
		x.Sub(x, new(big.Int).Lsh(big.NewInt(1), uint(len(v.bits))))
	}
	return x
}

// fromBig extracts the low n two's-complement bits of x.
func fromBig(x *big.Int, n int) []Bit {
	bits := make([]Bit, n)
	y := x
	if x.Sign() < 0 {
		y = new(big.Int).Add(x, new(big.Int).Lsh(big.NewInt(1), uint(n)))
	}
	for i := range bits {
		if y.Bit(i) == 1 {
			bits[i] = B1
		}
	}
	return bits
}

// Binary renders every bit, most significant first.
func (v Vector) Binary() string {
	var b strings.Builder
	b.Grow(len(v.bits))
	for i := len(v.bits) - 1; i >= 0; i-- {
		b.WriteString(v.bits[i].String())
	}
	return b.String()
}

// Decimal renders a fully defined value in base 10. It returns false when
// any bit is x or z.
func (v Vector) Decimal() (string, bool) {
	if !v.IsDefined() {
		return "", false
	}
	return v.toBig(v.signed).String(), true
}

// String renders v the way diagnostics print numbers: a quoted string
// for string literals, every bit for sized values, decimal for defined
// unsized values, and the shortest binary pattern otherwise.
func (v Vector) String() string {
	if v.str {
		return strconv.Quote(v.Text())
	}
	if v.hasLen {
		return strconv.Itoa(len(v.bits)) + "'b" + v.Binary()
	}
	if d, ok := v.Decimal(); ok {
		return d
	}
	top := len(v.bits) - 1
	for top > 0 && v.bits[top-1] == v.bits[top] {
		top--
	}
	return "'b" + Vector{bits: v.bits[:top+1]}.Binary()
}
