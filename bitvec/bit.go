// Package bitvec implements four-valued bit vectors with Verilog semantics.
//
// A Vector is an ordered sequence of bits drawn from {0, 1, x, z}, bit 0
// being the least significant. Vectors carry three attributes besides their
// bits: whether the length was given explicitly in source (HasLen), whether
// the value is signed, and whether it came from a string literal. Every
// operation returns a new Vector; Set is the only mutator.
package bitvec

import "fmt"

// Bit is a single four-valued logic bit.
type Bit uint8

const (
	B0 Bit = iota // logic zero
	B1            // logic one
	Bx            // unknown
	Bz            // high impedance
)

func (b Bit) String() string {
	switch b {
	case B0:
		return "0"
	case B1:
		return "1"
	case Bx:
		return "x"
	case Bz:
		return "z"
	default:
		return fmt.Sprintf("Bit(%d)", b)
	}
}

// IsKnown reports whether b is 0 or 1.
func (b Bit) IsKnown() bool {
	return b == B0 || b == B1
}

// Not inverts a bit. Unknown and high-impedance both invert to x.
func (b Bit) Not() Bit {
	switch b {
	case B0:
		return B1
	case B1:
		return B0
	default:
		return Bx
	}
}

// AndBit is the four-valued AND. A 0 on either side absorbs.
func AndBit(l, r Bit) Bit {
	if l == B0 || r == B0 {
		return B0
	}
	if l == B1 && r == B1 {
		return B1
	}
	return Bx
}

// OrBit is the four-valued OR. A 1 on either side absorbs.
func OrBit(l, r Bit) Bit {
	if l == B1 || r == B1 {
		return B1
	}
	if l == B0 && r == B0 {
		return B0
	}
	return Bx
}

// XorBit is the four-valued XOR.
func XorBit(l, r Bit) Bit {
	if !l.IsKnown() || !r.IsKnown() {
		return Bx
	}
	if l == r {
		return B0
	}
	return B1
}

// NandBit is the inverse of AndBit.
func NandBit(l, r Bit) Bit { return AndBit(l, r).Not() }

// NorBit is the inverse of OrBit.
func NorBit(l, r Bit) Bit { return OrBit(l, r).Not() }

// XnorBit is the inverse of XorBit.
func XnorBit(l, r Bit) Bit { return XorBit(l, r).Not() }

// addBit is a full adder. Any unknown input makes both outputs unknown.
func addBit(l, r, c Bit) (sum, carry Bit) {
	if !l.IsKnown() || !r.IsKnown() || !c.IsKnown() {
		return Bx, Bx
	}
	n := int(l) + int(r) + int(c)
	return Bit(n & 1), Bit(n >> 1)
}
