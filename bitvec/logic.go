package bitvec

// bitwise applies op across both operands. The shorter operand is
// zero-extended for every operator.
func bitwise(a, b Vector, op func(l, r Bit) Bit) Vector {
	bits := make([]Bit, max(a.Len(), b.Len()))
	for i := range bits {
		bits[i] = op(a.bitAt(i, false), b.bitAt(i, false))
	}
	return Vector{bits: bits, hasLen: a.hasLen && b.hasLen, signed: a.signed && b.signed}
}

// And returns the bitwise AND of a and b.
func And(a, b Vector) Vector { return bitwise(a, b, AndBit) }

// Or returns the bitwise OR of a and b.
func Or(a, b Vector) Vector { return bitwise(a, b, OrBit) }

// Xor returns the bitwise XOR of a and b.
func Xor(a, b Vector) Vector { return bitwise(a, b, XorBit) }

// Nand returns the bitwise NAND of a and b.
func Nand(a, b Vector) Vector { return bitwise(a, b, NandBit) }

// Nor returns the bitwise NOR of a and b.
func Nor(a, b Vector) Vector { return bitwise(a, b, NorBit) }

// Xnor returns the bitwise XNOR of a and b.
func Xnor(a, b Vector) Vector { return bitwise(a, b, XnorBit) }

// Not returns the bitwise complement of v.
func Not(v Vector) Vector {
	out := v.Clone()
	out.str = false
	for i, b := range v.bits {
		out.bits[i] = b.Not()
	}
	return out
}

func reduce(v Vector, seed Bit, op func(l, r Bit) Bit) Bit {
	acc := seed
	for _, b := range v.bits {
		acc = op(acc, b)
	}
	return acc
}

// ReduceAnd folds every bit of v through AND.
func ReduceAnd(v Vector) Bit { return reduce(v, B1, AndBit) }

// ReduceNand is the inverse of ReduceAnd.
func ReduceNand(v Vector) Bit { return ReduceAnd(v).Not() }

// ReduceOr folds every bit of v through OR.
func ReduceOr(v Vector) Bit { return reduce(v, B0, OrBit) }

// ReduceNor is the inverse of ReduceOr.
func ReduceNor(v Vector) Bit { return ReduceOr(v).Not() }

// ReduceXor folds every bit of v through XOR.
func ReduceXor(v Vector) Bit { return reduce(v, B0, XorBit) }

// ReduceXnor is the inverse of ReduceXor.
func ReduceXnor(v Vector) Bit { return ReduceXor(v).Not() }

// LogicalNot is !v: the inverted truth value of v.
func LogicalNot(v Vector) Bit { return ReduceOr(v).Not() }

// LogicalAnd is a && b.
func LogicalAnd(a, b Vector) Bit { return AndBit(ReduceOr(a), ReduceOr(b)) }

// LogicalOr is a || b.
func LogicalOr(a, b Vector) Bit { return OrBit(ReduceOr(a), ReduceOr(b)) }

// Eq is the == operator. Operands of different lengths compare unequal.
// A known differing bit pair decides 0; otherwise any x or z gives x.
func Eq(a, b Vector) Bit {
	if a.Len() != b.Len() {
		return B0
	}
	unknown := false
	for i, l := range a.bits {
		r := b.bits[i]
		if !l.IsKnown() || !r.IsKnown() {
			unknown = true
			continue
		}
		if l != r {
			return B0
		}
	}
	if unknown {
		return Bx
	}
	return B1
}

// Ne is the != operator.
func Ne(a, b Vector) Bit { return Eq(a, b).Not() }

// CaseEq is the === operator: x and z bits compare as literal values.
func CaseEq(a, b Vector) Bit {
	if a.Len() != b.Len() {
		return B0
	}
	for i, l := range a.bits {
		if l != b.bits[i] {
			return B0
		}
	}
	return B1
}

// CaseNe is the !== operator.
func CaseNe(a, b Vector) Bit { return CaseEq(a, b).Not() }

// compare orders a and b as unsigned values with the shorter operand
// zero-extended. Any x or z in a compared bit gives x.
func compare(a, b Vector, orEqual bool) Bit {
	n := max(a.Len(), b.Len())
	for i := range n {
		if !a.bitAt(i, false).IsKnown() || !b.bitAt(i, false).IsKnown() {
			return Bx
		}
	}
	for i := n - 1; i >= 0; i-- {
		l, r := a.bitAt(i, false), b.bitAt(i, false)
		if l != r {
			if l == B0 {
				return B1
			}
			return B0
		}
	}
	if orEqual {
		return B1
	}
	return B0
}

// Less is a < b.
func Less(a, b Vector) Bit { return compare(a, b, false) }

// LessEq is a <= b.
func LessEq(a, b Vector) Bit { return compare(a, b, true) }

// Greater is a > b.
func Greater(a, b Vector) Bit { return compare(b, a, false) }

// GreaterEq is a >= b.
func GreaterEq(a, b Vector) Bit { return compare(b, a, true) }

// IsBefore is a strict total order for sorting vectors: shorter vectors
// first, then by bit values from the most significant end, with
// 0 < 1 < x < z.
func IsBefore(a, b Vector) bool {
	if a.Len() != b.Len() {
		return a.Len() < b.Len()
	}
	for i := a.Len() - 1; i >= 0; i-- {
		if a.bits[i] != b.bits[i] {
			return a.bits[i] < b.bits[i]
		}
	}
	return false
}

// FromBit returns a one-bit sized vector.
func FromBit(b Bit) Vector {
	return Vector{bits: []Bit{b}, hasLen: true}
}
