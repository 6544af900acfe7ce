package bitvec

import "math/big"

// Trim shrinks a vector without a definite length to the fewest bits
// that keep its value. Signed values keep one copy of the sign bit;
// unsigned values drop leading zeros down to a single bit. Sized values
// are returned unchanged.
func Trim(v Vector) Vector {
	if v.hasLen || len(v.bits) == 0 {
		return v.Clone()
	}
	top := len(v.bits) - 1
	if v.signed {
		sign := v.bits[top]
		for top > 0 && v.bits[top] == sign {
			top--
		}
		if v.bits[top] != sign {
			top++
		}
	} else {
		for top > 0 && v.bits[top] == B0 {
			top--
		}
	}
	out := v
	out.bits = FromBits(v.bits[:top+1], false).bits
	return out
}

// Add returns a + b. The result is as wide as the wider operand, plus one
// bit for the carry when both operands are signed. Operands are padded
// with their sign bit when both are signed, with zero otherwise.
func Add(a, b Vector) Vector {
	signed := a.signed && b.signed
	n := max(a.Len(), b.Len())
	if signed {
		n++
	}
	bits := make([]Bit, n)
	carry := B0
	for i := range bits {
		bits[i], carry = addBit(a.bitAt(i, signed), b.bitAt(i, signed), carry)
	}
	return Vector{bits: bits, hasLen: a.hasLen && b.hasLen, signed: signed}
}

// Sub returns a - b at the width of the wider operand, computed as
// a + ^b + 1.
func Sub(a, b Vector) Vector {
	signed := a.signed && b.signed
	bits := make([]Bit, max(a.Len(), b.Len()))
	carry := B1
	for i := range bits {
		bits[i], carry = addBit(a.bitAt(i, signed), b.bitAt(i, signed).Not(), carry)
	}
	return Vector{bits: bits, hasLen: a.hasLen && b.hasLen, signed: signed}
}

// Neg returns -a in one more bit than a. The result is signed.
func Neg(a Vector) Vector {
	n := a.Len() + 1
	out := Sub(Fill(B0, n, true), Resize(a, n))
	out.signed = true
	out.hasLen = a.hasLen
	return out
}

// Mul returns a * b. The product is computed at the sum of the operand
// widths and then trimmed. An operand with x or z bits makes every bit
// of the product unknown.
func Mul(a, b Vector) Vector {
	signed := a.signed && b.signed
	hasLen := a.hasLen && b.hasLen
	n := a.Len() + b.Len()
	if !a.IsDefined() || !b.IsDefined() {
		out := Fill(Bx, n, hasLen)
		out.signed = signed
		return out
	}
	acc := make([]Bit, n)
	for i := range n {
		if b.bitAt(i, signed) != B1 {
			continue
		}
		carry := B0
		for j := i; j < n; j++ {
			acc[j], carry = addBit(acc[j], a.bitAt(j-i, signed), carry)
		}
	}
	return Trim(Vector{bits: acc, hasLen: hasLen, signed: signed})
}

// Div returns a / b truncated toward zero at the width of a, then
// trimmed. Division by zero or by an operand with x or z bits gives an
// all-unknown result.
func Div(a, b Vector) Vector {
	q, ok := divmod(a, b, false)
	if !ok {
		return q
	}
	return Trim(q)
}

// Mod returns the remainder of a / b at the width of a. The remainder
// takes the sign of the dividend.
func Mod(a, b Vector) Vector {
	r, _ := divmod(a, b, true)
	return r
}

func divmod(a, b Vector, rem bool) (Vector, bool) {
	signed := a.signed && b.signed
	hasLen := a.hasLen && b.hasLen
	if !a.IsDefined() || !b.IsDefined() || b.IsZero() {
		out := Fill(Bx, a.Len(), hasLen)
		out.signed = signed
		return out, false
	}
	x, y := a.toBig(signed), b.toBig(signed)
	var z big.Int
	if rem {
		z.Rem(x, y)
	} else {
		z.Quo(x, y)
	}
	return Vector{bits: fromBig(&z, a.Len()), hasLen: hasLen, signed: signed}, true
}

// Shl shifts v left by n bits, filling with zero. The width is unchanged.
func Shl(v Vector, n int) Vector {
	out := v.Clone()
	out.str = false
	for i := range out.bits {
		if i >= n && n >= 0 {
			out.bits[i] = v.bits[i-n]
		} else {
			out.bits[i] = B0
		}
	}
	return out
}

// Shr shifts v right by n bits, filling with zero. The width is unchanged.
func Shr(v Vector, n int) Vector {
	out := v.Clone()
	out.str = false
	for i := range out.bits {
		if n >= 0 && i+n < len(v.bits) {
			out.bits[i] = v.bits[i+n]
		} else {
			out.bits[i] = B0
		}
	}
	return out
}

// ShlBy shifts v left by the value of d. An undefined distance gives an
// all-unknown result of the same width.
func ShlBy(v, d Vector) Vector {
	if !d.IsDefined() {
		return unknownLike(v)
	}
	return Shl(v, d.distance(v.Len()))
}

// ShrBy shifts v right by the value of d. An undefined distance gives an
// all-unknown result of the same width.
func ShrBy(v, d Vector) Vector {
	if !d.IsDefined() {
		return unknownLike(v)
	}
	return Shr(v, d.distance(v.Len()))
}

// Ashr shifts v right by n bits, filling with the sign bit when v is
// signed and with zero otherwise. The width is unchanged.
func Ashr(v Vector, n int) Vector {
	out := Shr(v, n)
	if !v.signed || len(v.bits) == 0 {
		return out
	}
	sign := v.bits[len(v.bits)-1]
	for i := max(len(v.bits)-max(n, 0), 0); i < len(out.bits); i++ {
		out.bits[i] = sign
	}
	return out
}

// AshrBy shifts v arithmetically right by the value of d. An undefined
// distance gives an all-unknown result of the same width.
func AshrBy(v, d Vector) Vector {
	if !d.IsDefined() {
		return unknownLike(v)
	}
	return Ashr(v, d.distance(v.Len()))
}

// distance returns the unsigned value of a defined vector, clamped to limit.
func (v Vector) distance(limit int) int {
	for i := 63; i < len(v.bits); i++ {
		if v.bits[i] == B1 {
			return limit
		}
	}
	d := v.Uint64()
	if d > uint64(limit) {
		return limit
	}
	return int(d)
}

func unknownLike(v Vector) Vector {
	out := Fill(Bx, v.Len(), v.hasLen)
	out.signed = v.signed
	return out
}

// Concat joins parts with the first part in the most significant
// position. The result is unsigned and sized when every part is sized.
func Concat(parts ...Vector) Vector {
	hasLen := true
	n := 0
	for _, p := range parts {
		n += p.Len()
		hasLen = hasLen && p.hasLen
	}
	bits := make([]Bit, 0, n)
	for i := len(parts) - 1; i >= 0; i-- {
		bits = append(bits, parts[i].bits...)
	}
	return Vector{bits: bits, hasLen: hasLen}
}

// Repeat concatenates count copies of v.
func Repeat(v Vector, count int) Vector {
	parts := make([]Vector, max(count, 0))
	for i := range parts {
		parts[i] = v
	}
	out := Concat(parts...)
	out.hasLen = v.hasLen
	return out
}
