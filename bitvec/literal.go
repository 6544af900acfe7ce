package bitvec

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ParseLiteral parses a Verilog number literal.
//
// Plain decimals ("12") are signed and unsized at their minimal
// two's-complement width. Based literals ("'d5", "4'b10xz", "8'shFF")
// are unsigned unless the base carries an s, and sized when a size
// prefix is present. A sized literal shorter than its size is padded
// with x or z when its top digit is x or z and with zero otherwise.
func ParseLiteral(text string) (Vector, error) {
	s := strings.ReplaceAll(text, "_", "")
	tick := strings.IndexByte(s, '\'')
	if tick < 0 {
		x, ok := new(big.Int).SetString(s, 10)
		if !ok || x.Sign() < 0 {
			return Vector{}, fmt.Errorf("invalid decimal literal %q", text)
		}
		return Vector{bits: fromBig(x, x.BitLen()+1), signed: true}, nil
	}

	size := 0
	if sizeText := strings.TrimSpace(s[:tick]); sizeText != "" {
		n, err := strconv.Atoi(sizeText)
		if err != nil || n <= 0 {
			return Vector{}, fmt.Errorf("invalid size in literal %q", text)
		}
		size = n
	}

	rest := strings.ToLower(strings.TrimSpace(s[tick+1:]))
	signed := false
	if strings.HasPrefix(rest, "s") {
		signed = true
		rest = rest[1:]
	}
	if rest == "" {
		return Vector{}, fmt.Errorf("missing base in literal %q", text)
	}
	base, digits := rest[0], strings.TrimSpace(rest[1:])
	if digits == "" {
		return Vector{}, fmt.Errorf("missing digits in literal %q", text)
	}

	var bits []Bit
	switch base {
	case 'd':
		switch digits {
		case "x":
			bits = []Bit{Bx}
		case "z", "?":
			bits = []Bit{Bz}
		default:
			x, ok := new(big.Int).SetString(digits, 10)
			if !ok {
				return Vector{}, fmt.Errorf("invalid decimal digits in literal %q", text)
			}
			bits = fromBig(x, max(x.BitLen(), 1))
		}
	case 'b':
		var err error
		if bits, err = radixBits(digits, 1); err != nil {
			return Vector{}, fmt.Errorf("literal %q: %w", text, err)
		}
	case 'o':
		var err error
		if bits, err = radixBits(digits, 3); err != nil {
			return Vector{}, fmt.Errorf("literal %q: %w", text, err)
		}
	case 'h':
		var err error
		if bits, err = radixBits(digits, 4); err != nil {
			return Vector{}, fmt.Errorf("literal %q: %w", text, err)
		}
	default:
		return Vector{}, fmt.Errorf("unknown base %q in literal %q", base, text)
	}

	if size == 0 {
		return Vector{bits: bits, signed: signed}, nil
	}

	out := make([]Bit, size)
	copy(out, bits)
	if len(bits) < size {
		pad := B0
		if top := bits[len(bits)-1]; !top.IsKnown() {
			pad = top
		}
		for i := len(bits); i < size; i++ {
			out[i] = pad
		}
	}
	return Vector{bits: out, hasLen: true, signed: signed}, nil
}

// radixBits expands binary, octal or hex digits at width bits per digit,
// least significant digit first.
func radixBits(digits string, width int) ([]Bit, error) {
	bits := make([]Bit, 0, len(digits)*width)
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		switch c {
		case 'x':
			for range width {
				bits = append(bits, Bx)
			}
			continue
		case 'z', '?':
			for range width {
				bits = append(bits, Bz)
			}
			continue
		}
		d, err := strconv.ParseUint(string(c), 1<<uint(width), 8)
		if err != nil {
			return nil, fmt.Errorf("invalid digit %q", c)
		}
		for k := range width {
			bits = append(bits, Bit((d>>uint(k))&1))
		}
	}
	return bits, nil
}
