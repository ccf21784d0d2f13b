// Package bigint implements the width-annotated arbitrary-precision
// integer that the SRP-6a core is built on.
//
// A plain math/big.Int has no notion of how wide its hex encoding should
// be: leading zero bytes are simply dropped. SRP-6a interop depends on
// every value being serialized to a fixed number of hex digits (the salt
// is always 64 hex chars, A and B are always N's width, and so on), so
// this package pairs every Int with the hex width it was constructed or
// derived with, and ToHex pads to that width rather than to the integer's
// natural size.
package bigint

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidHex is returned when a hex string cannot be parsed.
var ErrInvalidHex = errors.New("bigint: invalid hex string")

// ErrUnsizedHex is returned by ToHex when the value carries no hex width.
var ErrUnsizedHex = errors.New("bigint: value has no hex width to pad to")

// Int is a non-negative arbitrary-precision integer with an associated
// hex-width annotation. The zero value is not usable; construct one with
// FromHex, FromBytes, RandomInteger or one of the arithmetic methods.
type Int struct {
	v        *big.Int
	width    int
	hasWidth bool
}

// FromHex parses a hex string (surrounding whitespace is stripped first)
// and records hex width as the length of the cleaned string.
func FromHex(s string) (Int, error) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return Int{}, fmt.Errorf("%w: empty string", ErrInvalidHex)
	}
	b, err := hex.DecodeString(padOddLength(cleaned))
	if err != nil {
		return Int{}, fmt.Errorf("%w: %q: %v", ErrInvalidHex, s, err)
	}
	return Int{
		v:        new(big.Int).SetBytes(b),
		width:    len(cleaned),
		hasWidth: true,
	}, nil
}

// padOddLength left-pads an odd-length hex string with a zero nibble so
// hex.DecodeString (which requires an even number of digits) can parse
// it; the recorded width stays the original, un-padded length.
func padOddLength(s string) string {
	if len(s)%2 == 1 {
		return "0" + s
	}
	return s
}

// FromBytes interprets b as a big-endian integer; hex width is 2*len(b).
func FromBytes(b []byte) Int {
	return Int{
		v:        new(big.Int).SetBytes(b),
		width:    2 * len(b),
		hasWidth: true,
	}
}

// fromBig wraps an existing *big.Int with an explicit width, used
// internally by the arithmetic operations below.
func fromBig(v *big.Int, width int, hasWidth bool) Int {
	return Int{v: v, width: width, hasWidth: hasWidth}
}

// ToHex renders the value as lowercase hex, left-padded with '0' to the
// recorded hex width. Fails with ErrUnsizedHex if no width was ever set.
func (i Int) ToHex() (string, error) {
	if !i.hasWidth {
		return "", ErrUnsizedHex
	}
	s := i.v.Text(16)
	if len(s) > i.width {
		// Should not happen for well-formed protocol values, but never
		// silently truncate a caller's data.
		return "", fmt.Errorf("bigint: value %d hex digits exceeds recorded width %d", len(s), i.width)
	}
	if len(s) < i.width {
		s = strings.Repeat("0", i.width-len(s)) + s
	}
	return s, nil
}

// MustHex is ToHex for call sites that have already established the value
// carries a width (e.g. anything returned from ModPow against N).
func (i Int) MustHex() string {
	h, err := i.ToHex()
	if err != nil {
		panic(err)
	}
	return h
}

// RandomInteger draws n cryptographically random bytes and interprets
// them as a big-endian integer with hex width 2*n.
func RandomInteger(n int) (Int, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return Int{}, fmt.Errorf("bigint: reading random bytes: %w", err)
	}
	return FromBytes(buf), nil
}

// HexWidth reports the recorded hex width and whether one is set.
func (i Int) HexWidth() (int, bool) {
	return i.width, i.hasWidth
}

// Big returns the underlying *big.Int. Callers must not mutate it.
func (i Int) Big() *big.Int {
	return i.v
}

// Sign mirrors big.Int.Sign.
func (i Int) Sign() int {
	return i.v.Sign()
}

// ModPow computes i^e mod m. The result's width is m's hex width.
func (i Int) ModPow(e, m Int) Int {
	r := new(big.Int).Exp(i.v, e.v, m.v)
	w, has := m.HexWidth()
	return fromBig(r, w, has)
}

// widthOf implements the "self's width, else other's" propagation rule
// shared by Multiply, Add and Subtract.
func widthOf(self, other Int) (int, bool) {
	if self.hasWidth {
		return self.width, true
	}
	return other.HexWidth()
}

// Multiply returns i * other.
func (i Int) Multiply(other Int) Int {
	r := new(big.Int).Mul(i.v, other.v)
	w, has := widthOf(i, other)
	return fromBig(r, w, has)
}

// Add returns i + other.
func (i Int) Add(other Int) Int {
	r := new(big.Int).Add(i.v, other.v)
	w, has := widthOf(i, other)
	return fromBig(r, w, has)
}

// Subtract returns i - other. The result may be negative; callers must
// apply Mod before serializing it.
func (i Int) Subtract(other Int) Int {
	r := new(big.Int).Sub(i.v, other.v)
	w, has := widthOf(i, other)
	return fromBig(r, w, has)
}

// Mod returns the Euclidean remainder of i mod m, always in [0, m),
// regardless of the sign of i. The result's width is m's hex width.
func (i Int) Mod(m Int) Int {
	r := new(big.Int).Mod(i.v, m.v)
	// big.Int.Mod already implements Euclidean division (result shares
	// the sign of the divisor and is non-negative for a positive m), but
	// we assert that invariant explicitly since callers rely on it.
	if r.Sign() < 0 {
		r.Add(r, new(big.Int).Abs(m.v))
	}
	w, has := m.HexWidth()
	return fromBig(r, w, has)
}

// Xor returns the bitwise XOR of the two values' big-endian byte
// representations, zero-padded to the longer operand. The result's width
// is i's width.
func (i Int) Xor(other Int) Int {
	a := i.v.Bytes()
	b := other.v.Bytes()
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	aPad := make([]byte, n)
	bPad := make([]byte, n)
	copy(aPad[n-len(a):], a)
	copy(bPad[n-len(b):], b)
	out := make([]byte, n)
	for idx := range out {
		out[idx] = aPad[idx] ^ bPad[idx]
	}
	r := new(big.Int).SetBytes(out)
	return fromBig(r, i.width, i.hasWidth)
}

// Equal compares two values for numeric equality. Width is not part of
// equality.
func (i Int) Equal(other Int) bool {
	return i.v.Cmp(other.v) == 0
}

// IsZero reports whether the value is exactly zero.
func (i Int) IsZero() bool {
	return i.v.Sign() == 0
}
