package ed25519

import (
	"bytes"
	"errors"
	"fmt"

	"filippo.io/edwards25519/field"
)

// FieldElementSize is the length of an encoded field element.
const FieldElementSize = 32

var errNonCanonicalFieldElement = errors.New("non-canonical field element encoding")

// FieldElement is an integer modulo p = 2^255 - 19. Every operation returns a
// new, fully reduced value; receivers are never modified.
type FieldElement struct {
	inner field.Element
}

// NewFieldElement returns the field element with the given small value.
func NewFieldElement(v uint32) FieldElement {
	var e FieldElement
	e.inner.Mult32(new(field.Element).One(), v)
	return e
}

// FieldElementFromBytes decodes a canonical 32-byte little-endian encoding.
// Values >= p and encodings with bit 255 set are rejected.
func FieldElementFromBytes(b []byte) (FieldElement, error) {
	if len(b) != FieldElementSize {
		return FieldElement{}, fmt.Errorf("expected %d bytes, got %d", FieldElementSize, len(b))
	}

	var e FieldElement
	if _, err := e.inner.SetBytes(b); err != nil {
		return FieldElement{}, err
	}

	if !bytes.Equal(e.inner.Bytes(), b) {
		return FieldElement{}, errNonCanonicalFieldElement
	}

	return e, nil
}

// ReduceFieldElement interprets the low 255 bits of b as a little-endian
// integer and reduces it modulo p.
func ReduceFieldElement(b [FieldElementSize]byte) FieldElement {
	b[31] &= 0x7f

	var e FieldElement
	if _, err := e.inner.SetBytes(b[:]); err != nil {
		panic(err)
	}

	return e
}

func (e FieldElement) Add(b FieldElement) FieldElement {
	var out FieldElement
	out.inner.Add(&e.inner, &b.inner)
	return out
}

func (e FieldElement) Sub(b FieldElement) FieldElement {
	var out FieldElement
	out.inner.Subtract(&e.inner, &b.inner)
	return out
}

func (e FieldElement) Mul(b FieldElement) FieldElement {
	var out FieldElement
	out.inner.Multiply(&e.inner, &b.inner)
	return out
}

func (e FieldElement) Square() FieldElement {
	var out FieldElement
	out.inner.Square(&e.inner)
	return out
}

// Neg returns p - e (or 0 for e == 0).
func (e FieldElement) Neg() FieldElement {
	var out FieldElement
	out.inner.Negate(&e.inner)
	return out
}

// Inverse returns e^(p-2). Inverting zero is a caller bug: on valid curve
// points no denominator in this package can be zero.
func (e FieldElement) Inverse() FieldElement {
	if e.IsZero() {
		panic("ed25519: inverse of zero field element")
	}

	var out FieldElement
	out.inner.Invert(&e.inner)
	return out
}

// Legendre returns e^((p-1)/2), which is 1 for non-zero squares, p-1 for
// non-squares and 0 for zero.
func (e FieldElement) Legendre() FieldElement {
	// (p-1)/2 = 4 * (2^252 - 3) + 2
	t := e.pow22523().Square().Square()
	return t.Mul(e.Square())
}

// pow22523 returns e^((p-5)/8) = e^(2^252 - 3).
func (e FieldElement) pow22523() FieldElement {
	var out FieldElement
	out.inner.Pow22523(&e.inner)
	return out
}

// sqrtCandidate returns e^((p+3)/8). Its square is e when e has a square
// root with this exponent, or -e when the root needs another factor of sqrt(-1).
func (e FieldElement) sqrtCandidate() FieldElement {
	return e.pow22523().Mul(e)
}

func (e FieldElement) Equal(b FieldElement) bool {
	return e.inner.Equal(&b.inner) == 1
}

func (e FieldElement) IsZero() bool {
	return e.Equal(FieldElement{})
}

// IsOdd reports whether the canonical value of e is odd.
func (e FieldElement) IsOdd() bool {
	return e.inner.IsNegative() == 1
}

// Bytes returns the canonical 32-byte little-endian encoding of e.
func (e FieldElement) Bytes() [FieldElementSize]byte {
	var out [FieldElementSize]byte
	copy(out[:], e.inner.Bytes())
	return out
}

func (e FieldElement) String() string {
	b := e.Bytes()
	return fmt.Sprintf("%x", b[:])
}
