package ed25519

import (
	"errors"
	"fmt"
)

// PointSize is the length of an encoded point.
const PointSize = 32

// ErrInvalidEncoding is returned when 32 bytes do not decode to a point on
// the curve.
var ErrInvalidEncoding = errors.New("invalid point encoding")

// Point is an affine point (x, y) on -x^2 + y^2 = 1 + d*x^2*y^2. Points are
// values: arithmetic returns new points and never mutates its operands.
type Point struct {
	x, y FieldElement
}

// NewIdentityPoint returns the neutral element (0, 1).
func NewIdentityPoint() Point {
	return Point{y: feOne}
}

// NewPoint returns (x, y) if it satisfies the curve equation.
func NewPoint(x, y FieldElement) (Point, error) {
	p := Point{x: x, y: y}
	if !p.IsOnCurve() {
		return Point{}, fmt.Errorf("%w: point is not on the curve", ErrInvalidEncoding)
	}

	return p, nil
}

func (p Point) X() FieldElement {
	return p.x
}

func (p Point) Y() FieldElement {
	return p.y
}

// Add returns p + q. The twisted Edwards formula is complete, so it also
// doubles when p == q:
//
//	x3 = (x1*y2 + x2*y1) / (1 + d*x1*x2*y1*y2)
//	y3 = (y1*y2 + x1*x2) / (1 - d*x1*x2*y1*y2)
//
// Both denominators are inverted with a single field inversion.
func (p Point) Add(q Point) Point {
	x1x2 := p.x.Mul(q.x)
	y1y2 := p.y.Mul(q.y)
	t := curveD.Mul(x1x2).Mul(y1y2)

	xNum := p.x.Mul(q.y).Add(q.x.Mul(p.y))
	yNum := y1y2.Add(x1x2)
	xDen := feOne.Add(t)
	yDen := feOne.Sub(t)

	inv := xDen.Mul(yDen).Inverse()
	return Point{
		x: xNum.Mul(yDen).Mul(inv),
		y: yNum.Mul(xDen).Mul(inv),
	}
}

// Neg returns -p = (p - x, y).
func (p Point) Neg() Point {
	return Point{x: p.x.Neg(), y: p.y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return p.Add(q.Neg())
}

// ScalarMult returns e*p, where e is a non-negative little-endian integer of
// any length, using binary double-and-add from the most significant bit.
// e == 0 yields the identity.
func (p Point) ScalarMult(e []byte) Point {
	q := NewIdentityPoint()
	started := false
	for i := len(e)*8 - 1; i >= 0; i-- {
		if started {
			q = q.Add(q)
		}

		if getBit(e, uint64(i)) == 1 {
			q = q.Add(p)
			started = true
		}
	}

	return q
}

// MultByCofactor returns 8*p.
func (p Point) MultByCofactor() Point {
	return p.ScalarMult([]byte{Cofactor})
}

// IsOnCurve evaluates -x^2 + y^2 - 1 - d*x^2*y^2 == 0.
func (p Point) IsOnCurve() bool {
	xx := p.x.Square()
	yy := p.y.Square()
	lhs := yy.Sub(xx)
	rhs := feOne.Add(curveD.Mul(xx).Mul(yy))
	return lhs.Equal(rhs)
}

func (p Point) Equal(q Point) bool {
	return p.x.Equal(q.x) && p.y.Equal(q.y)
}

func (p Point) IsIdentity() bool {
	return p.Equal(NewIdentityPoint())
}

// Encode returns y in little-endian with the parity of x stored in bit 255.
func (p Point) Encode() [PointSize]byte {
	b := p.y.Bytes()
	if p.x.IsOdd() {
		b[31] |= 0x80
	}

	return b
}

func (p Point) String() string {
	b := p.Encode()
	return fmt.Sprintf("%x", b[:])
}

// DecodePoint decodes the 32-byte encoding produced by Encode. Non-canonical
// y values, the encoding of x = 0 with the sign bit set, and y values with no
// matching x on the curve are rejected with ErrInvalidEncoding.
func DecodePoint(in []byte) (Point, error) {
	if len(in) != PointSize {
		return Point{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidEncoding, PointSize, len(in))
	}

	var yBytes [PointSize]byte
	copy(yBytes[:], in)
	sign := yBytes[31] >> 7
	yBytes[31] &= 0x7f

	y, err := FieldElementFromBytes(yBytes[:])
	if err != nil {
		return Point{}, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}

	x, ok := recoverX(y)
	if !ok {
		return Point{}, fmt.Errorf("%w: no x-coordinate for y", ErrInvalidEncoding)
	}

	if x.IsZero() && sign == 1 {
		return Point{}, fmt.Errorf("%w: sign bit set for x = 0", ErrInvalidEncoding)
	}

	if x.IsOdd() != (sign == 1) {
		x = x.Neg()
	}

	return NewPoint(x, y)
}

// recoverX solves x^2 = (y^2 - 1) / (d*y^2 + 1) for one of the two roots.
func recoverX(y FieldElement) (FieldElement, bool) {
	yy := y.Square()
	xx := yy.Sub(feOne).Mul(curveD.Mul(yy).Add(feOne).Inverse())

	x := xx.sqrtCandidate()
	if !x.Square().Equal(xx) {
		x = x.Mul(sqrtM1)
	}

	if !x.Square().Equal(xx) {
		return FieldElement{}, false
	}

	return x, true
}

// getBit returns the bit at the given index (in little endian)
func getBit(x []byte, i uint64) byte {
	return (x[i/8] >> (i % 8)) & 1
}
