package ed25519

import (
	"errors"
	"fmt"
	"math/big"
)

// Curve constants. They are computed once during package initialisation,
// checked by init, and never reassigned afterwards.
var (
	fieldPrime = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))
	groupOrder = new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 252), mustBigInt("27742317777372353535851937790883648493"))

	feOne = NewFieldElement(1)

	// d = -121665 / 121666
	curveD = NewFieldElement(121665).Neg().Mul(NewFieldElement(121666).Inverse())

	// sqrtM1 = 2^((p-1)/4), a square root of -1.
	sqrtM1 = computeSqrtM1()

	montgomeryA = NewFieldElement(486662)
	twoInv      = NewFieldElement(2).Inverse()

	basePoint = mustBasePoint()
)

const (
	// Cofactor of edwards25519.
	Cofactor = 8

	// ScalarSize is the length of an encoded scalar.
	ScalarSize = 32
)

func init() {
	if err := SelfCheck(); err != nil {
		panic(err)
	}
}

func mustBigInt(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid integer constant " + s)
	}

	return n
}

func computeSqrtM1() FieldElement {
	// (p-1)/4 = 2 * (2^252 - 3) + 1
	two := NewFieldElement(2)
	return two.pow22523().Square().Mul(two)
}

func mustBasePoint() Point {
	// y = 4/5, x is the even root.
	y := NewFieldElement(4).Mul(NewFieldElement(5).Inverse())
	x, ok := recoverX(y)
	if !ok {
		panic("base point y-coordinate has no matching x")
	}

	if x.IsOdd() {
		x = x.Neg()
	}

	return Point{x: x, y: y}
}

// D returns the twisted Edwards curve constant d.
func D() FieldElement {
	return curveD
}

// SqrtM1 returns the constant I = 2^((p-1)/4) mod p.
func SqrtM1() FieldElement {
	return sqrtM1
}

// MontgomeryA returns the Montgomery curve25519 constant A = 486662.
func MontgomeryA() FieldElement {
	return montgomeryA
}

// TwoInv returns the inverse of 2 mod p.
func TwoInv() FieldElement {
	return twoInv
}

// BasePoint returns the edwards25519 base point B.
func BasePoint() Point {
	return basePoint
}

// Prime returns p = 2^255 - 19.
func Prime() *big.Int {
	return new(big.Int).Set(fieldPrime)
}

// Order returns the prime order q of the base point.
func Order() *big.Int {
	return new(big.Int).Set(groupOrder)
}

// OrderBytes returns q as a 32-byte little-endian integer.
func OrderBytes() []byte {
	return littleEndian(groupOrder)
}

func littleEndian(n *big.Int) []byte {
	b := n.FillBytes(make([]byte, ScalarSize))
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	return b
}

// SelfCheck verifies the curve constants. It runs once at package
// initialisation and may be called again by diagnostics.
func SelfCheck() error {
	one := big.NewInt(1)
	two := big.NewInt(2)

	pMinusOne := new(big.Int).Sub(fieldPrime, one)
	if new(big.Int).Exp(two, pMinusOne, fieldPrime).Cmp(one) != 0 {
		return errors.New("p failed Fermat check")
	}

	if new(big.Int).Mod(fieldPrime, big.NewInt(4)).Cmp(one) != 0 {
		return errors.New("p is not 1 mod 4")
	}

	qMinusOne := new(big.Int).Sub(groupOrder, one)
	if new(big.Int).Exp(two, qMinusOne, groupOrder).Cmp(one) != 0 {
		return errors.New("q failed Fermat check")
	}

	if groupOrder.BitLen() != 253 {
		return fmt.Errorf("q has unexpected bit length %d", groupOrder.BitLen())
	}

	minusOne := feOne.Neg()
	if !curveD.Legendre().Equal(minusOne) {
		return errors.New("d is a square")
	}

	if !sqrtM1.Square().Equal(minusOne) {
		return errors.New("I is not a square root of -1")
	}

	if !twoInv.Mul(NewFieldElement(2)).Equal(feOne) {
		return errors.New("TWO_INV is not the inverse of 2")
	}

	if !basePoint.IsOnCurve() {
		return errors.New("base point is not on the curve")
	}

	if !basePoint.ScalarMult(OrderBytes()).IsIdentity() {
		return errors.New("q*B is not the identity")
	}

	return nil
}
