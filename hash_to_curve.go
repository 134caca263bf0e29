package ecvrf

import (
	"crypto/sha512"
	"fmt"

	"github.com/athanorlabs/go-ecvrf/ed25519"
)

// hashToCurve maps (public key, alpha) to a point in the prime-order subgroup
// using the Elligator2 map. It never retries.
func hashToCurve(pk, alpha []byte) (ed25519.Point, error) {
	h := sha512.New()
	h.Write([]byte{Suite, hashToCurveDomain})
	h.Write(pk)
	h.Write(alpha)
	sum := h.Sum(nil)

	// r is the first 32 bytes with bit 255 cleared
	var r [32]byte
	copy(r[:], sum[:32])
	r[31] &= 0x7f

	hPrelim, err := elligator2(ed25519.ReduceFieldElement(r))
	if err != nil {
		return ed25519.Point{}, err
	}

	return hPrelim.MultByCofactor(), nil
}

// elligator2 returns the edwards25519 point whose Montgomery u-coordinate is
// the Elligator2 image of r.
func elligator2(r ed25519.FieldElement) (ed25519.Point, error) {
	one := ed25519.NewFieldElement(1)
	a := ed25519.MontgomeryA()

	// u = -A / (1 + 2*r^2); the denominator is never zero since -1/2 is not a square
	rr := r.Square()
	u := a.Neg().Mul(one.Add(rr.Add(rr)).Inverse())

	// w = u * (u^2 + A*u + 1)
	w := u.Mul(u.Square().Add(a.Mul(u)).Add(one))

	e := w.Legendre()

	// final_u = e*u + (e-1)*A/2, i.e. u when w is a square and -A-u otherwise
	finalU := e.Mul(u).Add(e.Sub(one).Mul(a).Mul(ed25519.TwoInv()))

	// y = (final_u - 1) / (final_u + 1)
	y := finalU.Sub(one).Mul(finalU.Add(one).Inverse())

	enc := y.Bytes()
	p, err := ed25519.DecodePoint(enc[:])
	if err != nil {
		return ed25519.Point{}, fmt.Errorf("elligator2 produced an invalid point: %w", err)
	}

	return p, nil
}
