package ecvrf

import (
	"fmt"

	"filippo.io/edwards25519"

	"github.com/athanorlabs/go-ecvrf/ed25519"
)

// Prove returns the VRF proof of alpha under sk. It is deterministic: the
// same inputs always produce the same proof.
func Prove(sk SecretKey, alpha []byte) (Proof, error) {
	kp := deriveKeyPair(sk)

	// H = ECVRF_hash_to_curve(Y, alpha)
	h, err := hashToCurve(kp.public[:], alpha)
	if err != nil {
		return Proof{}, fmt.Errorf("failed to hash to curve: %w", err)
	}

	// Gamma = x*H
	gamma := h.ScalarMult(kp.x.Bytes())

	k := generateNonce(kp.upper, h)
	kBytes := k.Bytes()

	// c = ECVRF_hash_points(H, Gamma, k*B, k*H)
	c := hashPoints(h, gamma, ed25519.BasePoint().ScalarMult(kBytes), h.ScalarMult(kBytes))

	// s = (k + c*x) mod q
	s := edwards25519.NewScalar().MultiplyAdd(c, kp.x, k)

	return encodeProof(gamma, c, s), nil
}
