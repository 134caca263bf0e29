package ecvrf

import (
	"crypto/sha512"
	"fmt"

	"github.com/athanorlabs/go-ecvrf/ed25519"
)

// ProofToHash returns beta = SHA-512(suite || 0x03 || point_to_string(8*Gamma)).
// It does not verify the proof; only call it on proofs produced by Prove or
// already accepted by Verify.
func ProofToHash(pi []byte) (Output, error) {
	d, err := decodeProof(pi)
	if err != nil {
		return Output{}, err
	}

	return gammaToHash(d.gamma), nil
}

func gammaToHash(gamma ed25519.Point) Output {
	enc := gamma.MultByCofactor().Encode()

	var str [2 + ed25519.PointSize]byte
	str[0] = Suite
	str[1] = proofToHashDomain
	copy(str[2:], enc[:])
	return sha512.Sum512(str[:])
}

// Verify checks pi against the public key pk and input alpha, returning the
// VRF output on success. Any failure, including malformed keys or proofs,
// returns ErrInvalid.
func Verify(pk PublicKey, alpha, pi []byte) (Output, error) {
	d, err := verify(pk, alpha, pi)
	if err != nil {
		return Output{}, ErrInvalid
	}

	return gammaToHash(d.gamma), nil
}

func verify(pk PublicKey, alpha, pi []byte) (*decodedProof, error) {
	y, err := ed25519.DecodePoint(pk[:])
	if err != nil {
		return nil, fmt.Errorf("failed to decode public key: %w", err)
	}

	d, err := decodeProof(pi)
	if err != nil {
		return nil, err
	}

	h, err := hashToCurve(pk[:], alpha)
	if err != nil {
		return nil, fmt.Errorf("failed to hash to curve: %w", err)
	}

	sBytes, cBytes := d.s.Bytes(), d.c.Bytes()

	// U = s*B - c*Y
	u := ed25519.BasePoint().ScalarMult(sBytes).Sub(y.ScalarMult(cBytes))

	// V = s*H - c*Gamma
	v := h.ScalarMult(sBytes).Sub(d.gamma.ScalarMult(cBytes))

	// c' = ECVRF_hash_points(H, Gamma, U, V)
	if hashPoints(h, d.gamma, u, v).Equal(d.c) != 1 {
		return nil, errChallengeMismatch
	}

	return d, nil
}
