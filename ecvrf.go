// Package ecvrf implements the ECVRF-EDWARDS25519-SHA512-Elligator2 verifiable
// random function: Prove produces an 80-byte proof for an input, ProofToHash
// maps a proof to its 64-byte output and Verify checks a proof against a
// public key.
package ecvrf

import (
	"crypto/sha512"
	"errors"
	"fmt"

	"filippo.io/edwards25519"

	"github.com/athanorlabs/go-ecvrf/ed25519"
	"github.com/athanorlabs/go-ecvrf/types"
)

type SecretKey = types.SecretKey
type PublicKey = types.PublicKey
type Proof = types.Proof
type Output = types.Output

const (
	// Suite is the suite_string for ECVRF-EDWARDS25519-SHA512-Elligator2.
	Suite = 0x04

	hashToCurveDomain = 0x01
	hashPointsDomain  = 0x02
	proofToHashDomain = 0x03

	// challengeSize is n, the length of c in bytes.
	challengeSize = 16
)

var (
	// ErrInvalidProof is returned when a proof has the wrong length, its Gamma
	// does not decode, or its s is not reduced mod q.
	ErrInvalidProof = errors.New("invalid proof")

	// ErrInvalid is the only error Verify returns. It deliberately does not
	// say which check failed.
	ErrInvalid = errors.New("invalid")

	// ErrInvalidPublicKey is returned by ValidatePublicKey.
	ErrInvalidPublicKey = errors.New("invalid public key")

	errChallengeMismatch = errors.New("challenge mismatch")
)

// keyPair holds the values derived from a secret key.
type keyPair struct {
	x      *edwards25519.Scalar
	public PublicKey
	// upper is the second half of SHA-512(SK), used for nonce generation.
	upper [32]byte
}

// deriveKeyPair computes x = clamp(SHA-512(SK)[0:32]) and Y = x*B.
func deriveKeyPair(sk SecretKey) *keyPair {
	h := sha512.Sum512(sk[:])
	x, err := edwards25519.NewScalar().SetBytesWithClamping(h[:32])
	if err != nil {
		panic(err)
	}

	kp := &keyPair{
		x:      x,
		public: ed25519.BasePoint().ScalarMult(x.Bytes()).Encode(),
	}
	copy(kp.upper[:], h[32:])
	return kp
}

// DerivePublicKey returns the public key Y = x*B for the given secret key.
func DerivePublicKey(sk SecretKey) PublicKey {
	return deriveKeyPair(sk).public
}

// ValidatePublicKey checks that pk decodes to a curve point that is not of
// small order. Verify does not require it; callers that accept keys from
// untrusted sources should.
func ValidatePublicKey(pk PublicKey) error {
	y, err := ed25519.DecodePoint(pk[:])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}

	if y.MultByCofactor().IsIdentity() {
		return fmt.Errorf("%w: small order point", ErrInvalidPublicKey)
	}

	return nil
}
