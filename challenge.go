package ecvrf

import (
	"crypto/sha512"

	"filippo.io/edwards25519"

	"github.com/athanorlabs/go-ecvrf/ed25519"
)

// hashPoints computes the challenge
//
//	c = string_to_int(SHA-512(suite || 0x02 || P1 || P2 || P3 || P4)[0:16])
//
// as a scalar. A 128-bit value is always below q, so no reduction happens.
func hashPoints(p1, p2, p3, p4 ed25519.Point) *edwards25519.Scalar {
	var str [2 + 4*ed25519.PointSize]byte
	str[0] = Suite
	str[1] = hashPointsDomain

	for i, p := range []ed25519.Point{p1, p2, p3, p4} {
		enc := p.Encode()
		copy(str[2+i*ed25519.PointSize:], enc[:])
	}

	sum := sha512.Sum512(str[:])
	return challengeFromBytes(sum[:challengeSize])
}

// challengeFromBytes converts the 16-byte little-endian c into a scalar.
func challengeFromBytes(b []byte) *edwards25519.Scalar {
	var c [ed25519.ScalarSize]byte
	copy(c[:], b[:challengeSize])

	s, err := edwards25519.NewScalar().SetCanonicalBytes(c[:])
	if err != nil {
		panic(err)
	}

	return s
}
