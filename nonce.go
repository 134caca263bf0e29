package ecvrf

import (
	"crypto/sha512"

	"filippo.io/edwards25519"

	"github.com/athanorlabs/go-ecvrf/ed25519"
)

// generateNonce derives k = SHA-512(SHA-512(SK)[32:64] || point_to_string(H)) mod q.
// The same (SK, H) always yields the same k.
func generateNonce(upper [32]byte, h ed25519.Point) *edwards25519.Scalar {
	enc := h.Encode()

	var in [64]byte
	copy(in[:32], upper[:])
	copy(in[32:], enc[:])
	kString := sha512.Sum512(in[:])

	k, err := edwards25519.NewScalar().SetUniformBytes(kString[:])
	if err != nil {
		panic(err)
	}

	return k
}
