// Package testdata provides a deterministic random bit generator for tests.
package testdata

import (
	"filippo.io/edwards25519"
	"golang.org/x/crypto/sha3"

	"github.com/athanorlabs/go-ecvrf/types"
)

// DRBG is a deterministic random bit generator based on SHAKE128.
type DRBG struct {
	h sha3.ShakeHash
}

// New returns a DRBG seeded with the given customization string.
func New(customization string) *DRBG {
	h := sha3.NewShake128()
	_, _ = h.Write([]byte(customization))
	return &DRBG{h: h}
}

// Data returns n bytes of deterministic data.
func (d *DRBG) Data(n int) []byte {
	b := make([]byte, n)
	_, _ = d.h.Read(b)
	return b
}

// SecretKey returns a deterministic VRF secret key.
func (d *DRBG) SecretKey() types.SecretKey {
	var sk types.SecretKey
	copy(sk[:], d.Data(types.SecretKeySize))
	return sk
}

// Scalar returns a deterministic scalar uniformly reduced mod q.
func (d *DRBG) Scalar() *edwards25519.Scalar {
	s, err := edwards25519.NewScalar().SetUniformBytes(d.Data(64))
	if err != nil {
		panic(err)
	}

	return s
}
