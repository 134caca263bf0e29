package ecvrf

import (
	"bytes"
	"fmt"

	"filippo.io/edwards25519"

	"github.com/athanorlabs/go-ecvrf/ed25519"
	"github.com/athanorlabs/go-ecvrf/types"
)

// decodedProof is a proof split into its three fields.
type decodedProof struct {
	gamma ed25519.Point
	c     *edwards25519.Scalar
	s     *edwards25519.Scalar
}

// encodeProof returns point_to_string(Gamma) || int_to_string(c, 16) || int_to_string(s, 32).
func encodeProof(gamma ed25519.Point, c, s *edwards25519.Scalar) Proof {
	var pi Proof
	enc := gamma.Encode()
	copy(pi[:ed25519.PointSize], enc[:])
	copy(pi[ed25519.PointSize:ed25519.PointSize+challengeSize], c.Bytes()[:challengeSize])
	copy(pi[ed25519.PointSize+challengeSize:], s.Bytes())
	return pi
}

// decodeProof parses pi in the fixed order Gamma, c, s. All failures wrap
// ErrInvalidProof.
func decodeProof(pi []byte) (*decodedProof, error) {
	if len(pi) != types.ProofSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidProof, types.ProofSize, len(pi))
	}

	reader := bytes.NewBuffer(pi)

	gamma, err := ed25519.DecodePoint(reader.Next(ed25519.PointSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode gamma: %w", ErrInvalidProof, err)
	}

	c := challengeFromBytes(reader.Next(challengeSize))

	s, err := edwards25519.NewScalar().SetCanonicalBytes(reader.Next(ed25519.ScalarSize))
	if err != nil {
		return nil, fmt.Errorf("%w: s is not reduced: %w", ErrInvalidProof, err)
	}

	return &decodedProof{
		gamma: gamma,
		c:     c,
		s:     s,
	}, nil
}
