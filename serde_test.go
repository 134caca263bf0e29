package ecvrf

import (
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/require"

	"github.com/athanorlabs/go-ecvrf/ed25519"
	"github.com/athanorlabs/go-ecvrf/internal/testdata"
)

func TestProof_Serde(t *testing.T) {
	drbg := testdata.New("ecvrf serde")
	sk := drbg.SecretKey()

	pi, err := Prove(sk, []byte("serde"))
	require.NoError(t, err)

	d, err := decodeProof(pi[:])
	require.NoError(t, err)
	require.Equal(t, pi, encodeProof(d.gamma, d.c, d.s))

	// c occupies 16 bytes, so its upper half is always zero
	require.Equal(t, make([]byte, ed25519.ScalarSize-challengeSize), d.c.Bytes()[challengeSize:])
	require.True(t, d.gamma.IsOnCurve())
}

func TestEncodeProof_Layout(t *testing.T) {
	drbg := testdata.New("ecvrf layout")
	gamma := ed25519.BasePoint().ScalarMult(drbg.Scalar().Bytes())
	c := challengeFromBytes(drbg.Data(challengeSize))
	s := drbg.Scalar()

	pi := encodeProof(gamma, c, s)
	enc := gamma.Encode()
	require.Equal(t, enc[:], pi[:32])
	require.Equal(t, c.Bytes()[:16], pi[32:48])
	require.Equal(t, s.Bytes(), pi[48:])

	d, err := decodeProof(pi[:])
	require.NoError(t, err)
	require.True(t, gamma.Equal(d.gamma))
	require.Equal(t, 1, c.Equal(d.c))
	require.Equal(t, 1, s.Equal(d.s))
}

func TestDecodeProof_NonCanonicalS(t *testing.T) {
	drbg := testdata.New("ecvrf non-canonical s")
	pi, err := Prove(drbg.SecretKey(), nil)
	require.NoError(t, err)

	// s = q
	copy(pi[48:], ed25519.OrderBytes())
	_, err = decodeProof(pi[:])
	require.ErrorIs(t, err, ErrInvalidProof)

	// s = q - 1 is fine
	qMinusOne := edwards25519.NewScalar().Subtract(edwards25519.NewScalar(), oneScalar())
	copy(pi[48:], qMinusOne.Bytes())
	_, err = decodeProof(pi[:])
	require.NoError(t, err)
}

func TestDecodeProof_BadGamma(t *testing.T) {
	var pi Proof
	y := nonCanonicalY()
	copy(pi[:], y[:])

	_, err := decodeProof(pi[:])
	require.ErrorIs(t, err, ErrInvalidProof)
	require.ErrorIs(t, err, ed25519.ErrInvalidEncoding)

	_, err = ProofToHash(pi[:])
	require.ErrorIs(t, err, ErrInvalidProof)
}

func TestDecodeProof_Length(t *testing.T) {
	for _, n := range []int{0, 32, 48, 79, 81, 160} {
		_, err := decodeProof(make([]byte, n))
		require.ErrorIs(t, err, ErrInvalidProof)
	}
}

func oneScalar() *edwards25519.Scalar {
	var b [32]byte
	b[0] = 1
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		panic(err)
	}
	return s
}
