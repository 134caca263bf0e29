package ecvrf

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	curve "github.com/athanorlabs/go-ecvrf/ed25519"
	"github.com/athanorlabs/go-ecvrf/internal/testdata"
)

func TestProveAndVerify(t *testing.T) {
	drbg := testdata.New("ecvrf prove and verify")

	for range 4 {
		sk := drbg.SecretKey()
		pk := DerivePublicKey(sk)
		alpha := drbg.Data(int(drbg.Data(1)[0]))

		pi, err := Prove(sk, alpha)
		require.NoError(t, err)

		beta, err := ProofToHash(pi[:])
		require.NoError(t, err)

		out, err := Verify(pk, alpha, pi[:])
		require.NoError(t, err)
		require.Equal(t, beta, out)
	}
}

func TestProve_Deterministic(t *testing.T) {
	drbg := testdata.New("ecvrf deterministic")
	sk := drbg.SecretKey()
	alpha := []byte("deterministic")

	pi1, err := Prove(sk, alpha)
	require.NoError(t, err)
	pi2, err := Prove(sk, alpha)
	require.NoError(t, err)
	require.Equal(t, pi1, pi2)
}

func TestProve_ZeroKey(t *testing.T) {
	var sk SecretKey
	alpha := []byte("sample")

	pk := DerivePublicKey(sk)
	edPub := ed25519.NewKeyFromSeed(sk[:]).Public().(ed25519.PublicKey)
	require.Equal(t, []byte(edPub), pk[:])

	pi, err := Prove(sk, alpha)
	require.NoError(t, err)

	out, err := Verify(pk, alpha, pi[:])
	require.NoError(t, err)

	beta, err := ProofToHash(pi[:])
	require.NoError(t, err)
	require.Equal(t, beta, out)
}

func TestDerivePublicKey_MatchesEd25519(t *testing.T) {
	drbg := testdata.New("ecvrf public key")

	for range 8 {
		sk := drbg.SecretKey()
		edPub := ed25519.NewKeyFromSeed(sk[:]).Public().(ed25519.PublicKey)
		pk := DerivePublicKey(sk)
		require.Equal(t, []byte(edPub), pk[:])
		require.NoError(t, ValidatePublicKey(pk))
	}
}

func TestVerify_WrongKey(t *testing.T) {
	drbg := testdata.New("ecvrf wrong key")
	sk1, sk2 := drbg.SecretKey(), drbg.SecretKey()
	alpha := []byte("message")

	pi, err := Prove(sk1, alpha)
	require.NoError(t, err)

	_, err = Verify(DerivePublicKey(sk2), alpha, pi[:])
	require.ErrorIs(t, err, ErrInvalid)
}

func TestVerify_WrongMessage(t *testing.T) {
	drbg := testdata.New("ecvrf wrong message")
	sk := drbg.SecretKey()
	pk := DerivePublicKey(sk)

	pi, err := Prove(sk, []byte("message"))
	require.NoError(t, err)

	_, err = Verify(pk, []byte("massage"), pi[:])
	require.ErrorIs(t, err, ErrInvalid)

	_, err = Verify(pk, nil, pi[:])
	require.ErrorIs(t, err, ErrInvalid)
}

func TestVerify_BitFlips(t *testing.T) {
	drbg := testdata.New("ecvrf bit flips")
	sk := drbg.SecretKey()
	pk := DerivePublicKey(sk)
	alpha := []byte("bit flips")

	pi, err := Prove(sk, alpha)
	require.NoError(t, err)

	stride := 1
	if testing.Short() {
		stride = 8
	}

	for bit := 0; bit < len(pi)*8; bit += stride {
		mutated := pi
		mutated[bit/8] ^= 1 << (bit % 8)

		_, err := Verify(pk, alpha, mutated[:])
		require.ErrorIs(t, err, ErrInvalid, "bit %d", bit)
	}
}

func TestVerify_WrongLength(t *testing.T) {
	drbg := testdata.New("ecvrf wrong length")
	sk := drbg.SecretKey()
	pk := DerivePublicKey(sk)
	alpha := []byte("length")

	pi, err := Prove(sk, alpha)
	require.NoError(t, err)

	for _, in := range [][]byte{nil, pi[:79], append(pi[:], 0)} {
		_, err = Verify(pk, alpha, in)
		require.ErrorIs(t, err, ErrInvalid)
		require.NotErrorIs(t, err, ErrInvalidProof)

		_, err = ProofToHash(in)
		require.ErrorIs(t, err, ErrInvalidProof)
	}
}

func TestVerify_OnlyErrInvalid(t *testing.T) {
	drbg := testdata.New("ecvrf only invalid")
	sk := drbg.SecretKey()
	alpha := []byte("alpha")

	pi, err := Prove(sk, alpha)
	require.NoError(t, err)

	badKey := PublicKey(nonCanonicalY())
	_, err = Verify(badKey, alpha, pi[:])
	require.Equal(t, ErrInvalid, err)

	badProof := pi
	y := nonCanonicalY()
	copy(badProof[:curve.PointSize], y[:])

	_, err = Verify(DerivePublicKey(sk), alpha, badProof[:])
	require.Equal(t, ErrInvalid, err)
}

func TestValidatePublicKey(t *testing.T) {
	identity := curve.NewIdentityPoint().Encode()
	err := ValidatePublicKey(identity)
	require.ErrorIs(t, err, ErrInvalidPublicKey)

	// (0, -1) has order two
	twoTorsion, err := curve.NewPoint(curve.NewFieldElement(0), curve.NewFieldElement(1).Neg())
	require.NoError(t, err)
	err = ValidatePublicKey(twoTorsion.Encode())
	require.ErrorIs(t, err, ErrInvalidPublicKey)

	err = ValidatePublicKey(nonCanonicalY())
	require.ErrorIs(t, err, ErrInvalidPublicKey)
	require.ErrorIs(t, err, curve.ErrInvalidEncoding)

	require.NoError(t, ValidatePublicKey(curve.BasePoint().Encode()))
}

func TestVerify_SmallOrderKeyProof(t *testing.T) {
	// Gamma = identity, c = 0, s = 0 makes U and V the identity, so only a
	// zero challenge hash would accept it
	identity := curve.NewIdentityPoint().Encode()

	var pi Proof
	copy(pi[:], identity[:])

	_, err := Verify(identity, []byte("x"), pi[:])
	require.ErrorIs(t, err, ErrInvalid)
}

// nonCanonicalY returns the encoding of y = p.
func nonCanonicalY() [curve.PointSize]byte {
	var b [curve.PointSize]byte
	for i := range b {
		b[i] = 0xff
	}
	b[0] = 0xed
	b[31] = 0x7f
	return b
}
