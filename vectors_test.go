package ecvrf

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"
)

type testVector struct {
	Name  string `toml:"name"`
	SK    string `toml:"sk"`
	PK    string `toml:"pk"`
	Alpha string `toml:"alpha"`
	Pi    string `toml:"pi"`
	Beta  string `toml:"beta"`
}

func loadVectors(t *testing.T) []testVector {
	t.Helper()

	var file struct {
		Vectors []testVector `toml:"vector"`
	}
	_, err := toml.DecodeFile("testdata/vectors.toml", &file)
	require.NoError(t, err)
	require.NotEmpty(t, file.Vectors)
	return file.Vectors
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestKnownAnswerVectors(t *testing.T) {
	for _, tv := range loadVectors(t) {
		tv := tv
		t.Run(tv.Name, func(t *testing.T) {
			var sk SecretKey
			require.NoError(t, sk.UnmarshalText([]byte(tv.SK)))
			alpha := mustHex(t, tv.Alpha)

			pk := DerivePublicKey(sk)
			require.Equal(t, tv.PK, pk.String())

			// the VRF key pair shares its public key with Ed25519
			edPub := ed25519.NewKeyFromSeed(sk[:]).Public().(ed25519.PublicKey)
			require.Equal(t, []byte(edPub), pk[:])

			pi, err := Prove(sk, alpha)
			require.NoError(t, err)
			require.Equal(t, tv.Pi, pi.String())

			beta, err := ProofToHash(pi[:])
			require.NoError(t, err)
			require.Equal(t, tv.Beta, beta.String())

			out, err := Verify(pk, alpha, pi[:])
			require.NoError(t, err)
			require.Equal(t, beta, out)
		})
	}
}
