package types

import (
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	SecretKeySize = 32
	PublicKeySize = 32
	ProofSize     = 32 + 16 + 32
	OutputSize    = 64
)

// ErrInvalidLength is returned when a byte string does not have the fixed
// length required by the type it is being converted into.
var ErrInvalidLength = errors.New("invalid length")

// SecretKey is the caller-owned VRF secret key. It is only ever hashed.
type SecretKey [SecretKeySize]byte

// PublicKey is an encoded edwards25519 point.
type PublicKey [PublicKeySize]byte

// Proof is an encoded VRF proof: Gamma (32) || c (16) || s (32).
type Proof [ProofSize]byte

// Output is the VRF hash output, beta.
type Output [OutputSize]byte

func SecretKeyFromBytes(b []byte) (SecretKey, error) {
	var sk SecretKey
	return sk, fill(sk[:], b)
}

func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	return pk, fill(pk[:], b)
}

func ProofFromBytes(b []byte) (Proof, error) {
	var pi Proof
	return pi, fill(pi[:], b)
}

func OutputFromBytes(b []byte) (Output, error) {
	var out Output
	return out, fill(out[:], b)
}

// String never prints key material.
func (sk SecretKey) String() string {
	return "SecretKey(redacted)"
}

func (sk SecretKey) MarshalText() ([]byte, error) {
	return encodeHex(sk[:]), nil
}

func (sk *SecretKey) UnmarshalText(text []byte) error {
	return decodeHex(sk[:], text)
}

func (pk PublicKey) String() string {
	return hex.EncodeToString(pk[:])
}

func (pk PublicKey) MarshalText() ([]byte, error) {
	return encodeHex(pk[:]), nil
}

func (pk *PublicKey) UnmarshalText(text []byte) error {
	return decodeHex(pk[:], text)
}

func (pi Proof) String() string {
	return hex.EncodeToString(pi[:])
}

func (pi Proof) MarshalText() ([]byte, error) {
	return encodeHex(pi[:]), nil
}

func (pi *Proof) UnmarshalText(text []byte) error {
	return decodeHex(pi[:], text)
}

func (out Output) String() string {
	return hex.EncodeToString(out[:])
}

func (out Output) MarshalText() ([]byte, error) {
	return encodeHex(out[:]), nil
}

func (out *Output) UnmarshalText(text []byte) error {
	return decodeHex(out[:], text)
}

func fill(dst, src []byte) error {
	if len(src) != len(dst) {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidLength, len(dst), len(src))
	}

	copy(dst, src)
	return nil
}

func encodeHex(b []byte) []byte {
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out
}

func decodeHex(dst, text []byte) error {
	if hex.DecodedLen(len(text)) != len(dst) {
		return fmt.Errorf("%w: expected %d hex characters, got %d", ErrInvalidLength, hex.EncodedLen(len(dst)), len(text))
	}

	_, err := hex.Decode(dst, text)
	if err != nil {
		return fmt.Errorf("failed to decode hex: %w", err)
	}

	return nil
}
