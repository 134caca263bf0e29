// Package sortition selects a committee from a participant list using a VRF
// output as the random seed. Anyone holding the public key and proof can
// recompute the selection.
package sortition

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/crypto/chacha20"

	"github.com/athanorlabs/go-ecvrf"
	"github.com/athanorlabs/go-ecvrf/types"
)

// SeedSize is the length of the shuffle seed taken from the VRF output.
const SeedSize = chacha20.KeySize

var (
	ErrInvalidCount   = errors.New("number of winners must be between 1 and the number of participants")
	ErrNoParticipants = errors.New("participant list is empty")
	ErrInvalidDraw    = errors.New("invalid draw")
)

// Result is the outcome of a draw.
type Result struct {
	Participants []string
	N            int
	Winners      []string
	PublicKey    types.PublicKey
	Proof        types.Proof
	Output       types.Output
}

// Option configures a Sortition.
type Option func(*Sortition)

// WithLogger sets the logger used for draw and verification events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Sortition) {
		s.log = logger.Sugar()
	}
}

type Sortition struct {
	log *zap.SugaredLogger
}

func New(opts ...Option) *Sortition {
	s := &Sortition{
		log: zap.NewNop().Sugar(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Draw proves the participant list under sk and picks n winners from the
// shuffle seeded by the resulting VRF output.
func (s *Sortition) Draw(sk types.SecretKey, participants []string, n int) (*Result, error) {
	if err := checkCount(participants, n); err != nil {
		return nil, err
	}

	proof, err := ecvrf.Prove(sk, Message(participants))
	if err != nil {
		return nil, fmt.Errorf("failed to prove participant list: %w", err)
	}

	out, err := ecvrf.ProofToHash(proof[:])
	if err != nil {
		return nil, fmt.Errorf("failed to hash proof: %w", err)
	}

	res := &Result{
		Participants: slices.Clone(participants),
		N:            n,
		Winners:      Shuffle(Seed(out), participants)[:n],
		PublicKey:    ecvrf.DerivePublicKey(sk),
		Proof:        proof,
		Output:       out,
	}

	s.log.Debugw("sortition draw",
		"participants", len(participants),
		"winners", n,
		"public_key", res.PublicKey.String(),
	)
	return res, nil
}

// Verify checks proof against pk and the participant list and returns the n
// winners it selects. Any failure wraps ErrInvalidDraw, except for caller
// errors in participants or n.
func (s *Sortition) Verify(pk types.PublicKey, participants []string, n int, proof []byte) ([]string, error) {
	if err := checkCount(participants, n); err != nil {
		return nil, err
	}

	if err := ecvrf.ValidatePublicKey(pk); err != nil {
		s.log.Debugw("sortition rejected public key", "public_key", pk.String(), "err", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidDraw, err)
	}

	out, err := ecvrf.Verify(pk, Message(participants), proof)
	if err != nil {
		s.log.Debugw("sortition proof failed", "public_key", pk.String())
		return nil, fmt.Errorf("%w: %w", ErrInvalidDraw, err)
	}

	s.log.Debugw("sortition verified",
		"participants", len(participants),
		"winners", n,
		"public_key", pk.String(),
	)
	return Shuffle(Seed(out), participants)[:n], nil
}

// Check verifies every field of a Result, including the claimed winners and
// output.
func (s *Sortition) Check(r *Result) error {
	if r == nil {
		return fmt.Errorf("%w: nil result", ErrInvalidDraw)
	}

	winners, err := s.Verify(r.PublicKey, r.Participants, r.N, r.Proof[:])
	if err != nil {
		return err
	}

	out, err := ecvrf.ProofToHash(r.Proof[:])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDraw, err)
	}

	if out != r.Output {
		return fmt.Errorf("%w: output does not match proof", ErrInvalidDraw)
	}

	if !slices.Equal(winners, r.Winners) {
		return fmt.Errorf("%w: winners do not match proof", ErrInvalidDraw)
	}

	return nil
}

func checkCount(participants []string, n int) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}

	if n <= 0 || n > len(participants) {
		return fmt.Errorf("%w: got %d for %d participants", ErrInvalidCount, n, len(participants))
	}

	return nil
}

// Message serializes the participant list as the VRF input: the number of
// participants followed by each participant, all length-prefixed with
// unsigned varints.
func Message(participants []string) []byte {
	buf := binary.AppendUvarint(nil, uint64(len(participants)))
	for _, p := range participants {
		buf = binary.AppendUvarint(buf, uint64(len(p)))
		buf = append(buf, p...)
	}

	return buf
}

// Seed returns the shuffle seed, the first SeedSize bytes of the VRF output.
func Seed(out types.Output) [SeedSize]byte {
	var seed [SeedSize]byte
	copy(seed[:], out[:SeedSize])
	return seed
}

// Shuffle returns a copy of participants permuted by a Fisher-Yates shuffle
// driven by a ChaCha20 keystream keyed with seed.
func Shuffle(seed [SeedSize]byte, participants []string) []string {
	out := slices.Clone(participants)
	ks := newKeystream(seed)

	for i := len(out) - 1; i > 0; i-- {
		j := ks.intn(uint64(i + 1))
		out[i], out[j] = out[j], out[i]
	}

	return out
}

type keystream struct {
	cipher *chacha20.Cipher
	buf    [8]byte
}

func newKeystream(seed [SeedSize]byte) *keystream {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		panic(err)
	}

	return &keystream{cipher: c}
}

func (k *keystream) uint64() uint64 {
	k.buf = [8]byte{}
	k.cipher.XORKeyStream(k.buf[:], k.buf[:])
	return binary.LittleEndian.Uint64(k.buf[:])
}

// intn returns a uniform value in [0, n) by rejecting the values above the
// largest multiple of n.
func (k *keystream) intn(n uint64) uint64 {
	limit := math.MaxUint64 - math.MaxUint64%n
	for {
		v := k.uint64()
		if v < limit {
			return v % n
		}
	}
}
