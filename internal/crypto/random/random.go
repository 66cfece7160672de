// Package random is the secure random source every other natrium package
// draws keys, nonces and salts from.
//
// The package-level functions use Default, which reads crypto/rand and is
// safe for concurrent use. Tests may build a Source over a fixed reader.
package random

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"golang.org/x/crypto/chacha20"

	"natrium/internal/crypto"
	"natrium/internal/util/memzero"
)

// SeedBytes is the seed size accepted by Deterministic.
const SeedBytes = 32

// drgNonce is libsodium's fixed nonce for randombytes_buf_deterministic.
var drgNonce = [chacha20.NonceSize]byte{'L', 'i', 'b', 's', 'o', 'd', 'i', 'u', 'm', 'D', 'R', 'G'}

// Source produces unpredictable bytes from an underlying reader.
type Source struct {
	r io.Reader
}

// Default reads from crypto/rand.
var Default = New(nil)

// New returns a Source over r. If r is nil, crypto/rand.Reader is used.
func New(r io.Reader) *Source {
	if r == nil {
		r = cryptorand.Reader
	}
	return &Source{r: r}
}

// Bytes returns n random bytes.
func (s *Source) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative size %d", crypto.ErrInvalidLength, n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(s.r, b); err != nil {
		return nil, fmt.Errorf("crypto: reading random source: %w", err)
	}
	return b, nil
}

// Fill overwrites b with random bytes.
func (s *Source) Fill(b []byte) error {
	if _, err := io.ReadFull(s.r, b); err != nil {
		return fmt.Errorf("crypto: reading random source: %w", err)
	}
	return nil
}

// Read implements io.Reader so a Source can be handed to x/crypto helpers.
func (s *Source) Read(p []byte) (int, error) {
	if err := s.Fill(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Uniform returns a value in [0, upperBound) without modulo bias.
//
// Draws below 2^64 mod upperBound are rejected so every residue class is
// equally likely.
func (s *Source) Uniform(upperBound int64) (int64, error) {
	if upperBound <= 0 {
		return 0, fmt.Errorf("%w: upper bound %d", crypto.ErrInvalidRange, upperBound)
	}
	if upperBound == 1 {
		return 0, nil
	}
	u := uint64(upperBound)
	threshold := -u % u
	var buf [8]byte
	for {
		if err := s.Fill(buf[:]); err != nil {
			return 0, err
		}
		v := binary.LittleEndian.Uint64(buf[:])
		if v >= threshold {
			return int64(v % u), nil
		}
	}
}

// Bytes returns n bytes from Default.
func Bytes(n int) ([]byte, error) { return Default.Bytes(n) }

// Uniform returns a value in [0, upperBound) from Default.
func Uniform(upperBound int64) (int64, error) { return Default.Uniform(upperBound) }

// Deterministic expands seed into n bytes that look random to anyone without
// the seed. The same seed always yields the same bytes, and the output matches
// libsodium's randombytes_buf_deterministic.
func Deterministic(n int, seed []byte) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative size %d", crypto.ErrInvalidLength, n)
	}
	if uint64(n) > math.MaxUint32*64 {
		return nil, fmt.Errorf("%w: %d bytes exceeds keystream", crypto.ErrInvalidLength, n)
	}
	if len(seed) != SeedBytes {
		return nil, crypto.SizeError(crypto.ErrInvalidSeedLength, len(seed), SeedBytes)
	}
	var key [SeedBytes]byte
	copy(key[:], seed)
	defer memzero.Zero32(&key)

	c, err := chacha20.NewUnauthenticatedCipher(key[:], drgNonce[:])
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	c.XORKeyStream(out, out)
	return out, nil
}
