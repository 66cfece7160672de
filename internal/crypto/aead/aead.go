// Package aead implements XChaCha20-Poly1305-IETF authenticated encryption
// with additional data, byte-compatible with libsodium's
// crypto_aead_xchacha20poly1305_ietf_{encrypt,decrypt} in combined mode
// (c || tag).
//
// The 24-byte nonce is large enough to be drawn at random for every message.
package aead

import (
	"golang.org/x/crypto/chacha20poly1305"

	"natrium/internal/crypto"
	"natrium/internal/crypto/random"
	"natrium/internal/util/memzero"
)

const (
	KeyBytes  = chacha20poly1305.KeySize
	NPubBytes = chacha20poly1305.NonceSizeX
	ABytes    = chacha20poly1305.Overhead
)

// Keygen returns a fresh random key.
func Keygen() ([]byte, error) {
	return random.Bytes(KeyBytes)
}

// Encrypt seals message and authenticates additionalData, which is not
// included in the output.
func Encrypt(message, additionalData, nonce, key []byte) ([]byte, error) {
	if err := check(nonce, key); err != nil {
		return nil, err
	}
	var k [KeyBytes]byte
	copy(k[:], key)
	defer memzero.Zero32(&k)

	c, err := chacha20poly1305.NewX(k[:])
	if err != nil {
		return nil, err
	}
	return c.Seal(make([]byte, 0, len(message)+ABytes), nonce, message, additionalData), nil
}

// Decrypt verifies ciphertext and additionalData and returns the plaintext.
func Decrypt(ciphertext, additionalData, nonce, key []byte) ([]byte, error) {
	if err := check(nonce, key); err != nil {
		return nil, err
	}
	if len(ciphertext) < ABytes {
		return nil, crypto.SizeError(crypto.ErrInvalidCiphertextLength, len(ciphertext), ABytes)
	}
	var k [KeyBytes]byte
	copy(k[:], key)
	defer memzero.Zero32(&k)

	c, err := chacha20poly1305.NewX(k[:])
	if err != nil {
		return nil, err
	}
	out, err := c.Open(nil, nonce, ciphertext, additionalData)
	if err != nil {
		return nil, crypto.ErrAuthenticationFailed
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

func check(nonce, key []byte) error {
	if len(key) != KeyBytes {
		return crypto.SizeError(crypto.ErrInvalidKeyLength, len(key), KeyBytes)
	}
	if len(nonce) != NPubBytes {
		return crypto.SizeError(crypto.ErrInvalidNonceLength, len(nonce), NPubBytes)
	}
	return nil
}
