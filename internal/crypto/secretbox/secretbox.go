// Package secretbox implements secret-key authenticated encryption with
// XSalsa20-Poly1305, byte-compatible with libsodium's crypto_secretbox_easy.
//
// Ciphertexts are laid out as mac || c, so a ciphertext is always MacBytes
// longer than its plaintext.
//
// A (nonce, key) pair must never encrypt two different messages. Nothing here
// tracks nonces; generate a fresh random one per message with
// random.Bytes(NonceBytes).
package secretbox

import (
	"golang.org/x/crypto/nacl/secretbox"

	"natrium/internal/crypto"
	"natrium/internal/crypto/random"
	"natrium/internal/util/memzero"
)

const (
	KeyBytes   = 32
	NonceBytes = 24
	MacBytes   = secretbox.Overhead

	Primitive = "xsalsa20poly1305"
)

// Keygen returns a fresh random key.
func Keygen() ([]byte, error) {
	return random.Bytes(KeyBytes)
}

// Easy encrypts and authenticates message under nonce and key.
func Easy(message, nonce, key []byte) ([]byte, error) {
	n, k, err := params(nonce, key)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero32(k)

	return secretbox.Seal(make([]byte, 0, MacBytes+len(message)), message, n, k), nil
}

// OpenEasy verifies and decrypts a ciphertext produced by Easy.
func OpenEasy(ciphertext, nonce, key []byte) ([]byte, error) {
	n, k, err := params(nonce, key)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero32(k)

	if len(ciphertext) < MacBytes {
		return nil, crypto.SizeError(crypto.ErrInvalidCiphertextLength, len(ciphertext), MacBytes)
	}
	out, ok := secretbox.Open(nil, ciphertext, n, k)
	if !ok {
		return nil, crypto.ErrAuthenticationFailed
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

func params(nonce, key []byte) (*[NonceBytes]byte, *[KeyBytes]byte, error) {
	if len(key) != KeyBytes {
		return nil, nil, crypto.SizeError(crypto.ErrInvalidKeyLength, len(key), KeyBytes)
	}
	if len(nonce) != NonceBytes {
		return nil, nil, crypto.SizeError(crypto.ErrInvalidNonceLength, len(nonce), NonceBytes)
	}
	var n [NonceBytes]byte
	var k [KeyBytes]byte
	copy(n[:], nonce)
	copy(k[:], key)
	return &n, &k, nil
}
