// Package sign implements Ed25519 signatures with libsodium's crypto_sign key
// and signature layout.
//
// Secret keys are 64 bytes (seed || public key). Verification is total: a
// malformed signature or public key simply fails to verify.
package sign

import (
	"crypto/ed25519"
	"crypto/subtle"
	"fmt"

	"natrium/internal/crypto"
	"natrium/internal/crypto/random"
	"natrium/internal/domain"
	"natrium/internal/util/memzero"
)

const (
	PublicKeyBytes = ed25519.PublicKeySize
	SecretKeyBytes = ed25519.PrivateKeySize
	Bytes          = ed25519.SignatureSize
	SeedBytes      = ed25519.SeedSize

	Primitive = "ed25519"
)

// Keypair generates a fresh Ed25519 key pair.
func Keypair() (domain.Keypair, error) {
	seed, err := random.Bytes(SeedBytes)
	if err != nil {
		return domain.Keypair{}, err
	}
	defer memzero.Zero(seed)
	return SeedKeypair(seed)
}

// SeedKeypair deterministically derives a key pair from a 32-byte seed.
func SeedKeypair(seed []byte) (domain.Keypair, error) {
	if len(seed) != SeedBytes {
		return domain.Keypair{}, crypto.SizeError(crypto.ErrInvalidSeedLength, len(seed), SeedBytes)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := append([]byte(nil), priv[SeedBytes:]...)
	return domain.Keypair{PublicKey: pub, PrivateKey: priv, KeyType: domain.KeyTypeEd25519}, nil
}

// PublicKeyFromPrivate extracts the public half of a secret key, checking
// that it matches the embedded seed.
func PublicKeyFromPrivate(secretKey []byte) ([]byte, error) {
	priv, err := privateKey(secretKey)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(priv)
	return append([]byte(nil), priv.Public().(ed25519.PublicKey)...), nil
}

// Seed returns the seed a secret key was derived from.
func Seed(secretKey []byte) ([]byte, error) {
	priv, err := privateKey(secretKey)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(priv)
	return append([]byte(nil), priv.Seed()...), nil
}

// Detached signs message and returns the 64-byte signature alone.
func Detached(message, secretKey []byte) ([]byte, error) {
	priv, err := privateKey(secretKey)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(priv)
	return ed25519.Sign(priv, message), nil
}

// VerifyDetached reports whether signature is a valid signature of message
// by publicKey. Wrong-length inputs report false.
func VerifyDetached(signature, message, publicKey []byte) bool {
	if len(signature) != Bytes || len(publicKey) != PublicKeyBytes {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature)
}

// Sign returns signature || message.
func Sign(message, secretKey []byte) ([]byte, error) {
	sig, err := Detached(message, secretKey)
	if err != nil {
		return nil, err
	}
	return append(sig, message...), nil
}

// Open verifies a signed message from Sign and returns the message part.
func Open(signedMessage, publicKey []byte) ([]byte, error) {
	if len(signedMessage) < Bytes {
		return nil, crypto.SizeError(crypto.ErrInvalidLength, len(signedMessage), Bytes)
	}
	if len(publicKey) != PublicKeyBytes {
		return nil, crypto.SizeError(crypto.ErrInvalidKeyLength, len(publicKey), PublicKeyBytes)
	}
	msg := signedMessage[Bytes:]
	if !ed25519.Verify(ed25519.PublicKey(publicKey), msg, signedMessage[:Bytes]) {
		return nil, crypto.ErrAuthenticationFailed
	}
	return append([]byte{}, msg...), nil
}

// privateKey rebuilds a libsodium-layout secret key from its seed. The
// trailing public key must match the seed.
func privateKey(secretKey []byte) (ed25519.PrivateKey, error) {
	if len(secretKey) != SecretKeyBytes {
		return nil, crypto.SizeError(crypto.ErrInvalidKeyLength, len(secretKey), SecretKeyBytes)
	}
	priv := ed25519.NewKeyFromSeed(secretKey[:SeedBytes])
	if subtle.ConstantTimeCompare(priv[SeedBytes:], secretKey[SeedBytes:]) != 1 {
		memzero.Zero(priv)
		return nil, fmt.Errorf("%w: public half does not match seed", crypto.ErrInvalidKeyLength)
	}
	return priv, nil
}
