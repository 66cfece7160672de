// Package box implements public-key authenticated encryption with
// Curve25519-XSalsa20-Poly1305, byte-compatible with libsodium's crypto_box
// family: the easy interface, precomputed shared keys, and anonymous sealed
// boxes.
//
// Public keys whose shared secret with any private key is all zeros (the
// small-order points of Curve25519) are refused.
package box

import (
	"crypto/sha512"
	"errors"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"

	"natrium/internal/crypto"
	"natrium/internal/crypto/random"
	"natrium/internal/domain"
	"natrium/internal/util/memzero"
)

const (
	PublicKeyBytes = 32
	SecretKeyBytes = 32
	NonceBytes     = 24
	MacBytes       = box.Overhead
	SeedBytes      = 32
	BeforeNMBytes  = 32
	SealBytes      = box.AnonymousOverhead

	Primitive = "curve25519xsalsa20poly1305"
)

// Keypair generates a fresh X25519 key pair.
func Keypair() (domain.Keypair, error) {
	sk, err := random.Bytes(SecretKeyBytes)
	if err != nil {
		return domain.Keypair{}, err
	}
	return fromSecret(sk)
}

// SeedKeypair derives a key pair from seed the way libsodium's
// crypto_box_seed_keypair does: the secret key is SHA-512(seed)[:32].
func SeedKeypair(seed []byte) (domain.Keypair, error) {
	if len(seed) != SeedBytes {
		return domain.Keypair{}, crypto.SizeError(crypto.ErrInvalidSeedLength, len(seed), SeedBytes)
	}
	h := sha512.Sum512(seed)
	defer memzero.Zero(h[:])
	return fromSecret(append([]byte(nil), h[:SecretKeyBytes]...))
}

// PublicKey recomputes the public key belonging to secretKey.
func PublicKey(secretKey []byte) ([]byte, error) {
	if len(secretKey) != SecretKeyBytes {
		return nil, crypto.SizeError(crypto.ErrInvalidKeyLength, len(secretKey), SecretKeyBytes)
	}
	return curve25519.X25519(secretKey, curve25519.Basepoint)
}

func fromSecret(sk []byte) (domain.Keypair, error) {
	pk, err := curve25519.X25519(sk, curve25519.Basepoint)
	if err != nil {
		memzero.Zero(sk)
		return domain.Keypair{}, err
	}
	return domain.Keypair{PublicKey: pk, PrivateKey: sk, KeyType: domain.KeyTypeX25519}, nil
}

// Easy encrypts message for recipientPublicKey, authenticated as the owner
// of senderSecretKey. Output is mac || c.
func Easy(message, nonce, recipientPublicKey, senderSecretKey []byte) ([]byte, error) {
	k, err := BeforeNM(recipientPublicKey, senderSecretKey)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(k)
	return EasyAfterNM(message, nonce, k)
}

// OpenEasy verifies and decrypts a ciphertext from the owner of
// senderPublicKey. Any failure to authenticate, including a weak sender key,
// returns crypto.ErrAuthenticationFailed.
func OpenEasy(ciphertext, nonce, senderPublicKey, recipientSecretKey []byte) ([]byte, error) {
	k, err := BeforeNM(senderPublicKey, recipientSecretKey)
	if errors.Is(err, crypto.ErrWeakPublicKey) {
		return nil, crypto.ErrAuthenticationFailed
	}
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(k)
	return OpenEasyAfterNM(ciphertext, nonce, k)
}

// BeforeNM computes the shared key for a (public key, secret key) pair so
// many messages can be exchanged without repeating the scalar multiplication.
// The returned key is as sensitive as the secret key.
func BeforeNM(publicKey, secretKey []byte) ([]byte, error) {
	pk, sk, err := keys(publicKey, secretKey)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero32(sk)

	dh, err := curve25519.X25519(sk[:], pk[:])
	if err != nil {
		return nil, crypto.ErrWeakPublicKey
	}
	memzero.Zero(dh)
	var shared [BeforeNMBytes]byte
	box.Precompute(&shared, pk, sk)
	out := append([]byte(nil), shared[:]...)
	memzero.Zero32(&shared)
	return out, nil
}

// EasyAfterNM is Easy with a key from BeforeNM.
func EasyAfterNM(message, nonce, sharedKey []byte) ([]byte, error) {
	n, k, err := nonceAndShared(nonce, sharedKey)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero32(k)
	return box.SealAfterPrecomputation(make([]byte, 0, MacBytes+len(message)), message, n, k), nil
}

// OpenEasyAfterNM is OpenEasy with a key from BeforeNM.
func OpenEasyAfterNM(ciphertext, nonce, sharedKey []byte) ([]byte, error) {
	n, k, err := nonceAndShared(nonce, sharedKey)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero32(k)

	if len(ciphertext) < MacBytes {
		return nil, crypto.SizeError(crypto.ErrInvalidCiphertextLength, len(ciphertext), MacBytes)
	}
	out, ok := box.OpenAfterPrecomputation(nil, ciphertext, n, k)
	if !ok {
		return nil, crypto.ErrAuthenticationFailed
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

// Seal encrypts message for recipientPublicKey under a one-shot ephemeral
// key pair. The sender is anonymous; output is epk || mac || c.
func Seal(message, recipientPublicKey []byte) ([]byte, error) {
	if len(recipientPublicKey) != PublicKeyBytes {
		return nil, crypto.SizeError(crypto.ErrInvalidKeyLength, len(recipientPublicKey), PublicKeyBytes)
	}
	if isWeak(recipientPublicKey) {
		return nil, crypto.ErrWeakPublicKey
	}
	var pk [PublicKeyBytes]byte
	copy(pk[:], recipientPublicKey)
	return box.SealAnonymous(make([]byte, 0, SealBytes+len(message)), message, &pk, random.Default)
}

// SealOpen decrypts a sealed box addressed to the given key pair.
func SealOpen(ciphertext, publicKey, secretKey []byte) ([]byte, error) {
	pk, sk, err := keys(publicKey, secretKey)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero32(sk)

	if len(ciphertext) < SealBytes {
		return nil, crypto.SizeError(crypto.ErrInvalidCiphertextLength, len(ciphertext), SealBytes)
	}
	if isWeak(ciphertext[:PublicKeyBytes]) {
		return nil, crypto.ErrAuthenticationFailed
	}
	out, ok := box.OpenAnonymous(nil, ciphertext, pk, sk)
	if !ok {
		return nil, crypto.ErrAuthenticationFailed
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

// isWeak reports whether pk is a small-order point, i.e. multiplying it by
// any clamped scalar yields zero.
func isWeak(pk []byte) bool {
	var one [32]byte
	one[0] = 1
	_, err := curve25519.X25519(one[:], pk)
	return err != nil
}

func keys(publicKey, secretKey []byte) (*[PublicKeyBytes]byte, *[SecretKeyBytes]byte, error) {
	if len(publicKey) != PublicKeyBytes {
		return nil, nil, crypto.SizeError(crypto.ErrInvalidKeyLength, len(publicKey), PublicKeyBytes)
	}
	if len(secretKey) != SecretKeyBytes {
		return nil, nil, crypto.SizeError(crypto.ErrInvalidKeyLength, len(secretKey), SecretKeyBytes)
	}
	var pk [PublicKeyBytes]byte
	var sk [SecretKeyBytes]byte
	copy(pk[:], publicKey)
	copy(sk[:], secretKey)
	return &pk, &sk, nil
}

func nonceAndShared(nonce, sharedKey []byte) (*[NonceBytes]byte, *[BeforeNMBytes]byte, error) {
	if len(sharedKey) != BeforeNMBytes {
		return nil, nil, crypto.SizeError(crypto.ErrInvalidKeyLength, len(sharedKey), BeforeNMBytes)
	}
	if len(nonce) != NonceBytes {
		return nil, nil, crypto.SizeError(crypto.ErrInvalidNonceLength, len(nonce), NonceBytes)
	}
	var n [NonceBytes]byte
	var k [BeforeNMBytes]byte
	copy(n[:], nonce)
	copy(k[:], sharedKey)
	return &n, &k, nil
}
