package crypto

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength is returned when a key, nonce, salt, seed, context or
	// requested output has the wrong size. Every more specific length error
	// below wraps it.
	ErrInvalidLength = errors.New("crypto: invalid length")

	// ErrInvalidRange is returned for a non-positive uniform random bound.
	ErrInvalidRange = errors.New("crypto: invalid range")

	// ErrMalformedEncoding is returned when base64 or hex text cannot be decoded.
	ErrMalformedEncoding = errors.New("crypto: malformed encoding")

	// ErrInvalidUTF8 is returned when bytes are not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("crypto: invalid utf-8")

	// ErrAuthenticationFailed is returned when a tag or signature does not
	// verify. It deliberately carries no further detail.
	ErrAuthenticationFailed = errors.New("crypto: authentication failed")

	// ErrResourceLimitExceeded is returned when password hashing limits fall
	// outside the algorithm's bounds.
	ErrResourceLimitExceeded = errors.New("crypto: resource limit out of bounds")

	// ErrUnsupportedAlgorithm is returned for an unknown password hashing
	// algorithm identifier.
	ErrUnsupportedAlgorithm = errors.New("crypto: unsupported algorithm")

	// ErrWeakPublicKey is returned when a Curve25519 public key yields an
	// all-zero shared secret.
	ErrWeakPublicKey = errors.New("crypto: weak public key")
)

// Per-input length errors. Each one wraps ErrInvalidLength.
var (
	ErrInvalidKeyLength        = lengthError("key")
	ErrInvalidNonceLength      = lengthError("nonce")
	ErrInvalidCiphertextLength = lengthError("ciphertext")
	ErrInvalidSaltLength       = lengthError("salt")
	ErrInvalidOutputLength     = lengthError("output")
	ErrInvalidSeedLength       = lengthError("seed")
	ErrInvalidContextLength    = lengthError("context")
)

func lengthError(what string) error {
	return fmt.Errorf("%w: %s", ErrInvalidLength, what)
}

// SizeError annotates a length sentinel with the observed and expected sizes.
func SizeError(sentinel error, got, want int) error {
	return fmt.Errorf("%w: got %d, want %d", sentinel, got, want)
}

// IsInvalidLength returns true if the error is or wraps ErrInvalidLength.
func IsInvalidLength(err error) bool {
	return errors.Is(err, ErrInvalidLength)
}

// IsAuthenticationFailed returns true if the error is or wraps ErrAuthenticationFailed.
func IsAuthenticationFailed(err error) bool {
	return errors.Is(err, ErrAuthenticationFailed)
}

// IsMalformedEncoding returns true if the error is or wraps ErrMalformedEncoding.
func IsMalformedEncoding(err error) bool {
	return errors.Is(err, ErrMalformedEncoding)
}

// IsResourceLimitExceeded returns true if the error is or wraps ErrResourceLimitExceeded.
func IsResourceLimitExceeded(err error) bool {
	return errors.Is(err, ErrResourceLimitExceeded)
}
