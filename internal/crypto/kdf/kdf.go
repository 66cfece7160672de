// Package kdf derives any number of independent subkeys from one master key.
//
// A subkey is identified by an 8-byte context string and a 64-bit id. The
// construction is libsodium's crypto_kdf_blake2b: BLAKE2b keyed with the
// master key over an empty message, with salt LE64(id) || 0^8 and
// personalisation context || 0^8. Output matches
// crypto_kdf_derive_from_key byte for byte.
package kdf

import (
	"encoding/binary"
	"fmt"

	"github.com/dchest/blake2b"

	"natrium/internal/crypto"
	"natrium/internal/crypto/random"
)

const (
	KeyBytes     = 32
	ContextBytes = 8
	BytesMin     = 16
	BytesMax     = blake2b.Size

	Primitive = "blake2b"
)

// Keygen returns a fresh random master key.
func Keygen() ([]byte, error) {
	return random.Bytes(KeyBytes)
}

// DeriveFromKey returns subkey number subkeyID of length subkeyLen for
// context under key.
func DeriveFromKey(subkeyLen int, subkeyID uint64, context string, key []byte) ([]byte, error) {
	if subkeyLen < BytesMin || subkeyLen > BytesMax {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", crypto.ErrInvalidOutputLength, subkeyLen, BytesMin, BytesMax)
	}
	if len(context) != ContextBytes {
		return nil, crypto.SizeError(crypto.ErrInvalidContextLength, len(context), ContextBytes)
	}
	if len(key) != KeyBytes {
		return nil, crypto.SizeError(crypto.ErrInvalidKeyLength, len(key), KeyBytes)
	}

	var salt [blake2b.SaltSize]byte
	var person [blake2b.PersonSize]byte
	binary.LittleEndian.PutUint64(salt[:], subkeyID)
	copy(person[:], context)

	h, err := blake2b.New(&blake2b.Config{
		Size:   uint8(subkeyLen),
		Key:    key,
		Salt:   salt[:],
		Person: person[:],
	})
	if err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}
