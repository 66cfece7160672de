package store

import (
	"errors"
	"fmt"

	"natrium/internal/crypto"
	"natrium/internal/crypto/aead"
	"natrium/internal/crypto/pwhash"
	"natrium/internal/crypto/random"
	"natrium/internal/util/memzero"
)

const (
	// The current supported version of the sealed envelope format stored on disk.
	envelopeVersion = 1
)

// KDF names accepted in Params and recorded in each envelope.
const (
	KDFArgon2id = "argon2id"
	KDFArgon2i  = "argon2i"
	KDFScrypt   = "scrypt"
)

// Params selects how passphrases are stretched into envelope keys.
type Params struct {
	KDF      string
	OpsLimit uint64
	MemLimit uint64
}

// DefaultParams returns Argon2id at libsodium's interactive limits.
func DefaultParams() Params {
	return Params{KDF: KDFArgon2id, OpsLimit: pwhash.OpsLimitInteractive, MemLimit: pwhash.MemLimitInteractive}
}

// Validate reports whether p names a known KDF.
func (p Params) Validate() error {
	switch p.KDF {
	case KDFArgon2id, KDFArgon2i, KDFScrypt:
		return nil
	}
	return fmt.Errorf("%w: kdf %q", crypto.ErrUnsupportedAlgorithm, p.KDF)
}

// envelope is the on-disk JSON structure holding one sealed secret and the
// parameters needed to re-derive its key.
type envelope struct {
	V      int    `json:"v"`
	KDF    string `json:"kdf"`
	Ops    uint64 `json:"opslimit"`
	Mem    uint64 `json:"memlimit"`
	Salt   []byte `json:"salt"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

// seal derives a key from passphrase and encrypts secret, binding it to ad.
func seal(passphrase string, secret, ad []byte, p Params) (envelope, error) {
	if err := p.Validate(); err != nil {
		return envelope{}, err
	}
	saltLen := pwhash.SaltBytes
	if p.KDF == KDFScrypt {
		saltLen = pwhash.ScryptSaltBytes
	}
	salt, err := random.Bytes(saltLen)
	if err != nil {
		return envelope{}, err
	}
	nonce, err := random.Bytes(aead.NPubBytes)
	if err != nil {
		return envelope{}, err
	}
	env := envelope{V: envelopeVersion, KDF: p.KDF, Ops: p.OpsLimit, Mem: p.MemLimit, Salt: salt, Nonce: nonce}

	key, err := env.key(passphrase)
	if err != nil {
		return envelope{}, err
	}
	defer memzero.Zero(key)

	if env.Cipher, err = aead.Encrypt(secret, ad, nonce, key); err != nil {
		return envelope{}, err
	}
	return env, nil
}

// open re-derives the envelope key from passphrase and decrypts the secret.
func (e envelope) open(passphrase string, ad []byte) ([]byte, error) {
	if e.V > envelopeVersion {
		return nil, fmt.Errorf("unsupported envelope version %d", e.V)
	}
	key, err := e.key(passphrase)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	pt, err := aead.Decrypt(e.Cipher, ad, e.Nonce, key)
	if errors.Is(err, crypto.ErrAuthenticationFailed) {
		return nil, ErrWrongPassphrase
	}
	return pt, err
}

func (e envelope) key(passphrase string) ([]byte, error) {
	switch e.KDF {
	case KDFArgon2id:
		return pwhash.HashString(aead.KeyBytes, passphrase, e.Salt, e.Ops, e.Mem, pwhash.AlgArgon2id13)
	case KDFArgon2i:
		return pwhash.HashString(aead.KeyBytes, passphrase, e.Salt, e.Ops, e.Mem, pwhash.AlgArgon2i13)
	case KDFScrypt:
		return pwhash.ScryptSalsa208SHA256(aead.KeyBytes, []byte(passphrase), e.Salt, e.Ops, e.Mem)
	}
	return nil, fmt.Errorf("%w: kdf %q", crypto.ErrUnsupportedAlgorithm, e.KDF)
}
