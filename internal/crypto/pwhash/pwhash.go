// Package pwhash derives keys from passwords with Argon2, matching libsodium's
// crypto_pwhash: parallelism is fixed at 1, memory limits are given in bytes
// and rounded down to whole KiB, and the per-algorithm limits below are
// libsodium's.
//
// Password hashing is deliberately slow. Use the Interactive limits for
// online logins, Moderate or Sensitive for keys protecting data at rest.
package pwhash

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"natrium/internal/crypto"
)

// Algorithm selects the Argon2 variant. Values match libsodium's
// crypto_pwhash_ALG_* constants.
type Algorithm int

const (
	AlgArgon2i13  Algorithm = 1
	AlgArgon2id13 Algorithm = 2
	AlgDefault              = AlgArgon2id13
)

const (
	SaltBytes = 16
	BytesMin  = 16
	BytesMax  = 1<<32 - 1

	// Argon2id limits.
	OpsLimitMin         = 1
	OpsLimitInteractive = 2
	OpsLimitModerate    = 3
	OpsLimitSensitive   = 4
	OpsLimitMax         = 1<<32 - 1

	MemLimitMin         = 8192
	MemLimitInteractive = 64 << 20
	MemLimitModerate    = 256 << 20
	MemLimitSensitive   = 1 << 30
	MemLimitMax         = 4398046510080

	// Argon2i limits.
	Argon2iOpsLimitMin         = 3
	Argon2iOpsLimitInteractive = 4
	Argon2iOpsLimitModerate    = 6
	Argon2iOpsLimitSensitive   = 8
	Argon2iMemLimitInteractive = 32 << 20
	Argon2iMemLimitModerate    = 128 << 20
	Argon2iMemLimitSensitive   = 512 << 20
)

const parallelism = 1

// String returns the PHC identifier of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgArgon2i13:
		return "argon2i"
	case AlgArgon2id13:
		return "argon2id"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm accepts "argon2i", "argon2id" (with or without the "13"
// suffix) and "default".
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.TrimSuffix(strings.ToLower(s), "13") {
	case "argon2i":
		return AlgArgon2i13, nil
	case "argon2id", "default", "":
		return AlgArgon2id13, nil
	}
	return 0, fmt.Errorf("%w: %q", crypto.ErrUnsupportedAlgorithm, s)
}

// Limits returns the minimum opslimit and memlimit accepted for a.
func (a Algorithm) Limits() (opsMin, memMin uint64, err error) {
	switch a {
	case AlgArgon2i13:
		return Argon2iOpsLimitMin, MemLimitMin, nil
	case AlgArgon2id13:
		return OpsLimitMin, MemLimitMin, nil
	}
	return 0, 0, fmt.Errorf("%w: %d", crypto.ErrUnsupportedAlgorithm, int(a))
}

// Hash derives outLen bytes from password and salt.
func Hash(outLen int, password, salt []byte, opsLimit, memLimit uint64, alg Algorithm) ([]byte, error) {
	if outLen < BytesMin || uint64(outLen) > BytesMax {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", crypto.ErrInvalidOutputLength, outLen, BytesMin, uint64(BytesMax))
	}
	if len(salt) != SaltBytes {
		return nil, crypto.SizeError(crypto.ErrInvalidSaltLength, len(salt), SaltBytes)
	}
	if err := checkLimits(opsLimit, memLimit, alg); err != nil {
		return nil, err
	}
	return derive(password, salt, uint32(opsLimit), uint32(memLimit/1024), parallelism, uint32(outLen), alg), nil
}

// HashString is Hash over the UTF-8 bytes of password.
func HashString(outLen int, password string, salt []byte, opsLimit, memLimit uint64, alg Algorithm) ([]byte, error) {
	return Hash(outLen, []byte(password), salt, opsLimit, memLimit, alg)
}

func checkLimits(opsLimit, memLimit uint64, alg Algorithm) error {
	opsMin, memMin, err := alg.Limits()
	if err != nil {
		return err
	}
	if opsLimit < opsMin || opsLimit > OpsLimitMax {
		return fmt.Errorf("%w: opslimit %d not in [%d, %d]", crypto.ErrResourceLimitExceeded, opsLimit, opsMin, uint64(OpsLimitMax))
	}
	if memLimit < memMin || memLimit > MemLimitMax {
		return fmt.Errorf("%w: memlimit %d not in [%d, %d]", crypto.ErrResourceLimitExceeded, memLimit, memMin, uint64(MemLimitMax))
	}
	return nil
}

func derive(password, salt []byte, t, mKiB uint32, p uint8, keyLen uint32, alg Algorithm) []byte {
	if alg == AlgArgon2i13 {
		return argon2.Key(password, salt, t, mKiB, p, keyLen)
	}
	return argon2.IDKey(password, salt, t, mKiB, p, keyLen)
}
