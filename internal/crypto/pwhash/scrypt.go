package pwhash

import (
	"fmt"

	"golang.org/x/crypto/scrypt"

	"natrium/internal/crypto"
)

// Limits of libsodium's crypto_pwhash_scryptsalsa208sha256.
const (
	ScryptSaltBytes = 32
	ScryptBytesMin  = 16

	ScryptOpsLimitMin         = 32768
	ScryptOpsLimitInteractive = 524288
	ScryptOpsLimitSensitive   = 33554432
	ScryptOpsLimitMax         = 1<<32 - 1

	ScryptMemLimitMin         = 16 << 20
	ScryptMemLimitInteractive = 16 << 20
	ScryptMemLimitSensitive   = 1 << 30
	ScryptMemLimitMax         = 64 << 30
)

// ScryptParams holds the scrypt cost parameters.
type ScryptParams struct {
	N, R, P int
}

// ScryptParamsFor maps libsodium-style limits onto scrypt's (N, r, p) the
// way libsodium does: r is 8, and N and p are the largest values whose
// memory and work fit within memLimit and opsLimit.
func ScryptParamsFor(opsLimit, memLimit uint64) ScryptParams {
	if opsLimit < ScryptOpsLimitMin {
		opsLimit = ScryptOpsLimitMin
	}
	const r = 8
	logN := func(maxN uint64) uint {
		n := uint(1)
		for ; n < 63; n++ {
			if uint64(1)<<n > maxN/2 {
				break
			}
		}
		return n
	}
	if opsLimit < memLimit/32 {
		n := logN(opsLimit / (r * 4))
		return ScryptParams{N: 1 << n, R: r, P: 1}
	}
	n := logN(memLimit / (r * 128))
	maxrp := (opsLimit / 4) / (uint64(1) << n)
	if maxrp > 0x3fffffff {
		maxrp = 0x3fffffff
	}
	return ScryptParams{N: 1 << n, R: r, P: int(maxrp) / r}
}

// ScryptSalsa208SHA256 derives outLen bytes from password and a 32-byte salt
// with scrypt, choosing (N, r, p) from the limits via ScryptParamsFor. The
// output matches libsodium's crypto_pwhash_scryptsalsa208sha256.
func ScryptSalsa208SHA256(outLen int, password, salt []byte, opsLimit, memLimit uint64) ([]byte, error) {
	if outLen < ScryptBytesMin {
		return nil, fmt.Errorf("%w: %d below %d", crypto.ErrInvalidOutputLength, outLen, ScryptBytesMin)
	}
	if len(salt) != ScryptSaltBytes {
		return nil, crypto.SizeError(crypto.ErrInvalidSaltLength, len(salt), ScryptSaltBytes)
	}
	if opsLimit > ScryptOpsLimitMax || memLimit > ScryptMemLimitMax {
		return nil, fmt.Errorf("%w: opslimit %d, memlimit %d", crypto.ErrResourceLimitExceeded, opsLimit, memLimit)
	}
	prm := ScryptParamsFor(opsLimit, memLimit)
	if prm.P < 1 {
		return nil, fmt.Errorf("%w: opslimit %d too low for memlimit %d", crypto.ErrResourceLimitExceeded, opsLimit, memLimit)
	}
	out, err := scrypt.Key(password, salt, prm.N, prm.R, prm.P, outLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", crypto.ErrResourceLimitExceeded, err)
	}
	return out, nil
}
