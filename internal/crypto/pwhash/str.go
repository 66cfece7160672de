package pwhash

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"

	"natrium/internal/crypto"
	"natrium/internal/crypto/random"
)

// StrBytes bounds the length of a string produced by Str.
const StrBytes = 128

// StrVerifyMemLimitMax caps the memory cost StrVerify will honour. Strings
// asking for more are rejected before any hashing.
const StrVerifyMemLimitMax = 4 << 30

const strHashBytes = 32

var b64 = base64.RawStdEncoding

// Str hashes password under a fresh random salt with the default algorithm
// and returns a self-describing PHC string, e.g.
//
//	$argon2id$v=19$m=65536,t=2,p=1$<salt>$<hash>
//
// The string can be stored as-is and checked later with StrVerify.
func Str(password string, opsLimit, memLimit uint64) (string, error) {
	return StrAlg(password, opsLimit, memLimit, AlgDefault)
}

// StrAlg is Str with an explicit algorithm.
func StrAlg(password string, opsLimit, memLimit uint64, alg Algorithm) (string, error) {
	salt, err := random.Bytes(SaltBytes)
	if err != nil {
		return "", err
	}
	h, err := Hash(strHashBytes, []byte(password), salt, opsLimit, memLimit, alg)
	if err != nil {
		return "", err
	}
	p := phc{alg: alg, mKiB: uint32(memLimit / 1024), t: uint32(opsLimit), p: parallelism, salt: salt, hash: h}
	return p.String(), nil
}

// StrVerify reports whether password matches a string produced by Str. A
// mismatch returns crypto.ErrAuthenticationFailed; an unparsable string
// returns crypto.ErrMalformedEncoding; costs outside the algorithm's limits
// or above StrVerifyMemLimitMax return crypto.ErrResourceLimitExceeded.
func StrVerify(str, password string) error {
	p, err := parsePHC(str)
	if err != nil {
		return err
	}
	if err := checkLimits(uint64(p.t), uint64(p.mKiB)*1024, p.alg); err != nil {
		return err
	}
	if mem := uint64(p.mKiB) * 1024; mem > StrVerifyMemLimitMax {
		return fmt.Errorf("%w: memlimit %d above verify cap %d", crypto.ErrResourceLimitExceeded, mem, uint64(StrVerifyMemLimitMax))
	}
	got := derive([]byte(password), p.salt, p.t, p.mKiB, p.p, uint32(len(p.hash)), p.alg)
	if subtle.ConstantTimeCompare(got, p.hash) != 1 {
		return crypto.ErrAuthenticationFailed
	}
	return nil
}

// StrNeedsRehash reports whether str was produced with parameters other than
// the given limits and the default algorithm.
func StrNeedsRehash(str string, opsLimit, memLimit uint64) (bool, error) {
	p, err := parsePHC(str)
	if err != nil {
		return false, err
	}
	return p.alg != AlgDefault ||
		uint64(p.t) != opsLimit ||
		uint64(p.mKiB) != memLimit/1024 ||
		p.p != parallelism ||
		len(p.salt) != SaltBytes ||
		len(p.hash) != strHashBytes, nil
}

type phc struct {
	alg  Algorithm
	mKiB uint32
	t    uint32
	p    uint8
	salt []byte
	hash []byte
}

func (p phc) String() string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		p.alg, argon2.Version, p.mKiB, p.t, p.p,
		b64.EncodeToString(p.salt), b64.EncodeToString(p.hash))
}

func parsePHC(s string) (phc, error) {
	malformed := func(what string) (phc, error) {
		return phc{}, fmt.Errorf("%w: password hash %s", crypto.ErrMalformedEncoding, what)
	}

	// "", alg, v=19, params, salt, hash
	parts := strings.Split(s, "$")
	if len(parts) != 6 || parts[0] != "" {
		return malformed("layout")
	}
	var p phc
	switch parts[1] {
	case "argon2i":
		p.alg = AlgArgon2i13
	case "argon2id":
		p.alg = AlgArgon2id13
	default:
		return phc{}, fmt.Errorf("%w: %q", crypto.ErrUnsupportedAlgorithm, parts[1])
	}
	if parts[2] != "v="+strconv.Itoa(argon2.Version) {
		return malformed("version")
	}

	params := strings.Split(parts[3], ",")
	if len(params) != 3 {
		return malformed("parameters")
	}
	for i, key := range []string{"m", "t", "p"} {
		v, ok := strings.CutPrefix(params[i], key+"=")
		if !ok {
			return malformed("parameters")
		}
		bits := 32
		if key == "p" {
			bits = 8
		}
		n, err := strconv.ParseUint(v, 10, bits)
		if err != nil || n == 0 {
			return malformed("parameters")
		}
		switch key {
		case "m":
			p.mKiB = uint32(n)
		case "t":
			p.t = uint32(n)
		case "p":
			p.p = uint8(n)
		}
	}
	if p.mKiB < 8*uint32(p.p) {
		return malformed("memory cost")
	}

	var err error
	if p.salt, err = b64.DecodeString(parts[4]); err != nil || len(p.salt) < 8 {
		return malformed("salt")
	}
	if p.hash, err = b64.DecodeString(parts[5]); err != nil || len(p.hash) < BytesMin {
		return malformed("digest")
	}
	return p, nil
}
