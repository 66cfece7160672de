package crypto

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// FingerprintBytes is how much of the digest a fingerprint shows.
const FingerprintBytes = 10

// Fingerprint returns a short display form of a public key: the first
// FingerprintBytes of its BLAKE2b-256 digest as hex, in colon-separated
// groups of two bytes ("1a2b:3c4d:5e6f:7081:92a3").
//
// Never call it on private key material.
func Fingerprint(pub []byte) string {
	sum := blake2b.Sum256(pub)
	digits := hex.EncodeToString(sum[:FingerprintBytes])

	var b strings.Builder
	for i := 0; i < len(digits); i += 4 {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(digits[i : i+4])
	}
	return b.String()
}
