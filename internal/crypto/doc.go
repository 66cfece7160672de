// Package crypto holds what the natrium primitive packages share: the error
// taxonomy and short public-key fingerprints.
//
// Contents
//
//   - random     Secure random bytes, unbiased bounded integers, seeded DRG
//   - encoding   Base64 (libsodium variants), hex and UTF-8 codecs, output formats
//   - secretbox  XSalsa20-Poly1305 secret-key authenticated encryption
//   - aead       XChaCha20-Poly1305-IETF with additional data
//   - box        Curve25519-XSalsa20-Poly1305 public-key encryption, sealed boxes
//   - sign       Ed25519 detached and combined signatures
//   - kdf        Subkey derivation from a master key (keyed BLAKE2b)
//   - pwhash     Argon2i/Argon2id and scrypt password hashing, PHC strings
//
// # Errors
//
// Every failure is one of the sentinels in this package, possibly wrapped with
// size detail. All length failures wrap ErrInvalidLength. Tag and signature
// failures are always exactly ErrAuthenticationFailed so callers cannot tell a
// wrong key from a corrupted or forged ciphertext.
//
// # Notes
//
// Sizes are exported as constants by each primitive package and match
// libsodium's published values. Callers own every key they pass in; the
// packages copy what they need into local arrays and wipe those copies before
// returning.
package crypto
