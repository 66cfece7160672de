// Package store provides file-based persistence for natrium's keyring.
//
// Keys live in a single JSON file (keyring.json, mode 0600) under the user's
// configured home directory. Public halves and metadata are stored in the
// clear so keys can be listed without a passphrase; every secret half is
// sealed separately in a passphrase-derived envelope:
//
//   - the passphrase is stretched with Argon2id (or scrypt) from pwhash
//   - the secret is encrypted with XChaCha20-Poly1305 from aead, with the key
//     name as additional data so envelopes cannot be swapped between entries
//
// All methods are concurrency-safe via internal locking. Writes go through a
// temp file and rename, so a crash never leaves a truncated keyring.
package store
