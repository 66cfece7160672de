// Package keyring manages creation, encryption and loading of named keys.
//
// It enforces passphrase policy, generates key material for each supported
// primitive (box and sign key pairs, secretbox, aead and kdf keys), and
// persists it via the domain.KeyStore.
package keyring
