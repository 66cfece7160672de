package types

import "natrium/internal/util/memzero"

// Keypair is an asymmetric key pair. PrivateKey is 32 bytes for x25519 and
// 64 bytes (seed || public key) for ed25519.
type Keypair struct {
	PublicKey  []byte  `json:"public_key"`
	PrivateKey []byte  `json:"private_key"`
	KeyType    KeyType `json:"key_type"`
}

// Wipe zeroes the private half in place.
func (k *Keypair) Wipe() { memzero.Zero(k.PrivateKey) }
