package types

import (
	"time"

	"natrium/internal/util/memzero"
)

// KeyRecord is one named keyring entry. Public is empty for symmetric kinds.
type KeyRecord struct {
	Name    KeyName   `json:"name"`
	Kind    KeyKind   `json:"kind"`
	Type    KeyType   `json:"type,omitempty"`
	Public  []byte    `json:"public,omitempty"`
	Secret  []byte    `json:"-"`
	Created time.Time `json:"created"`
}

// Keypair returns the record as a Keypair sharing its slices.
func (r KeyRecord) Keypair() Keypair {
	return Keypair{PublicKey: r.Public, PrivateKey: r.Secret, KeyType: r.Type}
}

// Wipe zeroes the secret half in place.
func (r *KeyRecord) Wipe() { memzero.Zero(r.Secret) }
