package types

// KeyName is the user-chosen label of a keyring entry.
type KeyName string

// String returns the string form of the key name.
func (n KeyName) String() string { return string(n) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// KeyType tags the curve an asymmetric keypair belongs to.
type KeyType string

const (
	KeyTypeX25519  KeyType = "x25519"
	KeyTypeEd25519 KeyType = "ed25519"
)

// String returns the string form of the key type.
func (t KeyType) String() string { return string(t) }

// KeyKind names the primitive a keyring entry is meant for.
type KeyKind string

const (
	KindBox       KeyKind = "box"
	KindSign      KeyKind = "sign"
	KindSecretbox KeyKind = "secretbox"
	KindAEAD      KeyKind = "aead"
	KindKDF       KeyKind = "kdf"
)

// KeyKinds lists every kind in display order.
var KeyKinds = []KeyKind{KindBox, KindSign, KindSecretbox, KindAEAD, KindKDF}

// String returns the string form of the kind.
func (k KeyKind) String() string { return string(k) }

// Asymmetric reports whether entries of this kind carry a public half.
func (k KeyKind) Asymmetric() bool { return k == KindBox || k == KindSign }

// Valid reports whether k is one of the known kinds.
func (k KeyKind) Valid() bool {
	for _, known := range KeyKinds {
		if k == known {
			return true
		}
	}
	return false
}
