package domain

import (
	interfaces "natrium/internal/domain/interfaces"
	types "natrium/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	KeyName     = types.KeyName
	Fingerprint = types.Fingerprint
	KeyType     = types.KeyType
	KeyKind     = types.KeyKind
	Keypair     = types.Keypair
	KeyRecord   = types.KeyRecord
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyStore       = interfaces.KeyStore
	KeyringService = interfaces.KeyringService
)

const (
	KeyTypeX25519  = types.KeyTypeX25519
	KeyTypeEd25519 = types.KeyTypeEd25519

	KindBox       = types.KindBox
	KindSign      = types.KindSign
	KindSecretbox = types.KindSecretbox
	KindAEAD      = types.KindAEAD
	KindKDF       = types.KindKDF
)

// KeyKinds lists every kind in display order.
var KeyKinds = types.KeyKinds
