package interfaces

import domaintypes "natrium/internal/domain/types"

// KeyringService creates, retrieves and inspects named keys.
type KeyringService interface {
	CreateKey(
		passphrase string,
		name domaintypes.KeyName,
		kind domaintypes.KeyKind,
	) (
		domaintypes.KeyRecord,
		domaintypes.Fingerprint,
		error,
	)
	Key(passphrase string, name domaintypes.KeyName) (domaintypes.KeyRecord, error)
	Keys() ([]domaintypes.KeyRecord, error)
	Fingerprint(name domaintypes.KeyName) (domaintypes.Fingerprint, error)
	DeleteKey(name domaintypes.KeyName) error
}
