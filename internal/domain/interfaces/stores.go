package interfaces

import domaintypes "natrium/internal/domain/types"

// KeyStore persists named keys, sealing each secret under a passphrase.
type KeyStore interface {
	SaveKey(passphrase string, rec domaintypes.KeyRecord) error
	LoadKey(passphrase string, name domaintypes.KeyName) (domaintypes.KeyRecord, error)
	// ListKeys returns every record with Secret left empty; no passphrase is needed.
	ListKeys() ([]domaintypes.KeyRecord, error)
	DeleteKey(name domaintypes.KeyName) error
}
