package keyring

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode"

	"natrium/internal/crypto"
	"natrium/internal/crypto/aead"
	"natrium/internal/crypto/box"
	"natrium/internal/crypto/kdf"
	"natrium/internal/crypto/secretbox"
	"natrium/internal/crypto/sign"
	"natrium/internal/domain"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)

	// ErrNoPublicKey is returned when fingerprinting a symmetric key.
	ErrNoPublicKey = errors.New("key has no public half")

	// ErrKindMismatch is returned when a key is used for the wrong primitive.
	ErrKindMismatch = errors.New("key kind mismatch")
)

// Service manages named key creation and access using a backing store.
//
// Supported kinds:
//   - box: X25519 key pair for crypto_box and sealed boxes.
//   - sign: Ed25519 key pair for signatures.
//   - secretbox, aead, kdf: 32-byte symmetric keys.
type Service struct {
	store domain.KeyStore
	log   *slog.Logger
}

// New returns a keyring service backed by the given store. A nil logger
// discards output.
func New(s domain.KeyStore, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{store: s, log: log}
}

// CreateKey generates a key of the given kind, saves it encrypted with the
// passphrase, and returns the record plus a short fingerprint of its public
// half (empty for symmetric kinds).
func (s *Service) CreateKey(
	passphrase string,
	name domain.KeyName,
	kind domain.KeyKind,
) (domain.KeyRecord, domain.Fingerprint, error) {
	if !isSecurePassphrase(passphrase) {
		return domain.KeyRecord{}, "", ErrWeakPassphrase
	}
	rec, err := Generate(name, kind)
	if err != nil {
		return domain.KeyRecord{}, "", err
	}
	if err := s.store.SaveKey(passphrase, rec); err != nil {
		rec.Wipe()
		return domain.KeyRecord{}, "", err
	}
	s.log.Info("key created", "name", name, "kind", kind)

	var fp domain.Fingerprint
	if kind.Asymmetric() {
		fp = domain.Fingerprint(crypto.Fingerprint(rec.Public))
	}
	return rec, fp, nil
}

// Generate creates an unsaved record holding fresh key material of kind.
func Generate(name domain.KeyName, kind domain.KeyKind) (domain.KeyRecord, error) {
	rec := domain.KeyRecord{Name: name, Kind: kind}
	var err error
	switch kind {
	case domain.KindBox:
		var kp domain.Keypair
		kp, err = box.Keypair()
		rec.Type, rec.Public, rec.Secret = kp.KeyType, kp.PublicKey, kp.PrivateKey
	case domain.KindSign:
		var kp domain.Keypair
		kp, err = sign.Keypair()
		rec.Type, rec.Public, rec.Secret = kp.KeyType, kp.PublicKey, kp.PrivateKey
	case domain.KindSecretbox:
		rec.Secret, err = secretbox.Keygen()
	case domain.KindAEAD:
		rec.Secret, err = aead.Keygen()
	case domain.KindKDF:
		rec.Secret, err = kdf.Keygen()
	default:
		return domain.KeyRecord{}, fmt.Errorf("unknown key kind %q", kind)
	}
	if err != nil {
		return domain.KeyRecord{}, fmt.Errorf("generating %s key: %w", kind, err)
	}
	return rec, nil
}

// Key decrypts and returns the named key.
func (s *Service) Key(passphrase string, name domain.KeyName) (domain.KeyRecord, error) {
	rec, err := s.store.LoadKey(passphrase, name)
	if err != nil {
		return domain.KeyRecord{}, err
	}
	s.log.Debug("key loaded", "name", name, "kind", rec.Kind)
	return rec, nil
}

// KeyOfKind is Key that also checks the record's kind.
func (s *Service) KeyOfKind(passphrase string, name domain.KeyName, kind domain.KeyKind) (domain.KeyRecord, error) {
	rec, err := s.Key(passphrase, name)
	if err != nil {
		return domain.KeyRecord{}, err
	}
	if rec.Kind != kind {
		rec.Wipe()
		return domain.KeyRecord{}, fmt.Errorf("%w: %q is a %s key, want %s", ErrKindMismatch, name, rec.Kind, kind)
	}
	return rec, nil
}

// PublicKey returns the public half of the named key without a passphrase.
func (s *Service) PublicKey(name domain.KeyName, kind domain.KeyKind) ([]byte, error) {
	rec, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	if rec.Kind != kind {
		return nil, fmt.Errorf("%w: %q is a %s key, want %s", ErrKindMismatch, name, rec.Kind, kind)
	}
	return rec.Public, nil
}

// Keys lists every stored key without secrets.
func (s *Service) Keys() ([]domain.KeyRecord, error) {
	return s.store.ListKeys()
}

// Fingerprint returns a short fingerprint of the named key's public half.
func (s *Service) Fingerprint(name domain.KeyName) (domain.Fingerprint, error) {
	rec, err := s.lookup(name)
	if err != nil {
		return "", err
	}
	if !rec.Kind.Asymmetric() {
		return "", fmt.Errorf("%w: %q is a %s key", ErrNoPublicKey, name, rec.Kind)
	}
	return domain.Fingerprint(crypto.Fingerprint(rec.Public)), nil
}

// DeleteKey removes the named key.
func (s *Service) DeleteKey(name domain.KeyName) error {
	if err := s.store.DeleteKey(name); err != nil {
		return err
	}
	s.log.Info("key deleted", "name", name)
	return nil
}

func (s *Service) lookup(name domain.KeyName) (domain.KeyRecord, error) {
	recs, err := s.store.ListKeys()
	if err != nil {
		return domain.KeyRecord{}, err
	}
	for _, rec := range recs {
		if rec.Name == name {
			return rec, nil
		}
	}
	return domain.KeyRecord{}, fmt.Errorf("%w: %q", domain.ErrKeyNotFound, name)
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.KeyringService.
var _ domain.KeyringService = (*Service)(nil)
