package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"natrium/internal/domain"
)

// KeyringFile is the keyring's file name under the home directory.
const KeyringFile = "keyring.json"

const keyringVersion = 1

var (
	ErrNotFound = domain.ErrKeyNotFound
	ErrExists   = domain.ErrKeyExists

	// Returned when the passphrase is incorrect or the envelope has been modified / corrupted.
	ErrWrongPassphrase = errors.New("store: wrong passphrase or corrupted key")
)

type keyringFile struct {
	Version int                       `json:"version"`
	Keys    map[domain.KeyName]*entry `json:"keys"`
}

type entry struct {
	Kind    domain.KeyKind `json:"kind"`
	Type    domain.KeyType `json:"type,omitempty"`
	Public  []byte         `json:"public,omitempty"`
	Created int64          `json:"created"`
	Sealed  envelope       `json:"sealed"`
}

func (e *entry) record(name domain.KeyName) domain.KeyRecord {
	return domain.KeyRecord{
		Name:    name,
		Kind:    e.Kind,
		Type:    e.Type,
		Public:  append([]byte(nil), e.Public...),
		Created: time.Unix(e.Created, 0).UTC(),
	}
}

// KeyringFileStore persists named keys to a single JSON file.
type KeyringFileStore struct {
	dir    string
	params Params
	mu     sync.Mutex
}

// NewKeyringFileStore returns a KeyringFileStore rooted at dir that seals new
// secrets with p.
func NewKeyringFileStore(dir string, p Params) *KeyringFileStore {
	return &KeyringFileStore{dir: dir, params: p}
}

// Path returns the keyring file location.
func (s *KeyringFileStore) Path() string { return filepath.Join(s.dir, KeyringFile) }

// SaveKey seals rec.Secret under passphrase and adds the record. Names are
// never overwritten; delete first to replace a key.
func (s *KeyringFileStore) SaveKey(passphrase string, rec domain.KeyRecord) error {
	if rec.Name == "" {
		return errors.New("store: empty key name")
	}
	if !rec.Kind.Valid() {
		return fmt.Errorf("store: unknown key kind %q", rec.Kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kr, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := kr.Keys[rec.Name]; ok {
		return fmt.Errorf("%w: %q", ErrExists, rec.Name)
	}
	env, err := seal(passphrase, rec.Secret, []byte(rec.Name), s.params)
	if err != nil {
		return err
	}
	created := rec.Created
	if created.IsZero() {
		created = time.Now()
	}
	kr.Keys[rec.Name] = &entry{
		Kind:    rec.Kind,
		Type:    rec.Type,
		Public:  append([]byte(nil), rec.Public...),
		Created: created.Unix(),
		Sealed:  env,
	}
	return writeJSON(s.Path(), kr, 0o600)
}

// LoadKey returns the named record with its secret opened.
func (s *KeyringFileStore) LoadKey(passphrase string, name domain.KeyName) (domain.KeyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kr, err := s.load()
	if err != nil {
		return domain.KeyRecord{}, err
	}
	e, ok := kr.Keys[name]
	if !ok {
		return domain.KeyRecord{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	secret, err := e.Sealed.open(passphrase, []byte(name))
	if err != nil {
		return domain.KeyRecord{}, err
	}
	rec := e.record(name)
	rec.Secret = secret
	return rec, nil
}

// ListKeys returns every record sorted by name, without secrets.
func (s *KeyringFileStore) ListKeys() ([]domain.KeyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kr, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.KeyRecord, 0, len(kr.Keys))
	for name, e := range kr.Keys {
		out = append(out, e.record(name))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DeleteKey removes the named key.
func (s *KeyringFileStore) DeleteKey(name domain.KeyName) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kr, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := kr.Keys[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(kr.Keys, name)
	return writeJSON(s.Path(), kr, 0o600)
}

// load reads the keyring; callers hold s.mu.
func (s *KeyringFileStore) load() (*keyringFile, error) {
	kr := &keyringFile{Version: keyringVersion}
	if err := readJSON(s.Path(), kr); err != nil {
		return nil, fmt.Errorf("reading keyring: %w", err)
	}
	if kr.Version > keyringVersion {
		return nil, fmt.Errorf("unsupported keyring version %d", kr.Version)
	}
	if kr.Keys == nil {
		kr.Keys = make(map[domain.KeyName]*entry)
	}
	return kr, nil
}

// Compile-time assertion that KeyringFileStore implements domain.KeyStore.
var _ domain.KeyStore = (*KeyringFileStore)(nil)
