package store_test

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	qt "github.com/frankban/quicktest"

	"natrium/internal/crypto"
	"natrium/internal/crypto/box"
	"natrium/internal/crypto/pwhash"
	"natrium/internal/crypto/secretbox"
	"natrium/internal/domain"
	"natrium/internal/store"
)

var fastParams = store.Params{KDF: store.KDFArgon2id, OpsLimit: pwhash.OpsLimitMin, MemLimit: pwhash.MemLimitMin}

func boxRecord(c *qt.C, name domain.KeyName) domain.KeyRecord {
	kp, err := box.Keypair()
	c.Assert(err, qt.IsNil)
	return domain.KeyRecord{Name: name, Kind: domain.KindBox, Type: kp.KeyType, Public: kp.PublicKey, Secret: kp.PrivateKey}
}

func TestKeyring_SaveLoad_OK(t *testing.T) {
	c := qt.New(t)
	home := t.TempDir()
	var ks domain.KeyStore = store.NewKeyringFileStore(home, fastParams)

	rec := boxRecord(c, "alice")
	c.Assert(ks.SaveKey("pass", rec), qt.IsNil)

	got, err := ks.LoadKey("pass", "alice")
	c.Assert(err, qt.IsNil)
	c.Assert(got.Name, qt.Equals, domain.KeyName("alice"))
	c.Assert(got.Kind, qt.Equals, domain.KindBox)
	c.Assert(got.Type, qt.Equals, domain.KeyTypeX25519)
	c.Assert(got.Public, qt.DeepEquals, rec.Public)
	c.Assert(got.Secret, qt.DeepEquals, rec.Secret)
	c.Assert(got.Created.IsZero(), qt.IsFalse)

	info, err := os.Stat(filepath.Join(home, store.KeyringFile))
	c.Assert(err, qt.IsNil)
	c.Assert(info.Mode().Perm(), qt.Equals, os.FileMode(0o600))
}

func TestKeyring_SecretNotStoredInClear(t *testing.T) {
	c := qt.New(t)
	home := t.TempDir()
	ks := store.NewKeyringFileStore(home, fastParams)

	key, err := secretbox.Keygen()
	c.Assert(err, qt.IsNil)
	c.Assert(ks.SaveKey("pass", domain.KeyRecord{Name: "k", Kind: domain.KindSecretbox, Secret: key}), qt.IsNil)

	raw, err := os.ReadFile(ks.Path())
	c.Assert(err, qt.IsNil)
	c.Assert(strings.Contains(string(raw), base64.StdEncoding.EncodeToString(key)), qt.IsFalse)
	c.Assert(strings.Contains(string(raw), `"kdf": "argon2id"`), qt.IsTrue)
}

func TestKeyring_WrongPassphrase_Fails(t *testing.T) {
	c := qt.New(t)
	ks := store.NewKeyringFileStore(t.TempDir(), fastParams)

	c.Assert(ks.SaveKey("correct", boxRecord(c, "alice")), qt.IsNil)
	_, err := ks.LoadKey("wrong", "alice")
	c.Assert(err, qt.ErrorIs, store.ErrWrongPassphrase)
}

func TestKeyring_NotFoundAndExists(t *testing.T) {
	c := qt.New(t)
	ks := store.NewKeyringFileStore(t.TempDir(), fastParams)

	_, err := ks.LoadKey("pass", "missing")
	c.Assert(err, qt.ErrorIs, store.ErrNotFound)
	c.Assert(ks.DeleteKey("missing"), qt.ErrorIs, store.ErrNotFound)

	c.Assert(ks.SaveKey("pass", boxRecord(c, "alice")), qt.IsNil)
	c.Assert(ks.SaveKey("pass", boxRecord(c, "alice")), qt.ErrorIs, store.ErrExists)

	c.Assert(ks.DeleteKey("alice"), qt.IsNil)
	_, err = ks.LoadKey("pass", "alice")
	c.Assert(err, qt.ErrorIs, store.ErrNotFound)
}

func TestKeyring_InvalidRecord(t *testing.T) {
	c := qt.New(t)
	ks := store.NewKeyringFileStore(t.TempDir(), fastParams)

	c.Assert(ks.SaveKey("pass", domain.KeyRecord{Kind: domain.KindKDF}), qt.ErrorMatches, ".*empty key name")
	c.Assert(ks.SaveKey("pass", domain.KeyRecord{Name: "x", Kind: "rsa"}), qt.ErrorMatches, `.*unknown key kind "rsa"`)

	bad := store.NewKeyringFileStore(t.TempDir(), store.Params{KDF: "pbkdf2"})
	c.Assert(bad.SaveKey("pass", domain.KeyRecord{Name: "x", Kind: domain.KindKDF}), qt.ErrorIs, crypto.ErrUnsupportedAlgorithm)
}

func TestKeyring_ListWithoutPassphrase(t *testing.T) {
	c := qt.New(t)
	ks := store.NewKeyringFileStore(t.TempDir(), fastParams)

	list, err := ks.ListKeys()
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.HasLen, 0)

	for _, name := range []domain.KeyName{"zed", "alice", "mallory"} {
		c.Assert(ks.SaveKey("pass", boxRecord(c, name)), qt.IsNil)
	}
	list, err = ks.ListKeys()
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.HasLen, 3)
	c.Assert(list[0].Name, qt.Equals, domain.KeyName("alice"))
	c.Assert(list[2].Name, qt.Equals, domain.KeyName("zed"))
	for _, rec := range list {
		c.Assert(rec.Secret, qt.IsNil)
		c.Assert(rec.Public, qt.HasLen, box.PublicKeyBytes)
	}
}

func TestKeyring_EnvelopesBoundToName(t *testing.T) {
	c := qt.New(t)
	home := t.TempDir()
	ks := store.NewKeyringFileStore(home, fastParams)
	c.Assert(ks.SaveKey("pass", boxRecord(c, "alice")), qt.IsNil)
	c.Assert(ks.SaveKey("pass", boxRecord(c, "bob")), qt.IsNil)

	// Swap the sealed secrets on disk; neither entry may open.
	raw, err := os.ReadFile(ks.Path())
	c.Assert(err, qt.IsNil)
	swapped := swapSealed(c, raw, "alice", "bob")
	c.Assert(os.WriteFile(ks.Path(), swapped, 0o600), qt.IsNil)

	_, err = ks.LoadKey("pass", "alice")
	c.Assert(err, qt.ErrorIs, store.ErrWrongPassphrase)
	_, err = ks.LoadKey("pass", "bob")
	c.Assert(err, qt.ErrorIs, store.ErrWrongPassphrase)
}

func TestKeyring_Scrypt(t *testing.T) {
	c := qt.New(t)
	p := store.Params{KDF: store.KDFScrypt, OpsLimit: pwhash.ScryptOpsLimitMin, MemLimit: pwhash.ScryptMemLimitMin}
	ks := store.NewKeyringFileStore(t.TempDir(), p)

	rec := boxRecord(c, "legacy")
	c.Assert(ks.SaveKey("pass", rec), qt.IsNil)
	got, err := ks.LoadKey("pass", "legacy")
	c.Assert(err, qt.IsNil)
	c.Assert(got.Secret, qt.DeepEquals, rec.Secret)

	// Entries keep their own parameters when the store's defaults change.
	argon := store.NewKeyringFileStore(filepath.Dir(ks.Path()), fastParams)
	got, err = argon.LoadKey("pass", "legacy")
	c.Assert(err, qt.IsNil)
	c.Assert(got.Secret, qt.DeepEquals, rec.Secret)
}

func TestKeyring_ConcurrentSaves(t *testing.T) {
	c := qt.New(t)
	ks := store.NewKeyringFileStore(t.TempDir(), fastParams)

	names := []domain.KeyName{"a", "b", "c", "d", "e", "f"}
	recs := make([]domain.KeyRecord, len(names))
	for i, n := range names {
		recs[i] = boxRecord(c, n)
	}
	var wg sync.WaitGroup
	errs := make(chan error, len(recs))
	for _, rec := range recs {
		wg.Add(1)
		go func(rec domain.KeyRecord) {
			defer wg.Done()
			errs <- ks.SaveKey("pass", rec)
		}(rec)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		c.Assert(err, qt.IsNil)
	}
	list, err := ks.ListKeys()
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.HasLen, len(names))
}

func swapSealed(c *qt.C, raw []byte, a, b string) []byte {
	var kr map[string]any
	c.Assert(json.Unmarshal(raw, &kr), qt.IsNil)
	keys := kr["keys"].(map[string]any)
	ea, eb := keys[a].(map[string]any), keys[b].(map[string]any)
	ea["sealed"], eb["sealed"] = eb["sealed"], ea["sealed"]
	out, err := json.Marshal(kr)
	c.Assert(err, qt.IsNil)
	return out
}

func TestKeyring_AtomicWriteAndCorruptFile(t *testing.T) {
	c := qt.New(t)
	home := filepath.Join(t.TempDir(), "nested", "home")
	ks := store.NewKeyringFileStore(home, fastParams)
	c.Assert(ks.SaveKey("pass", boxRecord(c, "alice")), qt.IsNil)

	entries, err := os.ReadDir(home)
	c.Assert(err, qt.IsNil)
	c.Assert(entries, qt.HasLen, 1)
	c.Assert(entries[0].Name(), qt.Equals, store.KeyringFile)

	c.Assert(os.WriteFile(ks.Path(), []byte("{not json"), 0o600), qt.IsNil)
	_, err = ks.ListKeys()
	c.Assert(err, qt.ErrorMatches, "reading keyring: decoding keyring.json: .*")
	c.Assert(ks.SaveKey("pass", boxRecord(c, "bob")), qt.Not(qt.IsNil))
}
