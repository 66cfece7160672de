package secretbox_test

import (
	"bytes"
	"errors"
	"testing"

	"natrium/internal/crypto"
	"natrium/internal/crypto/encoding"
	"natrium/internal/crypto/internal/cryptotest"
	"natrium/internal/crypto/random"
	"natrium/internal/crypto/secretbox"
)

func keyAndNonce(t *testing.T) (key, nonce []byte) {
	t.Helper()
	key, err := secretbox.Keygen()
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	nonce, err = random.Bytes(secretbox.NonceBytes)
	if err != nil {
		t.Fatalf("random.Bytes: %v", err)
	}
	return key, nonce
}

func TestKeygen(t *testing.T) {
	k1, err := secretbox.Keygen()
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	k2, err := secretbox.Keygen()
	if err != nil {
		t.Fatalf("Keygen: %v", err)
	}
	if len(k1) != secretbox.KeyBytes {
		t.Fatalf("key length %d, want %d", len(k1), secretbox.KeyBytes)
	}
	if bytes.Equal(k1, k2) {
		t.Fatal("two generated keys are identical")
	}
}

func TestHelloWorld(t *testing.T) {
	key, nonce := keyAndNonce(t)

	ct, err := secretbox.Easy(encoding.FromString("Hello World"), nonce, key)
	if err != nil {
		t.Fatalf("Easy: %v", err)
	}
	pt, err := secretbox.OpenEasy(ct, nonce, key)
	if err != nil {
		t.Fatalf("OpenEasy: %v", err)
	}
	s, err := encoding.ToString(pt)
	if err != nil {
		t.Fatalf("ToString: %v", err)
	}
	if s != "Hello World" {
		t.Fatalf("got %q, want %q", s, "Hello World")
	}
}

// libsodium crypto_secretbox_easy("Hello World", zero nonce, key 00..1f).
func TestKnownAnswer(t *testing.T) {
	key := cryptotest.Seq(secretbox.KeyBytes)
	nonce := make([]byte, secretbox.NonceBytes)
	want := cryptotest.MustHex("6c528d60af71b7b19235b0ed866c07bb026b9c2df78ae85c2e3816")

	ct, err := secretbox.Easy([]byte("Hello World"), nonce, key)
	if err != nil {
		t.Fatalf("Easy: %v", err)
	}
	if !bytes.Equal(ct, want) {
		t.Fatalf("got %x, want %x", ct, want)
	}
	pt, err := secretbox.OpenEasy(want, nonce, key)
	if err != nil || string(pt) != "Hello World" {
		t.Fatalf("OpenEasy = %q, %v", pt, err)
	}
}

func TestRoundTrip(t *testing.T) {
	key, nonce := keyAndNonce(t)
	for _, m := range cryptotest.Messages {
		t.Run(m.Name, func(t *testing.T) {
			ct, err := secretbox.Easy(m.Message, nonce, key)
			if err != nil {
				t.Fatalf("Easy: %v", err)
			}
			if len(ct) != len(m.Message)+secretbox.MacBytes {
				t.Fatalf("ciphertext length %d, want %d", len(ct), len(m.Message)+secretbox.MacBytes)
			}
			pt, err := secretbox.OpenEasy(ct, nonce, key)
			if err != nil {
				t.Fatalf("OpenEasy: %v", err)
			}
			if !bytes.Equal(pt, m.Message) {
				t.Fatalf("got %q, want %q", pt, m.Message)
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	key, nonce := keyAndNonce(t)
	a, err := secretbox.Easy([]byte("same"), nonce, key)
	if err != nil {
		t.Fatalf("Easy: %v", err)
	}
	b, err := secretbox.Easy([]byte("same"), nonce, key)
	if err != nil {
		t.Fatalf("Easy: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("Easy is not deterministic for fixed inputs")
	}
}

func TestTamperEveryByte(t *testing.T) {
	key, nonce := keyAndNonce(t)
	ct, err := secretbox.Easy([]byte("attack at dawn"), nonce, key)
	if err != nil {
		t.Fatalf("Easy: %v", err)
	}
	cryptotest.ForEachFlippedByte(ct, func(i int, tampered []byte) {
		if _, err := secretbox.OpenEasy(tampered, nonce, key); !errors.Is(err, crypto.ErrAuthenticationFailed) {
			t.Fatalf("byte %d flipped: err = %v, want ErrAuthenticationFailed", i, err)
		}
	})
}

func TestWrongKeyOrNonce(t *testing.T) {
	key, nonce := keyAndNonce(t)
	ct, err := secretbox.Easy([]byte("secret"), nonce, key)
	if err != nil {
		t.Fatalf("Easy: %v", err)
	}
	otherKey, otherNonce := keyAndNonce(t)
	if _, err := secretbox.OpenEasy(ct, nonce, otherKey); err != crypto.ErrAuthenticationFailed {
		t.Fatalf("wrong key: err = %v", err)
	}
	if _, err := secretbox.OpenEasy(ct, otherNonce, key); err != crypto.ErrAuthenticationFailed {
		t.Fatalf("wrong nonce: err = %v", err)
	}
}

func TestInvalidLengths(t *testing.T) {
	key, nonce := keyAndNonce(t)
	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"short key", func() error { _, err := secretbox.Easy(nil, nonce, key[:31]); return err }, crypto.ErrInvalidKeyLength},
		{"long nonce", func() error { _, err := secretbox.Easy(nil, append(nonce, 0), key); return err }, crypto.ErrInvalidNonceLength},
		{"open short key", func() error { _, err := secretbox.OpenEasy(make([]byte, 32), nonce, key[:16]); return err }, crypto.ErrInvalidKeyLength},
		{"open short nonce", func() error { _, err := secretbox.OpenEasy(make([]byte, 32), nonce[:12], key); return err }, crypto.ErrInvalidNonceLength},
		{"short ciphertext", func() error { _, err := secretbox.OpenEasy(make([]byte, secretbox.MacBytes-1), nonce, key); return err }, crypto.ErrInvalidCiphertextLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if !errors.Is(err, tt.want) || !errors.Is(err, crypto.ErrInvalidLength) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestInputsNotMutated(t *testing.T) {
	key, nonce := keyAndNonce(t)
	keyCopy := append([]byte(nil), key...)
	msg := []byte("do not touch")
	if _, err := secretbox.Easy(msg, nonce, key); err != nil {
		t.Fatalf("Easy: %v", err)
	}
	if !bytes.Equal(key, keyCopy) || string(msg) != "do not touch" {
		t.Fatal("Easy mutated its inputs")
	}
}
