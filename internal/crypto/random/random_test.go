package random_test

import (
	"bytes"
	"errors"
	"testing"

	"natrium/internal/crypto"
	"natrium/internal/crypto/internal/cryptotest"
	"natrium/internal/crypto/random"
)

func TestBytes_Lengths(t *testing.T) {
	for _, n := range []int{0, 1, 3, 9, 24, 1024} {
		b, err := random.Bytes(n)
		if err != nil {
			t.Fatalf("Bytes(%d): %v", n, err)
		}
		if len(b) != n {
			t.Fatalf("Bytes(%d) returned %d bytes", n, len(b))
		}
	}
}

func TestBytes_NegativeLength(t *testing.T) {
	if _, err := random.Bytes(-1); !errors.Is(err, crypto.ErrInvalidLength) {
		t.Fatalf("Bytes(-1) err = %v, want ErrInvalidLength", err)
	}
}

func TestBytes_Unpredictable(t *testing.T) {
	a, err := random.Bytes(32)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	b, err := random.Bytes(32)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatal("two 32-byte draws are identical")
	}
}

func TestBytes_ShortReader(t *testing.T) {
	src := random.New(bytes.NewReader([]byte{1, 2}))
	if _, err := src.Bytes(3); err == nil {
		t.Fatal("expected error from exhausted reader")
	}
}

func TestUniform_InvalidRange(t *testing.T) {
	for _, ub := range []int64{0, -1, -10} {
		if _, err := random.Uniform(ub); !errors.Is(err, crypto.ErrInvalidRange) {
			t.Fatalf("Uniform(%d) err = %v, want ErrInvalidRange", ub, err)
		}
	}
}

func TestUniform_One(t *testing.T) {
	v, err := random.Uniform(1)
	if err != nil {
		t.Fatalf("Uniform(1): %v", err)
	}
	if v != 0 {
		t.Fatalf("Uniform(1) = %d, want 0", v)
	}
}

func TestUniform_Distribution(t *testing.T) {
	const (
		bound = 10
		draws = 10000
	)
	var counts [bound]int
	for i := 0; i < draws; i++ {
		v, err := random.Uniform(bound)
		if err != nil {
			t.Fatalf("Uniform: %v", err)
		}
		if v < 0 || v >= bound {
			t.Fatalf("Uniform(%d) = %d out of range", bound, v)
		}
		counts[v]++
	}
	// Expected 1000 per bucket; 700..1300 is far outside any plausible deviation.
	for v, c := range counts {
		if c < 700 || c > 1300 {
			t.Fatalf("value %d drawn %d times out of %d", v, c, draws)
		}
	}
}

func TestUniform_RejectsBiasedDraws(t *testing.T) {
	// 2^64 mod 3 == 1, so a draw of 0 must be rejected and the next one used.
	stream := make([]byte, 16)
	stream[8] = 5 // second draw: 5 mod 3 == 2
	src := random.New(bytes.NewReader(stream))
	v, err := src.Uniform(3)
	if err != nil {
		t.Fatalf("Uniform: %v", err)
	}
	if v != 2 {
		t.Fatalf("Uniform(3) = %d, want 2", v)
	}
}

func TestDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, random.SeedBytes)
	a, err := random.Deterministic(100, seed)
	if err != nil {
		t.Fatalf("Deterministic: %v", err)
	}
	b, err := random.Deterministic(100, seed)
	if err != nil {
		t.Fatalf("Deterministic: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("same seed produced different output")
	}

	prefix, err := random.Deterministic(10, seed)
	if err != nil {
		t.Fatalf("Deterministic: %v", err)
	}
	if !bytes.Equal(prefix, a[:10]) {
		t.Fatal("shorter output is not a prefix of the longer one")
	}

	other := bytes.Repeat([]byte{0x43}, random.SeedBytes)
	c, err := random.Deterministic(100, other)
	if err != nil {
		t.Fatalf("Deterministic: %v", err)
	}
	if bytes.Equal(a, c) {
		t.Fatal("different seeds produced identical output")
	}
}

// libsodium's randombytes_buf_deterministic(64, seed 00..1f).
func TestDeterministic_KnownAnswer(t *testing.T) {
	want := cryptotest.MustHex("0d8e6cc68715648926732e7ea73250cfaf2d58422083904c841a8ba33b986111" +
		"f346ba50723a68ae283524a6bded09f83be6b80595856f72e25b86918e8b114b")
	got, err := random.Deterministic(64, cryptotest.Seq(random.SeedBytes))
	if err != nil {
		t.Fatalf("Deterministic: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestDeterministic_BadSeed(t *testing.T) {
	_, err := random.Deterministic(8, make([]byte, 16))
	if !errors.Is(err, crypto.ErrInvalidSeedLength) || !errors.Is(err, crypto.ErrInvalidLength) {
		t.Fatalf("err = %v, want ErrInvalidSeedLength", err)
	}
}
