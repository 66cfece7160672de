// Package cryptotest holds inputs and helpers shared by the primitive tests.
package cryptotest

import "encoding/hex"

// Messages covers the plaintext shapes every encryption test should handle.
var Messages = []struct {
	Name    string
	Message []byte
}{
	{Name: "Hello", Message: []byte("Hello World")},
	{Name: "Empty", Message: []byte("")},
	{Name: "Accents", Message: []byte("UTF-8-charsàèìòù")},
	{Name: "Emojis", Message: []byte("😃🌟🌹⚖️🚀")},
	{Name: "NonText", Message: []byte{0x00, 0x01, 0xfe, 0xff}},
	{Name: "Large", Message: make([]byte, 1<<16)},
}

// ForEachFlippedByte calls fn once per byte of b with a copy of b in which
// that byte has been flipped.
func ForEachFlippedByte(b []byte, fn func(i int, tampered []byte)) {
	for i := range b {
		tampered := append([]byte(nil), b...)
		tampered[i] ^= 0x01
		fn(i, tampered)
	}
}

// Seq returns the bytes 0, 1, ..., n-1, the key and seed used by the
// known-answer vectors.
func Seq(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

// MustHex decodes a hex vector and panics on malformed input.
func MustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
