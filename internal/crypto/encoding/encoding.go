// Package encoding converts byte slices to and from base64, hex and UTF-8
// text. It is not a cryptographic primitive; every other package returns raw
// bytes and leaves presentation to these codecs.
package encoding

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"natrium/internal/crypto"
)

// Codec converts bytes to text and back. Decode(Encode(b)) returns b for every
// b the codec accepts.
type Codec interface {
	Encode(b []byte) (string, error)
	Decode(s string) ([]byte, error)
}

// Variant selects a base64 alphabet and padding rule. Values match libsodium's
// sodium_base64_VARIANT_* constants.
type Variant uint8

const (
	VariantOriginal          Variant = 1
	VariantOriginalNoPadding Variant = 3
	VariantURLSafe           Variant = 5
	VariantURLSafeNoPadding  Variant = 7
)

func (v Variant) encoding() (*base64.Encoding, error) {
	switch v {
	case VariantOriginal:
		return base64.StdEncoding.Strict(), nil
	case VariantOriginalNoPadding:
		return base64.RawStdEncoding.Strict(), nil
	case VariantURLSafe:
		return base64.URLEncoding.Strict(), nil
	case VariantURLSafeNoPadding:
		return base64.RawURLEncoding.Strict(), nil
	default:
		return nil, fmt.Errorf("%w: unknown base64 variant %d", crypto.ErrMalformedEncoding, v)
	}
}

// Base64 is a Codec for one base64 variant.
type Base64 struct {
	Variant Variant
}

// Encode never fails for a known variant.
func (c Base64) Encode(b []byte) (string, error) {
	enc, err := c.Variant.encoding()
	if err != nil {
		return "", err
	}
	return enc.EncodeToString(b), nil
}

// Decode rejects any character outside the variant's alphabet, line breaks
// included.
func (c Base64) Decode(s string) ([]byte, error) {
	enc, err := c.Variant.encoding()
	if err != nil {
		return nil, err
	}
	// DecodeString skips \r and \n even in strict mode.
	if strings.ContainsAny(s, "\r\n") {
		return nil, fmt.Errorf("%w: base64: line break in input", crypto.ErrMalformedEncoding)
	}
	b, err := enc.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", crypto.ErrMalformedEncoding, err)
	}
	return b, nil
}

// Hex is a Codec producing lowercase hex. Decode accepts either case.
type Hex struct{}

func (Hex) Encode(b []byte) (string, error) { return hex.EncodeToString(b), nil }

func (Hex) Decode(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: hex: %v", crypto.ErrMalformedEncoding, err)
	}
	return b, nil
}

// UTF8 is a Codec that interprets bytes as UTF-8 text.
type UTF8 struct{}

func (UTF8) Encode(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", crypto.ErrInvalidUTF8
	}
	return string(b), nil
}

func (UTF8) Decode(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, crypto.ErrInvalidUTF8
	}
	return []byte(s), nil
}

// Compile-time assertions that the codecs implement Codec.
var (
	_ Codec = Base64{}
	_ Codec = Hex{}
	_ Codec = UTF8{}
)

// ToBase64 returns standard, padded base64.
func ToBase64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// FromBase64 decodes standard, padded base64.
func FromBase64(s string) ([]byte, error) { return Base64{Variant: VariantOriginal}.Decode(s) }

// ToHex returns lowercase hex.
func ToHex(b []byte) string { return hex.EncodeToString(b) }

// FromHex decodes hex in either case.
func FromHex(s string) ([]byte, error) { return Hex{}.Decode(s) }

// ToString interprets b as UTF-8.
func ToString(b []byte) (string, error) { return UTF8{}.Encode(b) }

// FromString returns the UTF-8 bytes of s.
func FromString(s string) []byte { return []byte(s) }
