package encoding

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Format is the output representation chosen for generated or computed bytes.
type Format uint8

const (
	FormatRaw Format = iota
	FormatBase64
	FormatHex
)

// ParseFormat maps "raw", "base64" or "hex" (case-insensitive) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raw", "uint8array", "":
		return FormatRaw, nil
	case "base64":
		return FormatBase64, nil
	case "hex":
		return FormatHex, nil
	default:
		return FormatRaw, fmt.Errorf("unknown format %q (want raw, base64 or hex)", s)
	}
}

func (f Format) String() string {
	switch f {
	case FormatBase64:
		return "base64"
	case FormatHex:
		return "hex"
	default:
		return "raw"
	}
}

// Codec returns the text codec for f, or nil for FormatRaw.
func (f Format) Codec() Codec {
	switch f {
	case FormatBase64:
		return Base64{Variant: VariantOriginal}
	case FormatHex:
		return Hex{}
	default:
		return nil
	}
}

// Text returns f, or FormatBase64 when f is FormatRaw, for values embedded
// in line-oriented output.
func (f Format) Text() Format {
	if f == FormatRaw {
		return FormatBase64
	}
	return f
}

// Marshal renders b in format f. FormatRaw returns b unchanged.
func (f Format) Marshal(b []byte) []byte {
	switch f {
	case FormatBase64:
		return []byte(ToBase64(b))
	case FormatHex:
		return []byte(ToHex(b))
	default:
		return b
	}
}

// Unmarshal reverses Marshal.
func (f Format) Unmarshal(b []byte) ([]byte, error) {
	c := f.Codec()
	if c == nil {
		return b, nil
	}
	return c.Decode(strings.TrimSpace(string(b)))
}

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	v, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string { return "format" }

var _ pflag.Value = (*Format)(nil)
