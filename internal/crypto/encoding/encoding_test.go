package encoding_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"natrium/internal/crypto"
	"natrium/internal/crypto/encoding"
)

var roundTripInputs = []struct {
	name string
	data []byte
}{
	{"empty", []byte{}},
	{"hello world", []byte("Hello World")},
	{"binary zeros", []byte{0x00, 0x00, 0x00}},
	{"binary all ones", []byte{0xff, 0xff, 0xff}},
	{"url unsafe chars", []byte{0xfb, 0xf0}},
	{"single byte", []byte{0x42}},
	{"two bytes", []byte{0x42, 0x43}},
	{"large data", bytes.Repeat([]byte{0x5a, 0x01}, 5000)},
}

func TestCodecs_RoundTrip(t *testing.T) {
	codecs := map[string]encoding.Codec{
		"base64":           encoding.Base64{Variant: encoding.VariantOriginal},
		"base64 nopad":     encoding.Base64{Variant: encoding.VariantOriginalNoPadding},
		"base64 url":       encoding.Base64{Variant: encoding.VariantURLSafe},
		"base64 url nopad": encoding.Base64{Variant: encoding.VariantURLSafeNoPadding},
		"hex":              encoding.Hex{},
	}
	for cname, c := range codecs {
		for _, tt := range roundTripInputs {
			t.Run(cname+"/"+tt.name, func(t *testing.T) {
				s, err := c.Encode(tt.data)
				if err != nil {
					t.Fatalf("Encode: %v", err)
				}
				got, err := c.Decode(s)
				if err != nil {
					t.Fatalf("Decode(%q): %v", s, err)
				}
				if !bytes.Equal(got, tt.data) {
					t.Fatalf("round trip mismatch: got %x, want %x", got, tt.data)
				}
			})
		}
	}
}

func TestToBase64_KnownValue(t *testing.T) {
	if got := encoding.ToBase64([]byte("Hello World")); got != "SGVsbG8gV29ybGQ=" {
		t.Fatalf("ToBase64 = %q", got)
	}
	if got := encoding.ToHex([]byte("Hello World")); got != "48656c6c6f20576f726c64" {
		t.Fatalf("ToHex = %q", got)
	}
}

func TestBase64Variants_Alphabet(t *testing.T) {
	data := []byte{0xfb, 0xf0}
	tests := []struct {
		variant encoding.Variant
		want    string
	}{
		{encoding.VariantOriginal, "+/A="},
		{encoding.VariantOriginalNoPadding, "+/A"},
		{encoding.VariantURLSafe, "-_A="},
		{encoding.VariantURLSafeNoPadding, "-_A"},
	}
	for _, tt := range tests {
		got, err := encoding.Base64{Variant: tt.variant}.Encode(data)
		if err != nil {
			t.Fatalf("Encode variant %d: %v", tt.variant, err)
		}
		if got != tt.want {
			t.Errorf("variant %d: got %q, want %q", tt.variant, got, tt.want)
		}
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		codec encoding.Codec
		in    string
	}{
		{"base64 bad char", encoding.Base64{Variant: encoding.VariantOriginal}, "SGV$bG8="},
		{"base64 missing padding", encoding.Base64{Variant: encoding.VariantOriginal}, "SGVsbG8"},
		{"base64 non-zero trailing bits", encoding.Base64{Variant: encoding.VariantOriginal}, "SGVsbG9="},
		{"base64 url chars in original", encoding.Base64{Variant: encoding.VariantOriginal}, "-_A="},
		{"base64 embedded newline", encoding.Base64{Variant: encoding.VariantOriginal}, "SGVs\nbG8gV29ybGQ="},
		{"base64 embedded crlf", encoding.Base64{Variant: encoding.VariantOriginal}, "SGVsbG8g\r\nV29ybGQ="},
		{"base64 trailing newline", encoding.Base64{Variant: encoding.VariantURLSafeNoPadding}, "SGVsbG8\n"},
		{"base64 unknown variant", encoding.Base64{Variant: 2}, "AAAA"},
		{"hex odd length", encoding.Hex{}, "abc"},
		{"hex bad char", encoding.Hex{}, "zz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.codec.Decode(tt.in)
			if !errors.Is(err, crypto.ErrMalformedEncoding) {
				t.Fatalf("Decode(%q) err = %v, want ErrMalformedEncoding", tt.in, err)
			}
		})
	}
}

func TestFromBase64_LineBreaks(t *testing.T) {
	for _, in := range []string{"SGVs\nbG8gV29ybGQ=", "SGVsbG8g\r\nV29ybGQ="} {
		if _, err := encoding.FromBase64(in); !crypto.IsMalformedEncoding(err) {
			t.Fatalf("FromBase64(%q) err = %v, want ErrMalformedEncoding", in, err)
		}
	}
	got, err := encoding.FormatBase64.Unmarshal([]byte("SGVsbG8gV29ybGQ=\n"))
	if err != nil || string(got) != "Hello World" {
		t.Fatalf("Unmarshal with trailing newline = %q, %v", got, err)
	}
}

func TestFromHex_AcceptsUppercase(t *testing.T) {
	got, err := encoding.FromHex("DEADbeef")
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}
	if !bytes.Equal(got, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Fatalf("FromHex = %x", got)
	}
}

func TestToString(t *testing.T) {
	s, err := encoding.ToString(encoding.FromString("Hello World"))
	if err != nil {
		t.Fatalf("ToString: %v", err)
	}
	if s != "Hello World" {
		t.Fatalf("ToString = %q", s)
	}

	if _, err := encoding.ToString([]byte{0xff, 0xfe}); !errors.Is(err, crypto.ErrInvalidUTF8) {
		t.Fatalf("ToString(invalid) err = %v, want ErrInvalidUTF8", err)
	}
	if _, err := (encoding.UTF8{}).Decode(string([]byte{0xc3})); !errors.Is(err, crypto.ErrInvalidUTF8) {
		t.Fatalf("Decode(invalid) err = %v, want ErrInvalidUTF8", err)
	}
}

func TestFormat(t *testing.T) {
	data := []byte("Hello World")
	for _, name := range []string{"raw", "base64", "hex", "HEX"} {
		f, err := encoding.ParseFormat(name)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", name, err)
		}
		if !strings.EqualFold(f.String(), name) {
			t.Fatalf("ParseFormat(%q).String() = %q", name, f)
		}
		got, err := f.Unmarshal(f.Marshal(data))
		if err != nil {
			t.Fatalf("Unmarshal(%s): %v", f, err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("%s round trip: got %q", f, got)
		}
	}

	if _, err := encoding.ParseFormat("binary"); err == nil {
		t.Fatal("expected error for unknown format")
	}

	var f encoding.Format
	if err := f.Set("base64"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if f != encoding.FormatBase64 || f.Type() != "format" {
		t.Fatalf("Set produced %v", f)
	}
	if string(encoding.FormatBase64.Marshal(data)) != "SGVsbG8gV29ybGQ=" {
		t.Fatal("FormatBase64 does not use standard padded base64")
	}
	if encoding.FormatRaw.Text() != encoding.FormatBase64 || encoding.FormatHex.Text() != encoding.FormatHex {
		t.Fatal("Text should only replace FormatRaw")
	}
}

func FuzzBase64RoundTrip(f *testing.F) {
	f.Add([]byte("Hello World"))
	f.Add([]byte{})
	f.Add([]byte{0xfb, 0xff})
	f.Fuzz(func(t *testing.T, data []byte) {
		for _, v := range []encoding.Variant{
			encoding.VariantOriginal,
			encoding.VariantOriginalNoPadding,
			encoding.VariantURLSafe,
			encoding.VariantURLSafeNoPadding,
		} {
			c := encoding.Base64{Variant: v}
			s, err := c.Encode(data)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := c.Decode(s)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !bytes.Equal(got, data) {
				t.Fatalf("variant %d round trip mismatch", v)
			}
		}
	})
}

func FuzzHexRoundTrip(f *testing.F) {
	f.Add([]byte("Hello World"))
	f.Fuzz(func(t *testing.T, data []byte) {
		got, err := encoding.FromHex(encoding.ToHex(data))
		if err != nil {
			t.Fatalf("FromHex: %v", err)
		}
		if !bytes.Equal(got, data) {
			t.Fatal("round trip mismatch")
		}
	})
}
