package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"natrium/internal/crypto"
	"natrium/internal/crypto/encoding"
)

var errNoPassphrase = errors.New("passphrase required (-p)")

func requirePassphrase() error {
	if passphrase == "" {
		return errNoPassphrase
	}
	return nil
}

// emit writes b in the configured format. Text formats end with a newline.
func emit(cmd *cobra.Command, b []byte) error {
	return writeFormatted(cmd.OutOrStdout(), appCtx.Config.Format, b)
}

func writeFormatted(w io.Writer, f encoding.Format, b []byte) error {
	if _, err := w.Write(f.Marshal(b)); err != nil {
		return err
	}
	if f == encoding.FormatRaw {
		return nil
	}
	_, err := fmt.Fprintln(w)
	return err
}

// printMessage writes a decrypted message as a line of text. Plaintext that is
// not UTF-8 is written in the configured format instead.
func printMessage(cmd *cobra.Command, pt []byte) error {
	s, err := encoding.ToString(pt)
	if errors.Is(err, crypto.ErrInvalidUTF8) {
		appCtx.Log.Debug("plaintext is not utf-8", "format", appCtx.Config.Format.String())
		return emit(cmd, pt)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
	return err
}

// decode parses a binary argument given in the configured format.
func decode(what, s string) ([]byte, error) {
	b, err := appCtx.Config.Format.Unmarshal([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", what, err)
	}
	return b, nil
}

// split separates a nonce-prefixed ciphertext.
func split(blob []byte, nonceLen int) (nonce, ciphertext []byte, err error) {
	if len(blob) < nonceLen {
		return nil, nil, fmt.Errorf("ciphertext too short: %d bytes, want at least %d", len(blob), nonceLen)
	}
	return blob[:nonceLen], blob[nonceLen:], nil
}

// nonceOrRandom decodes the --nonce flag, or draws a fresh nonce when unset.
func nonceOrRandom(flag string, n int, fresh func(int) ([]byte, error)) ([]byte, error) {
	if flag == "" {
		return fresh(n)
	}
	return decode("nonce", flag)
}
