package commands

import (
	"github.com/spf13/cobra"

	"natrium/internal/crypto/aead"
	"natrium/internal/crypto/kdf"
	"natrium/internal/crypto/secretbox"
	"natrium/internal/util/memzero"
)

// keygen <kind>: print a fresh symmetric key without touching the keyring.
func keygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Print a fresh symmetric key without storing it",
	}
	for _, g := range []struct {
		use, short string
		gen        func() ([]byte, error)
	}{
		{"secretbox", "Print a secretbox (XSalsa20-Poly1305) key", secretbox.Keygen},
		{"aead", "Print an XChaCha20-Poly1305-IETF key", aead.Keygen},
		{"kdf", "Print a kdf master key", kdf.Keygen},
	} {
		gen := g.gen
		cmd.AddCommand(&cobra.Command{
			Use:   g.use,
			Short: g.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				key, err := gen()
				if err != nil {
					return err
				}
				defer memzero.Zero(key)
				return emit(cmd, key)
			},
		})
	}
	return cmd
}
