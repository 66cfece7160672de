package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"natrium/internal/crypto/aead"
	"natrium/internal/crypto/random"
	"natrium/internal/domain"
)

func aeadCmd() *cobra.Command {
	var keyName, nonceFlag, ad string
	cmd := &cobra.Command{
		Use:   "aead",
		Short: "Seal or open a message with a stored XChaCha20-Poly1305 key",
	}
	cmd.PersistentFlags().StringVar(&keyName, "key", "", "name of an aead key in the keyring")
	cmd.PersistentFlags().StringVar(&ad, "ad", "", "additional data bound to the ciphertext")
	_ = cmd.MarkPersistentFlagRequired("key")

	seal := &cobra.Command{
		Use:   "seal <message>",
		Short: "Encrypt message; prints nonce || ciphertext || tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := secretKey(keyName, domain.KindAEAD)
			if err != nil {
				return err
			}
			defer key.Wipe()

			nonce, err := nonceOrRandom(nonceFlag, aead.NPubBytes, random.Bytes)
			if err != nil {
				return err
			}
			ct, err := aead.Encrypt([]byte(args[0]), []byte(ad), nonce, key.Secret)
			if err != nil {
				return err
			}
			return emit(cmd, append(nonce, ct...))
		},
	}
	seal.Flags().StringVar(&nonceFlag, "nonce", "", fmt.Sprintf("%d-byte nonce (random when empty)", aead.NPubBytes))

	open := &cobra.Command{
		Use:   "open <nonce||ciphertext>",
		Short: "Verify and decrypt the output of aead seal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := decode("ciphertext", args[0])
			if err != nil {
				return err
			}
			nonce, ct, err := split(blob, aead.NPubBytes)
			if err != nil {
				return err
			}
			key, err := secretKey(keyName, domain.KindAEAD)
			if err != nil {
				return err
			}
			defer key.Wipe()

			pt, err := aead.Decrypt(ct, []byte(ad), nonce, key.Secret)
			if err != nil {
				return err
			}
			return printMessage(cmd, pt)
		},
	}

	cmd.AddCommand(seal, open)
	return cmd
}
