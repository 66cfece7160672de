package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"natrium/internal/crypto/random"
	"natrium/internal/crypto/secretbox"
	"natrium/internal/domain"
)

func secretboxCmd() *cobra.Command {
	var keyName, nonceFlag string
	cmd := &cobra.Command{
		Use:   "secretbox",
		Short: "Seal or open a message with a stored secretbox key",
	}
	cmd.PersistentFlags().StringVar(&keyName, "key", "", "name of a secretbox key in the keyring")
	_ = cmd.MarkPersistentFlagRequired("key")

	seal := &cobra.Command{
		Use:   "seal <message>",
		Short: "Encrypt and authenticate message; prints nonce || ciphertext",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := secretKey(keyName, domain.KindSecretbox)
			if err != nil {
				return err
			}
			defer key.Wipe()

			nonce, err := nonceOrRandom(nonceFlag, secretbox.NonceBytes, random.Bytes)
			if err != nil {
				return err
			}
			ct, err := secretbox.Easy([]byte(args[0]), nonce, key.Secret)
			if err != nil {
				return err
			}
			return emit(cmd, append(nonce, ct...))
		},
	}
	seal.Flags().StringVar(&nonceFlag, "nonce", "", fmt.Sprintf("%d-byte nonce (random when empty)", secretbox.NonceBytes))

	open := &cobra.Command{
		Use:   "open <nonce||ciphertext>",
		Short: "Verify and decrypt the output of secretbox seal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := decode("ciphertext", args[0])
			if err != nil {
				return err
			}
			nonce, ct, err := split(blob, secretbox.NonceBytes)
			if err != nil {
				return err
			}
			key, err := secretKey(keyName, domain.KindSecretbox)
			if err != nil {
				return err
			}
			defer key.Wipe()

			pt, err := secretbox.OpenEasy(ct, nonce, key.Secret)
			if err != nil {
				return err
			}
			return printMessage(cmd, pt)
		},
	}

	cmd.AddCommand(seal, open)
	return cmd
}

// secretKey opens a stored key of the given kind with the -p passphrase.
func secretKey(name string, kind domain.KeyKind) (domain.KeyRecord, error) {
	if err := requirePassphrase(); err != nil {
		return domain.KeyRecord{}, err
	}
	rec, err := appCtx.Keys.KeyOfKind(passphrase, domain.KeyName(name), kind)
	if err != nil {
		return domain.KeyRecord{}, fmt.Errorf("loading key %q: %w", name, err)
	}
	return rec, nil
}
