package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"natrium/internal/crypto/box"
	"natrium/internal/crypto/random"
	"natrium/internal/domain"
)

// box seal|open: authenticated public-key encryption between two keyring
// entries. Without --from the message is an anonymous sealed box.
func boxCmd() *cobra.Command {
	var from, to, nonceFlag string
	cmd := &cobra.Command{
		Use:   "box",
		Short: "Seal or open a message between two stored box keys",
	}
	cmd.PersistentFlags().StringVar(&from, "from", "", "sender box key (omit for an anonymous sealed box)")
	cmd.PersistentFlags().StringVar(&to, "to", "", "recipient box key")
	_ = cmd.MarkPersistentFlagRequired("to")

	seal := &cobra.Command{
		Use:   "seal <message>",
		Short: "Encrypt message for --to; prints nonce || ciphertext, or a sealed box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := appCtx.Keys.PublicKey(domain.KeyName(to), domain.KindBox)
			if err != nil {
				return fmt.Errorf("recipient %q: %w", to, err)
			}
			msg := []byte(args[0])
			if from == "" {
				if nonceFlag != "" {
					return errors.New("--nonce needs --from; sealed boxes derive their own nonce")
				}
				sealed, err := box.Seal(msg, pk)
				if err != nil {
					return err
				}
				return emit(cmd, sealed)
			}

			sender, err := secretKey(from, domain.KindBox)
			if err != nil {
				return err
			}
			defer sender.Wipe()
			nonce, err := nonceOrRandom(nonceFlag, box.NonceBytes, random.Bytes)
			if err != nil {
				return err
			}
			ct, err := box.Easy(msg, nonce, pk, sender.Secret)
			if err != nil {
				return err
			}
			return emit(cmd, append(nonce, ct...))
		},
	}
	seal.Flags().StringVar(&nonceFlag, "nonce", "", fmt.Sprintf("%d-byte nonce (random when empty)", box.NonceBytes))

	open := &cobra.Command{
		Use:   "open <ciphertext>",
		Short: "Verify and decrypt a message addressed to --to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := decode("ciphertext", args[0])
			if err != nil {
				return err
			}
			recipient, err := secretKey(to, domain.KindBox)
			if err != nil {
				return err
			}
			defer recipient.Wipe()

			var pt []byte
			if from == "" {
				pt, err = box.SealOpen(blob, recipient.Public, recipient.Secret)
			} else {
				pk, perr := appCtx.Keys.PublicKey(domain.KeyName(from), domain.KindBox)
				if perr != nil {
					return fmt.Errorf("sender %q: %w", from, perr)
				}
				nonce, ct, serr := split(blob, box.NonceBytes)
				if serr != nil {
					return serr
				}
				pt, err = box.OpenEasy(ct, nonce, pk, recipient.Secret)
			}
			if err != nil {
				return err
			}
			return printMessage(cmd, pt)
		},
	}

	cmd.AddCommand(seal, open)
	return cmd
}
