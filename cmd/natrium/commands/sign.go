package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"natrium/internal/crypto/sign"
	"natrium/internal/domain"
)

var errBadSignature = errors.New("signature verification failed")

// sign <name> <message>: print a detached Ed25519 signature.
func signCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign <name> <message>",
		Short: "Sign message with a stored signing key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := secretKey(args[0], domain.KindSign)
			if err != nil {
				return err
			}
			defer key.Wipe()

			sig, err := sign.Detached([]byte(args[1]), key.Secret)
			if err != nil {
				return err
			}
			appCtx.Log.Debug("message signed", "key", args[0])
			return emit(cmd, sig)
		},
	}
}

// verify <name> <signature> <message>: check a detached signature against
// the stored public key. No passphrase is needed.
func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <name> <signature> <message>",
		Short: "Verify a detached signature",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := appCtx.Keys.PublicKey(domain.KeyName(args[0]), domain.KindSign)
			if err != nil {
				return err
			}
			sig, err := decode("signature", args[1])
			if err != nil {
				return err
			}
			if !sign.VerifyDetached(sig, []byte(args[2]), pk) {
				return errBadSignature
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return err
		},
	}
}
