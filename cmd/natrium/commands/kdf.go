package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"natrium/internal/crypto/kdf"
	"natrium/internal/domain"
	"natrium/internal/util/memzero"
)

func kdfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kdf",
		Short: "Derive subkeys from a stored master key",
	}

	var (
		keyName string
		id      uint64
		context string
		length  int
	)
	derive := &cobra.Command{
		Use:   "derive",
		Short: "Derive subkey number --id in --context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := secretKey(keyName, domain.KindKDF)
			if err != nil {
				return err
			}
			defer key.Wipe()

			sub, err := kdf.DeriveFromKey(length, id, context, key.Secret)
			if err != nil {
				return err
			}
			defer memzero.Zero(sub)
			return emit(cmd, sub)
		},
	}
	derive.Flags().StringVar(&keyName, "key", "", "name of a kdf key in the keyring")
	derive.Flags().Uint64Var(&id, "id", 0, "subkey identifier")
	derive.Flags().StringVar(&context, "context", "", fmt.Sprintf("%d-character context", kdf.ContextBytes))
	derive.Flags().IntVar(&length, "length", 32, fmt.Sprintf("subkey length in [%d, %d]", kdf.BytesMin, kdf.BytesMax))
	_ = derive.MarkFlagRequired("key")
	_ = derive.MarkFlagRequired("context")

	cmd.AddCommand(derive)
	return cmd
}
