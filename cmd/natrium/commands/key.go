package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"natrium/internal/crypto"
	"natrium/internal/domain"
)

func keyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage passphrase-protected keys in the keyring",
	}
	cmd.AddCommand(keyCreateCmd(), keyListCmd(), keyShowCmd(), keyDeleteCmd())
	return cmd
}

// key create <name> --type <kind>: generate and store a key.
func keyCreateCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Generate a key and store it under name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			k := domain.KeyKind(kind)
			if !k.Valid() {
				return fmt.Errorf("unknown key type %q (want one of %v)", kind, domain.KeyKinds)
			}
			rec, fp, err := appCtx.Keys.CreateKey(passphrase, domain.KeyName(args[0]), k)
			if err != nil {
				return err
			}
			defer rec.Wipe()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "created %s key %q\n", rec.Kind, rec.Name)
			if fp != "" {
				fmt.Fprintf(out, "fingerprint: %s\n", fp)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "type", "", "key type: box, sign, secretbox, aead or kdf")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

// key list: show every stored key without opening any secret.
func keyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := appCtx.Keys.Keys()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tFINGERPRINT\tCREATED")
			for _, rec := range keys {
				fp := "-"
				if rec.Kind.Asymmetric() {
					fp = crypto.Fingerprint(rec.Public)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", rec.Name, rec.Kind, fp, rec.Created.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
}

// key show <name>: print a key's metadata and, for box and sign keys, its
// public half.
func keyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a key's kind, public key and fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := domain.KeyName(args[0])
			keys, err := appCtx.Keys.Keys()
			if err != nil {
				return err
			}
			for _, rec := range keys {
				if rec.Name != name {
					continue
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "name: %s\nkind: %s\ncreated: %s\n", rec.Name, rec.Kind, rec.Created.Format(time.RFC3339))
				if !rec.Kind.Asymmetric() {
					return nil
				}
				fp, err := appCtx.Keys.Fingerprint(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "type: %s\nfingerprint: %s\npublic: ", rec.Type, fp)
				return writeFormatted(out, appCtx.Config.Format.Text(), rec.Public)
			}
			return fmt.Errorf("%w: %q", domain.ErrKeyNotFound, name)
		},
	}
}

// key delete <name>: remove a key from the keyring.
func keyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Keys.DeleteKey(domain.KeyName(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", args[0])
			return nil
		},
	}
}
