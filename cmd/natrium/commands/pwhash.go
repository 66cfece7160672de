package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"natrium/internal/crypto/pwhash"
)

const algScrypt = "scrypt"

func pwhashCmd() *cobra.Command {
	var (
		alg      string
		ops, mem uint64
	)
	cmd := &cobra.Command{
		Use:   "pwhash",
		Short: "Hash or verify passwords",
	}
	cmd.PersistentFlags().StringVar(&alg, "alg", "argon2id", "argon2id, argon2i or scrypt")
	cmd.PersistentFlags().Uint64Var(&ops, "opslimit", 0, "opslimit (interactive for --alg when 0)")
	cmd.PersistentFlags().Uint64Var(&mem, "memlimit", 0, "memlimit in bytes (interactive for --alg when 0)")

	var (
		saltFlag string
		length   int
	)
	hash := &cobra.Command{
		Use:   "hash <password>",
		Short: "Derive a key from password and --salt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			salt, err := decode("salt", saltFlag)
			if err != nil {
				return err
			}
			o, m := interactiveLimits(alg, ops, mem)
			var out []byte
			if alg == algScrypt {
				out, err = pwhash.ScryptSalsa208SHA256(length, []byte(args[0]), salt, o, m)
			} else {
				a, perr := pwhash.ParseAlgorithm(alg)
				if perr != nil {
					return perr
				}
				out, err = pwhash.HashString(length, args[0], salt, o, m, a)
			}
			if err != nil {
				return err
			}
			return emit(cmd, out)
		},
	}
	hash.Flags().StringVar(&saltFlag, "salt", "", fmt.Sprintf("salt (%d bytes, %d for scrypt)", pwhash.SaltBytes, pwhash.ScryptSaltBytes))
	hash.Flags().IntVar(&length, "length", 32, "output length in bytes")
	_ = hash.MarkFlagRequired("salt")

	str := &cobra.Command{
		Use:   "str <password>",
		Short: "Print a self-describing password hash string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := pwhash.ParseAlgorithm(alg)
			if err != nil {
				return err
			}
			o, m := interactiveLimits(alg, ops, mem)
			s, err := pwhash.StrAlg(args[0], o, m, a)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		},
	}

	verify := &cobra.Command{
		Use:   "verify <hash> <password>",
		Short: "Check password against a string from pwhash str",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pwhash.StrVerify(args[0], args[1]); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			o, m := interactiveLimits(alg, ops, mem)
			if rehash, err := pwhash.StrNeedsRehash(args[0], o, m); err == nil && rehash {
				_, err = fmt.Fprintln(out, "valid (needs rehash)")
				return err
			}
			_, err := fmt.Fprintln(out, "valid")
			return err
		},
	}

	cmd.AddCommand(hash, str, verify)
	return cmd
}

// interactiveLimits fills unset limits with the interactive preset for alg.
func interactiveLimits(alg string, ops, mem uint64) (uint64, uint64) {
	defOps, defMem := uint64(pwhash.OpsLimitInteractive), uint64(pwhash.MemLimitInteractive)
	switch alg {
	case algScrypt:
		defOps, defMem = pwhash.ScryptOpsLimitInteractive, pwhash.ScryptMemLimitInteractive
	case "argon2i", "argon2i13":
		defOps, defMem = pwhash.Argon2iOpsLimitInteractive, pwhash.Argon2iMemLimitInteractive
	}
	if ops == 0 {
		ops = defOps
	}
	if mem == 0 {
		mem = defMem
	}
	return ops, mem
}
