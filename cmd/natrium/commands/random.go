package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"natrium/internal/crypto/random"
)

func randomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print random bytes or numbers",
	}

	var seed string
	bytesCmd := &cobra.Command{
		Use:   "bytes <n>",
		Short: "Print n random bytes, or n bytes expanded from --seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad length %q: %w", args[0], err)
			}
			var b []byte
			if seed != "" {
				s, err := decode("seed", seed)
				if err != nil {
					return err
				}
				b, err = random.Deterministic(n, s)
				if err != nil {
					return err
				}
			} else if b, err = random.Bytes(n); err != nil {
				return err
			}
			return emit(cmd, b)
		},
	}
	bytesCmd.Flags().StringVar(&seed, "seed", "", fmt.Sprintf("%d-byte seed for reproducible output", random.SeedBytes))

	uniformCmd := &cobra.Command{
		Use:   "uniform <upper-bound>",
		Short: "Print a uniformly distributed number in [0, upper-bound)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bound, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("bad upper bound %q: %w", args[0], err)
			}
			v, err := random.Uniform(bound)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}

	cmd.AddCommand(bytesCmd, uniformCmd)
	return cmd
}
