package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"natrium/internal/app"
	"natrium/internal/crypto/encoding"
)

var (
	home       string
	logLevel   string
	format     encoding.Format
	passphrase string
	appCtx     *app.Wire
)

// Execute runs the CLI against os.Args. Errors are logged once and returned so
// main can set the exit status.
func Execute() error {
	return execute(newRootCmd(), os.Args[1:])
}

func execute(root *cobra.Command, args []string) error {
	root.SetArgs(args)
	cmd, err := root.ExecuteC()
	if err == nil {
		return nil
	}
	if appCtx != nil {
		appCtx.Log.Error("command failed", slog.String("cmd", cmd.CommandPath()), slog.Any("err", err))
	} else {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	home, logLevel, format, passphrase, appCtx = "", "info", encoding.FormatBase64, "", nil

	root := &cobra.Command{
		Use:           "natrium",
		Short:         "Secret-key and public-key cryptography toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			w, err := app.NewWire(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			appCtx = w
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, app.KeyHome, "", "config dir (default ~/.natrium)")
	root.PersistentFlags().StringVar(&logLevel, app.KeyLogLevel, "info", "log level: debug, info, warn or error")
	root.PersistentFlags().Var(&format, app.KeyFormat, "encoding for binary input and output: raw, base64 or hex")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting stored keys")

	root.AddCommand(
		demoCmd(),
		randomCmd(),
		keygenCmd(),
		keyCmd(),
		secretboxCmd(),
		aeadCmd(),
		boxCmd(),
		signCmd(),
		verifyCmd(),
		kdfCmd(),
		pwhashCmd(),
	)
	return root
}
