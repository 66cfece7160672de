package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"natrium/internal/crypto/encoding"
	"natrium/internal/store"
)

// Config keys shared by flags, environment variables and config.yaml.
const (
	KeyHome         = "home"
	KeyLogLevel     = "log-level"
	KeyFormat       = "format"
	KeyKDF          = "pwhash.kdf"
	KeyKDFOpsLimit  = "pwhash.opslimit"
	KeyKDFMemLimit  = "pwhash.memlimit"
	configFileName  = "config"
	envPrefix       = "NATRIUM"
	defaultHomeName = ".natrium"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home     string          // config directory, e.g. $HOME/.natrium
	LogLevel string          // slog level name: debug, info, warn, error
	Format   encoding.Format // output encoding for binary results
	KDF      store.Params    // passphrase stretching for new keyring entries
}

// DefaultConfig returns the built-in defaults; Home is left empty and
// resolved by LoadConfig.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Format:   encoding.FormatBase64,
		KDF:      store.DefaultParams(),
	}
}

// LoadConfig layers, from lowest to highest precedence: defaults, config.yaml
// in the home directory, NATRIUM_* environment variables and flags that were
// set explicitly. flags may be nil.
func LoadConfig(flags *pflag.FlagSet) (Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyFormat, def.Format.String())
	v.SetDefault(KeyKDF, def.KDF.KDF)
	v.SetDefault(KeyKDFOpsLimit, def.KDF.OpsLimit)
	v.SetDefault(KeyKDFMemLimit, def.KDF.MemLimit)

	if flags != nil {
		for _, key := range []string{KeyHome, KeyLogLevel, KeyFormat} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	home := v.GetString(KeyHome)
	if home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		home = filepath.Join(dir, defaultHomeName)
	}
	v.AddConfigPath(home)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config in %s: %w", home, err)
		}
	}

	format, err := encoding.ParseFormat(v.GetString(KeyFormat))
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Home:     home,
		LogLevel: v.GetString(KeyLogLevel),
		Format:   format,
		KDF: store.Params{
			KDF:      v.GetString(KeyKDF),
			OpsLimit: v.GetUint64(KeyKDFOpsLimit),
			MemLimit: v.GetUint64(KeyKDFMemLimit),
		},
	}
	if err := cfg.KDF.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
