package app

import (
	"io"
	"log/slog"
	"os"

	"natrium/internal/domain"
	"natrium/internal/services/keyring"
	"natrium/internal/store"
)

// Wire bundles the store, services and logger for the CLI.
type Wire struct {
	Config Config
	Log    *slog.Logger
	Store  domain.KeyStore
	Keys   *keyring.Service
}

// NewWire constructs the dependency graph from cfg, logging to logOut.
func NewWire(cfg Config, logOut io.Writer) (*Wire, error) {
	log, err := NewLogger(logOut, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, err
	}

	// File-based store
	keyStore := store.NewKeyringFileStore(cfg.Home, cfg.KDF)

	// High-level services
	keySvc := keyring.New(keyStore, log.With(slog.String("component", "keyring")))

	log.Debug("app wired",
		slog.String("home", cfg.Home),
		slog.String("format", cfg.Format.String()),
		slog.String("kdf", cfg.KDF.KDF))

	return &Wire{
		Config: cfg,
		Log:    log,
		Store:  keyStore,
		Keys:   keySvc,
	}, nil
}
