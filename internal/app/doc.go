// Package app wires application dependencies for the CLI.
//
// It resolves Config from flags, NATRIUM_* environment variables and an
// optional config.yaml in the home directory, builds the slog logger, the
// keyring file store and the keyring service, and exposes them via the Wire
// struct for commands to use.
package app
