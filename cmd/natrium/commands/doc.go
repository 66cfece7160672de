// Package commands defines the natrium CLI and wires dependencies for subcommands.
//
// Commands
//
//   - demo       Walk through every primitive and check each round trip
//   - random     Print random or seeded deterministic bytes
//   - keygen     Print a fresh symmetric key without storing it
//   - key        Create, list, show and delete keyring entries
//   - secretbox  Seal or open a message with a stored secretbox key
//   - aead       Seal or open a message with a stored XChaCha20-Poly1305 key
//   - box        Seal or open a message between two stored box keys
//   - sign       Sign a message with a stored signing key
//   - verify     Check a detached signature
//   - kdf        Derive a subkey from a stored kdf key
//   - pwhash     Hash or verify a password
//
// # Implementation
//
// The root command loads the layered configuration and builds the dependency
// graph (store, keyring service, logger) before any subcommand runs. Binary
// arguments and results use the --format encoding; messages are plain text.
// Ciphertexts printed by the seal subcommands carry their nonce in front.
package commands
