// Package workflows provides high-level orchestration for sealpref commands.
//
// Workflows coordinate configuration, the file store, the security manager
// and the audit log to implement complete user-facing features. Each
// workflow handles a single command's business logic, independent of CLI
// concerns like flag parsing, spinners and output formatting.
//
// # Available Workflows
//
//   - Set: Merges name=value pairs into the preferences stored under a key
//   - Get: Reads one value from the preferences stored under a key
//   - Show: Reads every value stored under a key
//   - Delete: Removes a key, or some values from it
//   - List: Lists stored keys matching a glob pattern
//   - Inspect: Describes a stored container without the passphrase
//   - Seal, Unseal: Encrypt and decrypt arbitrary text outside the store
//   - Log: Reads and filters the audit log
//
// # Passphrases
//
// Options carry the passphrase as a byte slice. Workflows hand it to a
// security.Manager, which takes ownership and wipes the caller's slice, and
// destroy the manager before returning.
//
// # Error Handling
//
// Workflows return sentinel errors from the internal/errors package, wrapped
// with context. Use errors.Is() to check for specific conditions:
//
//	result, err := workflows.Get(ctx, opts)
//	if errors.Is(err, kerrors.ErrAuthenticationFailed) {
//	    // Wrong passphrase or corrupted file.
//	}
//
// # Context Usage
//
// Key derivation is deliberately slow and cannot be interrupted, so every
// workflow checks its context immediately before each derivation.
package workflows
