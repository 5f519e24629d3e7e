// Package errors provides typed error values for sealpref.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Container errors: the bytes are not a container this version can read
//     (ErrMalformedContainer)
//   - Crypto errors: verification or primitive failures (ErrAuthenticationFailed,
//     ErrCryptoInternal, ErrInvalidSaltLength, ErrUnsupportedCipher)
//   - Manager errors: handle construction and lifetime (ErrEmptyPassphrase,
//     ErrManagerDestroyed)
//   - Preference errors: storage and payload issues (ErrPreferencesNotFound,
//     ErrInvalidKey, ErrInvalidPayload)
//
// ErrAuthenticationFailed deliberately covers both a wrong passphrase and a
// tampered container. Callers must not try to tell the two apart.
//
// Errors from the byte sink or source (permission denied, missing file) are
// never translated; they are wrapped with %w and can be inspected with
// errors.Is(err, fs.ErrPermission) and friends.
//
// # Usage
//
// Handle errors in the CLI layer:
//
//	plain, err := manager.DecryptText(data)
//	if errors.Is(err, kerrors.ErrAuthenticationFailed) {
//	    // Wrong passphrase or corrupted file
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("loading preferences %q: %w", key, errors.ErrPreferencesNotFound)
package errors
