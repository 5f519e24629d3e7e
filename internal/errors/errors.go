package errors

import "errors"

// Container errors indicate the input is not a structurally valid container.
var (
	// ErrMalformedContainer indicates a structural parse failure: truncated
	// input, unknown version or cipher, or inconsistent lengths.
	ErrMalformedContainer = errors.New("malformed container")
)

// Cryptographic errors indicate failures during key derivation, encryption or decryption.
var (
	// ErrAuthenticationFailed indicates the container could not be verified.
	// It is returned for a wrong passphrase and for corrupted data alike.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrCryptoInternal indicates a primitive failed in a way that should never
	// happen, such as the random source being unavailable.
	ErrCryptoInternal = errors.New("internal cryptographic error")

	// ErrInvalidSaltLength indicates a salt of the wrong size was given to the KDF.
	ErrInvalidSaltLength = errors.New("invalid salt length")

	// ErrUnsupportedCipher indicates the cipher identifier is not in the supported set.
	ErrUnsupportedCipher = errors.New("unsupported cipher")
)

// Manager errors indicate issues with the security manager handle.
var (
	// ErrEmptyPassphrase indicates a manager was requested without a passphrase.
	ErrEmptyPassphrase = errors.New("passphrase cannot be empty")

	// ErrManagerDestroyed indicates the manager was used after Destroy.
	ErrManagerDestroyed = errors.New("security manager has been destroyed")

	// ErrNoPassphrase indicates no passphrase source was available.
	ErrNoPassphrase = errors.New("no passphrase provided")
)

// Preference errors indicate issues with stored preferences.
var (
	// ErrPreferencesNotFound indicates nothing is stored under the requested key.
	ErrPreferencesNotFound = errors.New("preferences not found")

	// ErrInvalidKey indicates a logical key cannot be mapped to a storage location.
	ErrInvalidKey = errors.New("invalid preferences key")

	// ErrInvalidPayload indicates decrypted text could not be decoded into the target value.
	ErrInvalidPayload = errors.New("invalid preferences payload")

	// ErrPayloadTooLarge indicates the plaintext does not fit a container's length field.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrValueNotFound indicates the map stored under a key has no such entry.
	ErrValueNotFound = errors.New("preference value not found")
)

// Audit errors indicate issues reading the audit log.
var (
	// ErrInvalidDateFormat indicates a date filter is not in YYYY-MM-DD form.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
