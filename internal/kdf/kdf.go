// Package kdf turns a passphrase and a random salt into a symmetric key.
//
// Keys are derived with Argon2id using the fixed cost parameters below. The
// parameters are part of container version 1: changing them would make every
// existing container undecryptable, so a new set requires a new version.
package kdf

import (
	"fmt"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/argon2"

	kerrors "github.com/PolarWolf314/sealpref/internal/errors"
)

// Argon2id cost parameters for container version 1.
const (
	Time    uint32 = 3
	Memory  uint32 = 64 * 1024 // KiB
	Threads uint8  = 4
	KeySize uint32 = 32
)

// SaltSize is the only salt length Derive accepts.
const SaltSize = 16

// Derive derives a KeySize-byte key from passphrase and salt. The result lives
// in a locked buffer that the caller must Destroy.
//
// The only failure is a salt of the wrong length, which is a caller bug.
func Derive(passphrase, salt []byte) (*memguard.LockedBuffer, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", kerrors.ErrInvalidSaltLength, SaltSize, len(salt))
	}

	derived := argon2.IDKey(passphrase, salt, Time, Memory, Threads, KeySize)

	// NewBufferFromBytes wipes derived once it is copied into protected memory.
	return memguard.NewBufferFromBytes(derived), nil
}
