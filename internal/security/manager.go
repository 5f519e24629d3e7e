// Package security binds a passphrase and a cipher choice into a reusable
// handle. It is the only part of the encryption core that application code
// touches directly.
//
// A Manager is immutable once created. Every call derives its own key from a
// fresh salt, so one Manager can be shared by any number of goroutines
// without locking. Destroy must not race with other calls.
//
// Decryption always uses the cipher recorded in the container, not the one
// the Manager was created with. Changing the configured cipher therefore only
// affects new encryptions; old files stay readable.
package security

import (
	"fmt"
	"io"

	"github.com/awnumar/memguard"

	"github.com/PolarWolf314/sealpref/internal/aead"
	"github.com/PolarWolf314/sealpref/internal/container"
	kerrors "github.com/PolarWolf314/sealpref/internal/errors"
)

// Manager encrypts and decrypts text with one passphrase.
type Manager struct {
	passphrase *memguard.LockedBuffer
	cipher     aead.ID
}

// NewManager creates a Manager. The passphrase is moved into protected memory
// and the caller's slice is wiped. aead.Unspecified selects aead.Default.
func NewManager(passphrase []byte, cipher aead.ID) (*Manager, error) {
	if len(passphrase) == 0 {
		return nil, kerrors.ErrEmptyPassphrase
	}
	resolved, err := aead.Resolve(cipher)
	if err != nil {
		return nil, err
	}

	buf := memguard.NewBufferFromBytes(passphrase)
	buf.Freeze()

	return &Manager{passphrase: buf, cipher: resolved}, nil
}

// Cipher returns the suite used for new encryptions.
func (m *Manager) Cipher() aead.ID {
	return m.cipher
}

// Destroy wipes the passphrase. Any later call returns ErrManagerDestroyed.
func (m *Manager) Destroy() {
	m.passphrase.Destroy()
}

func (m *Manager) secret() ([]byte, error) {
	if m == nil || m.passphrase == nil || !m.passphrase.IsAlive() {
		return nil, kerrors.ErrManagerDestroyed
	}
	return m.passphrase.Bytes(), nil
}

// EncryptBytes seals plaintext into a serialized container.
//
// Failures here are never caused by the input; they mean randomness or a
// primitive is broken and are reported wrapped in ErrCryptoInternal.
func (m *Manager) EncryptBytes(plaintext []byte) ([]byte, error) {
	c, err := m.seal(plaintext)
	if err != nil {
		return nil, err
	}
	return c.MarshalBinary()
}

// DecryptBytes parses and opens a serialized container. The error is
// ErrMalformedContainer or ErrAuthenticationFailed.
func (m *Manager) DecryptBytes(data []byte) ([]byte, error) {
	secret, err := m.secret()
	if err != nil {
		return nil, err
	}
	c, err := container.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return c.Open(secret)
}

// EncryptText seals already serialized text.
func (m *Manager) EncryptText(plain string) ([]byte, error) {
	return m.EncryptBytes([]byte(plain))
}

// DecryptText is DecryptBytes for text payloads.
func (m *Manager) DecryptText(data []byte) (string, error) {
	plain, err := m.DecryptBytes(data)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// EncryptTo seals plain and writes the container to w.
func (m *Manager) EncryptTo(w io.Writer, plain string) error {
	c, err := m.seal([]byte(plain))
	if err != nil {
		return err
	}
	_, err = c.WriteTo(w)
	return err
}

// DecryptFrom reads one container from r and opens it. Errors from r other
// than running out of data are returned wrapped, not reinterpreted.
func (m *Manager) DecryptFrom(r io.Reader) (string, error) {
	secret, err := m.secret()
	if err != nil {
		return "", err
	}
	c, err := container.ReadFrom(r)
	if err != nil {
		return "", err
	}
	plain, err := c.Open(secret)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func (m *Manager) seal(plaintext []byte) (*container.Container, error) {
	secret, err := m.secret()
	if err != nil {
		return nil, err
	}
	c, err := container.Seal(secret, m.cipher, plaintext)
	if err != nil {
		return nil, fmt.Errorf("encrypting with %s: %w", m.cipher, err)
	}
	return c, nil
}
