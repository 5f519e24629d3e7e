// Package aead is the cipher engine: authenticated encryption over a closed,
// versioned set of suites identified by a single byte.
//
// The identifier is stored in every container, so a suite can never be
// renumbered or removed once released. New suites get new identifiers.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"

	kerrors "github.com/PolarWolf314/sealpref/internal/errors"
)

// ID identifies a cipher suite on the wire.
type ID uint8

const (
	// Unspecified resolves to Default when a manager is created.
	Unspecified ID = 0x00
	// ChaCha20Poly1305 is RFC 8439 ChaCha20-Poly1305.
	ChaCha20Poly1305 ID = 0x01
	// AES256GCM is AES-256 in Galois/Counter Mode.
	AES256GCM ID = 0x02
	// XChaCha20Poly1305 is ChaCha20-Poly1305 with a 24-byte extended nonce.
	XChaCha20Poly1305 ID = 0x03
)

// Default is the suite used for new containers when none is chosen.
const Default = ChaCha20Poly1305

// KeySize is the key length shared by every suite.
const KeySize = 32

// Suite describes one supported AEAD construction.
type Suite struct {
	ID        ID
	Name      string
	NonceSize int
	TagSize   int
	new       func(key []byte) (cipher.AEAD, error)
}

var suites = map[ID]Suite{
	ChaCha20Poly1305: {
		ID:        ChaCha20Poly1305,
		Name:      "chacha20-poly1305",
		NonceSize: chacha20poly1305.NonceSize,
		TagSize:   chacha20poly1305.Overhead,
		new:       chacha20poly1305.New,
	},
	AES256GCM: {
		ID:        AES256GCM,
		Name:      "aes-256-gcm",
		NonceSize: 12,
		TagSize:   16,
		new:       newAESGCM,
	},
	XChaCha20Poly1305: {
		ID:        XChaCha20Poly1305,
		Name:      "xchacha20-poly1305",
		NonceSize: chacha20poly1305.NonceSizeX,
		TagSize:   chacha20poly1305.Overhead,
		new:       chacha20poly1305.NewX,
	},
}

func newAESGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Lookup returns the suite registered for id.
func Lookup(id ID) (Suite, error) {
	suite, ok := suites[id]
	if !ok {
		return Suite{}, fmt.Errorf("%w: 0x%02x", kerrors.ErrUnsupportedCipher, uint8(id))
	}
	return suite, nil
}

// Supported returns all suite identifiers in ascending order.
func Supported() []ID {
	return []ID{ChaCha20Poly1305, AES256GCM, XChaCha20Poly1305}
}

// Resolve maps Unspecified to Default and validates everything else.
func Resolve(id ID) (ID, error) {
	if id == Unspecified {
		return Default, nil
	}
	if _, err := Lookup(id); err != nil {
		return Unspecified, err
	}
	return id, nil
}

func (id ID) String() string {
	if suite, ok := suites[id]; ok {
		return suite.Name
	}
	if id == Unspecified {
		return "unspecified"
	}
	return fmt.Sprintf("unknown(0x%02x)", uint8(id))
}

// ParseID parses a suite name as printed by ID.String. Matching ignores case
// and an empty name yields Default.
func ParseID(name string) (ID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Default, nil
	}
	for _, id := range Supported() {
		if suites[id].Name == name {
			return id, nil
		}
	}
	return Unspecified, fmt.Errorf("%w: %q", kerrors.ErrUnsupportedCipher, name)
}

// Seal encrypts plaintext and returns the ciphertext and tag separately.
// ad is authenticated but not encrypted and may be nil.
//
// Errors are limited to programming mistakes (wrong key or nonce size, unknown
// suite) and are reported as ErrCryptoInternal or ErrUnsupportedCipher.
func Seal(id ID, key, nonce, plaintext, ad []byte) (ciphertext, tag []byte, err error) {
	suite, err := Lookup(id)
	if err != nil {
		return nil, nil, err
	}
	aead, err := suite.new(key)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: creating %s: %v", kerrors.ErrCryptoInternal, suite.Name, err)
	}
	if len(nonce) != aead.NonceSize() {
		return nil, nil, fmt.Errorf("%w: %s nonce must be %d bytes, got %d",
			kerrors.ErrCryptoInternal, suite.Name, aead.NonceSize(), len(nonce))
	}

	sealed := aead.Seal(nil, nonce, plaintext, ad)
	split := len(sealed) - aead.Overhead()
	return sealed[:split:split], sealed[split:], nil
}

// Open verifies and decrypts ciphertext. Every failure, whatever its cause,
// is reported as the bare ErrAuthenticationFailed.
func Open(id ID, key, nonce, ciphertext, tag, ad []byte) ([]byte, error) {
	suite, ok := suites[id]
	if !ok {
		return nil, kerrors.ErrAuthenticationFailed
	}
	aead, err := suite.new(key)
	if err != nil {
		return nil, kerrors.ErrAuthenticationFailed
	}
	if len(nonce) != aead.NonceSize() || len(tag) != aead.Overhead() {
		return nil, kerrors.ErrAuthenticationFailed
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, ad)
	if err != nil {
		return nil, kerrors.ErrAuthenticationFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}
