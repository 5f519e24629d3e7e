package aead

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/sealpref/internal/errors"
)

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

func TestSealOpenEverySuite(t *testing.T) {
	for _, id := range Supported() {
		t.Run(id.String(), func(t *testing.T) {
			suite, err := Lookup(id)
			require.NoError(t, err)

			key := randomBytes(t, KeySize)
			nonce := randomBytes(t, suite.NonceSize)
			ad := []byte("header")
			plaintext := []byte(`{"color":"blue"}`)

			ciphertext, tag, err := Seal(id, key, nonce, plaintext, ad)
			require.NoError(t, err)
			assert.Len(t, ciphertext, len(plaintext))
			assert.Len(t, tag, suite.TagSize)

			opened, err := Open(id, key, nonce, ciphertext, tag, ad)
			require.NoError(t, err)
			assert.Equal(t, plaintext, opened)
		})
	}
}

func TestSealOpenEmptyPlaintext(t *testing.T) {
	for _, id := range Supported() {
		t.Run(id.String(), func(t *testing.T) {
			suite, err := Lookup(id)
			require.NoError(t, err)
			key := randomBytes(t, KeySize)
			nonce := randomBytes(t, suite.NonceSize)

			ciphertext, tag, err := Seal(id, key, nonce, nil, nil)
			require.NoError(t, err)
			assert.Empty(t, ciphertext)

			opened, err := Open(id, key, nonce, ciphertext, tag, nil)
			require.NoError(t, err)
			assert.NotNil(t, opened)
			assert.Empty(t, opened)
		})
	}
}

func TestOpenFailsClosed(t *testing.T) {
	id := ChaCha20Poly1305
	key := randomBytes(t, KeySize)
	nonce := randomBytes(t, 12)
	ad := []byte("ad")

	ciphertext, tag, err := Seal(id, key, nonce, []byte("secret value"), ad)
	require.NoError(t, err)

	flip := func(b []byte, i int) []byte {
		c := bytes.Clone(b)
		c[i] ^= 0x01
		return c
	}

	tests := []struct {
		name       string
		id         ID
		key        []byte
		nonce      []byte
		ciphertext []byte
		tag        []byte
		ad         []byte
	}{
		{"WrongKey", id, randomBytes(t, KeySize), nonce, ciphertext, tag, ad},
		{"ShortKey", id, key[:16], nonce, ciphertext, tag, ad},
		{"FlippedCiphertext", id, key, nonce, flip(ciphertext, 0), tag, ad},
		{"FlippedTag", id, key, nonce, ciphertext, flip(tag, len(tag)-1), ad},
		{"FlippedNonce", id, key, flip(nonce, 3), ciphertext, tag, ad},
		{"DifferentAD", id, key, nonce, ciphertext, tag, []byte("other")},
		{"TruncatedTag", id, key, nonce, ciphertext, tag[:8], ad},
		{"TruncatedCiphertext", id, key, nonce, ciphertext[1:], tag, ad},
		{"OtherSuite", AES256GCM, key, nonce, ciphertext, tag, ad},
		{"UnknownSuite", ID(0x7f), key, nonce, ciphertext, tag, ad},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plaintext, err := Open(tc.id, tc.key, tc.nonce, tc.ciphertext, tc.tag, tc.ad)
			assert.Nil(t, plaintext)
			// The exact sentinel, never a wrapped error carrying extra detail.
			assert.Equal(t, kerrors.ErrAuthenticationFailed, err)
		})
	}
}

func TestSealRejectsBadInputs(t *testing.T) {
	_, _, err := Seal(ChaCha20Poly1305, make([]byte, 16), make([]byte, 12), nil, nil)
	assert.ErrorIs(t, err, kerrors.ErrCryptoInternal)

	_, _, err = Seal(XChaCha20Poly1305, make([]byte, KeySize), make([]byte, 12), nil, nil)
	assert.ErrorIs(t, err, kerrors.ErrCryptoInternal)

	_, _, err = Seal(ID(0x09), make([]byte, KeySize), make([]byte, 12), nil, nil)
	assert.ErrorIs(t, err, kerrors.ErrUnsupportedCipher)
}

func TestParseIDAndString(t *testing.T) {
	tests := []struct {
		input    string
		expected ID
	}{
		{"", Default},
		{"chacha20-poly1305", ChaCha20Poly1305},
		{"AES-256-GCM", AES256GCM},
		{"  xchacha20-poly1305 ", XChaCha20Poly1305},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			id, err := ParseID(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id)
		})
	}

	_, err := ParseID("rot13")
	assert.ErrorIs(t, err, kerrors.ErrUnsupportedCipher)

	for _, id := range Supported() {
		parsed, err := ParseID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	}
	assert.Equal(t, "unspecified", Unspecified.String())
	assert.Equal(t, "unknown(0x7f)", ID(0x7f).String())
}

func TestResolve(t *testing.T) {
	id, err := Resolve(Unspecified)
	require.NoError(t, err)
	assert.Equal(t, Default, id)

	id, err = Resolve(AES256GCM)
	require.NoError(t, err)
	assert.Equal(t, AES256GCM, id)

	_, err = Resolve(ID(0xff))
	assert.ErrorIs(t, err, kerrors.ErrUnsupportedCipher)
}
