package container

import (
	"bytes"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"testing/iotest"

	"github.com/awnumar/memguard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/sealpref/internal/aead"
	kerrors "github.com/PolarWolf314/sealpref/internal/errors"
	"github.com/PolarWolf314/sealpref/internal/kdf"
)

var passphrase = []byte("My most secure password")

// countDerivations replaces the key derivation function for the duration of
// the test and reports how often it ran.
func countDerivations(t *testing.T) *atomic.Int32 {
	t.Helper()
	var calls atomic.Int32
	original := deriveKey
	deriveKey = func(pass, salt []byte) (*memguard.LockedBuffer, error) {
		calls.Add(1)
		return kdf.Derive(pass, salt)
	}
	t.Cleanup(func() { deriveKey = original })
	return &calls
}

func sealBytes(t *testing.T, id aead.ID, plaintext []byte) []byte {
	t.Helper()
	c, err := Seal(passphrase, id, plaintext)
	require.NoError(t, err)
	data, err := c.MarshalBinary()
	require.NoError(t, err)
	return data
}

func openBytes(data []byte, pass []byte) ([]byte, error) {
	c, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return c.Open(pass)
}

func TestRoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"Empty":         {},
		"Short":         []byte(`{"color":"blue","programming language":"Go"}`),
		"Binary":        {0x00, 0xff, 0xfe, 0x80, 0x00},
		"MultiMegabyte": bytes.Repeat([]byte("preferences "), 300_000),
	}

	for _, id := range aead.Supported() {
		for name, payload := range payloads {
			t.Run(id.String()+"/"+name, func(t *testing.T) {
				data := sealBytes(t, id, payload)

				minSize, err := MinSize(id)
				require.NoError(t, err)
				assert.Equal(t, minSize+len(payload), len(data))
				assert.Equal(t, Version1, data[0])
				assert.Equal(t, byte(id), data[1])

				opened, err := openBytes(data, passphrase)
				require.NoError(t, err)
				assert.True(t, bytes.Equal(payload, opened), "plaintext mismatch")
			})
		}
	}
}

func TestWrongPassphrase(t *testing.T) {
	data := sealBytes(t, aead.Default, []byte("secret"))

	opened, err := openBytes(data, []byte("My most secure passwore"))
	assert.Nil(t, opened)
	assert.Equal(t, kerrors.ErrAuthenticationFailed, err)
}

func TestTamperDetection(t *testing.T) {
	for _, id := range aead.Supported() {
		t.Run(id.String(), func(t *testing.T) {
			data := sealBytes(t, id, []byte("level=2;health=0.75"))
			minSize, err := MinSize(id)
			require.NoError(t, err)
			suite, err := aead.Lookup(id)
			require.NoError(t, err)

			// Ciphertext starts after the fixed header and runs to the tag.
			ctStart := minSize - suite.TagSize
			positions := []int{
				ctStart,                       // first ciphertext byte
				ctStart + 7,                   // a middle ciphertext byte
				len(data) - suite.TagSize - 1, // last ciphertext byte
				len(data) - suite.TagSize,     // first tag byte
				len(data) - 1,                 // last tag byte
				prefixSize,                    // first salt byte
				prefixSize + SaltSize,         // first nonce byte
			}

			for _, pos := range positions {
				for bit := 0; bit < 8; bit += 3 {
					tampered := bytes.Clone(data)
					tampered[pos] ^= 1 << bit

					opened, err := openBytes(tampered, passphrase)
					assert.Nil(t, opened, "byte %d bit %d", pos, bit)
					assert.ErrorIs(t, err, kerrors.ErrAuthenticationFailed, "byte %d bit %d", pos, bit)
				}
			}
		})
	}
}

func TestTamperedLengthIsMalformed(t *testing.T) {
	data := sealBytes(t, aead.ChaCha20Poly1305, []byte("some payload"))
	lengthPos := prefixSize + SaltSize + 12

	for _, delta := range []byte{0x01, 0x80} {
		tampered := bytes.Clone(data)
		tampered[lengthPos+3] ^= delta

		_, err := Unmarshal(tampered)
		assert.ErrorIs(t, err, kerrors.ErrMalformedContainer)
	}
}

func TestNonDeterministic(t *testing.T) {
	payload := []byte("same input")
	first := sealBytes(t, aead.Default, payload)
	second := sealBytes(t, aead.Default, payload)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, first[prefixSize:prefixSize+SaltSize], second[prefixSize:prefixSize+SaltSize], "salt reused")

	for _, data := range [][]byte{first, second} {
		opened, err := openBytes(data, passphrase)
		require.NoError(t, err)
		assert.Equal(t, payload, opened)
	}
}

func TestMalformedInputSkipsKeyDerivation(t *testing.T) {
	data := sealBytes(t, aead.XChaCha20Poly1305, []byte("payload"))
	calls := countDerivations(t)

	t.Run("Truncated", func(t *testing.T) {
		minSize, err := MinSize(aead.XChaCha20Poly1305)
		require.NoError(t, err)
		for n := 0; n < minSize; n++ {
			_, err := Unmarshal(data[:n])
			require.ErrorIs(t, err, kerrors.ErrMalformedContainer, "length %d", n)
		}
		// One byte short of the full container.
		_, err = Unmarshal(data[:len(data)-1])
		require.ErrorIs(t, err, kerrors.ErrMalformedContainer)
	})

	t.Run("UnknownVersion", func(t *testing.T) {
		for _, v := range []byte{0, 2, 0xff} {
			tampered := bytes.Clone(data)
			tampered[0] = v
			_, err := Unmarshal(tampered)
			require.ErrorIs(t, err, kerrors.ErrMalformedContainer)
		}
	})

	t.Run("UnknownCipher", func(t *testing.T) {
		for _, id := range []byte{0x00, 0x04, 0xff} {
			tampered := bytes.Clone(data)
			tampered[1] = id
			_, err := Unmarshal(tampered)
			require.ErrorIs(t, err, kerrors.ErrMalformedContainer)
		}
	})

	t.Run("TrailingBytes", func(t *testing.T) {
		_, err := Unmarshal(append(bytes.Clone(data), 0x00))
		require.ErrorIs(t, err, kerrors.ErrMalformedContainer)
	})

	t.Run("InvalidStruct", func(t *testing.T) {
		c, err := Unmarshal(data)
		require.NoError(t, err)
		c.Nonce = c.Nonce[:12]
		_, err = c.Open(passphrase)
		require.ErrorIs(t, err, kerrors.ErrMalformedContainer)

		var nilContainer *Container
		_, err = nilContainer.Open(passphrase)
		require.ErrorIs(t, err, kerrors.ErrMalformedContainer)
	})

	assert.Zero(t, calls.Load(), "key derivation ran for malformed input")
}

func TestCipherChangedInHeaderFailsAuthentication(t *testing.T) {
	// AES-256-GCM and ChaCha20-Poly1305 share nonce and tag sizes, so the
	// swapped container still parses; the bound header must reject it.
	data := sealBytes(t, aead.ChaCha20Poly1305, []byte("payload"))
	data[1] = byte(aead.AES256GCM)

	_, err := openBytes(data, passphrase)
	assert.ErrorIs(t, err, kerrors.ErrAuthenticationFailed)
}

func TestReadFromStream(t *testing.T) {
	first := sealBytes(t, aead.ChaCha20Poly1305, []byte("first"))
	second := sealBytes(t, aead.AES256GCM, []byte("second"))

	stream := iotest.OneByteReader(bytes.NewReader(append(bytes.Clone(first), second...)))

	for _, want := range []string{"first", "second"} {
		c, err := ReadFrom(stream)
		require.NoError(t, err)
		opened, err := c.Open(passphrase)
		require.NoError(t, err)
		assert.Equal(t, want, string(opened))
	}

	_, err := ReadFrom(stream)
	assert.ErrorIs(t, err, kerrors.ErrMalformedContainer)
}

func TestReadFromPropagatesSourceErrors(t *testing.T) {
	sourceErr := errors.New("permission denied")
	_, err := ReadFrom(iotest.ErrReader(sourceErr))
	assert.ErrorIs(t, err, sourceErr)
	assert.NotErrorIs(t, err, kerrors.ErrMalformedContainer)
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriteTo(t *testing.T) {
	c, err := Seal(passphrase, aead.Default, []byte("to a sink"))
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, c.Header().TotalSize, buf.Len())

	sinkErr := errors.New("disk full")
	_, err = c.WriteTo(failingWriter{sinkErr})
	assert.ErrorIs(t, err, sinkErr)
}

func TestHeader(t *testing.T) {
	c, err := Seal(passphrase, aead.XChaCha20Poly1305, []byte(strings.Repeat("x", 10)))
	require.NoError(t, err)

	h := c.Header()
	assert.Equal(t, Version1, h.Version)
	assert.Equal(t, aead.XChaCha20Poly1305, h.Cipher)
	assert.Equal(t, SaltSize, h.SaltSize)
	assert.Equal(t, 24, h.NonceSize)
	assert.Equal(t, 10, h.CiphertextSize)
	assert.Equal(t, 16, h.TagSize)
	assert.Equal(t, 2+16+24+4+10+16, h.TotalSize)
	assert.Equal(t, 2+16+24+4+16, h.Overhead)
	assert.Equal(t, h.TotalSize, h.Overhead+h.CiphertextSize)
}

func TestSealUnknownCipher(t *testing.T) {
	_, err := Seal(passphrase, aead.ID(0x42), []byte("x"))
	assert.ErrorIs(t, err, kerrors.ErrUnsupportedCipher)
}

func TestSealRandomFailure(t *testing.T) {
	original := random
	random = iotest.ErrReader(errors.New("entropy exhausted"))
	t.Cleanup(func() { random = original })

	_, err := Seal(passphrase, aead.Default, []byte("x"))
	assert.ErrorIs(t, err, kerrors.ErrCryptoInternal)
}
