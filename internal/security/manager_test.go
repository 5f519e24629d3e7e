package security

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/PolarWolf314/sealpref/internal/aead"
	kerrors "github.com/PolarWolf314/sealpref/internal/errors"
)

func newManager(t *testing.T, passphrase string, id aead.ID) *Manager {
	t.Helper()
	m, err := NewManager([]byte(passphrase), id)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(m.Destroy)
	return m
}

func TestNewManager(t *testing.T) {
	t.Run("DefaultCipher", func(t *testing.T) {
		m := newManager(t, "secret", aead.Unspecified)
		if m.Cipher() != aead.Default {
			t.Errorf("Expected default cipher %s, got %s", aead.Default, m.Cipher())
		}
	})

	t.Run("ExplicitCipher", func(t *testing.T) {
		m := newManager(t, "secret", aead.AES256GCM)
		if m.Cipher() != aead.AES256GCM {
			t.Errorf("Expected %s, got %s", aead.AES256GCM, m.Cipher())
		}
	})

	t.Run("EmptyPassphrase", func(t *testing.T) {
		_, err := NewManager(nil, aead.Default)
		if !errors.Is(err, kerrors.ErrEmptyPassphrase) {
			t.Errorf("Expected ErrEmptyPassphrase, got %v", err)
		}
	})

	t.Run("UnknownCipher", func(t *testing.T) {
		_, err := NewManager([]byte("secret"), aead.ID(0x33))
		if !errors.Is(err, kerrors.ErrUnsupportedCipher) {
			t.Errorf("Expected ErrUnsupportedCipher, got %v", err)
		}
	})

	t.Run("WipesCallerSlice", func(t *testing.T) {
		pass := []byte("wipe me")
		m, err := NewManager(pass, aead.Default)
		if err != nil {
			t.Fatalf("NewManager failed: %v", err)
		}
		defer m.Destroy()
		if !bytes.Equal(pass, make([]byte, len(pass))) {
			t.Error("Expected caller passphrase slice to be zeroed")
		}
	})
}

func TestTextRoundTrip(t *testing.T) {
	m := newManager(t, "My most secure password", aead.Unspecified)

	for _, plain := range []string{"", `{"color":"blue"}`, strings.Repeat("ü", 1000)} {
		data, err := m.EncryptText(plain)
		if err != nil {
			t.Fatalf("EncryptText failed: %v", err)
		}
		got, err := m.DecryptText(data)
		if err != nil {
			t.Fatalf("DecryptText failed: %v", err)
		}
		if got != plain {
			t.Errorf("Expected %q, got %q", plain, got)
		}
	}
}

func TestStreamRoundTrip(t *testing.T) {
	m := newManager(t, "My most secure password", aead.XChaCha20Poly1305)

	var buf bytes.Buffer
	if err := m.EncryptTo(&buf, `{"level":2,"health":0.75}`); err != nil {
		t.Fatalf("EncryptTo failed: %v", err)
	}

	got, err := m.DecryptFrom(&buf)
	if err != nil {
		t.Fatalf("DecryptFrom failed: %v", err)
	}
	if got != `{"level":2,"health":0.75}` {
		t.Errorf("Unexpected plaintext %q", got)
	}
}

func TestWrongPassphrase(t *testing.T) {
	writer := newManager(t, "first passphrase", aead.Default)
	reader := newManager(t, "second passphrase", aead.Default)

	data, err := writer.EncryptText("hello")
	if err != nil {
		t.Fatalf("EncryptText failed: %v", err)
	}

	_, err = reader.DecryptText(data)
	if !errors.Is(err, kerrors.ErrAuthenticationFailed) {
		t.Errorf("Expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestCipherAgility(t *testing.T) {
	old := newManager(t, "shared", aead.AES256GCM)
	data, err := old.EncryptText("written with AES")
	if err != nil {
		t.Fatalf("EncryptText failed: %v", err)
	}
	if aead.ID(data[1]) != aead.AES256GCM {
		t.Fatalf("Expected container tagged %s, got 0x%02x", aead.AES256GCM, data[1])
	}

	// A handle configured for another suite still reads old containers.
	current := newManager(t, "shared", aead.ChaCha20Poly1305)
	got, err := current.DecryptText(data)
	if err != nil {
		t.Fatalf("DecryptText failed: %v", err)
	}
	if got != "written with AES" {
		t.Errorf("Unexpected plaintext %q", got)
	}

	fresh, err := current.EncryptText("new")
	if err != nil {
		t.Fatalf("EncryptText failed: %v", err)
	}
	if aead.ID(fresh[1]) != aead.ChaCha20Poly1305 {
		t.Errorf("Expected new container tagged %s, got 0x%02x", aead.ChaCha20Poly1305, fresh[1])
	}
}

func TestMalformedInput(t *testing.T) {
	m := newManager(t, "secret", aead.Default)

	_, err := m.DecryptText([]byte{1, 1, 0})
	if !errors.Is(err, kerrors.ErrMalformedContainer) {
		t.Errorf("Expected ErrMalformedContainer, got %v", err)
	}

	_, err = m.DecryptFrom(strings.NewReader(""))
	if !errors.Is(err, kerrors.ErrMalformedContainer) {
		t.Errorf("Expected ErrMalformedContainer, got %v", err)
	}
}

func TestConcurrentUse(t *testing.T) {
	m := newManager(t, "shared across goroutines", aead.Default)

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			plain := strings.Repeat(string(rune('a'+i)), i+1)
			data, err := m.EncryptText(plain)
			if err != nil {
				errs <- err
				return
			}
			got, err := m.DecryptText(data)
			if err != nil {
				errs <- err
				return
			}
			if got != plain {
				errs <- errors.New("plaintext mismatch for " + plain)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestDestroy(t *testing.T) {
	m, err := NewManager([]byte("short lived"), aead.Default)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	data, err := m.EncryptText("x")
	if err != nil {
		t.Fatalf("EncryptText failed: %v", err)
	}

	m.Destroy()

	if _, err := m.EncryptText("y"); !errors.Is(err, kerrors.ErrManagerDestroyed) {
		t.Errorf("Expected ErrManagerDestroyed from EncryptText, got %v", err)
	}
	if _, err := m.DecryptText(data); !errors.Is(err, kerrors.ErrManagerDestroyed) {
		t.Errorf("Expected ErrManagerDestroyed from DecryptText, got %v", err)
	}
	if err := m.EncryptTo(&bytes.Buffer{}, "z"); !errors.Is(err, kerrors.ErrManagerDestroyed) {
		t.Errorf("Expected ErrManagerDestroyed from EncryptTo, got %v", err)
	}
}
