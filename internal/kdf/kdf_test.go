package kdf

import (
	"bytes"
	"errors"
	"testing"

	kerrors "github.com/PolarWolf314/sealpref/internal/errors"
)

func TestDeriveIsReproducible(t *testing.T) {
	salt := bytes.Repeat([]byte{0x42}, SaltSize)

	first, err := Derive([]byte("correct horse"), salt)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	defer first.Destroy()

	second, err := Derive([]byte("correct horse"), salt)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	defer second.Destroy()

	if first.Size() != int(KeySize) {
		t.Errorf("Expected key of %d bytes, got %d", KeySize, first.Size())
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("Expected equal keys for equal passphrase and salt")
	}
}

func TestDeriveDependsOnInputs(t *testing.T) {
	saltA := bytes.Repeat([]byte{0x01}, SaltSize)
	saltB := bytes.Repeat([]byte{0x02}, SaltSize)

	base, err := Derive([]byte("passphrase"), saltA)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	defer base.Destroy()

	otherSalt, err := Derive([]byte("passphrase"), saltB)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	defer otherSalt.Destroy()

	otherPass, err := Derive([]byte("passphrasf"), saltA)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	defer otherPass.Destroy()

	if bytes.Equal(base.Bytes(), otherSalt.Bytes()) {
		t.Error("Expected different keys for different salts")
	}
	if bytes.Equal(base.Bytes(), otherPass.Bytes()) {
		t.Error("Expected different keys for different passphrases")
	}
}

func TestDeriveRejectsBadSaltLength(t *testing.T) {
	tests := []struct {
		name string
		salt []byte
	}{
		{"Nil", nil},
		{"Short", make([]byte, SaltSize-1)},
		{"Long", make([]byte, SaltSize+1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key, err := Derive([]byte("passphrase"), tc.salt)
			if !errors.Is(err, kerrors.ErrInvalidSaltLength) {
				t.Fatalf("Expected ErrInvalidSaltLength, got %v", err)
			}
			if key != nil {
				t.Error("Expected no key on failure")
			}
		})
	}
}
