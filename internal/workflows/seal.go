package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/sealpref/internal/aead"
	"github.com/PolarWolf314/sealpref/internal/audit"
	"github.com/PolarWolf314/sealpref/internal/configs"
	"github.com/PolarWolf314/sealpref/internal/container"
)

// SealOptions configures the seal workflow.
type SealOptions struct {
	Target
	Plaintext  []byte
	Cipher     aead.ID
	Passphrase []byte
}

// SealResult contains a serialized container.
type SealResult struct {
	Container []byte
	Cipher    aead.ID
}

// Seal encrypts arbitrary data into a standalone container, outside the store.
func Seal(ctx context.Context, opts SealOptions) (*SealResult, error) {
	config, err := opts.config()
	if err != nil {
		return nil, err
	}

	manager, err := newManager(config, opts.Passphrase, opts.Cipher)
	if err != nil {
		return nil, err
	}
	defer manager.Destroy()

	if err := beforeDerive(ctx); err != nil {
		return nil, err
	}
	data, err := manager.EncryptBytes(opts.Plaintext)
	if err != nil {
		return nil, fmt.Errorf("sealing: %w", err)
	}

	logStandalone(config, "seal", manager.Cipher(), len(data))

	return &SealResult{Container: data, Cipher: manager.Cipher()}, nil
}

// UnsealOptions configures the unseal workflow.
type UnsealOptions struct {
	Target
	Container  []byte
	Passphrase []byte
}

// UnsealResult contains decrypted data and the header it was read from.
type UnsealResult struct {
	Plaintext []byte
	Header    container.Header
}

// Unseal decrypts a standalone container. The cipher recorded in the
// container is used regardless of configuration.
func Unseal(ctx context.Context, opts UnsealOptions) (*UnsealResult, error) {
	config, err := opts.config()
	if err != nil {
		return nil, err
	}

	// Parsed up front for the header; DecryptBytes parses again.
	c, err := container.Unmarshal(opts.Container)
	if err != nil {
		return nil, err
	}

	manager, err := newManager(config, opts.Passphrase, c.Cipher)
	if err != nil {
		return nil, err
	}
	defer manager.Destroy()

	if err := beforeDerive(ctx); err != nil {
		return nil, err
	}
	plaintext, err := manager.DecryptBytes(opts.Container)
	if err != nil {
		return nil, err
	}

	logStandalone(config, "unseal", c.Cipher, len(opts.Container))

	return &UnsealResult{Plaintext: plaintext, Header: c.Header()}, nil
}

// logStandalone records seal and unseal in the application directory's log.
func logStandalone(config *configs.Config, op string, cipher aead.ID, size int) {
	store, err := config.Store()
	if err != nil {
		return
	}
	entry := audit.NewEntry(op)
	entry.Cipher = cipher.String()
	entry.Size = size
	audit.Log(config.AuditDir(store), entry)
}
