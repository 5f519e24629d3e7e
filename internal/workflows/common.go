package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/sealpref/internal/aead"
	"github.com/PolarWolf314/sealpref/internal/configs"
	kerrors "github.com/PolarWolf314/sealpref/internal/errors"
	"github.com/PolarWolf314/sealpref/internal/security"
	"github.com/PolarWolf314/sealpref/internal/storage"
)

// Target selects the configuration a workflow runs against.
type Target struct {
	// Config overrides the user config. If nil, configs.LoadConfig is used.
	Config *configs.Config
}

func (t Target) config() (*configs.Config, error) {
	if t.Config != nil {
		if err := t.Config.Validate(); err != nil {
			return nil, err
		}
		return t.Config, nil
	}
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return config, nil
}

// open returns the config and the store it points at.
func (t Target) open() (*configs.Config, *storage.FileStore, error) {
	config, err := t.config()
	if err != nil {
		return nil, nil, err
	}
	store, err := config.Store()
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return config, store, nil
}

// newManager builds a manager for passphrase. The cipher override wins over
// the configured one.
func newManager(config *configs.Config, passphrase []byte, override aead.ID) (*security.Manager, error) {
	if len(passphrase) == 0 {
		return nil, kerrors.ErrNoPassphrase
	}

	id := override
	if id == aead.Unspecified {
		var err error
		if id, err = config.CipherID(); err != nil {
			return nil, err
		}
	}

	return security.NewManager(passphrase, id)
}

// beforeDerive reports a cancelled context. Call it right before any
// operation that derives a key.
func beforeDerive(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("operation cancelled: %w", err)
	}
	return nil
}

func fileSize(path string) int {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return int(info.Size())
}
