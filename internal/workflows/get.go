package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/sealpref/internal/audit"
	"github.com/PolarWolf314/sealpref/internal/configs"
	kerrors "github.com/PolarWolf314/sealpref/internal/errors"
	"github.com/PolarWolf314/sealpref/internal/preferences"
	"github.com/PolarWolf314/sealpref/internal/storage"
)

// GetOptions configures the get workflow.
type GetOptions struct {
	Target
	Key        string
	Name       string
	Passphrase []byte
}

// GetResult contains the value read by Get.
type GetResult struct {
	Key   string
	Name  string
	Value string
}

// Get reads a single value from the preferences stored under a key.
//
// Returns ErrPreferencesNotFound if nothing is stored under the key and
// ErrValueNotFound if the stored map has no entry with that name.
func Get(ctx context.Context, opts GetOptions) (*GetResult, error) {
	values, err := load(ctx, opts.Target, opts.Key, opts.Passphrase)
	if err != nil {
		return nil, err
	}

	value, ok := values[opts.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %q", kerrors.ErrValueNotFound, opts.Name, opts.Key)
	}

	return &GetResult{Key: opts.Key, Name: opts.Name, Value: value}, nil
}

// ShowOptions configures the show workflow.
type ShowOptions struct {
	Target
	Key        string
	Passphrase []byte
}

// ShowResult contains every value stored under a key.
type ShowResult struct {
	Key    string
	Path   string
	Values map[string]string
}

// Show reads every value stored under a key.
func Show(ctx context.Context, opts ShowOptions) (*ShowResult, error) {
	config, store, err := opts.open()
	if err != nil {
		return nil, err
	}
	values, err := loadFrom(ctx, config, store, opts.Key, opts.Passphrase)
	if err != nil {
		return nil, err
	}
	return &ShowResult{Key: opts.Key, Path: store.Path(opts.Key), Values: values}, nil
}

func load(ctx context.Context, target Target, key string, passphrase []byte) (preferences.Map, error) {
	config, store, err := target.open()
	if err != nil {
		return nil, err
	}
	return loadFrom(ctx, config, store, key, passphrase)
}

func loadFrom(ctx context.Context, config *configs.Config, store *storage.FileStore, key string, passphrase []byte) (preferences.Map, error) {
	manager, err := newManager(config, passphrase, 0)
	if err != nil {
		return nil, err
	}
	defer manager.Destroy()

	if err := beforeDerive(ctx); err != nil {
		return nil, err
	}

	values := preferences.Map{}
	if err := preferences.Load(store, manager, key, &values); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("load")
	entry.Key = key
	entry.Size = fileSize(store.Path(key))
	audit.Log(config.AuditDir(store), entry)

	return values, nil
}
