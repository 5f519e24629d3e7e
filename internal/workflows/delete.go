package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/sealpref/internal/audit"
	kerrors "github.com/PolarWolf314/sealpref/internal/errors"
	"github.com/PolarWolf314/sealpref/internal/preferences"
)

// DeleteOptions configures the delete workflow.
type DeleteOptions struct {
	Target
	Key string

	// Names removes only these values from the stored map. If empty, the
	// whole key is removed and no passphrase is needed.
	Names []string

	Passphrase []byte
}

// DeleteResult contains the outcome of a delete operation.
type DeleteResult struct {
	Key string

	// Removed lists the value names removed, when Names was given.
	Removed []string

	// FileRemoved is true when the key's file was deleted.
	FileRemoved bool
}

// Delete removes a key, or some of the values stored under it.
//
// Returns ErrPreferencesNotFound if nothing is stored under the key, and
// ErrValueNotFound if one of Names is not in the stored map. In that case
// nothing is rewritten.
func Delete(ctx context.Context, opts DeleteOptions) (*DeleteResult, error) {
	config, store, err := opts.open()
	if err != nil {
		return nil, err
	}

	if len(opts.Names) == 0 {
		if err := store.Remove(opts.Key); err != nil {
			return nil, err
		}
		logDelete(config.AuditDir(store), opts.Key)
		return &DeleteResult{Key: opts.Key, FileRemoved: true}, nil
	}

	manager, err := newManager(config, opts.Passphrase, 0)
	if err != nil {
		return nil, err
	}
	defer manager.Destroy()

	if err := beforeDerive(ctx); err != nil {
		return nil, err
	}
	values := preferences.Map{}
	if err := preferences.Load(store, manager, opts.Key, &values); err != nil {
		return nil, err
	}

	for _, name := range opts.Names {
		if _, ok := values[name]; !ok {
			return nil, fmt.Errorf("%w: %q in %q", kerrors.ErrValueNotFound, name, opts.Key)
		}
		delete(values, name)
	}

	if err := beforeDerive(ctx); err != nil {
		return nil, err
	}
	if err := preferences.Save(store, manager, opts.Key, values); err != nil {
		return nil, err
	}
	logDelete(config.AuditDir(store), opts.Key)

	return &DeleteResult{Key: opts.Key, Removed: opts.Names}, nil
}

func logDelete(dir, key string) {
	entry := audit.NewEntry("delete")
	entry.Key = key
	audit.Log(dir, entry)
}
