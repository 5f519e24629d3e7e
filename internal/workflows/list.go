package workflows

import (
	"context"

	"github.com/PolarWolf314/sealpref/internal/audit"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	Target

	// Pattern is a doublestar glob over keys, e.g. "options/**". Empty lists everything.
	Pattern string
}

// ListResult contains the keys found by List.
type ListResult struct {
	Dir  string
	Keys []string
}

// List returns the stored keys matching a pattern. No passphrase is needed.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	config, store, err := opts.open()
	if err != nil {
		return nil, err
	}

	keys, err := store.List(opts.Pattern)
	if err != nil {
		return nil, err
	}

	entry := audit.NewEntry("list")
	entry.KeysCount = len(keys)
	audit.Log(config.AuditDir(store), entry)

	return &ListResult{Dir: store.Dir, Keys: keys}, nil
}
