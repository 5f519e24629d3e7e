package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/sealpref/internal/aead"
	"github.com/PolarWolf314/sealpref/internal/audit"
	"github.com/PolarWolf314/sealpref/internal/preferences"
)

// SetOptions configures the set workflow.
type SetOptions struct {
	Target

	// Key is the logical preferences key, e.g. "options/window".
	Key string

	// Values are merged into the stored map, replacing entries with the same name.
	Values map[string]string

	// Replace discards any stored values instead of merging with them.
	Replace bool

	// Cipher overrides the configured cipher for the rewritten container.
	Cipher aead.ID

	// Passphrase is wiped once the workflow has taken it.
	Passphrase []byte
}

// SetResult contains the outcome of a set operation.
type SetResult struct {
	Key    string
	Path   string
	Cipher aead.ID

	// Created is true when nothing was stored under the key before.
	Created bool

	// Count is the number of values stored after the merge.
	Count int
}

// Set merges values into the preferences stored under a key and rewrites
// the container with a fresh salt and nonce.
//
// The existing container is decrypted first, so a wrong passphrase fails with
// ErrAuthenticationFailed instead of silently replacing data. With Replace,
// nothing is read back.
func Set(ctx context.Context, opts SetOptions) (*SetResult, error) {
	config, store, err := opts.open()
	if err != nil {
		return nil, err
	}

	manager, err := newManager(config, opts.Passphrase, opts.Cipher)
	if err != nil {
		return nil, err
	}
	defer manager.Destroy()

	values := preferences.Map{}
	created := true
	if !opts.Replace {
		exists, err := store.Exists(opts.Key)
		if err != nil {
			return nil, err
		}
		if exists {
			if err := beforeDerive(ctx); err != nil {
				return nil, err
			}
			if err := preferences.Load(store, manager, opts.Key, &values); err != nil {
				return nil, err
			}
			created = false
		}
	}

	for name, value := range opts.Values {
		values[name] = value
	}

	if err := beforeDerive(ctx); err != nil {
		return nil, err
	}
	if err := preferences.Save(store, manager, opts.Key, values); err != nil {
		return nil, err
	}

	path := store.Path(opts.Key)
	entry := audit.NewEntry("save")
	entry.Key = opts.Key
	entry.Cipher = manager.Cipher().String()
	entry.Size = fileSize(path)
	audit.Log(config.AuditDir(store), entry)

	return &SetResult{
		Key:     opts.Key,
		Path:    path,
		Cipher:  manager.Cipher(),
		Created: created,
		Count:   len(values),
	}, nil
}

// ParseAssignments parses "name=value" arguments. The value may be empty and
// may itself contain '='.
func ParseAssignments(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected name=value", arg)
		}
		values[name] = value
	}
	return values, nil
}
