package workflows

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/PolarWolf314/sealpref/internal/container"
)

// InspectOptions configures the inspect workflow. File, when set, is read
// instead of the stored key.
type InspectOptions struct {
	Target
	Key  string
	File string
}

// InspectResult describes a container.
type InspectResult struct {
	Key    string
	Path   string
	Header container.Header
}

// Inspect parses a container and reports its header. It never derives a key
// and needs no passphrase. A structurally invalid container fails with
// ErrMalformedContainer.
func Inspect(ctx context.Context, opts InspectOptions) (*InspectResult, error) {
	result := &InspectResult{Key: opts.Key, Path: opts.File}

	var data []byte
	if opts.File != "" {
		var err error
		if data, err = os.ReadFile(opts.File); err != nil {
			return nil, fmt.Errorf("reading %s: %w", opts.File, err)
		}
	} else {
		_, store, err := opts.open()
		if err != nil {
			return nil, err
		}
		r, err := store.Open(opts.Key)
		if err != nil {
			return nil, err
		}
		defer r.Close()

		if data, err = io.ReadAll(r); err != nil {
			return nil, fmt.Errorf("reading %q: %w", opts.Key, err)
		}
		result.Path = store.Path(opts.Key)
	}

	c, err := container.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	result.Header = c.Header()
	return result, nil
}
