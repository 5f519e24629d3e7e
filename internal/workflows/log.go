package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/sealpref/internal/audit"
	kerrors "github.com/PolarWolf314/sealpref/internal/errors"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	Target

	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Operations filters entries by operation (comma-separated, e.g. "save,load").
	Operations string

	// Key filters entries to a single preferences key.
	Key string

	// Since keeps entries on or after this date (YYYY-MM-DD).
	Since string
}

// LogResult contains the audit entries that passed the filters.
type LogResult struct {
	// Path is the audit log that was read.
	Path string

	Entries []audit.Entry

	// Total is the number of entries before filtering.
	Total int
}

// Log reads and filters the audit log in the application directory. A missing
// log yields no entries. No passphrase is needed.
//
// Returns ErrInvalidDateFormat if Since is not a YYYY-MM-DD date.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	var since time.Time
	if opts.Since != "" {
		var err error
		if since, err = time.Parse("2006-01-02", opts.Since); err != nil {
			return nil, fmt.Errorf("%w: --since must be YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
	}

	_, store, err := opts.open()
	if err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries(store.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	result := &LogResult{Path: audit.LogPath(store.Dir), Total: len(entries)}

	filtered := entries
	if opts.Operations != "" {
		filtered = filterByOperations(filtered, strings.Split(opts.Operations, ","))
	}
	if opts.Key != "" {
		filtered = filterByKey(filtered, opts.Key)
	}
	if !since.IsZero() {
		filtered = filterSince(filtered, since)
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// The limit always keeps the most recent entries.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filterByOperations(entries []audit.Entry, ops []string) []audit.Entry {
	opSet := make(map[string]bool, len(ops))
	for _, op := range ops {
		opSet[strings.ToLower(strings.TrimSpace(op))] = true
	}

	var result []audit.Entry
	for _, e := range entries {
		if opSet[strings.ToLower(e.Operation)] {
			result = append(result, e)
		}
	}
	return result
}

func filterByKey(entries []audit.Entry, key string) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if e.Key == key {
			result = append(result, e)
		}
	}
	return result
}

// filterSince drops entries before since. Entries with an unreadable
// timestamp are dropped too.
func filterSince(entries []audit.Entry, since time.Time) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		t, err := time.Parse(time.RFC3339, e.Timestamp)
		if err != nil {
			continue
		}
		if !t.Before(since) {
			result = append(result, e)
		}
	}
	return result
}

// FormatDateTime formats an entry timestamp as YYYY-MM-DD HH:MM:SS.
func FormatDateTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails summarizes the operation-specific fields of an entry.
func FormatDetails(e audit.Entry) string {
	var parts []string
	if e.Key != "" || e.Operation == "save" || e.Operation == "load" || e.Operation == "delete" {
		parts = append(parts, "'"+e.Key+"'")
	}
	if e.Cipher != "" {
		parts = append(parts, e.Cipher)
	}
	if e.Size > 0 {
		parts = append(parts, fmt.Sprintf("%d bytes", e.Size))
	}
	if e.Operation == "list" {
		parts = append(parts, fmt.Sprintf("%d keys", e.KeysCount))
	}
	return strings.Join(parts, ", ")
}
