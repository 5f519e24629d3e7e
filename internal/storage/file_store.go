package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/sealpref/internal/errors"
)

const (
	dirPerm  = 0700
	filePerm = 0600
)

// FileStore keeps one file per key under Dir.
type FileStore struct {
	Dir string
}

// NewFileStore returns a store rooted at app's directory inside root. An
// empty root selects DataRoot().
func NewFileStore(root string, app AppInfo) (*FileStore, error) {
	if err := app.Validate(); err != nil {
		return nil, err
	}
	if root == "" {
		var err error
		root, err = DataRoot()
		if err != nil {
			return nil, err
		}
	}
	return &FileStore{Dir: AppDir(root, app)}, nil
}

// Path returns the absolute file path for key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.Dir, RelativePath(key))
}

// Create opens key for writing. Nothing is visible at the final path until
// Close succeeds; Abort discards the write.
func (s *FileStore) Create(key string) (*AtomicFile, error) {
	path := s.Path(key)
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, fmt.Errorf("creating directory for %q: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating %q: %w", key, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("setting permissions on %q: %w", key, err)
	}

	return &AtomicFile{file: tmp, path: path}, nil
}

// Open opens key for reading.
func (s *FileStore) Open(key string) (io.ReadCloser, error) {
	f, err := os.Open(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrPreferencesNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", key, err)
	}
	return f, nil
}

// Exists reports whether something is stored under key.
func (s *FileStore) Exists(key string) (bool, error) {
	info, err := os.Stat(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %q: %w", key, err)
	}
	return info.Mode().IsRegular(), nil
}

// Remove deletes key. Directories left empty are not removed.
func (s *FileStore) Remove(key string) error {
	err := os.Remove(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %q", kerrors.ErrPreferencesNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("removing %q: %w", key, err)
	}
	return nil
}

// List returns the stored keys matching a doublestar pattern such as
// "options/*" or "saves/**". An empty pattern matches every key. Keys are
// returned in their sanitized form, sorted.
func (s *FileStore) List(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: invalid pattern %q", kerrors.ErrInvalidKey, pattern)
	}

	var keys []string
	err := filepath.WalkDir(s.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == s.Dir {
				return filepath.SkipDir
			}
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(s.Dir, path)
		if err != nil {
			return err
		}
		key, ok := KeyFromRelativePath(rel)
		if !ok {
			return nil
		}
		// The empty key has no name to match against; only list it when
		// everything was asked for.
		if key == "" {
			if pattern == "**" {
				keys = append(keys, key)
			}
			return nil
		}
		if doublestar.MatchUnvalidated(pattern, key) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.Dir, err)
	}

	sort.Strings(keys)
	return keys, nil
}

// AtomicFile is a pending write created by FileStore.Create.
type AtomicFile struct {
	file   *os.File
	path   string
	closed bool
}

func (f *AtomicFile) Write(p []byte) (int, error) {
	return f.file.Write(p)
}

// Close flushes the data and renames it into place.
func (f *AtomicFile) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	if err := f.file.Sync(); err != nil {
		_ = f.file.Close()
		_ = os.Remove(f.file.Name())
		return fmt.Errorf("syncing %s: %w", f.path, err)
	}
	if err := f.file.Close(); err != nil {
		_ = os.Remove(f.file.Name())
		return fmt.Errorf("closing %s: %w", f.path, err)
	}
	if err := os.Rename(f.file.Name(), f.path); err != nil {
		_ = os.Remove(f.file.Name())
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}

// Abort discards the pending write. It is safe to call after Close.
func (f *AtomicFile) Abort() {
	if f.closed {
		return
	}
	f.closed = true
	_ = f.file.Close()
	_ = os.Remove(f.file.Name())
}
