package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	kerrors "github.com/PolarWolf314/sealpref/internal/errors"
)

const (
	// FileExtension is appended to the last component of every key.
	FileExtension = ".prefs.sealed"
	// DefaultFileName is used for the empty key.
	DefaultFileName = "prefs" + FileExtension
)

// AppInfo identifies the application that owns the preferences.
type AppInfo struct {
	Name   string `toml:"name" mapstructure:"name" json:"name"`
	Author string `toml:"author" mapstructure:"author" json:"author"`
}

// Validate reports whether the application identity can be used in a path.
func (a AppInfo) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: application name is empty", kerrors.ErrInvalidKey)
	}
	if runtime.GOOS == "windows" && strings.TrimSpace(a.Author) == "" {
		return fmt.Errorf("%w: application author is empty", kerrors.ErrInvalidKey)
	}
	return nil
}

// DataRoot returns the per-user data directory for the current platform.
func DataRoot() (string, error) {
	return dataRoot(runtime.GOOS, os.Getenv, os.UserHomeDir)
}

func dataRoot(goos string, getenv func(string) string, home func() (string, error)) (string, error) {
	switch goos {
	case "windows":
		if dir := getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return "", fmt.Errorf("%%APPDATA%% is not set")
	case "darwin", "ios":
		homeDir, err := home()
		if err != nil {
			return "", fmt.Errorf("error getting home directory: %w", err)
		}
		return filepath.Join(homeDir, "Library", "Application Support"), nil
	default:
		if dir := getenv("XDG_DATA_HOME"); dir != "" && filepath.IsAbs(dir) {
			return dir, nil
		}
		homeDir, err := home()
		if err != nil {
			return "", fmt.Errorf("error getting home directory: %w", err)
		}
		return filepath.Join(homeDir, ".local", "share"), nil
	}
}

// AppDir returns the directory that holds app's preference files under root.
func AppDir(root string, app AppInfo) string {
	return appDir(runtime.GOOS, root, app)
}

func appDir(goos, root string, app AppInfo) string {
	if goos == "windows" {
		return filepath.Join(root, SanitizeComponent(app.Author), SanitizeComponent(app.Name))
	}
	return filepath.Join(root, SanitizeComponent(app.Name))
}

// SanitizeComponent makes one key component safe to use as a file name.
func SanitizeComponent(component string) string {
	if component == "." || component == ".." {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		if isAllowed(r) {
			return r
		}
		return '_'
	}, component)
}

func isAllowed(r rune) bool {
	switch r {
	case ' ', '-', '_', '.':
		return true
	}
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// KeyComponents splits a key on "/" and sanitizes each non-empty component.
func KeyComponents(key string) []string {
	var parts []string
	for _, part := range strings.Split(key, "/") {
		if part == "" {
			continue
		}
		parts = append(parts, SanitizeComponent(part))
	}
	return parts
}

// RelativePath returns the file path for key relative to an application directory.
func RelativePath(key string) string {
	parts := KeyComponents(key)
	if len(parts) == 0 {
		return DefaultFileName
	}
	parts[len(parts)-1] += FileExtension
	return filepath.Join(parts...)
}

// KeyFromRelativePath reverses RelativePath for files the store created.
// The second result is false for files that are not preference files.
func KeyFromRelativePath(rel string) (string, bool) {
	rel = filepath.ToSlash(rel)
	if rel == DefaultFileName {
		return "", true
	}
	if !strings.HasSuffix(rel, FileExtension) {
		return "", false
	}
	key := strings.TrimSuffix(rel, FileExtension)
	if key == "" || strings.HasSuffix(key, "/") {
		return "", false
	}
	return key, true
}
