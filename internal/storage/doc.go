// Package storage maps logical preference keys to files in a
// platform-appropriate, per-user data directory.
//
// # Locations
//
// The data root is chosen per platform:
//
//   - Linux and BSDs: $XDG_DATA_HOME, falling back to ~/.local/share
//   - macOS: ~/Library/Application Support
//   - Windows: %APPDATA%
//
// Inside the root, applications get root/<name> (root\<author>\<name> on
// Windows).
//
// # Keys
//
// Keys use forward slashes as separators on every platform, for example
// "options/graphics" or "saves/quicksave". Each component keeps ASCII letters,
// digits, spaces, hyphens, underscores and periods; anything else becomes an
// underscore. The last component gets the ".prefs.sealed" extension, and the
// empty key maps to "prefs.sealed" in the application directory.
//
// # Files
//
// FileStore writes through a temporary file that is renamed into place on
// Close, so a crash never leaves a half-written container behind. Files are
// created 0600 and directories 0700. The store only moves bytes; it never
// looks inside them.
package storage
