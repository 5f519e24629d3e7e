// Package utils provides shared utility functions for the sealpref CLI.
//
// # System Utilities
//
//   - GetUsername: returns the current system username, recorded in audit entries
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
//   - FormatKeys: formats preference keys for human-readable output
//
// # I/O Utilities
//
//   - ReadStdin: reads all data from standard input
//   - ReadPassphraseStdin: reads a passphrase piped on standard input
//
// # Terminal Utilities
//
//   - ReadPassphrase: prompts for a passphrase without echo
//   - ReadPassphraseFromTTY: prompts on the controlling terminal when stdin is busy
//   - IsTerminal, IsTTYAvailable: terminal detection
package utils
