// Package audit records what happened to stored preferences.
//
// Every save, load and delete is appended to an audit log in the
// application's data directory. The log never contains plaintext values or
// passphrases, only which key was touched, how, and with which cipher.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	<app dir>/audit.jsonl
//
// Each entry contains:
//   - A random entry id (UUID v4)
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Local username
//   - Operation name and key
//   - Operation-specific details (cipher, container size, key count)
//
// # Usage
//
//	entry := audit.NewEntry("save")
//	entry.Key = "options/graphics"
//	audit.Log(appDir, entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package audit
