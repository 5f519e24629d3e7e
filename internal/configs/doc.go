// Package configs manages sealpref's user configuration.
//
// Configuration is stored in TOML format at:
//
//   - <user config dir>/sealpref/config.toml
//
// # User Configuration
//
// The config stores:
//   - Application identity (name, author) used to pick the data directory
//   - The cipher used for new containers
//   - An optional data directory overriding the platform default
//   - Whether operations are recorded in the audit log
//
// Every value can be overridden with an environment variable named
// SEALPREF_<SECTION>_<KEY>, for example SEALPREF_SECURITY_CIPHER or
// SEALPREF_STORAGE_DATA_DIR. Reading goes through viper so the file,
// environment and defaults merge in that order of precedence; writing uses
// the TOML encoder directly so saved files stay minimal and stable.
//
// The passphrase is never part of the configuration.
//
// # Settings
//
// Global settings are initialized at startup:
//   - UserSealprefSettings: paths to the user config directory and data root
package configs
