package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/PolarWolf314/sealpref/internal/aead"
	"github.com/PolarWolf314/sealpref/internal/storage"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SEALPREF"

// PassphraseEnv holds the passphrase for non-interactive use. It is read by
// the CLI directly and never stored in the config.
const PassphraseEnv = EnvPrefix + "_PASSPHRASE"

type Config struct {
	App      storage.AppInfo `toml:"app" mapstructure:"app" json:"app"`
	Security SecurityConfig  `toml:"security" mapstructure:"security" json:"security"`
	Storage  StorageConfig   `toml:"storage" mapstructure:"storage" json:"storage"`
	Audit    AuditConfig     `toml:"audit" mapstructure:"audit" json:"audit"`
}

type SecurityConfig struct {
	Cipher string `toml:"cipher" mapstructure:"cipher" json:"cipher"`
}

type StorageConfig struct {
	DataDir string `toml:"data_dir,omitempty" mapstructure:"data_dir" json:"data_dir,omitempty"`
}

type AuditConfig struct {
	Enabled bool `toml:"enabled" mapstructure:"enabled" json:"enabled"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		App: storage.AppInfo{
			Name:   "sealpref",
			Author: "sealpref",
		},
		Security: SecurityConfig{Cipher: aead.Default.String()},
		Audit:    AuditConfig{Enabled: true},
	}
}

// ConfigPath returns the path of the user config file.
func ConfigPath() string {
	return filepath.Join(UserSealprefSettings.UserConfigsPath, "config.toml")
}

// LoadConfig loads the user config, applying environment overrides.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(ConfigPath())
}

// LoadConfigFrom loads the config at path. A missing file yields the defaults
// plus any environment overrides.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("app.name", d.App.Name)
	v.SetDefault("app.author", d.App.Author)
	v.SetDefault("security.cipher", d.Security.Cipher)
	v.SetDefault("storage.data_dir", d.Storage.DataDir)
	v.SetDefault("audit.enabled", d.Audit.Enabled)
}

// SaveConfig saves the user config to the config file.
func SaveConfig(config *Config) error {
	return SaveConfigTo(ConfigPath(), config)
}

// SaveConfigTo saves config to path.
func SaveConfigTo(path string, config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Validate checks that the config can be used to build a store and manager.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.CipherID(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Storage.DataDir != "" && !filepath.IsAbs(c.Storage.DataDir) {
		return fmt.Errorf("invalid config: data_dir must be absolute, got %q", c.Storage.DataDir)
	}
	return nil
}

// CipherID returns the configured cipher for new containers.
func (c *Config) CipherID() (aead.ID, error) {
	return aead.ParseID(c.Security.Cipher)
}

// DataRoot returns the configured data root, or the platform default.
func (c *Config) DataRoot() string {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir
	}
	return UserSealprefSettings.DataRoot
}

// Store opens the file store for the configured application.
func (c *Config) Store() (*storage.FileStore, error) {
	return storage.NewFileStore(c.DataRoot(), c.App)
}

// AuditDir returns where audit entries go, or "" when auditing is off.
func (c *Config) AuditDir(store *storage.FileStore) string {
	if !c.Audit.Enabled {
		return ""
	}
	return store.Dir
}
