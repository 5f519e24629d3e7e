package cmd

import (
	logger "github.com/PolarWolf314/sealpref/internal/logging"
	"github.com/spf13/cobra"
)

var (
	configVerbose bool
	configDebug   bool
	ConfigLogger  logger.Logger

	// ConfigCmd is the top-level config command.
	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage sealpref configuration",
		Long: `Provides commands for managing the user configuration in
~/.config/sealpref/config.toml (or the platform equivalent).

Every setting can be overridden with a SEALPREF_* environment variable:
SEALPREF_APP_NAME, SEALPREF_APP_AUTHOR, SEALPREF_SECURITY_CIPHER,
SEALPREF_STORAGE_DATA_DIR and SEALPREF_AUDIT_ENABLED.

Examples:
  # Write a config for your application
  sealpref config init --app-name "Awesome App" --app-author "Dedicated Dev"

  # Show the effective configuration
  sealpref config show`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ConfigLogger = logger.Logger{
				Verbose: configVerbose,
				Debug:   configDebug,
			}
			ConfigLogger.Debugf("Initializing config command with verbose=%t, debug=%t", configVerbose, configDebug)
		},
	}
)

func init() {
	ConfigCmd.PersistentFlags().BoolVarP(&configVerbose, "verbose", "v", false, "enable verbose output")
	ConfigCmd.PersistentFlags().BoolVarP(&configDebug, "debug", "d", false, "enable debug output")
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}

// ResetConfigState resets all config command global variables to their default values for testing.
func ResetConfigState() {
	configVerbose = false
	configDebug = false
	resetConfigInitState()
	resetConfigShowState()
	resetCobraFlagState(ConfigCmd)
}
