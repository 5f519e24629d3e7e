package cmd

import (
	logger "github.com/PolarWolf314/sealpref/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose         bool
	debug           bool
	passphraseStdin bool
	Logger          logger.Logger

	PrefsCmd = &cobra.Command{
		Use:   "prefs",
		Short: "Manage encrypted application preferences",
		Long: `Stores named values under logical keys such as "options/window". Each key is
kept in its own encrypted file in the application's data directory.

The passphrase is taken from SEALPREF_PASSPHRASE, from stdin with
--passphrase-stdin, or prompted for on the terminal.

Examples:
  sealpref prefs set options/window width=800 height=600
  sealpref prefs get options/window width
  sealpref prefs list 'options/**'`,
		PersistentPreRun: initLogger,
	}
)

func init() {
	addCommonFlags(PrefsCmd)
}

// addCommonFlags registers the flags shared by every command that needs a passphrase.
func addCommonFlags(c *cobra.Command) {
	c.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	c.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	c.PersistentFlags().BoolVar(&passphraseStdin, "passphrase-stdin", false, "read the passphrase from stdin")
}

func initLogger(cmd *cobra.Command, args []string) {
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}
	Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
}

// Helper functions for testing

// GetPrefsCmd returns the PrefsCmd for testing.
func GetPrefsCmd() *cobra.Command {
	return PrefsCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	passphraseStdin = false
	resetPrefsSetState()
	resetPrefsShowState()
	resetPrefsInspectState()
	resetSealState()
	resetLogState()
	for _, c := range []*cobra.Command{PrefsCmd, SealCmd, UnsealCmd, LogCmd} {
		resetCobraFlagState(c)
	}
}

// resetCobraFlagState clears the Changed bit on c and its subcommands to prevent test pollution.
func resetCobraFlagState(c *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}
