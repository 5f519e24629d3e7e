package cmd

import (
	"fmt"

	"github.com/PolarWolf314/sealpref/internal/ui"
	"github.com/PolarWolf314/sealpref/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	prefsSetReplace bool
	prefsSetCipher  string
)

func init() {
	prefsSetCmd.Flags().BoolVar(&prefsSetReplace, "replace", false, "discard values already stored under the key")
	prefsSetCmd.Flags().StringVar(&prefsSetCipher, "cipher", "", "cipher for the rewritten file (defaults to the configured cipher)")
	PrefsCmd.AddCommand(prefsSetCmd)
}

// resetPrefsSetState resets the set command's global state for testing.
func resetPrefsSetState() {
	prefsSetReplace = false
	prefsSetCipher = ""
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <name=value>...",
	Short: "Store values under a key",
	Long: `Merges name=value pairs into the preferences stored under a key. Existing
values with other names are kept unless --replace is given.

Examples:
  sealpref prefs set options/window width=800 height=600
  sealpref prefs set --replace --cipher aes-256-gcm options/audio volume=11`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting set command")
		key := args[0]

		values, err := workflows.ParseAssignments(args[1:])
		if err != nil {
			return err
		}
		cipher, err := parseCipherFlag(prefsSetCipher)
		if err != nil {
			return err
		}

		passphrase, err := resolvePassphrase(false)
		if err != nil {
			return report(err, displayKey(key))
		}

		spinner, cleanup := startSpinner("Encrypting preferences...", verbose)
		defer cleanup()

		Logger.Debugf("Setting %d values under %q (replace=%t)", len(values), key, prefsSetReplace)
		result, err := workflows.Set(cmd.Context(), workflows.SetOptions{
			Key:        key,
			Values:     values,
			Replace:    prefsSetReplace,
			Cipher:     cipher,
			Passphrase: passphrase,
		})
		if err != nil {
			return fail(spinner, err, displayKey(key))
		}
		Logger.Infof("Wrote %s with %s", result.Path, result.Cipher)

		verb := "Updated"
		if result.Created {
			verb = "Created"
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" %s ", verb) + ui.Key.Sprint(displayKey(result.Key)) +
			fmt.Sprintf(" (%d values, %s)\n", result.Count, ui.Highlight.Sprint(result.Cipher)) +
			"    " + ui.Path.Sprint(result.Path)
		return nil
	},
}
