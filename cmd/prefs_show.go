package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/sealpref/internal/ui"
	"github.com/PolarWolf314/sealpref/internal/workflows"

	"github.com/spf13/cobra"
)

var prefsShowJSON bool

func init() {
	prefsShowCmd.Flags().BoolVar(&prefsShowJSON, "json", false, "output in JSON format")
	PrefsCmd.AddCommand(prefsShowCmd)
}

// resetPrefsShowState resets the show command's global state for testing.
func resetPrefsShowState() {
	prefsShowJSON = false
}

var prefsShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Print every value stored under a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting show command")
		key := args[0]

		passphrase, err := resolvePassphrase(false)
		if err != nil {
			return report(err, displayKey(key))
		}

		spinner, cleanup := startSpinner("Decrypting preferences...", verbose)
		result, err := workflows.Show(cmd.Context(), workflows.ShowOptions{Key: key, Passphrase: passphrase})
		if err != nil {
			err = fail(spinner, err, displayKey(key))
			cleanup()
			return err
		}
		cleanup()
		Logger.Debugf("Loaded %d values from %s", len(result.Values), result.Path)

		if prefsShowJSON {
			output, err := json.MarshalIndent(result.Values, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal values to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		fmt.Println(ui.Key.Sprint(displayKey(result.Key)) + " " + ui.Muted.Sprintf("%d values", len(result.Values)))
		fmt.Print(ui.Values(result.Values))
		return nil
	},
}
