package cmd

import (
	"strings"

	"github.com/PolarWolf314/sealpref/internal/ui"
	"github.com/PolarWolf314/sealpref/internal/workflows"

	"github.com/spf13/cobra"
)

func init() {
	PrefsCmd.AddCommand(prefsDeleteCmd)
}

var prefsDeleteCmd = &cobra.Command{
	Use:   "delete <key> [name...]",
	Short: "Delete a key, or some values stored under it",
	Long: `Without names, removes the key's file; no passphrase is needed. With names,
removes those values and rewrites the file.

Examples:
  sealpref prefs delete options/window
  sealpref prefs delete options/window maximized`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting delete command")
		key, names := args[0], args[1:]

		var passphrase []byte
		if len(names) > 0 {
			var err error
			if passphrase, err = resolvePassphrase(false); err != nil {
				return report(err, displayKey(key))
			}
		}

		spinner, cleanup := startSpinner("Deleting preferences...", verbose)
		defer cleanup()

		result, err := workflows.Delete(cmd.Context(), workflows.DeleteOptions{
			Key:        key,
			Names:      names,
			Passphrase: passphrase,
		})
		if err != nil {
			return fail(spinner, err, displayKey(key))
		}

		if result.FileRemoved {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Deleted " + ui.Key.Sprint(displayKey(key))
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed " + ui.Highlight.Sprint(strings.Join(result.Removed, ", ")) +
			" from " + ui.Key.Sprint(displayKey(key))
		return nil
	},
}
