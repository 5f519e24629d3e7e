package cmd

import (
	"fmt"

	"github.com/PolarWolf314/sealpref/internal/workflows"

	"github.com/spf13/cobra"
)

func init() {
	PrefsCmd.AddCommand(prefsGetCmd)
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <key> <name>",
	Short: "Print one stored value",
	Long: `Prints a single value to stdout with no decoration, for use in scripts.

Example:
  width=$(sealpref prefs get options/window width)`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting get command")
		key, name := args[0], args[1]

		passphrase, err := resolvePassphrase(false)
		if err != nil {
			return report(err, displayKey(key))
		}

		spinner, cleanup := startSpinner("Decrypting preferences...", verbose)
		result, err := workflows.Get(cmd.Context(), workflows.GetOptions{
			Key:        key,
			Name:       name,
			Passphrase: passphrase,
		})
		if err != nil {
			err = fail(spinner, err, displayKey(key))
			cleanup()
			return err
		}
		cleanup()

		fmt.Println(result.Value)
		return nil
	},
}
