package cmd

import (
	"fmt"

	"github.com/PolarWolf314/sealpref/internal/ui"
	"github.com/PolarWolf314/sealpref/internal/utils"
	"github.com/PolarWolf314/sealpref/internal/workflows"

	"github.com/spf13/cobra"
)

func init() {
	PrefsCmd.AddCommand(prefsListCmd)
}

var prefsListCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "List stored keys",
	Long: `Lists stored keys, optionally filtered by a glob pattern. '*' matches within
one key component and '**' across components.

Examples:
  sealpref prefs list
  sealpref prefs list 'options/**'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")
		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}

		result, err := workflows.List(cmd.Context(), workflows.ListOptions{Pattern: pattern})
		if err != nil {
			return report(err, displayKey(""))
		}
		Logger.Debugf("Listed %s", result.Dir)

		if len(result.Keys) == 0 {
			fmt.Println(ui.Warning.Sprint("⚠") + " No preferences found in " + ui.Path.Sprint(result.Dir))
			return nil
		}
		fmt.Print(ui.Success.Sprint("✓") + fmt.Sprintf(" %d keys in ", len(result.Keys)) + ui.Path.Sprint(result.Dir) + ":")
		fmt.Print(utils.FormatKeys(result.Keys))
		return nil
	},
}
