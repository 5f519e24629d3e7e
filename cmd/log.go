package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/sealpref/internal/audit"
	"github.com/PolarWolf314/sealpref/internal/ui"
	"github.com/PolarWolf314/sealpref/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logKey       string
	logSince     string
	logJSON      bool

	// LogCmd prints the audit log.
	LogCmd = &cobra.Command{
		Use:   "log",
		Short: "View the audit log",
		Long: `Displays the audit log of the configured application directory: who
saved, loaded, listed, deleted, sealed or unsealed what, and when.

Examples:
  sealpref log                        # View full log
  sealpref log -n 10                  # Last 10 entries
  sealpref log --reverse              # Most recent first
  sealpref log --operation save,load  # Filter by operation
  sealpref log --key options/window   # Filter by key
  sealpref log --since 2026-01-01     # Filter by date
  sealpref log --json                 # JSON output`,
		Args:             cobra.NoArgs,
		PersistentPreRun: initLogger,
		RunE:             runLog,
	}
)

func init() {
	LogCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	LogCmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	LogCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	LogCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	LogCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation (comma-separated)")
	LogCmd.Flags().StringVar(&logKey, "key", "", "filter by preferences key")
	LogCmd.Flags().StringVar(&logSince, "since", "", "show entries on or after date (YYYY-MM-DD)")
	LogCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogState resets the log command's global state for testing.
func resetLogState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logKey = ""
	logSince = ""
	logJSON = false
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	result, err := workflows.Log(cmd.Context(), workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
		Key:        logKey,
		Since:      logSince,
	})
	if err != nil {
		return report(err, "audit log")
	}
	Logger.Debugf("Read %d entries from %s, %d after filtering", result.Total, result.Path, len(result.Entries))

	if logJSON {
		entries := result.Entries
		if entries == nil {
			entries = []audit.Entry{}
		}
		output, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to marshal entries to JSON: %v", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if len(result.Entries) == 0 {
		if result.Total == 0 {
			fmt.Println(ui.Info.Sprint("ℹ") + " No audit log entries in " + ui.Path.Sprint(result.Path))
		} else {
			fmt.Println(ui.Info.Sprint("ℹ") + " No audit log entries match the filters")
		}
		return nil
	}

	for _, e := range result.Entries {
		fmt.Printf("%-19s  %-16s  %-7s  %s\n", workflows.FormatDateTime(e.Timestamp), e.User, e.Operation, workflows.FormatDetails(e))
	}
	return nil
}
