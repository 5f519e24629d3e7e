package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/PolarWolf314/sealpref/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sealpref",
	Short: "sealpref - encrypted local storage for application preferences.",
	Long: `sealpref stores application preferences in passphrase-encrypted files in the
platform's per-user data directory.

Each file is a self-describing container: it records the cipher, salt and
nonce it was written with, so only the passphrase is needed to read it back.

Usage:
  sealpref <command> [flags]

Available Commands:
  prefs      Store, read and list preferences
  seal       Encrypt data into a standalone sealed file
  unseal     Decrypt a standalone sealed file
  log        View the audit log
  config     Manage configuration

Run 'sealpref help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to sealpref! Run 'sealpref --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.PrefsCmd)
	rootCmd.AddCommand(cmd.SealCmd)
	rootCmd.AddCommand(cmd.UnsealCmd)
	rootCmd.AddCommand(cmd.LogCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var reported *cmd.ReportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
