package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/PolarWolf314/sealpref/internal/configs"
	"github.com/PolarWolf314/sealpref/internal/ui"

	"github.com/spf13/cobra"
)

var (
	configInitAppName   string
	configInitAppAuthor string
	configInitCipher    string
	configInitDataDir   string
	configInitNoAudit   bool
	configInitForce     bool
)

func init() {
	configInitCmd.Flags().StringVar(&configInitAppName, "app-name", "", "application name, used as the data directory name")
	configInitCmd.Flags().StringVar(&configInitAppAuthor, "app-author", "", "application author (part of the path on Windows)")
	configInitCmd.Flags().StringVar(&configInitCipher, "cipher", "", "cipher for new files: "+supportedCiphers())
	configInitCmd.Flags().StringVar(&configInitDataDir, "data-dir", "", "absolute data root overriding the platform default")
	configInitCmd.Flags().BoolVar(&configInitNoAudit, "no-audit", false, "disable the audit log")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config")
	ConfigCmd.AddCommand(configInitCmd)
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitAppName = ""
	configInitAppAuthor = ""
	configInitCipher = ""
	configInitDataDir = ""
	configInitNoAudit = false
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the user configuration",
	Long: `Writes config.toml with the given settings. Settings not given keep their
defaults. An existing config is only replaced with --force.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config init command")
		path := configs.ConfigPath()

		if _, err := os.Stat(path); err == nil && !configInitForce {
			fmt.Println(ui.Warning.Sprint("⚠") + " Config already exists at " + ui.Path.Sprint(path))
			fmt.Println(ui.Info.Sprint("→") + " Run with " + ui.Flag.Sprint("--force") + " to overwrite it")
			return nil
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return ConfigLogger.ErrorfAndReturn("Failed to check %s: %v", path, err)
		}

		config := configs.DefaultConfig()
		if configInitAppName != "" {
			config.App.Name = configInitAppName
		}
		if configInitAppAuthor != "" {
			config.App.Author = configInitAppAuthor
		}
		if configInitCipher != "" {
			config.Security.Cipher = configInitCipher
		}
		config.Storage.DataDir = configInitDataDir
		config.Audit.Enabled = !configInitNoAudit
		ConfigLogger.Debugf("New config: %+v", *config)

		if err := configs.SaveConfigTo(path, config); err != nil {
			return report(err, path)
		}
		ConfigLogger.Infof("Config written to %s", path)

		fmt.Println(ui.Success.Sprint("✓") + " Config written to " + ui.Path.Sprint(path))
		fmt.Print(formatConfig(config))
		return nil
	},
}
