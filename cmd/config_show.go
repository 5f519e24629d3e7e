package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PolarWolf314/sealpref/internal/configs"
	"github.com/PolarWolf314/sealpref/internal/ui"

	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	ConfigCmd.AddCommand(configShowCmd)
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration as commands see it: the config file, then any
SEALPREF_* environment overrides, then defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")
		path := configs.ConfigPath()

		config, err := configs.LoadConfigFrom(path)
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load config: %v", err)
		}

		store, err := config.Store()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to resolve data directory: %v", err)
		}

		if configShowJSON {
			output, err := json.MarshalIndent(struct {
				*configs.Config
				Path    string `json:"path"`
				DataDir string `json:"resolved_data_dir"`
			}{config, path, store.Dir}, "", "  ")
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		source := path
		if _, err := os.Stat(path); err != nil {
			source += " " + ui.Muted.Sprint("not found, using defaults")
		}
		fmt.Println(ui.Info.Sprint("Configuration") + " " + ui.Path.Sprint(source) + ":")
		fmt.Print(formatConfig(config))
		fmt.Print(ui.Field("Files in", 11, ui.Path.Sprint(store.Dir)))
		return nil
	},
}

// formatConfig renders config as indented fields.
func formatConfig(config *configs.Config) string {
	dataDir := config.Storage.DataDir
	if dataDir == "" {
		dataDir = ui.Muted.Sprint("platform default")
	}
	return ui.Field("App name", 11, ui.Highlight.Sprint(config.App.Name)) +
		ui.Field("App author", 11, ui.Highlight.Sprint(config.App.Author)) +
		ui.Field("Cipher", 11, ui.Highlight.Sprint(config.Security.Cipher)) +
		ui.Field("Data root", 11, dataDir) +
		ui.Field("Audit log", 11, fmt.Sprint(config.Audit.Enabled))
}
