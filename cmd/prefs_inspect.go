package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/sealpref/internal/ui"
	"github.com/PolarWolf314/sealpref/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	prefsInspectFile string
	prefsInspectJSON bool
)

func init() {
	prefsInspectCmd.Flags().StringVarP(&prefsInspectFile, "file", "f", "", "inspect a sealed file instead of a stored key")
	prefsInspectCmd.Flags().BoolVar(&prefsInspectJSON, "json", false, "output in JSON format")
	PrefsCmd.AddCommand(prefsInspectCmd)
}

// resetPrefsInspectState resets the inspect command's global state for testing.
func resetPrefsInspectState() {
	prefsInspectFile = ""
	prefsInspectJSON = false
}

type inspectOutput struct {
	Key            string `json:"key,omitempty"`
	Path           string `json:"path"`
	Version        uint8  `json:"version"`
	Cipher         string `json:"cipher"`
	SaltSize       int    `json:"salt_size"`
	NonceSize      int    `json:"nonce_size"`
	CiphertextSize int    `json:"ciphertext_size"`
	TagSize        int    `json:"tag_size"`
	TotalSize      int    `json:"total_size"`
	Overhead       int    `json:"overhead"`
}

var prefsInspectCmd = &cobra.Command{
	Use:   "inspect [key]",
	Short: "Describe a sealed file without decrypting it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting inspect command")
		key := ""
		if len(args) == 1 {
			key = args[0]
		}

		result, err := workflows.Inspect(cmd.Context(), workflows.InspectOptions{Key: key, File: prefsInspectFile})
		if err != nil {
			subject := displayKey(key)
			if prefsInspectFile != "" {
				subject = prefsInspectFile
			}
			return report(err, subject)
		}

		h := result.Header
		out := inspectOutput{
			Key:            key,
			Path:           result.Path,
			Version:        h.Version,
			Cipher:         h.Cipher.String(),
			SaltSize:       h.SaltSize,
			NonceSize:      h.NonceSize,
			CiphertextSize: h.CiphertextSize,
			TagSize:        h.TagSize,
			TotalSize:      h.TotalSize,
			Overhead:       h.Overhead,
		}

		if prefsInspectJSON {
			output, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal header to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		fmt.Println(ui.Path.Sprint(out.Path) + ":")
		fmt.Print(ui.Field("Version", 11, fmt.Sprint(out.Version)))
		fmt.Print(ui.Field("Cipher", 11, ui.Highlight.Sprint(out.Cipher)))
		fmt.Print(ui.Field("Salt", 11, fmt.Sprintf("%d bytes", out.SaltSize)))
		fmt.Print(ui.Field("Nonce", 11, fmt.Sprintf("%d bytes", out.NonceSize)))
		fmt.Print(ui.Field("Ciphertext", 11, fmt.Sprintf("%d bytes", out.CiphertextSize)))
		fmt.Print(ui.Field("Tag", 11, fmt.Sprintf("%d bytes", out.TagSize)))
		fmt.Print(ui.Field("Total", 11, fmt.Sprintf("%d bytes", out.TotalSize)))
		fmt.Print(ui.Field("Overhead", 11, fmt.Sprintf("%d bytes", out.Overhead)))
		return nil
	},
}
