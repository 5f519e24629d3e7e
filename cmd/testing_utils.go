// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for isolating configuration,
// capturing output and building a CLI instance.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/sealpref/internal/configs"
	"github.com/spf13/cobra"
)

// setupTestEnvironment points the user settings and data root at temporary
// directories and sets the passphrase environment variable.
func setupTestEnvironment(t *testing.T, passphrase string) (configDir, dataDir string) {
	t.Helper()
	configDir = t.TempDir()
	dataDir = t.TempDir()

	originalUserSettings := configs.UserSealprefSettings
	t.Cleanup(func() {
		configs.UserSealprefSettings = originalUserSettings
		ResetGlobalState()
		ResetConfigState()
	})

	configs.UserSealprefSettings = &configs.UserSettings{
		UserConfigsPath: configDir,
		DataRoot:        dataDir,
		Username:        "testuser",
	}

	// Never let a test block on a passphrase prompt.
	devNull, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", os.DevNull, err)
	}
	originalStdin := os.Stdin
	os.Stdin = devNull
	t.Cleanup(func() {
		os.Stdin = originalStdin
		devNull.Close()
	})

	t.Setenv("NO_COLOR", "1")
	t.Setenv(configs.PassphraseEnv, passphrase)
	for _, name := range []string{"APP_NAME", "APP_AUTHOR", "SECURITY_CIPHER", "STORAGE_DATA_DIR", "AUDIT_ENABLED"} {
		t.Setenv(configs.EnvPrefix+"_"+name, "")
		os.Unsetenv(configs.EnvPrefix + "_" + name)
	}

	return configDir, dataDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)
	collect := func(r io.Reader) {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, r); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}
	go collect(stdoutReader)
	go collect(stderrReader)

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// createTestCLI creates a complete CLI instance running args.
func createTestCLI(args ...string) *cobra.Command {
	ResetGlobalState()
	ResetConfigState()

	rootCmd := &cobra.Command{
		Use:           "sealpref",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(PrefsCmd, SealCmd, UnsealCmd, LogCmd, ConfigCmd)
	rootCmd.SetArgs(args)
	return rootCmd
}

// runCLI runs args and returns the combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureOutput(func() error {
		return createTestCLI(args...).Execute()
	})
}

// configPath returns the config file inside the test config directory.
func configPath(configDir string) string {
	return filepath.Join(configDir, "config.toml")
}
