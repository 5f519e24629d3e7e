package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/sealpref/internal/ui"
	"github.com/PolarWolf314/sealpref/internal/utils"
	"github.com/PolarWolf314/sealpref/internal/workflows"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var (
	sealIn     string
	sealOut    string
	sealCipher string

	// SealCmd encrypts arbitrary text into a standalone container.
	SealCmd = &cobra.Command{
		Use:   "seal",
		Short: "Encrypt data into a standalone sealed file",
		Long: `Encrypts the input into a self-describing container. Input is read from
--in or stdin; the container is written to --out or stdout.

Examples:
  sealpref seal --in settings.json --out settings.sealed
  cat settings.json | SEALPREF_PASSPHRASE=... sealpref seal > settings.sealed`,
		Args:             cobra.NoArgs,
		PersistentPreRun: initLogger,
		RunE:             runSeal,
	}

	// UnsealCmd decrypts a standalone container.
	UnsealCmd = &cobra.Command{
		Use:   "unseal",
		Short: "Decrypt a standalone sealed file",
		Long: `Decrypts a container produced by seal or stored by prefs. Input is read
from --in or stdin; the plaintext is written to --out or stdout.

Example:
  sealpref unseal --in settings.sealed --out settings.json`,
		Args:             cobra.NoArgs,
		PersistentPreRun: initLogger,
		RunE:             runUnseal,
	}
)

func init() {
	addCommonFlags(SealCmd)
	SealCmd.Flags().StringVarP(&sealIn, "in", "i", "", "file to encrypt (defaults to stdin)")
	SealCmd.Flags().StringVarP(&sealOut, "out", "o", "", "file to write (defaults to stdout)")
	SealCmd.Flags().StringVar(&sealCipher, "cipher", "", "cipher to use (defaults to the configured cipher)")

	addCommonFlags(UnsealCmd)
	UnsealCmd.Flags().StringVarP(&sealIn, "in", "i", "", "file to decrypt (defaults to stdin)")
	UnsealCmd.Flags().StringVarP(&sealOut, "out", "o", "", "file to write (defaults to stdout)")
}

// resetSealState resets the seal and unseal commands' global state for testing.
func resetSealState() {
	sealIn = ""
	sealOut = ""
	sealCipher = ""
}

func runSeal(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting seal command")
	cipher, err := parseCipherFlag(sealCipher)
	if err != nil {
		return err
	}

	passphrase, input, err := readSealInput()
	if err != nil {
		return sealFail(nil, err)
	}

	s, cleanup := startSpinner("Encrypting...", verbose)
	defer cleanup()

	result, err := workflows.Seal(cmd.Context(), workflows.SealOptions{
		Plaintext:  input,
		Cipher:     cipher,
		Passphrase: passphrase,
	})
	if err != nil {
		return sealFail(s, err)
	}
	Logger.Infof("Sealed %d bytes into %d bytes with %s", len(input), len(result.Container), result.Cipher)

	if err := writeSealOutput(result.Container); err != nil {
		return sealFail(s, err)
	}
	if sealOut != "" {
		s.FinalMSG = ui.Success.Sprint("✓") + " Sealed into " + ui.Path.Sprint(sealOut) +
			" with " + ui.Highlight.Sprint(result.Cipher)
	}
	return nil
}

func runUnseal(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting unseal command")
	passphrase, input, err := readSealInput()
	if err != nil {
		return sealFail(nil, err)
	}

	s, cleanup := startSpinner("Decrypting...", verbose)
	defer cleanup()

	result, err := workflows.Unseal(cmd.Context(), workflows.UnsealOptions{
		Container:  input,
		Passphrase: passphrase,
	})
	if err != nil {
		return sealFail(s, err)
	}
	Logger.Infof("Unsealed %d bytes encrypted with %s", len(result.Plaintext), result.Header.Cipher)

	if err := writeSealOutput(result.Plaintext); err != nil {
		return sealFail(s, err)
	}
	if sealOut != "" {
		s.FinalMSG = ui.Success.Sprint("✓") + " Unsealed into " + ui.Path.Sprint(sealOut)
	}
	return nil
}

// readSealInput resolves the passphrase and reads the input, from --in or stdin.
func readSealInput() ([]byte, []byte, error) {
	fromStdin := sealIn == ""

	passphrase, err := resolvePassphrase(fromStdin)
	if err != nil {
		return nil, nil, err
	}

	if fromStdin {
		input, err := utils.ReadStdin()
		if err != nil {
			return nil, nil, err
		}
		return passphrase, input, nil
	}

	Logger.Debugf("Reading input from %s", sealIn)
	input, err := os.ReadFile(sealIn)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", sealIn, err)
	}
	return passphrase, input, nil
}

func writeSealOutput(data []byte) error {
	if sealOut == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	Logger.Debugf("Writing output to %s", sealOut)
	if err := os.WriteFile(sealOut, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", sealOut, err)
	}
	return nil
}

// sealFail reports err. When the output goes to stdout nothing else may be
// printed there, so the error is returned for main to print on stderr.
func sealFail(s *spinner.Spinner, err error) error {
	if sealOut == "" {
		return err
	}
	subject := sealIn
	if subject == "" {
		subject = "stdin"
	}
	if s == nil {
		return report(err, subject)
	}
	return fail(s, err, subject)
}
