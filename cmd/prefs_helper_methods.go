package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/PolarWolf314/sealpref/internal/aead"
	"github.com/PolarWolf314/sealpref/internal/configs"
	kerrors "github.com/PolarWolf314/sealpref/internal/errors"
	"github.com/PolarWolf314/sealpref/internal/preferences"
	"github.com/PolarWolf314/sealpref/internal/ui"
	"github.com/PolarWolf314/sealpref/internal/utils"

	"github.com/briandowns/spinner"
)

// ReportedError is returned by commands whose failure has already been
// printed. main exits non-zero without printing it again.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }
func (e *ReportedError) Unwrap() error { return e.Err }

// startSpinner creates and starts a spinner with the given message.
// Returns the spinner and a cleanup function that must be deferred.
//
// spinner.FinalMSG values do not need trailing newlines; cleanup adds one
// before printing.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	return startSpinnerWithFlags(message, verbose, debug)
}

func startSpinnerWithFlags(message string, verbose, debugFlag bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debugFlag
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// resolvePassphrase finds the passphrase in order: SEALPREF_PASSPHRASE,
// stdin when --passphrase-stdin is set, then an interactive prompt.
// stdinBusy means stdin carries other input, so prompting goes through the TTY.
func resolvePassphrase(stdinBusy bool) ([]byte, error) {
	if env := os.Getenv(configs.PassphraseEnv); env != "" {
		Logger.Debugf("Using passphrase from %s", configs.PassphraseEnv)
		return []byte(env), nil
	}

	if passphraseStdin {
		if stdinBusy {
			return nil, fmt.Errorf("--passphrase-stdin cannot be combined with input on stdin")
		}
		Logger.Debugf("Reading passphrase from stdin")
		return utils.ReadPassphraseStdin()
	}

	if stdinBusy {
		if utils.IsTTYAvailable() {
			return utils.ReadPassphraseFromTTY("Passphrase: ")
		}
	} else if utils.IsTerminal() {
		return utils.ReadPassphrase("Passphrase: ")
	}

	return nil, kerrors.ErrNoPassphrase
}

// parseCipherFlag maps the --cipher flag to an id. Empty means "use the config".
func parseCipherFlag(name string) (aead.ID, error) {
	if strings.TrimSpace(name) == "" {
		return aead.Unspecified, nil
	}
	return aead.ParseID(name)
}

func supportedCiphers() string {
	names := make([]string, 0, len(aead.Supported()))
	for _, id := range aead.Supported() {
		names = append(names, id.String())
	}
	return strings.Join(names, ", ")
}

// fail sets the spinner's final message for err, naming subject (a key or
// file), and returns it as a ReportedError.
func fail(s *spinner.Spinner, err error, subject string) error {
	Logger.Errorf("%v", err)
	s.FinalMSG = failureMessage(err, subject)
	return &ReportedError{Err: err}
}

// report prints the message for err when no spinner is running.
func report(err error, subject string) error {
	Logger.Errorf("%v", err)
	fmt.Println(failureMessage(err, subject))
	return &ReportedError{Err: err}
}

// failureMessage translates workflow errors into user-facing text.
func failureMessage(err error, subject string) string {
	cross := ui.Error.Sprint("✗")
	arrow := ui.Info.Sprint("→")

	switch {
	case errors.Is(err, kerrors.ErrAuthenticationFailed):
		return cross + " Could not decrypt " + ui.Key.Sprint(subject) + "\n" +
			arrow + " The passphrase is wrong or the file has been modified"
	case errors.Is(err, kerrors.ErrMalformedContainer):
		return cross + " Not a valid sealed preferences file\n" +
			ui.Error.Sprint("Error: ") + err.Error()
	case preferences.IsNotFound(err):
		return cross + " No preferences stored under " + ui.Key.Sprint(subject) + "\n" +
			arrow + " Run " + ui.Code.Sprint("sealpref prefs list") + " to see stored keys"
	case errors.Is(err, kerrors.ErrValueNotFound):
		return cross + " " + err.Error()
	case errors.Is(err, kerrors.ErrNoPassphrase):
		return cross + " No passphrase provided\n" +
			arrow + " Set " + ui.Code.Sprint(configs.PassphraseEnv) + " or pipe it with " + ui.Flag.Sprint("--passphrase-stdin")
	case errors.Is(err, kerrors.ErrUnsupportedCipher):
		return cross + " " + err.Error() + "\n" +
			arrow + " Supported ciphers: " + supportedCiphers()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return cross + " Cancelled"
	default:
		return cross + " " + err.Error()
	}
}

func displayKey(key string) string {
	if key == "" {
		return "(root)"
	}
	return key
}
