package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func captureLogs(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	origOut, origErr, origNoColor := stdout, stderr, color.NoColor
	stdout, stderr, color.NoColor = &out, &errOut, true
	t.Cleanup(func() {
		stdout, stderr, color.NoColor = origOut, origErr, origNoColor
	})
	return &out, &errOut
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name        string
		logger      Logger
		wantInfo    bool
		wantDebug   bool
		wantWarn    bool
		wantErrorLn bool
	}{
		{"Quiet", Logger{}, false, false, false, false},
		{"Verbose", Logger{Verbose: true}, true, false, true, false},
		{"Debug", Logger{Debug: true}, true, true, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, errOut := captureLogs(t)

			tc.logger.Infof("info %d", 1)
			tc.logger.Debugf("debug %d", 2)
			tc.logger.Warnf("warn %d", 3)
			tc.logger.Errorf("error %d", 4)

			if got := strings.Contains(out.String(), "[info] info 1"); got != tc.wantInfo {
				t.Errorf("info shown = %t, want %t", got, tc.wantInfo)
			}
			if got := strings.Contains(out.String(), "[debug] debug 2"); got != tc.wantDebug {
				t.Errorf("debug shown = %t, want %t", got, tc.wantDebug)
			}
			if got := strings.Contains(errOut.String(), "[warn] warn 3"); got != tc.wantWarn {
				t.Errorf("warn shown = %t, want %t", got, tc.wantWarn)
			}
			if got := strings.Contains(errOut.String(), "[error] error 4"); got != tc.wantErrorLn {
				t.Errorf("error shown = %t, want %t", got, tc.wantErrorLn)
			}
		})
	}
}

func TestWarnfAlways(t *testing.T) {
	_, errOut := captureLogs(t)

	Logger{}.WarnfAlways("config file %s is world readable", "config.toml")

	if !strings.Contains(errOut.String(), "[warn] config file config.toml is world readable") {
		t.Errorf("Expected critical warning, got %q", errOut.String())
	}
}

func TestErrorfAndReturn(t *testing.T) {
	_, errOut := captureLogs(t)

	err := Logger{}.ErrorfAndReturn("failed to open %s", "store")
	if err == nil || err.Error() != "failed to open store" {
		t.Errorf("Expected returned error, got %v", err)
	}
	if errOut.Len() != 0 {
		t.Errorf("Expected no output without --debug, got %q", errOut.String())
	}
}
