package utils

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestGetUsername(t *testing.T) {
	username, err := GetUsername()
	if err != nil {
		t.Fatalf("GetUsername failed: %v", err)
	}
	if username == "" {
		t.Fatal("Expected non-empty username")
	}
}

func TestTrimNewline(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"NoNewline", "secret", "secret"},
		{"UnixNewline", "secret\n", "secret"},
		{"WindowsNewline", "secret\r\n", "secret"},
		{"OnlyOneNewlineRemoved", "secret\n\n", "secret\n"},
		{"InnerSpacesKept", " pass phrase \n", " pass phrase "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := trimNewline([]byte(tc.input))
			if !bytes.Equal(result, []byte(tc.expected)) {
				t.Errorf("trimNewline(%q) = %q, expected %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestReadAllRejectsEmpty(t *testing.T) {
	if _, err := readAll(strings.NewReader("")); err == nil {
		t.Fatal("Expected error for empty input, got nil")
	}

	data, err := readAll(strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("readAll failed: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("Expected %q, got %q", "payload", data)
	}
}

func TestFormatKeys(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	result := FormatKeys([]string{"", "options/window"})
	expected := "\n    - '(root)'\n    - 'options/window'\n"
	if result != expected {
		t.Errorf("FormatKeys() = %q, expected %q", result, expected)
	}
}

func TestFormatPaths(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	result := FormatPaths([]string{"/tmp/a.prefs.sealed"})
	expected := "\n    - /tmp/a.prefs.sealed\n"
	if result != expected {
		t.Errorf("FormatPaths() = %q, expected %q", result, expected)
	}
}
