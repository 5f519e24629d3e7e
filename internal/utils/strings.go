package utils

import (
	"strings"

	"github.com/PolarWolf314/sealpref/internal/ui"
)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	return formatList(paths, ui.Path)
}

// FormatKeys formats preference keys into a readable string. The empty key
// is shown as "(root)".
func FormatKeys(keys []string) string {
	display := make([]string, len(keys))
	for i, key := range keys {
		if key == "" {
			key = "(root)"
		}
		display[i] = key
	}
	return formatList(display, ui.Highlight)
}

func formatList(items []string, f ui.Formatter) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString("    - ")
		b.WriteString(f.Sprint(item))
		b.WriteString("\n")
	}
	return b.String()
}
