// Package ui provides semantic text formatting for CLI output.
//
// Formatters colorize content when the terminal supports it. When NO_COLOR
// is set or the terminal doesn't support colors, text decorations
// (backticks, quotes) are used instead.
//
// # Semantic Formatters
//
//	ui.Code.Sprint("sealpref prefs show")        // Commands and code
//	ui.Path.Sprint("~/.config/sealpref")         // File paths
//	ui.Key.Sprint("options/window")              // Preference keys
//	ui.Success.Sprint("✓")                        // Success indicators
//	ui.Error.Sprint("✗")                          // Error indicators
//	ui.Warning.Sprint("⚠")                        // Warnings
//	ui.Info.Sprint("→")                           // Informational hints
//	ui.Highlight.Sprint("chacha20-poly1305")     // User values
//	ui.Muted.Sprint("empty")                     // De-emphasized text
//
// Field and Values lay out labelled output for the show and inspect commands.
package ui
