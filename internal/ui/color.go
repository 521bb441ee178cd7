// Package ui provides terminal output helpers for snipconv.
package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Color function types for styled output.
var (
	// Success is used for written snippets (green).
	Success = color.New(color.FgGreen).SprintFunc()
	// Error is used for errors and failures (red).
	Error = color.New(color.FgRed).SprintFunc()
	// Warning is used for replaced entries and dry runs (yellow).
	Warning = color.New(color.FgYellow).SprintFunc()
	// Info is used for paths and keys (cyan).
	Info = color.New(color.FgCyan).SprintFunc()
	// Bold is used for emphasis.
	Bold = color.New(color.Bold).SprintFunc()
	// Dim is used for secondary information (faint).
	Dim = color.New(color.Faint).SprintFunc()
)

// Status symbols.
const (
	SymbolAdded    = "+"
	SymbolReplaced = "~"
	SymbolSuccess  = "✓"
	SymbolError    = "✗"
	SymbolWarning  = "⚠"
)

// Color modes accepted by Configure.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Configure applies a color mode. auto leaves the terminal detection of
// fatih/color (NO_COLOR, non-tty output) in place.
func Configure(mode string) error {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ColorAuto:
		return nil
	case ColorAlways:
		EnableColors()
	case ColorNever:
		DisableColors()
	default:
		return fmt.Errorf("invalid color mode %q (valid: auto, always, never)", mode)
	}
	return nil
}

func status(sym string, paint func(a ...any) string, msg string) string {
	if msg == "" {
		return paint(sym)
	}
	return paint(sym) + " " + msg
}

// StatusAdded marks a newly written entry.
func StatusAdded(msg string) string {
	return status(SymbolAdded, Success, msg)
}

// StatusReplaced marks an overwritten entry.
func StatusReplaced(msg string) string {
	return status(SymbolReplaced, Warning, msg)
}

// StatusSuccess returns a green checkmark with optional message.
func StatusSuccess(msg string) string {
	return status(SymbolSuccess, Success, msg)
}

// StatusError returns a red X with optional message.
func StatusError(msg string) string {
	return status(SymbolError, Error, msg)
}

// StatusWarning returns a yellow warning with optional message.
func StatusWarning(msg string) string {
	return status(SymbolWarning, Warning, msg)
}

// DisableColors disables all color output.
func DisableColors() {
	color.NoColor = true
}

// EnableColors enables color output.
func EnableColors() {
	color.NoColor = false
}

// IsColorEnabled returns whether colors are currently enabled.
func IsColorEnabled() bool {
	return !color.NoColor
}
