package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true)
)

// FormatRuntimeWithMarker formats a runtime and marks the fastest cell of an
// input size with an indicator.
func FormatRuntimeWithMarker(runtime, fastest time.Duration) string {
	formatted := runtime.Round(time.Microsecond).String()

	if fastest <= 0 {
		return formatted
	}

	if runtime <= fastest {
		return formatted + " ▲"
	}

	return formatted
}

// FormatBytes formats a byte count using binary units.
func FormatBytes(n uint64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
	)

	switch {
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(mb))
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(kb))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
