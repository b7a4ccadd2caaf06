package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles for text output
var Styles = struct {
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
}{
	Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Value:   lipgloss.NewStyle().Bold(true),
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),  // Green
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Orange
	Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red
}

// StatusStyle returns a style for an HTTP status class
func StatusStyle(status float64) lipgloss.Style {
	switch {
	case status >= 500:
		return Styles.Danger
	case status >= 400:
		return Styles.Warning
	default:
		return Styles.Success
	}
}

// OutcomeText returns styled outcome text for a finished run
func OutcomeText(skipped int) string {
	if skipped > 0 {
		return Styles.Warning.Render("PROCESSED WITH SKIPPED LINES")
	}
	return Styles.Success.Render("OK")
}
