// Package ui holds the Lip Gloss styles shared by the aepxscan commands.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	HeaderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Align(lipgloss.Center)

	HeaderTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)
)

// Helper functions for styled output
func Success(msg string) string {
	return SuccessStyle.Render("✓ " + msg)
}

func Error(msg string) string {
	return ErrorStyle.Render("✗ " + msg)
}

func Warning(msg string) string {
	return WarningStyle.Render("! " + msg)
}

func Info(msg string) string {
	return InfoStyle.Render(msg)
}

func Dim(msg string) string {
	return DimStyle.Render(msg)
}

// Header renders text inside a rounded box for command banners.
func Header(text string) string {
	return HeaderStyle.Render(HeaderTextStyle.Render(text))
}

// Size renders a byte count in human units.
func Size(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.2f GB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
