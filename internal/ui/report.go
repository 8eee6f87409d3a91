package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	green = lipgloss.Color("82")
	cyan  = lipgloss.Color("86")
)

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	successStyle := lipgloss.NewStyle().
		Foreground(green).
		Bold(true)
	fmt.Println(successStyle.Render(message))
}

// PrintError prints an error message
func PrintError(message string) {
	errorStyle := lipgloss.NewStyle().
		Foreground(ColorBorder).
		Bold(true)
	fmt.Println(errorStyle.Render("Error: " + message))
}

// PrintInfo prints a secondary line, e.g. the path of a written file
func PrintInfo(message string) {
	fmt.Println(lipgloss.NewStyle().Foreground(cyan).Italic(true).Render(message))
}
