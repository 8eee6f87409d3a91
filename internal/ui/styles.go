package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/thesavant42/holocron/internal/models"
)

// Layout constants - single source of truth for all viewport dimensions
const (
	MinViewportWidth  = 80
	MaxViewportWidth  = 140
	DefaultWidth      = 110 // Used when terminal size is unknown
	DefaultHeight     = 32
	MinTableHeight    = 5
	MaxTableHeight    = 20
	ViewportOverhead  = 16 // title, filter bar, pagination, status, help and borders
	TableBorderMargin = 4
)

// Layout holds computed dimensions for the current terminal size
type Layout struct {
	ViewportWidth  int // clamped terminal width
	ViewportHeight int // terminal height
	InnerWidth     int // width inside the borders, passed to Style.Width
	ContentWidth   int // InnerWidth minus horizontal padding
	TableWidth     int // sum of column widths + cell padding
	TableHeight    int // visible table rows
}

// NewLayout creates a Layout from the terminal size, clamping width to min/max
func NewLayout(terminalWidth, terminalHeight int) Layout {
	width := clamp(terminalWidth, MinViewportWidth, MaxViewportWidth)
	if terminalHeight <= 0 {
		terminalHeight = DefaultHeight
	}
	return Layout{
		ViewportWidth:  width,
		ViewportHeight: terminalHeight,
		InnerWidth:     width - 2,
		ContentWidth:   width - TableBorderMargin,
		TableWidth:     width - TableBorderMargin,
		TableHeight:    clamp(terminalHeight-ViewportOverhead, MinTableHeight, MaxTableHeight),
	}
}

// DefaultLayout returns a layout using the default size
func DefaultLayout() Layout {
	return NewLayout(DefaultWidth, DefaultHeight)
}

// clamp restricts a value to the given range
func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Color palette - centralized color definitions
var (
	ColorBorder    = lipgloss.Color("196") // red
	ColorHighlight = lipgloss.Color("88")  // dark red background
	ColorText      = lipgloss.Color("15")  // bright white
	ColorAccent    = lipgloss.Color("226") // bright yellow
	ColorTextDim   = lipgloss.Color("241") // gray
)

// Common styles - reusable style definitions
var (
	// Border style for main viewport
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	// Title style for section headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	// Selected row/item style
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorHighlight).
			Bold(true)

	// Normal text style
	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// Dim text for labels and placeholders
	DimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	// Hint/help text style
	HintStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Italic(true)

	// Accent style for highlighted text (yellow)
	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// Error and status line
	StatusMsgStyle = lipgloss.NewStyle().
			Foreground(ColorBorder).
			Bold(true)

	// Pagination unit styles
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorHighlight).
			Bold(true).
			Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Padding(0, 1)

	// Arrow style for pagination
	ArrowStyle = lipgloss.NewStyle().
			Foreground(ColorBorder).
			Bold(true)

	// Dimmed arrow when there is no page in that direction
	ArrowDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)
)

// RecordStyle returns the text style for a record tinted with its species color
func RecordStyle(c models.Color) lipgloss.Style {
	if c == "" {
		c = models.ColorNeutral
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(string(c)))
}

// BorderedBox returns a style for bordered content boxes with the layout width
func BorderedBox(layout Layout) lipgloss.Style {
	return BorderStyle.
		Padding(0, 1).
		Width(layout.InnerWidth)
}

// ApplyTableStyles sets the app's table styles. The header is a single line
// (no bottom border) and the built-in selection is neutral; RenderRecordTable
// paints the visible selection.
func ApplyTableStyles(t *table.Model) {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderBottom(false).
		Bold(true).
		Foreground(ColorText)
	s.Selected = lipgloss.NewStyle()
	s.Cell = s.Cell.Foreground(ColorText)
	t.SetStyles(s)
}

// NewAppSpinner returns the white dot spinner used across the app
func NewAppSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(NormalStyle),
	)
}

// NewAppTheme creates a huh theme matching the app's style guide
// White text, red highlights/selection
func NewAppTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)
	t.Blurred.Title = t.Focused.Title

	t.Focused.Description = lipgloss.NewStyle().
		Foreground(ColorText)
	t.Blurred.Description = t.Focused.Description

	t.Focused.Base = lipgloss.NewStyle().
		Foreground(ColorText)
	t.Blurred.Base = t.Focused.Base

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(ColorBorder)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(ColorTextDim)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(ColorBorder)

	t.Focused.ErrorMessage = StatusMsgStyle

	return t
}

// =============================================================================
// Render helpers
// =============================================================================

// RenderTitle renders a section title
func RenderTitle(s string) string { return TitleStyle.Render(s) }

// RenderNormal renders plain text in the app's text color
func RenderNormal(s string) string { return NormalStyle.Render(s) }

// RenderDim renders a label or placeholder
func RenderDim(s string) string { return DimStyle.Render(s) }

// StringWidth returns the display width of s, ignoring ANSI escape codes
func StringWidth(s string) int {
	return lipgloss.Width(s)
}

// stripEscapeCodes removes ANSI sequences so a line can be restyled
func stripEscapeCodes(s string) string {
	return ansi.Strip(s)
}

// truncateToWidth cuts s to at most width display cells
func truncateToWidth(s string, width int) string {
	return ansi.Truncate(s, width, "")
}

// padToWidth pads plain text with spaces up to width
func padToWidth(s string, width int) string {
	if w := StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
