package ui

// view_helpers.go provides common View() rendering helpers.

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/thesavant42/holocron/internal/models"
)

// =============================================================================
// Table Rendering with Full-Width Selection
// =============================================================================

// RenderRecordTable renders a bubbles table with a full-width selection
// highlight and tints the name cells of unselected rows with each row's
// color. colors is indexed like t.Rows(); rows past its end render plain.
//
// bubbles/table View() output is one header line (ApplyTableStyles removes
// its bottom border) followed by the rows visible in the viewport.
func RenderRecordTable(t table.Model, layout Layout, colors []models.Color) string {
	lines := strings.Split(t.View(), "\n")
	result := make([]string, 0, len(lines)+1)

	start := scrollOffset(t.Cursor(), t.Height(), len(t.Rows()))
	visibleCursorIndex := t.Cursor() - start
	tinted := tintedWidth(t.Columns())

	for i, line := range lines {
		if i == 0 {
			result = append(result, NormalStyle.Render(line))
			result = append(result, FullWidthDivider(layout.ContentWidth))
			continue
		}

		dataRowIndex := i - 1
		row := start + dataRowIndex
		if row >= len(t.Rows()) {
			result = append(result, line)
			continue
		}

		// Strip escape codes first so embedded resets don't kill the background
		cleanLine := stripEscapeCodes(line)
		if dataRowIndex == visibleCursorIndex {
			cleanLine = padToWidth(cleanLine, layout.ContentWidth)
			if StringWidth(cleanLine) > layout.ContentWidth {
				cleanLine = truncateToWidth(cleanLine, layout.ContentWidth)
			}
			result = append(result, SelectedStyle.Render(cleanLine))
			continue
		}

		c := models.ColorNeutral
		if row < len(colors) {
			c = colors[row]
		}
		head := ansi.Cut(cleanLine, 0, tinted)
		tail := ansi.Cut(cleanLine, tinted, StringWidth(cleanLine))
		result = append(result, RecordStyle(c).Render(head)+NormalStyle.Render(tail))
	}

	return strings.Join(result, "\n")
}

// scrollOffset mirrors the bubbles table viewport: rows only scroll once the
// cursor moves past the visible area, and never past the last full screen.
func scrollOffset(cursor, height, totalRows int) int {
	if totalRows <= height || cursor < height {
		return 0
	}
	start := cursor - height + 1
	if maxStart := totalRows - height; start > maxStart {
		start = maxStart
	}
	return start
}

// =============================================================================
// View Header - Title + Divider Pattern
// =============================================================================

// ViewHeaderWithSubtitle renders title + subtitle + divider + spacing.
func ViewHeaderWithSubtitle(title, subtitle string, innerWidth int) string {
	var b strings.Builder
	b.WriteString(RenderTitle(title))
	b.WriteString("\n")
	if subtitle != "" {
		b.WriteString(RenderDim(subtitle))
		b.WriteString("\n")
	}
	b.WriteString(FullWidthDivider(innerWidth))
	b.WriteString("\n")
	return b.String()
}

// CenterText centers text within given width.
func CenterText(text string, width int) string {
	textW := StringWidth(text)
	if textW >= width {
		return text
	}
	return strings.Repeat(" ", (width-textW)/2) + text
}

// FullWidthDivider returns a horizontal divider spanning the inner width.
func FullWidthDivider(innerWidth int) string {
	return strings.Repeat("─", innerWidth)
}

// PadContentToHeight pads content with newlines to fill target height.
func PadContentToHeight(content string, targetHeight int) string {
	lines := strings.Count(content, "\n") + 1
	if lines >= targetHeight {
		return content
	}
	return content + strings.Repeat("\n", targetHeight-lines)
}

// =============================================================================
// Two-Box Layout
// =============================================================================

// BuildTwoBoxView constructs the standard two-box layout.
//
//	┌────────────────────────┐
//	│ Main content           │  <- Red border
//	└────────────────────────┘
//	┌────────────────────────┐
//	│   Centered help text   │  <- White border, 1 row
//	└────────────────────────┘
func BuildTwoBoxView(content, helpText string, layout Layout) string {
	main := BorderedBox(layout).Render(content)

	help := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorText).
		Padding(0, 1).
		Width(layout.InnerWidth).
		Render(CenterText(HintStyle.Render(helpText), layout.ContentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, main, help)
}
