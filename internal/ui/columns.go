package ui

// columns.go provides column width calculation for the people table.

import (
	"github.com/charmbracelet/bubbles/table"
)

// Fixed column widths
const (
	ColWidthSwatch  = 3
	ColWidthHeight  = 8
	ColWidthMass    = 8
	ColWidthBorn    = 10
	ColWidthFilms   = 6
	ColWidthCreated = 12
	ColWidthName    = 20 // minimum
)

// ColumnSpec defines a table column with flexible or fixed width.
// Use FlexRatio for columns that should expand/contract with terminal width.
// Use FixedWidth for columns that should maintain constant width.
type ColumnSpec struct {
	Title      string
	MinWidth   int // Minimum width (0 = no minimum)
	FixedWidth int // If > 0, use this exact width (ignores FlexRatio)
	FlexRatio  int // Relative ratio for flexible columns (0 = fixed-only)
}

// CalculateColumns computes column widths from specs.
// Flexible columns split the space left after fixed columns by ratio.
// Each bubbles cell adds one column of padding on both sides, which is
// subtracted before splitting.
func CalculateColumns(specs []ColumnSpec, totalWidth int) []table.Column {
	totalWidth -= 2 * len(specs)
	if totalWidth < 40 {
		totalWidth = 40
	}

	fixedTotal := 0
	flexTotal := 0
	for _, s := range specs {
		if s.FixedWidth > 0 {
			fixedTotal += s.FixedWidth
		} else {
			flexTotal += s.FlexRatio
		}
	}

	remaining := totalWidth - fixedTotal
	if remaining < 0 {
		remaining = 0
	}

	columns := make([]table.Column, len(specs))
	for i, s := range specs {
		var width int
		if s.FixedWidth > 0 {
			width = s.FixedWidth
		} else if flexTotal > 0 {
			width = remaining * s.FlexRatio / flexTotal
		}
		if s.MinWidth > 0 && width < s.MinWidth {
			width = s.MinWidth
		}
		columns[i] = table.Column{Title: s.Title, Width: width}
	}

	return columns
}

// PeopleColumns returns column specs for the people directory table.
// Name must stay first: RenderRecordTable tints the leading cell.
func PeopleColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "Name", FlexRatio: 100, MinWidth: ColWidthName},
		{Title: "", FixedWidth: ColWidthSwatch},
		{Title: "Height", FixedWidth: ColWidthHeight},
		{Title: "Mass", FixedWidth: ColWidthMass},
		{Title: "Born", FixedWidth: ColWidthBorn},
		{Title: "Films", FixedWidth: ColWidthFilms},
		{Title: "Added", FixedWidth: ColWidthCreated},
	}
}

// tintedWidth is the display width of the cells RenderRecordTable colors:
// the name and the swatch, including cell padding.
func tintedWidth(columns []table.Column) int {
	w := 0
	for i := 0; i < len(columns) && i < 2; i++ {
		w += columns[i].Width + 2
	}
	return w
}
