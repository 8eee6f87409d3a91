package ui

import (
	"strconv"
	"strings"

	"github.com/thesavant42/holocron/internal/directory"
)

// RenderPagination renders the page strip: an arrow on each side and one
// unit per page with the active unit highlighted. It is empty while the
// page count is unknown.
func RenderPagination(units []directory.PageUnit, hasPrev, hasNext bool) string {
	if len(units) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(arrow("‹", hasPrev))
	b.WriteString(" ")
	for _, u := range units {
		label := strconv.Itoa(u.Number)
		if u.Active {
			b.WriteString(TabActiveStyle.Render(label))
		} else {
			b.WriteString(TabInactiveStyle.Render(label))
		}
	}
	b.WriteString(" ")
	b.WriteString(arrow("›", hasNext))
	return b.String()
}

func arrow(s string, enabled bool) string {
	if enabled {
		return ArrowStyle.Render(s)
	}
	return ArrowDisabledStyle.Render(s)
}
