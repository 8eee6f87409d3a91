package ui

import (
	"time"
)

// page_state.go holds the state every TUI page carries besides its data.

// StatusDuration is how long transient status messages stay on screen
const StatusDuration = 4 * time.Second

// PageState contains layout and status-line state.
// Embed this in a page model.
type PageState struct {
	Layout       Layout
	StatusMsg    string
	StatusExpiry time.Time
	Quitting     bool
}

// NewPageState creates a new PageState with the given layout.
func NewPageState(layout Layout) PageState {
	return PageState{Layout: layout}
}

// SetStatus sets a status message that will expire after the given duration.
// If duration is 0, the status message will not expire.
func (p *PageState) SetStatus(msg string, duration time.Duration) {
	p.StatusMsg = msg
	if duration > 0 {
		p.StatusExpiry = time.Now().Add(duration)
	} else {
		p.StatusExpiry = time.Time{}
	}
}

// ClearExpiredStatus clears the status message once it has expired.
func (p *PageState) ClearExpiredStatus(now time.Time) {
	if !p.StatusExpiry.IsZero() && now.After(p.StatusExpiry) {
		p.StatusMsg = ""
		p.StatusExpiry = time.Time{}
	}
}

// HasStatus returns true if there is a non-empty status message.
func (p *PageState) HasStatus() bool {
	return p.StatusMsg != ""
}

// UpdateLayout updates the layout and returns true if it changed.
func (p *PageState) UpdateLayout(width, height int) bool {
	newLayout := NewLayout(width, height)
	if newLayout != p.Layout {
		p.Layout = newLayout
		return true
	}
	return false
}
