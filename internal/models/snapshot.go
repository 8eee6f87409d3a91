package models

import "time"

// Snapshot is an exported view of one page: the visible records with their colors
type Snapshot struct {
	ID         string
	Page       int
	TotalPages int
	Filter     Filter
	CreatedAt  time.Time
	Entries    []SnapshotEntry
}

// SnapshotEntry is a visible record plus its derived color
type SnapshotEntry struct {
	Person Person
	Color  Color
}
