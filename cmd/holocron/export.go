package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/thesavant42/holocron/internal/db"
	"github.com/thesavant42/holocron/internal/directory"
	"github.com/thesavant42/holocron/internal/models"
	"github.com/thesavant42/holocron/internal/ui"
)

// exportSnapshot loads one page under a spinner and writes its visible records
// to the SQLite file at path. It returns the snapshot ID and record count.
func exportSnapshot(ctx context.Context, ctrl *directory.Controller, path string, page int, filter models.Filter) (string, int, error) {
	var snap models.Snapshot
	err := ui.RunWithSpinner(fmt.Sprintf("Fetching page %d...", page), func() (err error) {
		snap, err = buildSnapshot(ctx, ctrl, page, filter)
		return err
	})
	if err != nil {
		return "", 0, err
	}

	database, err := db.New(path)
	if err != nil {
		return "", 0, err
	}
	defer database.Close()

	id, err := database.SaveSnapshot(snap)
	if err != nil {
		return "", 0, err
	}
	return id, len(snap.Entries), nil
}

// listSnapshots prints one line per snapshot stored in the SQLite file at path,
// newest first
func listSnapshots(path string, w io.Writer) error {
	database, err := db.New(path)
	if err != nil {
		return err
	}
	defer database.Close()

	ids, err := database.ListSnapshotIDs()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintf(w, "No snapshots in %s\n", path)
		return nil
	}

	for _, id := range ids {
		snap, err := database.GetSnapshot(id)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("%s  page %d of %d  %d records  %s",
			snap.ID, snap.Page, snap.TotalPages, len(snap.Entries), snap.CreatedAt.Format(time.RFC3339))
		if !snap.Filter.IsZero() {
			line += fmt.Sprintf("  filter %+v", snap.Filter)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// buildSnapshot drives the controller synchronously: load, enrich, filter
func buildSnapshot(ctx context.Context, ctrl *directory.Controller, page int, filter models.Filter) (models.Snapshot, error) {
	if err := ctrl.LoadPage(ctx, page); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load page %d: %w", page, err)
	}
	ctrl.EnrichPage()

	ctrl.SetSearchTerm(filter.Search)
	for _, field := range []models.FilterField{models.FilterHomeworld, models.FilterFilm, models.FilterSpecies} {
		ctrl.SetFilter(field, filter.Get(field))
	}

	visible := ctrl.Visible()
	entries := make([]models.SnapshotEntry, len(visible))
	for i, p := range visible {
		entries[i] = models.SnapshotEntry{Person: p, Color: ctrl.Color(p.Name)}
	}

	return models.Snapshot{
		Page:       ctrl.Page(),
		TotalPages: ctrl.TotalPages(),
		Filter:     ctrl.Filter(),
		Entries:    entries,
	}, nil
}
