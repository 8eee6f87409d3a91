package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thesavant42/holocron/internal/models"
)

// listSeparator joins reference lists into a single column
const listSeparator = "\n"

// SaveSnapshot stores a snapshot and its entries in one transaction.
// An empty ID is replaced by a new UUID; the stored ID is returned.
func (db *DB) SaveSnapshot(s models.Snapshot) (string, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(insertSnapshot,
		s.ID,
		s.Page,
		s.TotalPages,
		s.Filter.Search,
		s.Filter.Homeworld,
		s.Filter.Film,
		s.Filter.Species,
		s.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.Prepare(insertSnapshotPerson)
	if err != nil {
		return "", fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, e := range s.Entries {
		p := e.Person
		var created interface{}
		if !p.Created.IsZero() {
			created = p.Created.UTC().Format(time.RFC3339Nano)
		}

		_, err := stmt.Exec(
			s.ID,
			i,
			p.Name,
			p.Height,
			p.Mass,
			p.BirthYear,
			created,
			strings.Join(p.Films, listSeparator),
			strings.Join(p.Species, listSeparator),
			p.Homeworld,
			p.URL,
			string(e.Color),
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert %s: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return s.ID, nil
}

// GetSnapshot loads a snapshot with its entries in export order
func (db *DB) GetSnapshot(id string) (*models.Snapshot, error) {
	var s models.Snapshot
	var createdAt string
	err := db.conn.QueryRow(selectSnapshot, id).Scan(
		&s.ID, &s.Page, &s.TotalPages,
		&s.Filter.Search, &s.Filter.Homeworld, &s.Filter.Film, &s.Filter.Species,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		s.CreatedAt = t
	}

	rows, err := db.conn.Query(selectSnapshotPeople, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot people: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.SnapshotEntry
		var created sql.NullString
		var films, species, color string
		if err := rows.Scan(
			&e.Person.Name, &e.Person.Height, &e.Person.Mass, &e.Person.BirthYear,
			&created, &films, &species, &e.Person.Homeworld, &e.Person.URL, &color,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if created.Valid {
			if t, err := time.Parse(time.RFC3339Nano, created.String); err == nil {
				e.Person.Created = t
			}
		}
		e.Person.Films = splitList(films)
		e.Person.Species = splitList(species)
		e.Color = models.Color(color)
		s.Entries = append(s.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return &s, nil
}

// ListSnapshotIDs returns snapshot IDs, newest first
func (db *DB) ListSnapshotIDs() ([]string, error) {
	rows, err := db.conn.Query(selectSnapshotIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSeparator)
}
