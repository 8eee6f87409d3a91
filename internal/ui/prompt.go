package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
)

// sanitizeInput removes null bytes and other invisible control characters from input
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		// Keep printable characters and normal whitespace (space, tab, newline)
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			return -1
		}
		return r
	}, s)
}

// validateExportPath accepts any non-empty path to a .db file
func validateExportPath(s string) error {
	s = strings.TrimSpace(sanitizeInput(s))
	if s == "" {
		return errors.New("path cannot be empty")
	}
	if ext := strings.ToLower(filepath.Ext(s)); ext != ".db" && ext != ".sqlite" {
		return fmt.Errorf("expected a .db or .sqlite file, got %q", filepath.Base(s))
	}
	return nil
}

// PromptForExportPath asks where the snapshot database should be written
func PromptForExportPath(defaultPath string) (string, error) {
	path := defaultPath

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Export Snapshot").
				Description("SQLite file to write the visible records to (created if missing)").
				Placeholder("holocron-export.db").
				Value(&path).
				Validate(validateExportPath),
		),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}

	return strings.TrimSpace(sanitizeInput(path)), nil
}
