package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thesavant42/holocron/internal/models"
)

// ExportVisibleToMarkdown writes the visible records of a page to a markdown
// file in dir and returns its path
func ExportVisibleToMarkdown(dir string, people []models.Person, colorOf func(name string) models.Color, page, totalPages int, f models.Filter) (string, error) {
	timestamp := time.Now().Format("2006-01-02-150405")
	filename := filepath.Join(dir, fmt.Sprintf("holocron-page%d-%s.md", page, timestamp))

	content := generatePeopleMarkdown(people, colorOf, page, totalPages, f)

	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write markdown file: %w", err)
	}

	return filename, nil
}

func generatePeopleMarkdown(people []models.Person, colorOf func(name string) models.Color, page, totalPages int, f models.Filter) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Star Wars Directory - page %d of %d\n\n", page, totalPages))
	if !f.IsZero() {
		sb.WriteString(fmt.Sprintf("**Filters:** %s\n", describeFilter(f)))
	}
	sb.WriteString(fmt.Sprintf("**Records:** %d\n", len(people)))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	if len(people) == 0 {
		sb.WriteString("No matching records\n")
		return sb.String()
	}

	sb.WriteString("| Name | Color | Height | Mass | Birth Year | Films | Added |\n")
	sb.WriteString("|------|-------|--------|------|------------|-------|-------|\n")
	for _, p := range people {
		sb.WriteString(fmt.Sprintf("| %s | `%s` | %s | %s | %s | %d | %s |\n",
			escapeMarkdownCell(p.Name),
			colorOf(p.Name),
			FormatHeight(p.Height),
			FormatMass(p.Mass),
			escapeMarkdownCell(p.BirthYear),
			len(p.Films),
			FormatDateAdded(p.Created)))
	}

	return sb.String()
}

// describeFilter renders the non-empty filter fields as key="value" pairs
func describeFilter(f models.Filter) string {
	var parts []string
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("name=%q", f.Search))
	}
	for _, field := range []models.FilterField{models.FilterHomeworld, models.FilterFilm, models.FilterSpecies} {
		if v := f.Get(field); v != "" {
			parts = append(parts, fmt.Sprintf("%s=%q", field, v))
		}
	}
	return strings.Join(parts, " ")
}

func escapeMarkdownCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
