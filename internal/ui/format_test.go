package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/thesavant42/holocron/internal/directory"
	"github.com/thesavant42/holocron/internal/models"
)

func TestFormatHeight(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"172", "1.72 meters"},
		{"96", "0.96 meters"},
		{"228", "2.28 meters"},
		{"unknown", "unknown"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatHeight(tt.in); got != tt.want {
				t.Errorf("FormatHeight(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatMass(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"77", "77 kg"},
		{"1,358", "1,358 kg"},
		{"unknown", "unknown"},
	}

	for _, tt := range tests {
		if got := FormatMass(tt.in); got != tt.want {
			t.Errorf("FormatMass(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDateAdded(t *testing.T) {
	created := time.Date(2014, 12, 9, 13, 50, 51, 0, time.UTC)
	if got := FormatDateAdded(created); got != "09-12-2014" {
		t.Errorf("FormatDateAdded() = %q, want 09-12-2014", got)
	}
	if got := FormatDateAdded(time.Time{}); got != "unknown" {
		t.Errorf("FormatDateAdded(zero) = %q, want unknown", got)
	}
}

func TestImageURL(t *testing.T) {
	if got := ImageURL("Luke Skywalker"); got != "https://picsum.photos/200?random=Luke+Skywalker" {
		t.Errorf("ImageURL() = %q", got)
	}
	if got := ImageURL("R2-D2&co"); got != "https://picsum.photos/200?random=R2-D2%26co" {
		t.Errorf("ImageURL() = %q", got)
	}
}

func TestRenderPagination(t *testing.T) {
	if got := RenderPagination(nil, false, false); got != "" {
		t.Errorf("expected empty strip before the first load, got %q", got)
	}

	got := RenderPagination(directory.PageUnits(2, 3), true, true)
	for _, want := range []string{"‹", "1", "2", "3", "›"} {
		if !strings.Contains(got, want) {
			t.Errorf("pagination %q missing %q", got, want)
		}
	}
}

func TestScrollOffset(t *testing.T) {
	tests := []struct {
		name                      string
		cursor, height, totalRows int
		want                      int
	}{
		{"fits", 3, 10, 5, 0},
		{"cursor inside first screen", 4, 5, 20, 0},
		{"cursor past first screen", 7, 5, 20, 3},
		{"clamped at last screen", 19, 5, 20, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scrollOffset(tt.cursor, tt.height, tt.totalRows); got != tt.want {
				t.Errorf("scrollOffset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGeneratePeopleMarkdown(t *testing.T) {
	people := []models.Person{
		{Name: "Luke Skywalker", Height: "172", Mass: "77", BirthYear: "19BBY", Films: []string{"a", "b"}},
	}
	colorOf := func(string) models.Color { return models.ColorHuman }

	md := generatePeopleMarkdown(people, colorOf, 1, 9, models.Filter{Search: "sky"})

	for _, want := range []string{
		"# Star Wars Directory - page 1 of 9",
		`**Filters:** name="sky"`,
		"**Records:** 1",
		"| Luke Skywalker | `#FFD700` | 1.72 meters | 77 kg | 19BBY | 2 | unknown |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	empty := generatePeopleMarkdown(nil, colorOf, 2, 9, models.Filter{})
	if !strings.Contains(empty, "No matching records") {
		t.Errorf("expected empty marker, got:\n%s", empty)
	}
}

func TestValidateExportPath(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"export.db", false},
		{"out/snap.SQLITE", false},
		{"", true},
		{"   ", true},
		{"notes.txt", true},
	}

	for _, tt := range tests {
		err := validateExportPath(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateExportPath(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}
