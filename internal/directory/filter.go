package directory

import (
	"strings"

	"github.com/thesavant42/holocron/internal/models"
)

// Apply returns the records matching every predicate of f, in record order.
// The result is a new slice; records is never modified.
func Apply(records []models.Person, f models.Filter) []models.Person {
	m := newMatcher(f)
	visible := make([]models.Person, 0, len(records))
	for _, p := range records {
		if m.match(p) {
			visible = append(visible, p)
		}
	}
	return visible
}

// matches reports whether a single record passes f
func matches(p models.Person, f models.Filter) bool {
	return newMatcher(f).match(p)
}

// matcher holds the lowercased filter terms so each record only lowercases its own fields
type matcher struct {
	search    string
	homeworld string
	film      string
	species   string
}

func newMatcher(f models.Filter) matcher {
	return matcher{
		search:    strings.ToLower(f.Search),
		homeworld: strings.ToLower(f.Homeworld),
		film:      strings.ToLower(f.Film),
		species:   strings.ToLower(f.Species),
	}
}

func (m matcher) match(p models.Person) bool {
	if !containsFold(p.Name, m.search) {
		return false
	}
	if m.homeworld != "" && !containsFold(p.Homeworld, m.homeworld) {
		return false
	}
	if m.film != "" && !anyContainsFold(p.Films, m.film) {
		return false
	}
	if m.species != "" && !anyContainsFold(p.Species, m.species) {
		return false
	}
	return true
}

// containsFold expects needle already lowercased
func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), needle)
}

func anyContainsFold(values []string, needle string) bool {
	for _, v := range values {
		if containsFold(v, needle) {
			return true
		}
	}
	return false
}
