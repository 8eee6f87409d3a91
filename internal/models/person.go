package models

import "time"

// Person is a single SWAPI people record. Name is its identity within a page.
type Person struct {
	Name      string    `json:"name"`
	Height    string    `json:"height"`
	Mass      string    `json:"mass"`
	BirthYear string    `json:"birth_year"`
	Created   time.Time `json:"created"`
	Films     []string  `json:"films"`
	Species   []string  `json:"species"`
	Homeworld string    `json:"homeworld"`
	URL       string    `json:"url"`
}

// PeoplePage is one page of the /people/ listing.
type PeoplePage struct {
	Count    int      `json:"count"`
	Next     *string  `json:"next"`
	Previous *string  `json:"previous"`
	Results  []Person `json:"results"`
}

// Species is the subset of a species resource used for coloring
type Species struct {
	Name           string `json:"name"`
	Classification string `json:"classification"`
}

// Planet is a homeworld resource shown in the detail overlay
type Planet struct {
	Name       string `json:"name"`
	Terrain    string `json:"terrain"`
	Climate    string `json:"climate"`
	Population string `json:"population"`
}

// Color is a hex display color derived from a record's species
type Color string

const (
	ColorHuman   Color = "#FFD700" // gold
	ColorDroid   Color = "#00CED1" // teal
	ColorNeutral Color = "#ccc"    // gray, also the fallback for missing entries
)

// FilterField names one of the attribute filters
type FilterField string

const (
	FilterHomeworld FilterField = "homeworld"
	FilterFilm      FilterField = "film"
	FilterSpecies   FilterField = "species"
)

// Filter holds the search term and attribute filters.
// Empty values always match.
type Filter struct {
	Search    string
	Homeworld string
	Film      string
	Species   string
}

// IsZero reports whether no search term or filter is set
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Get returns the value of an attribute filter
func (f Filter) Get(field FilterField) string {
	switch field {
	case FilterHomeworld:
		return f.Homeworld
	case FilterFilm:
		return f.Film
	case FilterSpecies:
		return f.Species
	default:
		return ""
	}
}

// With returns a copy of f with one attribute filter replaced.
// Unknown fields leave f unchanged.
func (f Filter) With(field FilterField, value string) Filter {
	switch field {
	case FilterHomeworld:
		f.Homeworld = value
	case FilterFilm:
		f.Film = value
	case FilterSpecies:
		f.Species = value
	}
	return f
}
