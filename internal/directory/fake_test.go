package directory

import (
	"context"
	"errors"
	"sync"

	"github.com/thesavant42/holocron/internal/models"
)

var errUnreachable = errors.New("connection refused")

// fakeSource serves canned pages, species and planets and counts calls
type fakeSource struct {
	mu           sync.Mutex
	pages        map[int]*models.PeoplePage
	species      map[string]string
	planets      map[string]*models.Planet
	peopleErr    error
	peopleCalls  map[int]int
	speciesCalls []string
	planetCalls  int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		pages:       map[int]*models.PeoplePage{},
		species:     map[string]string{},
		planets:     map[string]*models.Planet{},
		peopleCalls: map[int]int{},
	}
}

func (f *fakeSource) FetchPeople(ctx context.Context, page int) (*models.PeoplePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.peopleCalls[page]++
	if f.peopleErr != nil {
		return nil, f.peopleErr
	}
	p, ok := f.pages[page]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (f *fakeSource) FetchSpecies(ctx context.Context, speciesURL string) (*models.Species, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.speciesCalls = append(f.speciesCalls, speciesURL)
	name, ok := f.species[speciesURL]
	if !ok {
		return nil, errUnreachable
	}
	return &models.Species{Name: name}, nil
}

func (f *fakeSource) FetchPlanet(ctx context.Context, planetURL string) (*models.Planet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.planetCalls++
	p, ok := f.planets[planetURL]
	if !ok {
		return nil, errUnreachable
	}
	return p, nil
}

func (f *fakeSource) totalPeopleCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.peopleCalls {
		n += c
	}
	return n
}

const (
	humanURL  = "https://swapi.dev/api/species/1/"
	droidURL  = "https://swapi.dev/api/species/2/"
	wookieURL = "https://swapi.dev/api/species/3/"
	tatooine  = "https://swapi.dev/api/planets/1/"
	alderaan  = "https://swapi.dev/api/planets/2/"
)

func luke() models.Person {
	return models.Person{
		Name:      "Luke Skywalker",
		Height:    "172",
		Mass:      "77",
		BirthYear: "19BBY",
		Films:     []string{"https://swapi.dev/api/films/1/", "https://swapi.dev/api/films/2/"},
		Species:   []string{humanURL},
		Homeworld: tatooine,
	}
}

func leia() models.Person {
	return models.Person{
		Name:      "Leia Organa",
		Height:    "150",
		Mass:      "49",
		BirthYear: "19BBY",
		Films:     []string{"https://swapi.dev/api/films/1/"},
		Homeworld: alderaan,
	}
}

func r2d2() models.Person {
	return models.Person{
		Name:      "R2-D2",
		Height:    "96",
		Mass:      "32",
		BirthYear: "33BBY",
		Films:     []string{"https://swapi.dev/api/films/1/", "https://swapi.dev/api/films/6/"},
		Species:   []string{droidURL},
		Homeworld: "https://swapi.dev/api/planets/8/",
	}
}

func seededSource() *fakeSource {
	f := newFakeSource()
	f.pages[1] = &models.PeoplePage{Count: 87, Results: []models.Person{luke(), leia(), r2d2()}}
	f.pages[2] = &models.PeoplePage{Count: 87, Results: []models.Person{{Name: "Chewbacca", Species: []string{wookieURL}}}}
	f.species[humanURL] = "Human"
	f.species[droidURL] = "Droid"
	f.species[wookieURL] = "Wookie"
	f.planets[tatooine] = &models.Planet{Name: "Tatooine", Terrain: "desert", Climate: "arid", Population: "200000"}
	return f
}
