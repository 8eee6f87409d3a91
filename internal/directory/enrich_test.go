package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thesavant42/holocron/internal/models"
)

func TestColorFor(t *testing.T) {
	tests := []struct {
		species string
		want    models.Color
	}{
		{"Human", models.ColorHuman},
		{"human", models.ColorHuman},
		{"HUMAN", models.ColorHuman},
		{"Droid", models.ColorDroid},
		{"dRoId", models.ColorDroid},
		{"Wookie", models.ColorNeutral},
		{"Humanoid", models.ColorNeutral},
		{"", models.ColorNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.species, func(t *testing.T) {
			assert.Equal(t, tt.want, ColorFor(tt.species))
		})
	}
}

func TestResolve(t *testing.T) {
	src := seededSource()
	people := []models.Person{
		luke(),
		leia(),
		r2d2(),
		{Name: "Chewbacca", Species: []string{wookieURL}},
		{Name: "Broken", Species: []string{"https://swapi.dev/api/species/999/"}},
	}

	for _, concurrency := range []int{1, 4} {
		r := NewResolver(src, concurrency, nil)
		got := r.Resolve(context.Background(), people)

		assert.Equal(t, Enrichment{
			"Luke Skywalker": models.ColorHuman,
			"Leia Organa":    models.ColorNeutral,
			"R2-D2":          models.ColorDroid,
			"Chewbacca":      models.ColorNeutral,
			"Broken":         models.ColorNeutral,
		}, got, "concurrency %d", concurrency)
	}
}

func TestResolveSkipsFetchWithoutSpecies(t *testing.T) {
	src := seededSource()
	r := NewResolver(src, 2, nil)

	got := r.Resolve(context.Background(), []models.Person{leia()})

	assert.Equal(t, models.ColorNeutral, got["Leia Organa"])
	assert.Empty(t, src.speciesCalls)
}

func TestResolveSequentialOrder(t *testing.T) {
	src := seededSource()
	r := NewResolver(src, 1, nil)

	r.Resolve(context.Background(), []models.Person{r2d2(), luke(), {Name: "Chewbacca", Species: []string{wookieURL, humanURL}}})

	assert.Equal(t, []string{droidURL, humanURL, wookieURL}, src.speciesCalls)
}

func TestResolveCancelledContext(t *testing.T) {
	src := seededSource()
	r := NewResolver(src, 1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := r.Resolve(ctx, []models.Person{luke()})

	assert.Equal(t, models.ColorNeutral, got["Luke Skywalker"])
	assert.Empty(t, src.speciesCalls)
}

func TestEnrichmentColorFallback(t *testing.T) {
	e := Enrichment{"Luke Skywalker": models.ColorHuman}
	assert.Equal(t, models.ColorHuman, e.Color("Luke Skywalker"))
	assert.Equal(t, models.ColorNeutral, e.Color("Han Solo"))

	var empty Enrichment
	assert.Equal(t, models.ColorNeutral, empty.Color("anyone"))
}
