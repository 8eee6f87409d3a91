package directory

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/holocron/internal/models"
	"golang.org/x/sync/errgroup"
)

// DefaultEnrichConcurrency bounds parallel species lookups per page
const DefaultEnrichConcurrency = 4

// SpeciesFetcher dereferences a species URL
type SpeciesFetcher interface {
	FetchSpecies(ctx context.Context, speciesURL string) (*models.Species, error)
}

// Enrichment maps a record name to its display color
type Enrichment map[string]models.Color

// Color returns the color for name, or ColorNeutral when it has not been resolved
func (e Enrichment) Color(name string) models.Color {
	if c, ok := e[name]; ok {
		return c
	}
	return models.ColorNeutral
}

// ColorFor maps a species name to a display color. Matching is
// case-insensitive and exact; anything unrecognised is neutral.
func ColorFor(species string) models.Color {
	switch strings.ToLower(species) {
	case "human":
		return models.ColorHuman
	case "droid":
		return models.ColorDroid
	default:
		return models.ColorNeutral
	}
}

// Resolver derives the Enrichment for a page of records
type Resolver struct {
	fetcher     SpeciesFetcher
	concurrency int
	logger      *log.Logger
}

// NewResolver creates a Resolver. concurrency < 1 is treated as 1, which
// resolves records strictly one after another in record order.
func NewResolver(fetcher SpeciesFetcher, concurrency int, logger *log.Logger) *Resolver {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{
		fetcher:     fetcher,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Resolve computes a color for every record. A failed lookup only affects its
// own record, which falls back to ColorNeutral.
func (r *Resolver) Resolve(ctx context.Context, people []models.Person) Enrichment {
	colors := make([]models.Color, len(people))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, p := range people {
		g.Go(func() error {
			colors[i] = r.resolveOne(ctx, p)
			return nil
		})
	}
	_ = g.Wait() // tasks never return errors

	out := make(Enrichment, len(people))
	for i, p := range people {
		out[p.Name] = colors[i]
	}
	return out
}

func (r *Resolver) resolveOne(ctx context.Context, p models.Person) models.Color {
	if len(p.Species) == 0 {
		return models.ColorNeutral
	}
	if err := ctx.Err(); err != nil {
		return models.ColorNeutral
	}

	species, err := r.fetcher.FetchSpecies(ctx, p.Species[0])
	if err != nil {
		r.logger.Warn("Species lookup failed", "person", p.Name, "url", p.Species[0], "error", err)
		return models.ColorNeutral
	}
	return ColorFor(species.Name)
}
