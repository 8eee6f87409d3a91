package directory

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/holocron/internal/models"
)

var (
	// ErrPageOutOfRange is returned for page requests outside 1..TotalPages
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrNoHomeworld is returned when a selected record has no homeworld reference
	ErrNoHomeworld = errors.New("record has no homeworld")
)

// LoadErrorMessage is what the viewer shows when a page cannot be fetched
const LoadErrorMessage = "Error fetching data. Please try again later."

// Source is the remote record source the controller reads from
type Source interface {
	SpeciesFetcher
	FetchPeople(ctx context.Context, page int) (*models.PeoplePage, error)
	FetchPlanet(ctx context.Context, planetURL string) (*models.Planet, error)
}

// PageRequest is issued by BeginPageLoad
type PageRequest struct {
	Page int
	gen  uint64
	ctx  context.Context
}

// PageResult carries the outcome of FetchPage
type PageResult struct {
	Page    int
	Records []models.Person
	Count   int
	Err     error
	gen     uint64
}

// EnrichmentRequest is issued by BeginEnrichment
type EnrichmentRequest struct {
	Records []models.Person
	gen     uint64
	ctx     context.Context
}

// EnrichmentResult carries the outcome of Enrich
type EnrichmentResult struct {
	Colors Enrichment
	gen    uint64
}

// DetailRequest is issued by Select
type DetailRequest struct {
	Name         string
	HomeworldURL string
	gen          uint64
	ctx          context.Context
}

// DetailResult carries the outcome of FetchDetail
type DetailResult struct {
	Name   string
	Planet *models.Planet
	Err    error
	gen    uint64
}

// Controller owns the viewer state: current page, fetched records, filter,
// enrichment and selection. It is not safe for concurrent use; only the
// Fetch*/Enrich methods may be called from other goroutines.
type Controller struct {
	source   Source
	resolver *Resolver
	logger   *log.Logger

	page       int
	totalPages int
	records    []models.Person
	loading    bool
	err        error
	filter     models.Filter
	enrichment Enrichment

	selected  *models.Person
	detail    *models.Planet
	detailErr error

	// generations invalidate results of superseded requests
	pageGen   uint64
	selectGen uint64

	pageCtx      context.Context
	pageCancel   context.CancelFunc
	detailCancel context.CancelFunc
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithControllerLogger sets the logger used for diagnostics
func WithControllerLogger(logger *log.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithResolver replaces the default enrichment resolver
func WithResolver(r *Resolver) ControllerOption {
	return func(c *Controller) {
		c.resolver = r
	}
}

// NewController creates a controller positioned on page 1 with nothing loaded
func NewController(source Source, opts ...ControllerOption) *Controller {
	c := &Controller{
		source:     source,
		logger:     log.New(io.Discard),
		page:       1,
		enrichment: Enrichment{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.resolver == nil {
		c.resolver = NewResolver(source, DefaultEnrichConcurrency, c.logger)
	}
	return c
}

// =============================================================================
// Page loading
// =============================================================================

// LoadPage fetches page n and applies it. On failure the previous records are
// kept and Err reports the failure. Loading is set for the call's duration.
func (c *Controller) LoadPage(ctx context.Context, n int) error {
	req, err := c.BeginPageLoad(ctx, n)
	if err != nil {
		return err
	}
	res := c.FetchPage(req)
	c.ApplyPage(res)
	return res.Err
}

// BeginPageLoad switches to page n, marks the controller as loading and
// invalidates enrichment, selection and any in-flight page or enrichment work.
func (c *Controller) BeginPageLoad(ctx context.Context, n int) (PageRequest, error) {
	if n < 1 || (c.totalPages > 0 && n > c.totalPages) {
		return PageRequest{}, fmt.Errorf("%w: %d (have %d)", ErrPageOutOfRange, n, c.totalPages)
	}

	if c.pageCancel != nil {
		c.pageCancel()
	}
	c.pageCtx, c.pageCancel = context.WithCancel(ctx)
	c.pageGen++

	c.page = n
	c.loading = true
	c.err = nil
	c.enrichment = Enrichment{}
	c.Deselect()

	c.logger.Debug("Loading page", "page", n)
	return PageRequest{Page: n, gen: c.pageGen, ctx: c.pageCtx}, nil
}

// FetchPage performs the network call for req without touching controller state
func (c *Controller) FetchPage(req PageRequest) PageResult {
	res := PageResult{Page: req.Page, gen: req.gen}
	page, err := c.source.FetchPeople(req.ctx, req.Page)
	if err != nil {
		res.Err = err
		return res
	}
	res.Records = page.Results
	res.Count = page.Count
	return res
}

// ApplyPage folds a page result into state. It returns false when the result
// belongs to a superseded request, or when the fetch failed.
func (c *Controller) ApplyPage(res PageResult) bool {
	if res.gen != c.pageGen {
		c.logger.Debug("Discarding stale page result", "page", res.Page)
		return false
	}

	c.loading = false
	if res.Err != nil {
		c.err = res.Err
		c.logger.Error("Page load failed", "page", res.Page, "error", res.Err)
		return false
	}

	c.records = res.Records
	c.totalPages = TotalPages(res.Count, PageSize)
	c.err = nil
	c.logger.Info("Page loaded", "page", res.Page, "records", len(res.Records), "total_pages", c.totalPages)
	return true
}

// =============================================================================
// Enrichment
// =============================================================================

// EnrichPage resolves colors for the current records and applies them
func (c *Controller) EnrichPage() {
	c.ApplyEnrichment(c.Enrich(c.BeginEnrichment()))
}

// BeginEnrichment snapshots the current records for color resolution. Call it
// after a page load has been applied.
func (c *Controller) BeginEnrichment() EnrichmentRequest {
	ctx := c.pageCtx
	if ctx == nil {
		ctx = context.Background()
	}
	return EnrichmentRequest{Records: c.records, gen: c.pageGen, ctx: ctx}
}

// Enrich resolves colors for req without touching controller state
func (c *Controller) Enrich(req EnrichmentRequest) EnrichmentResult {
	return EnrichmentResult{Colors: c.resolver.Resolve(req.ctx, req.Records), gen: req.gen}
}

// ApplyEnrichment replaces the enrichment map unless the page changed meanwhile
func (c *Controller) ApplyEnrichment(res EnrichmentResult) bool {
	if res.gen != c.pageGen {
		return false
	}
	c.enrichment = res.Colors
	return true
}

// Color returns the display color of a record, neutral when unresolved
func (c *Controller) Color(name string) models.Color {
	return c.enrichment.Color(name)
}

// =============================================================================
// Search and filters
// =============================================================================

// SetSearchTerm replaces the name search term
func (c *Controller) SetSearchTerm(s string) {
	c.filter.Search = s
}

// SetFilter replaces one attribute filter
func (c *Controller) SetFilter(field models.FilterField, value string) {
	c.filter = c.filter.With(field, value)
}

// ClearFilters resets the search term and every attribute filter
func (c *Controller) ClearFilters() {
	c.filter = models.Filter{}
}

// Visible returns the current records that pass the filter
func (c *Controller) Visible() []models.Person {
	return Apply(c.records, c.filter)
}

// =============================================================================
// Selection
// =============================================================================

// SelectDetail selects r and waits for its homeworld. A failed lookup leaves
// Detail nil and is returned for diagnostics only.
func (c *Controller) SelectDetail(ctx context.Context, r models.Person) error {
	res := c.FetchDetail(c.Select(ctx, r))
	c.ApplyDetail(res)
	return res.Err
}

// Select opens the detail view for r immediately and returns the request for
// its homeworld. Any previous detail fetch is cancelled.
func (c *Controller) Select(ctx context.Context, r models.Person) DetailRequest {
	c.cancelDetail()
	c.selectGen++

	dctx, cancel := context.WithCancel(ctx)
	c.detailCancel = cancel

	selected := r
	c.selected = &selected
	c.detail = nil
	c.detailErr = nil

	return DetailRequest{Name: r.Name, HomeworldURL: r.Homeworld, gen: c.selectGen, ctx: dctx}
}

// FetchDetail performs the homeworld lookup for req without touching controller state
func (c *Controller) FetchDetail(req DetailRequest) DetailResult {
	res := DetailResult{Name: req.Name, gen: req.gen}
	if req.HomeworldURL == "" {
		res.Err = ErrNoHomeworld
		return res
	}
	planet, err := c.source.FetchPlanet(req.ctx, req.HomeworldURL)
	if err != nil {
		res.Err = err
		return res
	}
	res.Planet = planet
	return res
}

// ApplyDetail attaches the homeworld if the same selection is still open and
// reports whether it did. A failure for the open selection is kept in DetailErr;
// results for any other selection change nothing.
func (c *Controller) ApplyDetail(res DetailResult) bool {
	if res.gen != c.selectGen || c.selected == nil {
		c.logger.Debug("Discarding stale homeworld result", "person", res.Name)
		return false
	}
	if res.Err != nil {
		c.logger.Warn("Homeworld lookup failed", "person", res.Name, "error", res.Err)
		c.detailErr = res.Err
		return false
	}
	c.detail = res.Planet
	return true
}

// Deselect closes the detail view and drops any pending homeworld lookup
func (c *Controller) Deselect() {
	c.cancelDetail()
	c.selectGen++
	c.selected = nil
	c.detail = nil
	c.detailErr = nil
}

func (c *Controller) cancelDetail() {
	if c.detailCancel != nil {
		c.detailCancel()
		c.detailCancel = nil
	}
}

// =============================================================================
// Accessors
// =============================================================================

// Page returns the current 1-indexed page
func (c *Controller) Page() int { return c.page }

// TotalPages returns the page count, 0 until the first page has loaded
func (c *Controller) TotalPages() int { return c.totalPages }

// Records returns the records of the current page
func (c *Controller) Records() []models.Person { return c.records }

// Loading reports whether a page load is in flight
func (c *Controller) Loading() bool { return c.loading }

// Err returns the last page-load failure, nil after a successful load
func (c *Controller) Err() error { return c.err }

// Filter returns the current search term and filters
func (c *Controller) Filter() models.Filter { return c.filter }

// Selected returns the open record, or nil
func (c *Controller) Selected() *models.Person { return c.selected }

// Detail returns the selected record's homeworld, nil until resolved
func (c *Controller) Detail() *models.Planet { return c.detail }

// DetailErr returns why the open selection's homeworld could not be resolved,
// nil while the lookup is pending or after it succeeded
func (c *Controller) DetailErr() error { return c.detailErr }

// PageUnits returns the pagination strip for the current state
func (c *Controller) PageUnits() []PageUnit {
	return PageUnits(c.page, c.totalPages)
}

// HasNextPage reports whether a page after the current one exists
func (c *Controller) HasNextPage() bool {
	return c.page < c.totalPages
}

// HasPrevPage reports whether a page before the current one exists
func (c *Controller) HasPrevPage() bool {
	return c.page > 1
}
