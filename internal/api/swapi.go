package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/holocron/internal/models"
	"golang.org/x/net/publicsuffix"
)

const (
	DefaultBaseURL = "https://swapi.dev/api"
	DefaultTimeout = 30 * time.Second
	userAgent      = "holocron/1.0"
	maxErrorBody   = 512
)

// Client is a SWAPI client
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *log.Logger // nil disables request logging
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger enables request logging
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a SWAPI client rooted at baseURL (DefaultBaseURL when empty)
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	// swapi.dev sits behind a CDN that sets cookies; keep them scoped per registrable domain
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PeopleURL builds the listing URL for a 1-indexed page
func (c *Client) PeopleURL(page int) string {
	return fmt.Sprintf("%s/people/?page=%s", c.baseURL, strconv.Itoa(page))
}

// FetchPeople fetches one page of people records
func (c *Client) FetchPeople(ctx context.Context, page int) (*models.PeoplePage, error) {
	var result models.PeoplePage
	if err := c.getJSON(ctx, c.PeopleURL(page), &result); err != nil {
		return nil, fmt.Errorf("failed to fetch people page %d: %w", page, err)
	}
	return &result, nil
}

// FetchSpecies dereferences a species URL taken from a record
func (c *Client) FetchSpecies(ctx context.Context, speciesURL string) (*models.Species, error) {
	var result models.Species
	if err := c.getJSON(ctx, speciesURL, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch species: %w", err)
	}
	return &result, nil
}

// FetchPlanet dereferences a homeworld URL taken from a record
func (c *Client) FetchPlanet(ctx context.Context, planetURL string) (*models.Planet, error) {
	var result models.Planet
	if err := c.getJSON(ctx, planetURL, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch homeworld: %w", err)
	}
	return &result, nil
}

// getJSON issues a GET and decodes a 2xx JSON body into out
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return fmt.Errorf("invalid resource URL %q: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		c.logError("Failed to create request", "url", rawURL, "error", err)
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Debug("GET", "endpoint", rawURL)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logError("Request failed", "url", rawURL, "error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if c.logger != nil {
		c.logger.Debug("Response", "url", rawURL, "status", resp.StatusCode, "elapsed", time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logError("API error", "status", resp.StatusCode, "url", rawURL, "response", string(body))
		return &APIError{StatusCode: resp.StatusCode, URL: rawURL, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) logError(msg string, keyvals ...any) {
	if c.logger != nil {
		c.logger.Error(msg, keyvals...)
	}
}
