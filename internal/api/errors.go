package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("SWAPI error (status %d) for %s: %s", e.StatusCode, e.URL, e.Body)
	}
	return fmt.Sprintf("SWAPI error (status %d) for %s", e.StatusCode, e.URL)
}

// IsNotFound reports whether err is a 404 from the API.
// SWAPI answers 404 for pages past the end of a listing.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
