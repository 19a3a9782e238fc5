package intelxaudit

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned by LoadConfig when no API key is available. It is the only fatal error.
	ErrMissingAPIKey = errors.New("environment variable " + APIKeyEnv + " is not set")

	// ErrQuotaExceeded signals an HTTP 402 from the search endpoint: the API limit was reached or the license expired.
	ErrQuotaExceeded = errors.New("API limit reached or license expired (HTTP 402)")

	// ErrConnection wraps transport level faults such as timeouts, DNS failures or refused connections.
	ErrConnection = errors.New("connection error")

	// ErrNoHandle is returned when a successful search response does not carry a search identifier.
	ErrNoHandle = errors.New("search response carried no id")

	// ErrInvalidHandle is returned for search ids that cannot be used in a file name.
	ErrInvalidHandle = errors.New("invalid search id")
)

// APIError is returned for any non-success status that has no dedicated error.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Body)
}

// DownloadError is returned when an export could not be downloaded completely.
// StatusCode is zero for faults that happened after the response headers were received.
type DownloadError struct {
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	}

	return e.Err.Error()
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
