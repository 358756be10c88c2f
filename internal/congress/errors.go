package congress

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrRateLimited matches APIError values carrying a 429 status, via
// errors.Is. The client retries these exactly once.
var ErrRateLimited = errors.New("rate limited")

// APIError is a non-2xx response from the Congress.gov API.
type APIError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("congress api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("congress api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *APIError) Is(target error) bool {
	return target == ErrRateLimited && e.StatusCode == http.StatusTooManyRequests
}

// NetworkError is a transport-level failure (timeout, DNS, connection
// reset) before any HTTP status was received.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("congress api: network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 response. The API uses 404
// for bills that do not exist, which callers treat as absence, not
// failure.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRateLimited reports whether err is a 429 response.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
