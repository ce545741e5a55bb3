package wistia

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the Wistia client.
var (
	// ErrMissingAPIKey indicates no API password was configured
	ErrMissingAPIKey = errors.New("missing API key: configure the client with your Wistia API password")
	// ErrInvalidBaseURL indicates the API base URL could not be built
	ErrInvalidBaseURL = errors.New("could not create the base URL for the API")
	// ErrNoResponse indicates the request never produced an HTTP response
	ErrNoResponse = errors.New("did not receive a response from Wistia")
	// ErrInvalidAPIKey indicates Wistia rejected the API password (HTTP 401)
	ErrInvalidAPIKey = errors.New("the API password you provided is invalid")
	// ErrNoData indicates the response body was empty or not valid JSON
	ErrNoData = errors.New("no data was returned for this request")
	// ErrEmptyResultSet indicates a list response contained no usable items
	ErrEmptyResultSet = errors.New("no items were found for the current request")
	// ErrNotFound indicates a single-item lookup returned no identifiable record
	ErrNotFound = errors.New("no record was returned for the hashed id provided")
	// ErrInvalidRequest indicates a malformed request descriptor
	ErrInvalidRequest = errors.New("invalid request, check your parameters and try again")
	// ErrInvalidIdentifier indicates a payload without a usable hashed id
	ErrInvalidIdentifier = errors.New("invalid or missing hashed id")
	// ErrRateLimited indicates the account exceeded the API rate limit (HTTP 429)
	ErrRateLimited = errors.New("rate limit exceeded, wait a minute before trying again")
	// ErrUnexpectedStatus indicates any other non-200 status in strict mode
	ErrUnexpectedStatus = errors.New("unexpected status code")
	// ErrNoMedias indicates a project payload that carried no media list
	ErrNoMedias = errors.New("project has no media list")
)

// APIError represents a non-200 response from the Wistia API
type APIError struct {
	StatusCode int
	Message    string
	Body       string
	Kind       error
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("wistia API error: status %d: %s", e.StatusCode, e.Message)
}

// Unwrap exposes the error kind so callers can use errors.Is
func (e *APIError) Unwrap() error {
	return e.Kind
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsRateLimited checks if the error indicates the rate limit was hit
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    http.StatusText(status),
		Body:       string(body),
	}

	switch status {
	case http.StatusUnauthorized:
		apiErr.Kind = ErrInvalidAPIKey
	case http.StatusNotFound:
		apiErr.Kind = ErrNotFound
	case http.StatusTooManyRequests:
		apiErr.Kind = ErrRateLimited
	default:
		apiErr.Kind = ErrUnexpectedStatus
	}

	return apiErr
}
