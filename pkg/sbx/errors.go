package sbx

import (
	"errors"
	"fmt"
)

// Static errors for err113 compliance.
var (
	// ErrConfigRequired is returned when a client is constructed without a
	// configuration.
	ErrConfigRequired = errors.New("config is required")
	// ErrBaseURLRequired is returned when the configuration has no base URL.
	ErrBaseURLRequired = errors.New("base URL is required")
	// ErrAppKeyRequired is returned when the configuration has no app key.
	ErrAppKeyRequired = errors.New("app key is required")
	// ErrAppConfigNotLoaded is returned by Client.Config before LoadConfig
	// has succeeded.
	ErrAppConfigNotLoaded = errors.New("app config not loaded")
	// ErrEmptyRowModel is returned when a query has no row model.
	ErrEmptyRowModel = errors.New("row model is empty")
	// ErrNotFound is returned by lookups that matched no row.
	ErrNotFound = errors.New("row not found")
	// ErrMissingEnv is returned by NewFromEnv when a required environment
	// variable is unset.
	ErrMissingEnv = errors.New("missing environment variable")
)

// APIError is a failure reported in-band by the backend: a response whose
// success flag is not true. Detail carries the response's error field and
// Message its message field.
type APIError struct {
	Detail  string
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.Detail != "" && e.Message != "":
		return fmt.Sprintf("sbx: %s: %s", e.Detail, e.Message)
	case e.Detail != "":
		return "sbx: " + e.Detail
	case e.Message != "":
		return "sbx: " + e.Message
	default:
		return "sbx: request failed"
	}
}

// AsAPIError unwraps err into an *APIError if one is in its chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// IsNotFound reports whether err indicates a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
