// Package poi resolves nearby points of interest around a coordinate.
package poi

import (
	"errors"
	"fmt"
)

// ErrProviderUnavailable indicates the live POI provider could not answer.
// Callers fall back to the mock provider.
var ErrProviderUnavailable = errors.New("poi provider unavailable")

// Result is a single point of interest returned from a search.
type Result struct {
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Address    string   `json:"address"`
}

// Error provides structured error information for POI operations.
type Error struct {
	// Provider is the provider that generated the error.
	Provider string

	// Code is a machine-readable error code.
	Code string

	// Message is a human-readable error message.
	Message string

	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%s): %v", e.Provider, e.Message, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Provider, e.Message, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}
