package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions rejected before any forecast fetch.
var (
	// ErrEmptyQuery rejects empty (after trimming) search input. No
	// network call is made.
	ErrEmptyQuery = errors.New("empty search query")

	// ErrNotFound is returned when geocoding yields zero results. No
	// forecast fetch is issued.
	ErrNotFound = errors.New("location not found")
)

// TransportError wraps a network or decoding failure from either upstream
// endpoint. Previously rendered and persisted state is left untouched.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// LocationAccessError wraps a geolocation denial, failure or timeout.
type LocationAccessError struct {
	Err error
}

func (e *LocationAccessError) Error() string {
	return fmt.Sprintf("location access failed: %v", e.Err)
}

func (e *LocationAccessError) Unwrap() error { return e.Err }
