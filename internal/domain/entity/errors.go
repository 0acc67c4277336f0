package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLocationNotFound is returned by the resolver when no tier could map the
// input to an airport.
var ErrLocationNotFound = errors.New("location not found")

// ValidationError carries the itemized messages for a malformed request.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Messages, "; ")
}

// ResolutionError identifies which side of the itinerary failed to resolve.
type ResolutionError struct {
	Side  string // "departure" or "arrival"
	Input string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve %s location %q", e.Side, e.Input)
}

func (e *ResolutionError) Unwrap() error {
	return ErrLocationNotFound
}

// DataUnavailableError wraps a directory or fleet store failure.
type DataUnavailableError struct {
	Store string
	Err   error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("%s store unavailable: %v", e.Store, e.Err)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}
