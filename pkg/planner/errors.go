package planner

import (
	"errors"
	"fmt"
)

// ErrInvalidStation matches every InvalidStationError.
var ErrInvalidStation = errors.New("invalid station name")

// InvalidStationError reports a station name missing from the gazetteer.
type InvalidStationError struct {
	Name string
}

func (e *InvalidStationError) Error() string {
	return fmt.Sprintf("invalid station name %q", e.Name)
}

func (e *InvalidStationError) Is(target error) bool {
	return target == ErrInvalidStation
}

// UpstreamError is a failed trip planner call: network failure, timeout or
// non-success status. Status is 0 when no response was received.
type UpstreamError struct {
	Message string
	Status  int
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
