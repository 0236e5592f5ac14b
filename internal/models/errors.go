package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the application.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDataSource         = errors.New("data source failure")
	ErrDegenerateGeometry = errors.New("bounding box is not finite")
)

// InvalidInputError is returned when a user supplied value cannot be used as a number.
type InvalidInputError struct {
	Field string // Field is the name of the input, e.g. "Longitude".
	Value string // Value is the raw text that was rejected.
	Err   error  // Err is the underlying parse or range error.
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s must be an float value, got %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap allows errors.Is(err, ErrInvalidInput) as well as matching the cause.
func (e *InvalidInputError) Unwrap() []error {
	return []error{ErrInvalidInput, e.Err}
}

// DataSourceError wraps any failure of the external airport data source.
type DataSourceError struct {
	Provider string // Provider is the data source type, e.g. "cloudant".
	Err      error  // Err is the underlying failure.
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("%s data source: %v", e.Provider, e.Err)
}

// Unwrap allows errors.Is(err, ErrDataSource) as well as matching the cause.
func (e *DataSourceError) Unwrap() []error {
	return []error{ErrDataSource, e.Err}
}
