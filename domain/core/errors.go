package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	ErrNotFound      = errors.New("resource not found")
	ErrTableNotFound = fmt.Errorf("%w: table", ErrNotFound)

	// Pivot and filter errors
	ErrInvalidHeader   = errors.New("invalid header row")
	ErrColumnNotFound  = errors.New("column not found")
	ErrIndexOutOfRange = errors.New("index out of range")

	// Source errors
	ErrUnsupportedSource = errors.New("unsupported sheet source")
	ErrSheetNotFound     = errors.New("sheet not found")
)

// NewInvalidHeaderError reports a header row problem at the given row
func NewInvalidHeaderError(row int, reason string) error {
	return fmt.Errorf("%w: row %d: %s", ErrInvalidHeader, row, reason)
}

// NewColumnNotFoundError reports a filter against an unknown header
func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, column)
}

// NewNotFoundError reports a missing resource by id
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidHeader(err error) bool {
	return errors.Is(err, ErrInvalidHeader)
}

func IsColumnNotFound(err error) bool {
	return errors.Is(err, ErrColumnNotFound)
}
