package structure

import (
	"errors"
	"fmt"
)

// ErrInputNotFound is returned when the structure file is missing or
// unreadable.
var ErrInputNotFound = errors.New("structure file not found")

// ErrSchema is the base error for schema violations.
var ErrSchema = errors.New("schema violation")

// ParseError is returned when a structure file is present but is not valid
// JSON or does not match the topic structure schema.
type ParseError struct {
	// Path is the structure file path.
	Path string
	// Err is the underlying decode or schema error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse structure %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
