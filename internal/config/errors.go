package config

import "errors"

// Common errors returned by the config package.
var (
	// ErrMissingRequiredField is returned when a required field is absent.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrInvalidURL is returned when a configured URL cannot be parsed.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrInvalidValue is returned when a configured value is out of range.
	ErrInvalidValue = errors.New("invalid value")
)
