package domain

import (
	"errors"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// ValidationError values match it through errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownOutputKey is returned when a ResultSet is asked about a key
	// outside its fixed key set.
	ErrUnknownOutputKey = errors.New("unknown output key")

	// ErrDuplicateOutputKey is returned when a ResultSet is built with the
	// same output key twice.
	ErrDuplicateOutputKey = errors.New("duplicate output key")
)

// FieldError describes a single invalid field.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError reports every invalid field of a MeetingRequest.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// HasField reports whether the named field is among the invalid ones.
func (e *ValidationError) HasField(name string) bool {
	for _, f := range e.Fields {
		if f.Field == name {
			return true
		}
	}
	return false
}
