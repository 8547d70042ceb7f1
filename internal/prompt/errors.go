package prompt

import "errors"

var (
	// ErrUnknownTemplate is returned when Build is asked for a template id the
	// builder does not know.
	ErrUnknownTemplate = errors.New("unknown prompt template")

	// ErrInvalidTemplate is returned when an override template fails to parse.
	ErrInvalidTemplate = errors.New("invalid prompt template")
)
