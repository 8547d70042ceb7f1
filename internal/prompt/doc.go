// Package prompt turns a validated MeetingRequest into the provider prompt for
// each document. Templates are text/template files embedded in the binary; a
// directory configured at startup may override any of them by file name.
package prompt
