// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels. Logs go to stdout, or to a size-rotated file
// when one is configured. Error attributes are passed through the redact
// package so provider credentials never reach a log sink.
package logger
