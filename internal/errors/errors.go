// Package errors defines stable error codes for every failure mode of a
// lint run, so callers can decide between aborting the run and isolating
// the failure to a single file.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ReadError indicates a file in the resolved set cannot be read.
	// Fatal for the whole run: an incomplete file set would produce
	// silently wrong include-based results.
	ReadError ErrorCode = "READ_ERROR"
	// ParseError indicates the grammar failed to produce a tree.
	// Isolated to the affected file.
	ParseError ErrorCode = "PARSE_ERROR"
	// PreprocessError indicates the preprocessor subprocess could not be
	// spawned or exited with a failure status. Isolated to the affected
	// file's complexity pass.
	PreprocessError ErrorCode = "PREPROCESS_ERROR"
	// PreprocessTimeout indicates the preprocessor exceeded its bounded wait.
	PreprocessTimeout ErrorCode = "PREPROCESS_TIMEOUT"
	// CircularInclude indicates an include cycle was detected during
	// translation-unit discovery. Fatal for the whole run.
	CircularInclude ErrorCode = "CIRCULAR_INCLUDE"
	// MalformedDirective indicates a line-marker directive could not be
	// parsed. Recoverable: the directive is skipped and realignment
	// continues best-effort.
	MalformedDirective ErrorCode = "MALFORMED_DIRECTIVE"
	// CacheError indicates the preprocessor cache database failed.
	CacheError ErrorCode = "CACHE_ERROR"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// LintError represents a clint error with a code, a human message, and
// the offending path when one exists.
type LintError struct {
	Code    ErrorCode
	Message string
	Path    string
	cause   error
}

// New creates a new LintError
func New(code ErrorCode, message string, cause error) *LintError {
	return &LintError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// NewPath creates a new LintError attributed to a file path
func NewPath(code ErrorCode, message string, path string, cause error) *LintError {
	return &LintError{
		Code:    code,
		Message: message,
		Path:    path,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *LintError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap returns the underlying error
func (e *LintError) Unwrap() error {
	return e.cause
}

// IsFatal reports whether the error must abort the whole run before any
// report is printed.
func (e *LintError) IsFatal() bool {
	switch e.Code {
	case ReadError, CircularInclude:
		return true
	}
	return false
}

// CodeOf extracts the ErrorCode from err, or InternalError if err is not
// a LintError.
func CodeOf(err error) ErrorCode {
	var le *LintError
	if errors.As(err, &le) {
		return le.Code
	}
	return InternalError
}
