// Package errors provides coded error types for rack layout processing.
//
// Row-level validation failures, placement warnings, drag-and-drop problems
// and fatal ingestion failures all share one shape so callers can aggregate
// them, print them, and match them with Is.
//
//	err := errors.New(errors.ErrCodeOutOfRange, "start U %d outside 1..%d", u, max)
//	if errors.Is(err, errors.ErrCodeOutOfRange) {
//	    // skip the row
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Row validation (non-fatal, row skipped)
	ErrCodeMalformedNumber Code = "MALFORMED_NUMBER"
	ErrCodeOutOfRange      Code = "OUT_OF_RANGE"
	ErrCodeMissingLabel    Code = "MISSING_LABEL"

	// Placement warnings (non-fatal, grid fallback)
	ErrCodeMissingPlacementSheet Code = "MISSING_PLACEMENT_SHEET"
	ErrCodeMissingGroupColumn    Code = "MISSING_GROUP_COLUMN"
	ErrCodeDuplicateLocation     Code = "DUPLICATE_LOCATION"
	ErrCodeEmptyWorkbook         Code = "EMPTY_WORKBOOK"

	// Drag and drop (drop is a no-op)
	ErrCodeMalformedDragPayload Code = "MALFORMED_DRAG_PAYLOAD"
	ErrCodeCabinetNotFound      Code = "CABINET_NOT_FOUND"

	// Structural failures
	ErrCodeIngestionFailure  Code = "INGESTION_FAILURE"
	ErrCodeDuplicateCabinet  Code = "DUPLICATE_CABINET"
	ErrCodeStaleIngestion    Code = "STALE_INGESTION"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
