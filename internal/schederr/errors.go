// Package schederr defines the typed, recoverable error kinds the workload
// parser and scheduler raise (spec.md §7). Modeled on noah-isme/sma-adp-api's
// pkg/errors: a typed Code/Message/wrapped-cause struct with New/Wrap
// helpers, minus the HTTP status field this core has no use for.
package schederr

import (
	"errors"
	"fmt"
)

// Kind is one of the recoverable error kinds named in spec.md §7.
type Kind string

const (
	SheetNotFound            Kind = "SHEET_NOT_FOUND"
	DataStartNotFound        Kind = "DATA_START_NOT_FOUND"
	InstructorColumnNotFound Kind = "INSTRUCTOR_COLUMN_NOT_FOUND"
	InvalidHours             Kind = "INVALID_HOURS"
	InvalidData              Kind = "INVALID_DATA"
	InvalidGroupCode         Kind = "INVALID_GROUP_CODE"
)

// Error is a typed domain error carrying optional (sheet, row) context
// for the warnings spec.md §7 describes.
type Error struct {
	Kind    Kind
	Message string
	Sheet   string
	Row     int
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	ctx := ""
	if e.Sheet != "" {
		ctx = fmt.Sprintf(" (sheet %q row %d)", e.Sheet, e.Row)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s%s: %s: %v", e.Kind, ctx, e.Message, e.Err)
	}
	return fmt.Sprintf("%s%s: %s", e.Kind, ctx, e.Message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates an Error with no sheet/row context.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithContext attaches sheet/row context to an existing error, returning a
// copy (the original is left untouched).
func (e *Error) WithContext(sheet string, row int) *Error {
	clone := *e
	clone.Sheet = sheet
	clone.Row = row
	return &clone
}

// Wrap attaches context to an existing error.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// FromError normalizes any error into an *Error, defaulting to InvalidData
// when it isn't already typed.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, InvalidData, "unexpected error")
}
