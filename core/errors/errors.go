// Package errors provides standardized error types and helpers for the Harmonium codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrAmbiguous indicates a lookup matched more than one canonical form
	ErrAmbiguous = errors.New("ambiguous")
	// ErrInternal indicates an internal system error
	ErrInternal = errors.New("internal error")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
)

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "scale", "mode", "voicing")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// ParseError represents a parsing error for a symbol or document
type ParseError struct {
	Format  string // Format being parsed (e.g., "chord symbol", "note name", "MusicXML")
	Input   string // The offending input, if short enough to repeat
	Pos     int    // Byte position of the offending token, -1 when unknown
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Input != "" && e.Pos >= 0 {
		return fmt.Sprintf("failed to parse %s %q at offset %d: %s", e.Format, e.Input, e.Pos, e.Message)
	}
	if e.Input != "" {
		return fmt.Sprintf("failed to parse %s %q: %s", e.Format, e.Input, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// AmbiguityError indicates that a structure matched more than one canonical
// base form. This is a registry defect, not a recoverable input error.
type AmbiguityError struct {
	Subject string   // What was being resolved
	Matches []string // The conflicting canonical names
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("ambiguous %s: matches %v", e.Subject, e.Matches)
}

func (e *AmbiguityError) Unwrap() error {
	return ErrAmbiguous
}

// DegreeError represents a scale or chord degree outside its legal range
type DegreeError struct {
	Degree int    // The offending degree
	Limit  int    // The highest legal degree
	Op     string // Operation that rejected the degree
}

func (e *DegreeError) Error() string {
	return fmt.Sprintf("%s: degree %d out of range 1..%d", e.Op, e.Degree, e.Limit)
}

func (e *DegreeError) Unwrap() error {
	return ErrInvalidInput
}

// VoicingError represents an illegal voicing transformation
type VoicingError struct {
	Voicing string // Voicing name or pattern
	Message string // Why it cannot be applied
}

func (e *VoicingError) Error() string {
	return fmt.Sprintf("cannot apply voicing %s: %s", e.Voicing, e.Message)
}

func (e *VoicingError) Unwrap() error {
	return ErrInvalidInput
}

// UnsupportedError represents an unsupported feature or format
type UnsupportedError struct {
	Feature string // Feature or format that is unsupported
	Reason  string // Why it's not supported
	Err     error  // Underlying error, if any
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupported
}

// Helper functions for creating common errors

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewParse creates a ParseError with an unknown position
func NewParse(format, input, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Input:   input,
		Pos:     -1,
		Message: message,
	}
}

// NewParseAt creates a ParseError with a byte offset
func NewParseAt(format, input string, pos int, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Input:   input,
		Pos:     pos,
		Message: message,
	}
}

// NewAmbiguity creates an AmbiguityError
func NewAmbiguity(subject string, matches []string) *AmbiguityError {
	return &AmbiguityError{
		Subject: subject,
		Matches: matches,
	}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
