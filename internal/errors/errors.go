// Package errors provides centralized error definitions and error handling utilities
// for tourline. It defines domain-specific errors, semantic error types, error
// constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// Domain-specific errors represent failures of a specific part of a run:
//   - SetupError: a required directory is missing, nothing was processed
//   - TourError: a single tour file could not be read, parsed, or written
//
// Semantic errors represent common error conditions:
//   - NotFoundError: resource not found
//   - ValidationError: invalid input or state
//
// # Usage
//
//	err := errors.NewSetupError(toursDir, searchDir, errors.ErrDirectoryMissing)
//	if errors.Is(err, errors.ErrDirectoryMissing) { ... }
//
//	var tourErr *errors.TourError
//	if errors.As(err, &tourErr) {
//	    fmt.Println(tourErr.Tour)
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is   = errors.Is
	As   = errors.As
	New  = errors.New
	Join = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that abort a run before any work is done.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrDirectoryMissing indicates that the tours directory or the
	// search-strings directory does not exist.
	ErrDirectoryMissing = New("directory does not exist")
	// ErrMalformedTour indicates that a tour file is not a JSON object with a
	// steps array.
	ErrMalformedTour = New("malformed tour file")
	// ErrArtifactInvalid indicates that a search-strings artifact could not be
	// decoded into a list of directives.
	ErrArtifactInvalid = New("invalid search-strings artifact")
	// ErrSourceUnreadable indicates that a step's source file could not be read.
	ErrSourceUnreadable = New("source file unreadable")
	// ErrTourExists indicates that a generated tour would replace an existing
	// file.
	ErrTourExists = New("tour already exists")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// TourlineError is the base interface for all tourline errors.
type TourlineError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error {
	return e.cause
}

func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

func (e *baseError) Severity() Severity {
	return e.severity
}

func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// SetupError is returned before any tour is processed when one of the
// required directories is missing. Its message always names both paths.
//
// Example:
//
//	err := errors.NewSetupError("/repo/.tours", "/repo/.tours/search-strings", errors.ErrDirectoryMissing)
//	fmt.Println(err) // "setup error: one of the directories does not exist: /repo/.tours or /repo/.tours/search-strings: directory does not exist"
type SetupError struct {
	baseError
	ToursDir         string
	SearchStringsDir string
}

// NewSetupError creates a new SetupError.
func NewSetupError(toursDir, searchStringsDir string, cause error) *SetupError {
	return &SetupError{
		baseError: baseError{
			message:    fmt.Sprintf("one of the directories does not exist: %s or %s", toursDir, searchStringsDir),
			cause:      cause,
			severity:   SeverityCritical,
			userFacing: true,
		},
		ToursDir:         toursDir,
		SearchStringsDir: searchStringsDir,
	}
}

// Error returns the formatted error message.
func (e *SetupError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("setup error: %s: %v", e.message, e.cause)
	}
	return fmt.Sprintf("setup error: %s", e.message)
}

// Is checks if this error matches the target.
func (e *SetupError) Is(target error) bool {
	if _, ok := target.(*SetupError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// TourError represents a failure while processing one tour file.
//
// Example:
//
//	err := errors.NewTourError("failed to parse tour", errors.ErrMalformedTour)
//	err = err.WithTour("demo.tour").WithStep(3)
type TourError struct {
	baseError
	Tour      string
	Artifact  string
	StepIndex int
}

// NewTourError creates a new TourError.
func NewTourError(message string, cause error) *TourError {
	return &TourError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
		StepIndex: -1, // -1 indicates not set
	}
}

// WithTour adds the tour file name to the error context.
func (e *TourError) WithTour(name string) *TourError {
	e.Tour = name
	return e
}

// WithArtifact adds the search-strings artifact path to the error context.
func (e *TourError) WithArtifact(path string) *TourError {
	e.Artifact = path
	return e
}

// WithStep adds a step index to the error context.
func (e *TourError) WithStep(idx int) *TourError {
	e.StepIndex = idx
	return e
}

// Error returns the formatted error message.
func (e *TourError) Error() string {
	var parts []string
	if e.Tour != "" {
		parts = append(parts, fmt.Sprintf("tour=%s", e.Tour))
	}
	if e.Artifact != "" {
		parts = append(parts, fmt.Sprintf("artifact=%s", e.Artifact))
	}
	if e.StepIndex >= 0 {
		parts = append(parts, fmt.Sprintf("step=%d", e.StepIndex))
	}

	prefix := "tour error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("tour error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *TourError) Is(target error) bool {
	if _, ok := target.(*TourError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("source file", "src/app.ts")
//	fmt.Println(err) // "source file 'src/app.ts' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("search string cannot be empty")
//	err = err.WithField("search").WithValue("")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var tlErr TourlineError
	if As(err, &tlErr) {
		return tlErr.IsUserFacing()
	}

	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement TourlineError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var tlErr TourlineError
	if As(err, &tlErr) {
		return tlErr.Severity()
	}

	return SeverityError
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to read %s", path)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
