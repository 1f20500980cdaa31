// Package errors provides a lightweight structured error type (WBuildError)
// for category-based classification of manifest, layout and build failures.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a wbuild error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Build and filesystem errors
	CategoryBuild      ErrorCategory = "build"
	CategoryFileSystem ErrorCategory = "filesystem"

	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// ErrorKind identifies which build layout invariant an error reports.
// It is empty for errors that are not tied to a specific invariant.
type ErrorKind string

const (
	KindPathResolution ErrorKind = "path_resolution"
	KindInvalidLayout  ErrorKind = "invalid_layout"
	KindNotADirectory  ErrorKind = "not_a_directory"
)

// WBuildError is a structured error with category, kind and context
type WBuildError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Kind     ErrorKind     `json:"kind,omitempty"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for WBuildError
type ContextFields map[string]any

// Error implements the error interface
func (e *WBuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for errors.Is / errors.As
func (e *WBuildError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *WBuildError) WithContext(key string, value any) *WBuildError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// WithKind tags the error with the invariant it reports.
func (e *WBuildError) WithKind(kind ErrorKind) *WBuildError {
	e.Kind = kind
	return e
}

// New creates a new WBuildError
func New(category ErrorCategory, severity ErrorSeverity, message string) *WBuildError {
	return &WBuildError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new WBuildError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *WBuildError {
	return &WBuildError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the first WBuildError in err's chain.
func As(err error) (*WBuildError, bool) {
	var wbe *WBuildError
	if stderrors.As(err, &wbe) {
		return wbe, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if wbe, ok := As(err); ok {
		return wbe.Category == category
	}
	return false
}

// IsKind checks if an error reports a specific layout invariant
func IsKind(err error, kind ErrorKind) bool {
	if wbe, ok := As(err); ok {
		return wbe.Kind == kind
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a WBuildError
func GetCategory(err error) ErrorCategory {
	if wbe, ok := As(err); ok {
		return wbe.Category
	}
	return CategoryInternal
}
