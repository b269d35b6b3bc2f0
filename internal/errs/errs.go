// Package errs provides a lightweight structured error type (ExpandError)
// for category-based classification of expansion failures in the CLI and
// the expansion pipeline.
package errs

import "fmt"

// Category represents the category of an expansion error for classification.
type Category string

const (
	// User-facing input errors
	CategoryConfig    Category = "config"
	CategoryDirective Category = "directive"

	// Symbol documentation errors
	CategoryResolution Category = "resolution"

	// Embedded code errors
	CategoryEvaluation Category = "evaluation"

	// Runtime and infrastructure errors
	CategoryFileSystem Category = "filesystem"
	CategoryInternal   Category = "internal"
)

// Severity indicates how critical an error is.
type Severity string

const (
	SeverityFatal   Severity = "fatal"   // Stops the build
	SeverityWarning Severity = "warning" // Build continues, entry or block degrades
)

// ExpandError is a structured error with category, severity, and context.
type ExpandError struct {
	Category Category      `json:"category"`
	Severity Severity      `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for ExpandError.
type ContextFields map[string]any

// Error implements the error interface.
func (e *ExpandError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling.
func (e *ExpandError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *ExpandError) WithContext(key string, value any) *ExpandError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new ExpandError.
func New(category Category, severity Severity, message string) *ExpandError {
	return &ExpandError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new ExpandError that wraps an existing error.
func Wrap(err error, category Category, severity Severity, message string) *ExpandError {
	return &ExpandError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// Fatal creates a build-stopping ExpandError.
func Fatal(category Category, message string) *ExpandError {
	return New(category, SeverityFatal, message)
}

// IsCategory checks if an error belongs to a specific category.
func IsCategory(err error, category Category) bool {
	if ee, ok := err.(*ExpandError); ok {
		return ee.Category == category
	}
	return false
}

// IsFatal checks if an error stops the build.
func IsFatal(err error) bool {
	if ee, ok := err.(*ExpandError); ok {
		return ee.Severity == SeverityFatal
	}
	// Unclassified errors escalate rather than disappear.
	return err != nil
}

// GetCategory extracts the category from an error, or CategoryInternal if it
// is not an ExpandError.
func GetCategory(err error) Category {
	if ee, ok := err.(*ExpandError); ok {
		return ee.Category
	}
	return CategoryInternal
}
