// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for title detection, imports and API responses

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents an error from an external API
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// DetectionErrorKind classifies why a title could not be detected
type DetectionErrorKind string

const (
	// NetworkFailure means the request was rejected or timed out
	NetworkFailure DetectionErrorKind = "network_failure"

	// HTTPFailure means the server answered with a non-2xx status
	HTTPFailure DetectionErrorKind = "http_failure"

	// ParseFailure means an XML or HTML parser gave up on the body
	ParseFailure DetectionErrorKind = "parse_failure"

	// TitleNotFound means parsing worked but no strategy located a title
	TitleNotFound DetectionErrorKind = "not_found"
)

// DetectionError describes a non-fatal title detection failure. These are logged and
// collapse into the domain fallback; they are never returned to API callers.
type DetectionError struct {
	Kind       DetectionErrorKind
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *DetectionError) Error() string {
	msg := fmt.Sprintf("title detection %s for %s", e.Kind, e.URL)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *DetectionError) Unwrap() error {
	return e.Err
}

// ImportErrorKind classifies file import failures
type ImportErrorKind string

const (
	// UnsupportedFormat means the file extension is not one we can import
	UnsupportedFormat ImportErrorKind = "unsupported_format"

	// MalformedFile means the file could not be parsed
	MalformedFile ImportErrorKind = "malformed"

	// EmptyImport means the file parsed but contained no usable feeds
	EmptyImport ImportErrorKind = "empty"
)

// ImportError is a recoverable, user-facing import problem. Existing entries are left
// untouched when it is returned.
type ImportError struct {
	Kind     ImportErrorKind
	Filename string
	Message  string
	Err      error
}

// Error implements the error interface
func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import %s: %s: %v", e.Filename, e.Message, e.Err)
	}
	return fmt.Sprintf("import %s: %s", e.Filename, e.Message)
}

// Unwrap returns the underlying cause
func (e *ImportError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// AsDetection returns the DetectionError in err's chain, if any
func AsDetection(err error) (*DetectionError, bool) {
	var detErr *DetectionError
	if errors.As(err, &detErr) {
		return detErr, true
	}
	return nil, false
}

// AsImport returns the ImportError in err's chain, if any
func AsImport(err error) (*ImportError, bool) {
	var importErr *ImportError
	if errors.As(err, &importErr) {
		return importErr, true
	}
	return nil, false
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
