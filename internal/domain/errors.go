package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the flight search system.
var (
	// ErrInvalidRequest indicates the query is missing required fields or is malformed.
	// No network call is attempted when this is returned.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProviderUnavailable indicates the upstream provider could not be reached.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProviderTimeout indicates the upstream provider did not answer in time.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrRateLimited indicates the provider rejected the call with a rate-limit status.
	ErrRateLimited = errors.New("rate limited")

	// ErrBuildSuperseded indicates a newer calendar build for the same client started
	// and the results of this one were dropped.
	ErrBuildSuperseded = errors.New("build superseded by a newer request")
)

// ProviderError is returned for any non-success upstream response.
type ProviderError struct {
	// Provider is the upstream name (e.g., "amadeus")
	Provider string

	// Status is the HTTP-equivalent status code, 0 for transport failures
	Status int

	// Message is the upstream or transport message
	Message string

	// Err is the underlying cause, if any
	Err error
}

// NewProviderError creates a ProviderError from an upstream status and message.
func NewProviderError(provider string, status int, message string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Status:   status,
		Message:  message,
	}
}

// NewProviderTransportError wraps a transport-level failure (no status received).
func NewProviderTransportError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Message:  "transport failure",
		Err:      err,
	}
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	switch {
	case e.Status > 0 && e.Err != nil:
		return fmt.Sprintf("provider %s: status %d: %s: %v", e.Provider, e.Status, e.Message, e.Err)
	case e.Status > 0:
		return fmt.Sprintf("provider %s: status %d: %s", e.Provider, e.Status, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Message, e.Err)
	default:
		return fmt.Sprintf("provider %s: %s", e.Provider, e.Message)
	}
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the sentinel that describes this failure.
func (e *ProviderError) Is(target error) bool {
	switch target {
	case ErrRateLimited:
		return e.Status == http.StatusTooManyRequests
	case ErrProviderUnavailable:
		return e.Status == 0 || e.Status >= http.StatusInternalServerError
	}
	return false
}

// IsRetryable reports whether repeating the same call could succeed.
// Rate limiting is deliberately excluded: callers degrade instead of retrying.
func (e *ProviderError) IsRetryable() bool {
	return e.Status == 0 || e.Status >= http.StatusInternalServerError
}

// NewProviderTimeoutError creates an error for a provider that exceeded its deadline.
func NewProviderTimeoutError(provider string) error {
	return fmt.Errorf("provider %s: %w", provider, ErrProviderTimeout)
}

// ValidationError describes a single invalid query field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap makes every ValidationError match ErrInvalidRequest.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// WrapInvalidRequest formats a message and wraps it with ErrInvalidRequest.
func WrapInvalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// DataQualityFault reports upstream data that violates a model invariant.
// Callers substitute a safe default and keep going.
type DataQualityFault struct {
	Field  string
	Value  string
	Reason string
}

// NewDataQualityFault creates a DataQualityFault.
func NewDataQualityFault(field, value, reason string) *DataQualityFault {
	return &DataQualityFault{Field: field, Value: value, Reason: reason}
}

// Error implements the error interface.
func (f *DataQualityFault) Error() string {
	return fmt.Sprintf("data quality fault in %s (%q): %s", f.Field, f.Value, f.Reason)
}

// IsInvalidRequest checks if the error is or wraps ErrInvalidRequest.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsRateLimited checks if the error signals provider rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsProviderTimeout checks if the error is or wraps ErrProviderTimeout.
func IsProviderTimeout(err error) bool {
	return errors.Is(err, ErrProviderTimeout)
}

// IsBuildSuperseded checks if the error is or wraps ErrBuildSuperseded.
func IsBuildSuperseded(err error) bool {
	return errors.Is(err, ErrBuildSuperseded)
}

// AsProviderError extracts a *ProviderError from an error chain.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// AsDataQualityFault extracts a *DataQualityFault from an error chain.
func AsDataQualityFault(err error) (*DataQualityFault, bool) {
	var f *DataQualityFault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
