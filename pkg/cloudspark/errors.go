package cloudspark

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// ConfigurationError indicates required setup (credentials, an active
// bucket binding) is missing for the requested operation.
type ConfigurationError struct {
	Op     string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("cloudspark: %s: %s", e.Op, e.Reason)
}

// ValidationError indicates a caller-supplied argument failed a local
// precondition. It is always raised before any network call.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cloudspark: %s", e.Reason)
	}
	return fmt.Sprintf("cloudspark: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ProviderError wraps a rejection from the storage provider, preserving the
// service error code and message. Requests are never retried at this layer.
type ProviderError struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("cloudspark: %s: %s: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("cloudspark: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// providerError wraps err, pulling the code and message off the service
// error when present.
func providerError(op string, err error) error {
	pe := &ProviderError{Op: op, Err: err}
	var ae smithy.APIError
	if errors.As(err, &ae) {
		pe.Code = ae.ErrorCode()
		pe.Message = ae.ErrorMessage()
	}
	return pe
}
