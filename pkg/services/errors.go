// Package services provides the job management service layer and its
// standardized error types.
package services

import (
	"errors"
	"fmt"

	"github.com/paygrid/paygrid/pkg/persistence"
)

// Business logic errors. These indicate client errors (4xx responses).
var (
	// Validation errors (400 Bad Request).
	ErrInvalidRequest      = errors.New("invalid request")
	ErrJobNameRequired     = errors.New("job name is required")
	ErrJobNil              = errors.New("job cannot be nil")
	ErrInvalidNodeType     = errors.New("invalid node type")
	ErrInvalidEdge         = errors.New("edge references a missing node")
	ErrInvalidImport       = errors.New("invalid job import payload")
	ErrNodeNotDuplicable   = errors.New("node type cannot be duplicated")
	ErrNodeNotFound        = errors.New("node not found")
	ErrResourceNotInGraph  = errors.New("node is not a resource node")
	ErrTriggerNodeRequired = errors.New("job must have at least one trigger node")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error is a validation error that should
// return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrJobNameRequired) ||
		errors.Is(err, ErrJobNil) ||
		errors.Is(err, ErrInvalidNodeType) ||
		errors.Is(err, ErrInvalidEdge) ||
		errors.Is(err, ErrInvalidImport) ||
		errors.Is(err, ErrNodeNotDuplicable) ||
		errors.Is(err, ErrResourceNotInGraph) ||
		errors.Is(err, ErrTriggerNodeRequired)
}

// IsConflictError checks if an error should return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, persistence.ErrJobAlreadyExists)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
