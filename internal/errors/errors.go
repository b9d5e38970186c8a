package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nf, ok := err.(*NotFoundError); ok {
		return nf, true
	}
	return nil, false
}

// ConflictError reports an optimistic update that lost: the persisted status
// changed between read and write. Request handlers surface it as "order
// already progressed"; the scheduler treats it as a benign no-op.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	if ce, ok := err.(*ConflictError); ok {
		return ce, true
	}
	return nil, false
}

// InvalidTransitionError reports a lifecycle event that is not valid from the
// order's current status. It never corrupts persisted state.
type InvalidTransitionError struct {
	From  string
	Event string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: event %q not allowed from status %q", e.Event, e.From)
}

func NewInvalidTransitionError(from, event string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Event: event}
}

func IsInvalidTransitionError(err error) (*InvalidTransitionError, bool) {
	if it, ok := err.(*InvalidTransitionError); ok {
		return it, true
	}
	return nil, false
}

type EmptyOrderError struct {
	Message string
}

func (e *EmptyOrderError) Error() string {
	return e.Message
}

func NewEmptyOrderError(message string) *EmptyOrderError {
	return &EmptyOrderError{Message: message}
}

func IsEmptyOrderError(err error) (*EmptyOrderError, bool) {
	if eo, ok := err.(*EmptyOrderError); ok {
		return eo, true
	}
	return nil, false
}

// TransientError wraps a store failure caused by timeout or connectivity.
// The scheduler retries on the next tick; request paths surface it as 503.
type TransientError struct {
	Message string
	Cause   error
}

func (e *TransientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TransientError) Unwrap() error {
	return e.Cause
}

func NewTransientError(message string, cause error) *TransientError {
	return &TransientError{Message: message, Cause: cause}
}

func IsTransientError(err error) (*TransientError, bool) {
	if te, ok := err.(*TransientError); ok {
		return te, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
