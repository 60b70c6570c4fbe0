package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrMissingToken      = errors.New("invite token missing")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrInvalidDraft      = errors.New("required fields missing")
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrSubmitInFlight    = errors.New("submission already in flight")
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
	ErrUnknownField      = errors.New("unknown field")
	ErrFieldType         = errors.New("value type does not match field")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound         ErrorKind = "not_found"
	KindInvalidConfig    ErrorKind = "invalid_config"
	KindInvalidInput     ErrorKind = "invalid_input"
	KindMissingToken     ErrorKind = "missing_token"
	KindValidation       ErrorKind = "validation"
	KindUnexpectedStatus ErrorKind = "unexpected_status"
	KindTransport        ErrorKind = "transport"
	KindServer           ErrorKind = "server"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path or URL
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// ServiceError is an error status returned by the auth service.
// Message holds the server-supplied "error" field and may be empty.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth service returned status %d", e.Status)
	}
	return fmt.Sprintf("auth service returned status %d: %s", e.Status, e.Message)
}

// ServerMessage returns the server-supplied message carried by err, if any.
func ServerMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}
