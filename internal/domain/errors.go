package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the normalized vocabulary for every failure reported to the host.
type ErrorKind string

const (
	KindAuth            ErrorKind = "auth"
	KindInvalidRequest  ErrorKind = "invalid_request"
	KindAPIConnection   ErrorKind = "api_connection"
	KindAPI             ErrorKind = "api"
	KindRateLimit       ErrorKind = "rate_limit"
	KindCard            ErrorKind = "card"
	KindGeneral         ErrorKind = "general"
	KindUnsupported     ErrorKind = "unsupported"
	KindCustomerDeleted ErrorKind = "customer_deleted"
)

// Fixed, locally owned messages. Remote text never replaces these.
const (
	MsgAuth            = "Could not authenticate with the Stripe gateway."
	MsgGeneral         = "An unexpected error occurred while communicating with the gateway."
	MsgUnsupported     = "This action is not supported by the gateway."
	MsgCustomerDeleted = "The requested customer has been manually deleted."
	MsgRefundFailed    = "Request to process refund failed."
	MsgDeclined        = "Your card was declined."
)

// NormalizedError is the host-facing form of a failed gateway operation.
// Field is only set for invalid_request (rejected parameter) and card (decline code) errors.
type NormalizedError struct {
	Kind    ErrorKind `json:"kind"`
	Field   string    `json:"field,omitempty"`
	Message string    `json:"message"`
}

func (e *NormalizedError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewUnsupportedError() *NormalizedError {
	return &NormalizedError{
		Kind:    KindUnsupported,
		Message: MsgUnsupported,
	}
}

func NewCustomerDeletedError() *NormalizedError {
	return &NormalizedError{
		Kind:    KindCustomerDeleted,
		Field:   "customer",
		Message: MsgCustomerDeleted,
	}
}

func NewGeneralError() *NormalizedError {
	return &NormalizedError{
		Kind:    KindGeneral,
		Message: MsgGeneral,
	}
}

func IsNormalizedError(err error) (*NormalizedError, bool) {
	var normErr *NormalizedError
	ok := errors.As(err, &normErr)
	return normErr, ok
}

// IsErrorKind checks if an error is a NormalizedError of a specific kind
func IsErrorKind(err error, kind ErrorKind) bool {
	if normErr, ok := IsNormalizedError(err); ok {
		return normErr.Kind == kind
	}
	return false
}
