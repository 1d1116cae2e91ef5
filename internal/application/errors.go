package application

import (
	"errors"
	"fmt"
	"net/http"
)

// PROCESSOR ERRORS (remote boundary)

// Processor error types as sent in the error body.
const (
	ErrTypeInvalidRequest = "invalid_request_error"
	ErrTypeAuthentication = "authentication_error"
	ErrTypeAPIConnection  = "api_connection_error"
	ErrTypeAPI            = "api_error"
	ErrTypeRateLimit      = "rate_limit_error"
	ErrTypeCard           = "card_error"
)

// ProcessorError is a failed processor call that came back with a structured error body.
type ProcessorError struct {
	Type       string
	Code       string
	Param      string
	Message    string
	StatusCode int
	ChargeID   string
	RequestID  string
}

func (e *ProcessorError) Error() string {
	return fmt.Sprintf("processor error [%s/%s]: %s (status: %d)", e.Type, e.Code, e.Message, e.StatusCode)
}

func (e *ProcessorError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Body renders the error the way the processor sent it, for the call log.
func (e *ProcessorError) Body() map[string]any {
	body := map[string]any{
		"type":    e.Type,
		"message": e.Message,
	}
	if e.Code != "" {
		body["code"] = e.Code
	}
	if e.Param != "" {
		body["param"] = e.Param
	}
	if e.ChargeID != "" {
		body["charge"] = e.ChargeID
	}
	return map[string]any{"error": body}
}

func IsProcessorError(err error) (*ProcessorError, bool) {
	var procErr *ProcessorError
	ok := errors.As(err, &procErr)
	return procErr, ok
}

// APPLICATION-LEVEL ERRORS (local infrastructure)

type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeTimeout      = "TIMEOUT"
)

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInvalidInputError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInvalidInput,
		Message:    "Invalid input",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewTimeoutError() *ServiceError {
	return &ServiceError{
		Code:       ErrCodeTimeout,
		Message:    "Request timed out waiting for the gateway",
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}
