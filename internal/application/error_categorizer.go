package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
)

// Classification is the outcome of inspecting a failed remote call.
//
// IsError and StatusCode are internal bookkeeping used to detect failure inside the
// transaction flows. They never reach the host: use ForHost.
type Classification struct {
	Error      domain.NormalizedError
	Surfaced   bool
	IsError    bool
	StatusCode int
}

// ForHost returns the error as the host's error-reporting layer sees it.
func (c Classification) ForHost() *domain.NormalizedError {
	e := c.Error
	return &e
}

// Classify maps a failed processor call onto the normalized error taxonomy.
// Errors without a structured body, and unknown error types, become a general error
// that is not surfaced to the host's input layer.
func Classify(err error) Classification {
	procErr, ok := IsProcessorError(err)
	if !ok || procErr.Type == "" {
		return Classification{
			Error:   *domain.NewGeneralError(),
			IsError: true,
		}
	}

	c := Classification{
		Surfaced:   true,
		IsError:    true,
		StatusCode: procErr.StatusCode,
	}

	switch procErr.Type {
	case ErrTypeInvalidRequest:
		c.Error = domain.NormalizedError{
			Kind:    domain.KindInvalidRequest,
			Field:   procErr.Param,
			Message: procErr.Message,
		}
	case ErrTypeAuthentication:
		// the remote message may echo the (invalid) key
		c.Error = domain.NormalizedError{
			Kind:    domain.KindAuth,
			Message: domain.MsgAuth,
		}
	case ErrTypeAPIConnection:
		c.Error = domain.NormalizedError{Kind: domain.KindAPIConnection, Message: procErr.Message}
	case ErrTypeAPI:
		c.Error = domain.NormalizedError{Kind: domain.KindAPI, Message: procErr.Message}
	case ErrTypeRateLimit:
		c.Error = domain.NormalizedError{Kind: domain.KindRateLimit, Message: procErr.Message}
	case ErrTypeCard:
		c.Error = domain.NormalizedError{
			Kind:    domain.KindCard,
			Field:   procErr.Code,
			Message: procErr.Message,
		}
	default:
		return Classification{
			Error:      *domain.NewGeneralError(),
			IsError:    true,
			StatusCode: procErr.StatusCode,
		}
	}

	return c
}

// ErrorLogPayload is what gets written as the response side of a failed call:
// the processor's error body when there is one, the classified error otherwise.
func ErrorLogPayload(err error, c Classification) any {
	if procErr, ok := IsProcessorError(err); ok && procErr.Type != "" {
		return procErr.Body()
	}
	return c.Error
}

// IsRetryable reports whether a failed processor call may be replayed.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	if procErr, ok := IsProcessorError(err); ok {
		if procErr.StatusCode >= http.StatusInternalServerError {
			return true
		}

		switch procErr.Type {
		case ErrTypeAPIConnection, ErrTypeRateLimit:
			return true
		}

		return procErr.StatusCode == http.StatusTooManyRequests
	}

	// transport failure, no response received
	return true
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	if normErr, ok := domain.IsNormalizedError(err); ok {
		switch normErr.Kind {
		case domain.KindInvalidRequest:
			return http.StatusBadRequest
		case domain.KindCard:
			return http.StatusPaymentRequired
		case domain.KindCustomerDeleted:
			return http.StatusConflict
		case domain.KindUnsupported:
			return http.StatusNotImplemented
		case domain.KindRateLimit:
			return http.StatusTooManyRequests
		default:
			return http.StatusBadGateway
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusRequestTimeout
	}

	return http.StatusInternalServerError
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	if normErr, ok := domain.IsNormalizedError(err); ok {
		return string(normErr.Kind)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrCodeTimeout
	}

	return ErrCodeInternal
}
