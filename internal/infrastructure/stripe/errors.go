package stripe

import (
	"errors"
	"fmt"

	stripeapi "github.com/stripe/stripe-go/v79"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application"
)

// toProcessorError converts an SDK error into the processor error the application
// understands. Errors without a structured body (transport failures) are wrapped as is.
func toProcessorError(err error) error {
	var stripeErr *stripeapi.Error
	if errors.As(err, &stripeErr) {
		return &application.ProcessorError{
			Type:       string(stripeErr.Type),
			Code:       string(stripeErr.Code),
			Param:      stripeErr.Param,
			Message:    stripeErr.Msg,
			StatusCode: stripeErr.HTTPStatusCode,
			ChargeID:   stripeErr.ChargeID,
			RequestID:  stripeErr.RequestID,
		}
	}
	return fmt.Errorf("stripe request failed: %w", err)
}
