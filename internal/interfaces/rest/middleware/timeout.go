package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application"
)

var timeoutBody = fmt.Sprintf(
	`{"success":false,"error":{"code":%q,"message":%q}}`,
	application.ErrCodeTimeout,
	application.NewTimeoutError().Message,
)

// Timeout bounds every request, including the remote calls it makes, by timeout.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)

			timeoutHandler := http.TimeoutHandler(next, timeout, timeoutBody)
			timeoutHandler.ServeHTTP(w, r)
		})
	}
}
