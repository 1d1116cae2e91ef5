package rest

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// WriteJSON writes data wrapped in a successful APIResponse.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	write(w, status, APIResponse{Success: true, Data: data})
}

// WriteError maps application errors to HTTP responses. Local infrastructure
// failures are reported with their generic message only.
func WriteError(w http.ResponseWriter, err error) {
	apiErr := &APIError{
		Code:    application.ToErrorCode(err),
		Message: "An internal error occurred",
	}

	if normErr, ok := domain.IsNormalizedError(err); ok {
		apiErr.Field = normErr.Field
		apiErr.Message = normErr.Message
	} else if svcErr, ok := application.IsServiceError(err); ok {
		apiErr.Message = svcErr.Message
		if svcErr.Code == application.ErrCodeInvalidInput && svcErr.Err != nil {
			apiErr.Message = svcErr.Error()
		}
	}

	write(w, application.ToHTTPStatus(err), APIResponse{Success: false, Error: apiErr})
}

// DecodeJSON reads the request body into dst. Unknown fields are ignored.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return application.NewInvalidInputError(err)
	}
	return nil
}

func write(w http.ResponseWriter, status int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
