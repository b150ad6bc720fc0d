// Package http provides the JSON API server and its handlers.
//
// This file implements the Builder Pattern for constructing JSON responses
// so every handler renders the same envelopes.

package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/glensd/personalExpenseTracker/internal/core"
)

const (
	msgValidationFailed = "Validation failed."
	msgUnauthorized     = "Unauthorized"
	msgInvalidPayload   = "Invalid request payload"
	msgInternalError    = "Internal server error"
	msgCategoryMissing  = "Category not found or has been deleted."
)

// dataEnvelope is the {status, message, data} body of most responses.
type dataEnvelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type statusEnvelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

// JSONResponseBuilder provides a fluent API for building JSON responses.
type JSONResponseBuilder struct {
	statusCode int
	headers    map[string]string
	payload    any
}

// NewJSONResponse creates a new response builder with default 200 status.
func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

// Header adds a custom header to the response.
func (b *JSONResponseBuilder) Header(name, value string) *JSONResponseBuilder {
	b.headers[name] = value
	return b
}

// Payload sets the value encoded as the response body.
func (b *JSONResponseBuilder) Payload(v any) *JSONResponseBuilder {
	b.payload = v
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(b.statusCode)

	if b.payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(b.payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err, "status", b.statusCode)
	}
}

// DataResponse creates a successful {status, message, data} response.
func DataResponse(statusCode int, message string, data any) *JSONResponseBuilder {
	return NewJSONResponse().
		Status(statusCode).
		Payload(dataEnvelope{Status: true, Message: message, Data: data})
}

// MessageResponse creates a {message} response.
func MessageResponse(statusCode int, message string) *JSONResponseBuilder {
	return NewJSONResponse().
		Status(statusCode).
		Payload(messageEnvelope{Message: message})
}

// ErrorResponse creates a {status:false, message} response.
func ErrorResponse(statusCode int, message string) *JSONResponseBuilder {
	return NewJSONResponse().
		Status(statusCode).
		Payload(statusEnvelope{Status: false, Message: message})
}

// ValidationFailed creates a 422 response listing the messages per field.
func ValidationFailed(verr *core.ValidationError) *JSONResponseBuilder {
	return NewJSONResponse().
		Status(http.StatusUnprocessableEntity).
		Payload(dataEnvelope{Status: false, Message: msgValidationFailed, Data: verr.Fields})
}

// NotFoundError creates a 404 response with a null data member.
func NotFoundError(message string) *JSONResponseBuilder {
	return NewJSONResponse().
		Status(http.StatusNotFound).
		Payload(dataEnvelope{Status: false, Message: message})
}

// BadRequestError creates a 400 Bad Request error response.
func BadRequestError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, message)
}

// UnauthorizedError creates a 401 response.
func UnauthorizedError() *JSONResponseBuilder {
	return ErrorResponse(http.StatusUnauthorized, msgUnauthorized)
}

// ForbiddenError creates a 403 response. The message matches the 401 one.
func ForbiddenError() *JSONResponseBuilder {
	return ErrorResponse(http.StatusForbidden, msgUnauthorized)
}

// InternalServerError creates a 500 Internal Server Error response.
func InternalServerError() *JSONResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, msgInternalError)
}

// MethodNotAllowedError creates a 405 Method Not Allowed error response.
func MethodNotAllowedError() *JSONResponseBuilder {
	return ErrorResponse(http.StatusMethodNotAllowed, "Method not allowed")
}

// TooManyRequestsError creates a 429 response. The limiter sets Retry-After.
func TooManyRequestsError() *JSONResponseBuilder {
	return ErrorResponse(http.StatusTooManyRequests, "Too many requests. Please try again later.")
}
