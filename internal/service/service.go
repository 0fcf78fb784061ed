// Package service implements the marketplace business operations on top
// of the repository layer.
package service

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/venkyden/Roomivo/internal/service"

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name)
}

// APIError is a client-facing failure with an HTTP status. Anything
// else a service returns is treated as an internal error.
type APIError struct {
	Code    string
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(code, message string, status int) *APIError {
	return &APIError{Code: code, Message: message, Status: status}
}

func errMissingFields(message string) *APIError {
	return newAPIError("missing_fields", message, http.StatusBadRequest)
}

func errInvalidRequest(message string) *APIError {
	return newAPIError("invalid_request", message, http.StatusBadRequest)
}

func errNotFound(message string) *APIError {
	return newAPIError("not_found", message, http.StatusNotFound)
}

func errInvalidCredentials(message string) *APIError {
	return newAPIError("invalid_credentials", message, http.StatusUnauthorized)
}

func errForbidden() *APIError {
	return newAPIError("forbidden", "Unauthorized", http.StatusForbidden)
}
