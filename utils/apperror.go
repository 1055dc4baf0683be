package utils

import "net/http"

// APIError is a service-level error that knows how it should be reported to
// the client. Anything without a status is treated as an internal error by
// RespondError.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) StatusCode() int {
	return e.Status
}

// ValidationError reports bad or missing input.
func ValidationError(message string) error {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

// NotFoundError reports an absent entity.
func NotFoundError(message string) error {
	return &APIError{Status: http.StatusNotFound, Message: message}
}

// StateConflictError reports an operation applied to an entity in the wrong
// lifecycle state.
func StateConflictError(message string) error {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

// PaymentFailedError reports a payment-domain failure (bad signature, slots
// gone). The booking is marked payment_failed before this is returned.
func PaymentFailedError(message string) error {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

// ServerError reports a persistence or infrastructure failure without
// leaking the cause.
func ServerError(message string) error {
	return &APIError{Status: http.StatusInternalServerError, Message: message}
}
