// Package domain contains the core business entities and interfaces for the PIX gateway adapter.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent the adapter's error taxonomy. Handlers map each of
// these to exactly one HTTP outcome, so callers can always tell "gateway
// unreachable" apart from "charge does not exist".
var (
	// ErrMissingCredentials is returned at startup when the gateway keys are absent.
	ErrMissingCredentials = errors.New("gateway credentials are not configured")

	// ErrInvalidCharge is returned when a ChargeRequest fails validation
	// before any network call is made.
	ErrInvalidCharge = errors.New("invalid charge request")

	// ErrChargeNotFound is returned when every status-endpoint candidate has
	// been exhausted. It deliberately replaces the last transport error so
	// callers see a uniform "not found" instead of transport noise.
	ErrChargeNotFound = errors.New("charge not found")

	// ErrGatewayUnreachable is returned when no response was received from
	// the gateway at all.
	ErrGatewayUnreachable = errors.New("payment gateway unreachable")
)

// UpstreamError carries a non-2xx gateway response verbatim. The status code
// and body are surfaced untouched so callers can react to gateway-specific
// error shapes.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gateway returned status %d: %s", e.StatusCode, string(e.Body))
}

// GatewayError wraps a domain error with caller-facing context.
type GatewayError struct {
	Err     error
	Message string
	Code    string
}

// Error implements the error interface.
func (e *GatewayError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap allows errors.Is and errors.As to work with GatewayError.
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewGatewayError creates a new GatewayError with the given error and message.
func NewGatewayError(err error, message, code string) *GatewayError {
	return &GatewayError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}
