// Package domain contains the core business entities and interfaces for the PIX gateway adapter.
package domain

import "context"

// Gateway defines the outbound capability for talking to the upstream PIX
// provider. The domain decides which URLs to try and in what order; the
// implementation owns headers, transport and the fallback loop.
type Gateway interface {
	// Create posts the creation payload to the first candidate URL. A second
	// candidate, when provided, is attempted at most once and only when the
	// primary rejects the endpoint shape itself (404/405).
	Create(ctx context.Context, urls []string, payload CreatePayload) (map[string]any, error)

	// FetchStatus tries each candidate URL in order and returns the first
	// successful response body. When every candidate fails it returns
	// ErrChargeNotFound, never the last transport error.
	FetchStatus(ctx context.Context, urls []string) (map[string]any, error)
}

// TransactionStore persists charge records. The adapter only appends and
// updates; it never queries this store on the request path, so every
// implementation failure is survivable.
type TransactionStore interface {
	// SaveCharge records a freshly created charge.
	SaveCharge(ctx context.Context, rec TransactionRecord) error

	// MarkStatus upserts the status reported by a webhook, keyed by the
	// merchant identifier with the gateway transaction id kept alongside.
	MarkStatus(ctx context.Context, identifier, transactionID, status string) error
}
