package pix

import (
	"context"
	"log/slog"
	"time"

	"github.com/telepix/pix-gateway/internal/domain"
	"github.com/telepix/pix-gateway/internal/metrics"
)

// Service orchestrates the adapter's three flows: charge creation, status
// queries and webhook ingestion. It is stateless beyond its read-only wiring,
// so any number of requests may run through it concurrently.
type Service struct {
	gateway        domain.Gateway
	store          domain.TransactionStore
	endpoints      Endpoints
	webhookBaseURL string
	verifier       *WebhookVerifier
	logger         *slog.Logger
}

// NewService creates a new service with the required dependencies. The store
// may be nil; persistence is best-effort and never on the critical path.
func NewService(
	gateway domain.Gateway,
	store domain.TransactionStore,
	endpoints Endpoints,
	webhookBaseURL string,
	verifier *WebhookVerifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		gateway:        gateway,
		store:          store,
		endpoints:      endpoints,
		webhookBaseURL: webhookBaseURL,
		verifier:       verifier,
		logger:         logger,
	}
}

// CreateCharge handles the creation flow:
// 1. Validates the request and builds the canonical upstream payload
// 2. Resolves the creation endpoint(s)
// 3. Calls the gateway
// 4. Normalizes the response into the canonical ChargeResult
// 5. Records the transaction, best-effort
func (s *Service) CreateCharge(ctx context.Context, req domain.ChargeRequest) (domain.ChargeResult, error) {
	payload, err := BuildCreatePayload(req, s.webhookBaseURL)
	if err != nil {
		metrics.ChargeFailures.Inc()
		return domain.ChargeResult{}, err
	}

	raw, err := s.gateway.Create(ctx, s.endpoints.CreateURLs(), payload)
	if err != nil {
		metrics.ChargeFailures.Inc()
		s.logger.Error("charge creation failed",
			"identifier", payload.Identifier, "error", err)
		return domain.ChargeResult{}, err
	}

	result := NormalizeCreateResponse(raw)
	metrics.ChargesCreated.Inc()
	s.logger.Info("charge created",
		"identifier", payload.Identifier,
		"transaction_id", result.TransactionID,
		"status", result.Status)

	s.persistCharge(ctx, payload, result)

	return result, nil
}

// GetStatus queries the gateway for a charge's current state and returns the
// upstream body verbatim. Exhausting every endpoint candidate yields
// ErrChargeNotFound.
func (s *Service) GetStatus(ctx context.Context, transactionID string) (map[string]any, error) {
	if transactionID == "" {
		return nil, domain.NewGatewayError(domain.ErrInvalidCharge,
			"transaction id is required",
			"VALIDATION_ERROR")
	}

	return s.gateway.FetchStatus(ctx, s.endpoints.StatusURLs(transactionID))
}

// HandleWebhook ingests a gateway notification. It never returns an error:
// the HTTP layer acknowledges with 200 no matter what, and this method only
// decides whether the event is trustworthy enough to persist.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature string) domain.WebhookEvent {
	event := IngestWebhook(body)
	metrics.WebhooksReceived.Inc()

	if !s.verifier.Verify(body, signature, event.Token) {
		metrics.WebhooksRejected.Inc()
		s.logger.Warn("webhook failed verification, ignoring",
			"transaction_id", event.TransactionID, "event", event.EventType)
		return event
	}

	s.logger.Info("webhook received",
		"event", event.EventType,
		"transaction_id", event.TransactionID,
		"status", event.Status)

	s.persistWebhook(ctx, event)

	return event
}

func (s *Service) persistCharge(ctx context.Context, payload domain.CreatePayload, result domain.ChargeResult) {
	if s.store == nil {
		return
	}

	status := result.Status
	if status == domain.StatusUnknown {
		status = domain.StatusPending
	}

	rec := domain.TransactionRecord{
		Identifier:    payload.Identifier,
		TransactionID: result.TransactionID,
		Amount:        payload.Amount,
		Status:        status,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.SaveCharge(ctx, rec); err != nil {
		s.logger.Error("failed to persist charge", "identifier", rec.Identifier, "error", err)
	}
}

func (s *Service) persistWebhook(ctx context.Context, event domain.WebhookEvent) {
	if s.store == nil || event.Status == "" {
		return
	}

	identifier := event.ExternalIdentifier
	if identifier == "" {
		identifier = event.TransactionID
	}
	if identifier == "" {
		return
	}

	if err := s.store.MarkStatus(ctx, identifier, event.TransactionID, event.Status); err != nil {
		s.logger.Error("failed to persist webhook status",
			"identifier", identifier, "error", err)
	}
}
