package pix

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telepix/pix-gateway/internal/domain"
)

type fakeGateway struct {
	createResponse map[string]any
	createErr      error
	createURLs     []string
	createPayload  domain.CreatePayload

	statusResponse map[string]any
	statusErr      error
	statusURLs     []string
}

func (g *fakeGateway) Create(_ context.Context, urls []string, payload domain.CreatePayload) (map[string]any, error) {
	g.createURLs = urls
	g.createPayload = payload
	return g.createResponse, g.createErr
}

func (g *fakeGateway) FetchStatus(_ context.Context, urls []string) (map[string]any, error) {
	g.statusURLs = urls
	return g.statusResponse, g.statusErr
}

type fakeStore struct {
	saved  []domain.TransactionRecord
	marked []string
}

func (s *fakeStore) SaveCharge(_ context.Context, rec domain.TransactionRecord) error {
	s.saved = append(s.saved, rec)
	return nil
}

func (s *fakeStore) MarkStatus(_ context.Context, identifier, transactionID, status string) error {
	s.marked = append(s.marked, identifier+"|"+transactionID+"|"+status)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(gw *fakeGateway, store domain.TransactionStore, secret string) *Service {
	return NewService(gw, store, Endpoints{Base: "https://gw.example.com/api"},
		"", NewWebhookVerifier(secret), testLogger())
}

func TestService_CreateCharge(t *testing.T) {
	gw := &fakeGateway{createResponse: map[string]any{
		"transactionId": "tx1",
		"status":        "pending",
		"pix":           map[string]any{"base64": "Q", "code": "0002abc"},
	}}
	store := &fakeStore{}
	svc := newTestService(gw, store, "")

	result, err := svc.CreateCharge(context.Background(), domain.ChargeRequest{
		Amount:     1000,
		ExternalID: "ord1",
	})
	require.NoError(t, err)

	assert.Equal(t, "tx1", result.TransactionID)
	assert.Equal(t, "pending", result.Status)
	assert.Equal(t, "Q", result.Pix.Base64)
	assert.Len(t, gw.createURLs, 2)
	assert.Equal(t, "ord1", gw.createPayload.Identifier)

	require.Len(t, store.saved, 1)
	assert.Equal(t, "ord1", store.saved[0].Identifier)
	assert.Equal(t, "tx1", store.saved[0].TransactionID)
	assert.Equal(t, float64(1000), store.saved[0].Amount)
}

func TestService_CreateCharge_ValidationFailsBeforeGateway(t *testing.T) {
	gw := &fakeGateway{}
	svc := newTestService(gw, nil, "")

	_, err := svc.CreateCharge(context.Background(), domain.ChargeRequest{Amount: 0})

	assert.ErrorIs(t, err, domain.ErrInvalidCharge)
	assert.Nil(t, gw.createURLs)
}

func TestService_CreateCharge_GatewayErrorNotPersisted(t *testing.T) {
	gw := &fakeGateway{createErr: &domain.UpstreamError{StatusCode: 422, Body: []byte(`{"message":"dup"}`)}}
	store := &fakeStore{}
	svc := newTestService(gw, store, "")

	_, err := svc.CreateCharge(context.Background(), domain.ChargeRequest{Amount: 10})

	assert.Error(t, err)
	assert.Empty(t, store.saved)
}

func TestService_CreateCharge_UnknownStatusRecordedAsPending(t *testing.T) {
	gw := &fakeGateway{createResponse: map[string]any{"id": "tx9"}}
	store := &fakeStore{}
	svc := newTestService(gw, store, "")

	_, err := svc.CreateCharge(context.Background(), domain.ChargeRequest{Amount: 10})
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	assert.Equal(t, domain.StatusPending, store.saved[0].Status)
}

func TestService_GetStatus(t *testing.T) {
	gw := &fakeGateway{statusResponse: map[string]any{"status": "paid"}}
	svc := newTestService(gw, nil, "")

	raw, err := svc.GetStatus(context.Background(), "tx1")
	require.NoError(t, err)

	assert.Equal(t, "paid", raw["status"])
	assert.Len(t, gw.statusURLs, 2)
}

func TestService_GetStatus_RequiresID(t *testing.T) {
	svc := newTestService(&fakeGateway{}, nil, "")

	_, err := svc.GetStatus(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrInvalidCharge)
}

func TestService_HandleWebhook_Persists(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(&fakeGateway{}, store, "")

	event := svc.HandleWebhook(context.Background(),
		[]byte(`{"transaction":{"id":"t1","identifier":"ext1","status":"paid"},"event":"charge.paid"}`), "")

	assert.Equal(t, "charge.paid", event.EventType)
	assert.Equal(t, []string{"ext1|t1|paid"}, store.marked)
}

func TestService_HandleWebhook_IdentifierFallsBackToTransactionID(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(&fakeGateway{}, store, "")

	svc.HandleWebhook(context.Background(), []byte(`{"id":"t2","status":"pending"}`), "")

	assert.Equal(t, []string{"t2|t2|pending"}, store.marked)
}

func TestService_HandleWebhook_UnverifiedNotPersisted(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(&fakeGateway{}, store, "shared-secret")

	event := svc.HandleWebhook(context.Background(), []byte(`{"id":"t3","status":"paid"}`), "")

	// The event is still returned so the HTTP layer can ack with 200.
	assert.Equal(t, "t3", event.TransactionID)
	assert.Empty(t, store.marked)
}

func TestService_HandleWebhook_MalformedBody(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(&fakeGateway{}, store, "")

	event := svc.HandleWebhook(context.Background(), []byte(`not json`), "")

	assert.Equal(t, domain.WebhookEvent{}, event)
	assert.Empty(t, store.marked)
}
