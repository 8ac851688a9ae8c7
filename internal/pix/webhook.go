package pix

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/telepix/pix-gateway/internal/domain"
)

// IngestWebhook flattens a gateway notification into a WebhookEvent. It never
// fails: the gateway must always receive a 200 acknowledgment to avoid retry
// storms, so malformed or partial payloads simply yield empty fields.
//
// Notifications come in two shapes. Newer gateway revisions nest the charge
// under a transaction object; older ones keep the same fields at the top level.
func IngestWebhook(body []byte) domain.WebhookEvent {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.WebhookEvent{}
	}

	event := domain.WebhookEvent{
		EventType: stringField(raw, "event"),
		Token:     stringField(raw, "token"),
	}

	if tx, ok := raw["transaction"].(map[string]any); ok {
		event.TransactionID = stringField(tx, "id")
		event.ExternalIdentifier = stringField(tx, "identifier")
		event.Status = stringField(tx, "status")
		return event
	}

	event.TransactionID = firstString(raw, []string{"id", "transactionId"})
	event.ExternalIdentifier = stringField(raw, "identifier")
	event.Status = stringField(raw, "status")
	return event
}

func stringField(raw map[string]any, key string) string {
	value, ok := raw[key]
	if !ok {
		return ""
	}
	return stringify(value)
}

// WebhookVerifier checks webhook authenticity against a shared secret. The
// gateway either signs the raw body (x-signature header, hex HMAC-SHA256) or
// echoes a plain token inside the payload, depending on the account variant.
type WebhookVerifier struct {
	secret string
}

// NewWebhookVerifier creates a verifier. An empty secret disables verification
// entirely, matching the gateway's default account setup.
func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: secret}
}

// Verify reports whether the notification should be trusted. Verification
// failures never block the 200 acknowledgment; callers only use the result to
// decide whether to act on the event.
func (v *WebhookVerifier) Verify(body []byte, signature, token string) bool {
	if v.secret == "" {
		return true
	}

	if signature != "" {
		mac := hmac.New(sha256.New, []byte(v.secret))
		mac.Write(body)
		expected := hex.EncodeToString(mac.Sum(nil))
		return hmac.Equal([]byte(signature), []byte(expected))
	}

	if token != "" {
		return hmac.Equal([]byte(token), []byte(v.secret))
	}

	return false
}
