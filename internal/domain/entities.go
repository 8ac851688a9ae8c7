// Package domain contains the core business entities and interfaces for the PIX gateway
// adapter. This is the innermost layer - it has no dependencies on external frameworks
// or infrastructure.
package domain

import "time"

// Charge statuses the adapter guarantees to callers. The gateway reports many
// spellings across API revisions; anything it does report is passed through
// verbatim, and StatusUnknown is used only when it reports nothing at all.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusExpired = "expired"
	StatusFailed  = "failed"
	StatusUnknown = "unknown"
)

// ChargeRequest is the internal contract callers use to ask for a PIX charge.
// Only Amount is mandatory; everything else has a defined default.
type ChargeRequest struct {
	Amount        float64          `json:"amount"`
	ExternalID    string           `json:"externalId"`
	CustomerEmail string           `json:"customerEmail"`
	ShippingFee   float64          `json:"shippingFee"`
	ExtraFee      float64          `json:"extraFee"`
	Discount      float64          `json:"discount"`
	Products      []map[string]any `json:"products"`
	Splits        []map[string]any `json:"splits"`
	DueDate       string           `json:"dueDate"`
	Metadata      map[string]any   `json:"metadata"`
	CallbackURL   string           `json:"callbackUrl"`
}

// ClientInfo is the customer block of the upstream creation payload.
type ClientInfo struct {
	Email string `json:"email"`
}

// CreatePayload is the canonical body sent to the gateway's charge-creation
// endpoint. Identifier is never empty; CallbackURL, when set, is an absolute
// http(s) URL.
type CreatePayload struct {
	Identifier  string           `json:"identifier"`
	Amount      float64          `json:"amount"`
	ShippingFee float64          `json:"shippingFee"`
	ExtraFee    float64          `json:"extraFee"`
	Discount    float64          `json:"discount"`
	Client      ClientInfo       `json:"client"`
	Products    []map[string]any `json:"products"`
	Splits      []map[string]any `json:"splits"`
	Metadata    map[string]any   `json:"metadata"`
	DueDate     string           `json:"dueDate,omitempty"`
	CallbackURL string           `json:"callbackUrl,omitempty"`
}

// PixData carries the two QR representations of a charge. Whatever alias the
// gateway used upstream, callers always find the image under base64 and the
// copy-paste text under code.
type PixData struct {
	Base64 string `json:"base64,omitempty"`
	Code   string `json:"code,omitempty"`
}

// ChargeResult is the canonical creation output, independent of which upstream
// response variant was received.
type ChargeResult struct {
	TransactionID string  `json:"transactionId"`
	Status        string  `json:"status"`
	Fee           any     `json:"fee,omitempty"`
	Order         any     `json:"order,omitempty"`
	Pix           PixData `json:"pix"`
}

// WebhookEvent is the flattened form of a gateway notification. The source
// payload may nest the transaction fields or keep them at the top level; both
// collapse into this shape. Token is the verification token some gateway
// variants send; it never leaves the process.
type WebhookEvent struct {
	EventType          string `json:"eventType,omitempty"`
	TransactionID      string `json:"transactionId,omitempty"`
	ExternalIdentifier string `json:"externalIdentifier,omitempty"`
	Status             string `json:"status,omitempty"`
	Token              string `json:"-"`
}

// TransactionRecord is the persisted trace of a charge. The adapter only ever
// writes these; nothing in the request path reads them back.
type TransactionRecord struct {
	Identifier    string
	TransactionID string
	Amount        float64
	Status        string
	CreatedAt     time.Time
}
