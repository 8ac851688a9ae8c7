// Package pix implements the core normalization logic of the adapter: building
// the upstream creation payload, resolving endpoint candidates, mapping the
// gateway's unstable response shapes to the canonical contract, and flattening
// webhook notifications.
package pix

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/telepix/pix-gateway/internal/domain"
)

const (
	// identifierPrefix is kept from the first integration; downstream bots
	// pattern-match on it to recognize generated identifiers.
	identifierPrefix = "tg_"

	metadataSourceKey   = "source"
	metadataSourceValue = "telegram"

	webhookPath = "/api/webhook/pix"
)

var absoluteURLPattern = regexp.MustCompile(`^https?://`)

// BuildCreatePayload maps a ChargeRequest onto the canonical upstream creation
// payload. Validation is strict: a non-positive amount fails here, before any
// network call, rather than being deferred to the gateway.
func BuildCreatePayload(req domain.ChargeRequest, webhookBaseURL string) (domain.CreatePayload, error) {
	if req.Amount <= 0 {
		return domain.CreatePayload{}, domain.NewGatewayError(domain.ErrInvalidCharge,
			"amount must be greater than 0",
			"VALIDATION_ERROR")
	}

	payload := domain.CreatePayload{
		Identifier:  resolveIdentifier(req.ExternalID),
		Amount:      req.Amount,
		ShippingFee: req.ShippingFee,
		ExtraFee:    req.ExtraFee,
		Discount:    req.Discount,
		Client:      domain.ClientInfo{Email: req.CustomerEmail},
		Products:    emptyIfNil(req.Products),
		Splits:      emptyIfNil(req.Splits),
		Metadata:    tagMetadata(req.Metadata),
	}

	// dueDate is never defaulted, only forwarded.
	if req.DueDate != "" {
		payload.DueDate = req.DueDate
	}

	if callback := resolveCallbackURL(req.CallbackURL, webhookBaseURL); callback != "" {
		payload.CallbackURL = callback
	}

	return payload, nil
}

// resolveIdentifier keeps the caller-supplied external id when present and
// otherwise generates a collision-safe one. The original timestamp scheme
// collided under concurrent requests; a UUID does not, and the tg_ prefix is
// preserved for compatibility.
func resolveIdentifier(externalID string) string {
	if externalID != "" {
		return externalID
	}
	return identifierPrefix + uuid.NewString()
}

// tagMetadata shallow-merges the caller metadata with the origin-channel
// marker. The marker always wins over a caller-supplied key of the same name.
func tagMetadata(metadata map[string]any) map[string]any {
	tagged := make(map[string]any, len(metadata)+1)
	for k, v := range metadata {
		tagged[k] = v
	}
	tagged[metadataSourceKey] = metadataSourceValue
	return tagged
}

// resolveCallbackURL applies the callback precedence: a caller-supplied
// absolute http(s) URL always wins; otherwise a configured webhook base is
// extended with the fixed webhook path; otherwise the field is omitted.
func resolveCallbackURL(callerURL, webhookBaseURL string) string {
	if absoluteURLPattern.MatchString(callerURL) {
		return callerURL
	}
	if webhookBaseURL != "" {
		return strings.TrimRight(webhookBaseURL, "/") + webhookPath
	}
	return ""
}

func emptyIfNil(items []map[string]any) []map[string]any {
	if items == nil {
		// The gateway expects [] rather than null for absent line items.
		return []map[string]any{}
	}
	return items
}
