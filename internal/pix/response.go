package pix

import (
	"strconv"
	"strings"

	"github.com/telepix/pix-gateway/internal/domain"
)

// Alias tables for the gateway's unstable response shapes. Each entry is a
// dotted field path tried in order; the first non-empty value wins. The order
// is part of the contract and must not be rearranged: newer shapes come first,
// shapes from earlier integration attempts follow.
var (
	transactionIDAliases = []string{"transactionId", "id", "txid", "externalId"}

	qrImageAliases = []string{
		"pix.base64",
		"pix.qrCodeImage",
		"pix.qrCodeBase64",
		"qrCodeBase64",
		"qrCode",
		"qr_code",
	}

	qrTextAliases = []string{
		"pix.code",
		"pix.qrCodeText",
		"pix.payload",
		"qrCodeText",
		"payload",
		"text",
	}
)

// NormalizeCreateResponse maps an arbitrary upstream creation response onto
// the canonical ChargeResult. The status is passed through verbatim when the
// gateway reported one; it is never invented, only defaulted to unknown.
func NormalizeCreateResponse(raw map[string]any) domain.ChargeResult {
	result := domain.ChargeResult{
		TransactionID: firstString(raw, transactionIDAliases),
		Status:        domain.StatusUnknown,
		Pix: domain.PixData{
			Base64: firstString(raw, qrImageAliases),
			Code:   firstString(raw, qrTextAliases),
		},
	}

	if status, ok := raw["status"].(string); ok && status != "" {
		result.Status = status
	}

	// fee and order are opaque to this layer.
	if fee, ok := raw["fee"]; ok {
		result.Fee = fee
	}
	if order, ok := raw["order"]; ok {
		result.Order = order
	}

	return result
}

// firstString walks the alias table and returns the first non-empty value,
// stringified. Gateways have been observed returning numeric ids, so numbers
// are accepted and formatted without an exponent.
func firstString(raw map[string]any, aliases []string) string {
	for _, path := range aliases {
		value, ok := lookupPath(raw, path)
		if !ok {
			continue
		}
		if s := stringify(value); s != "" {
			return s
		}
	}
	return ""
}

// lookupPath resolves a dotted field path against a decoded JSON object.
func lookupPath(raw map[string]any, path string) (any, bool) {
	current := any(raw)
	for _, segment := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
