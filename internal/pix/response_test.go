package pix

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telepix/pix-gateway/internal/domain"
)

func TestNormalizeCreateResponse_TransactionIDAliases(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]any
		expected string
	}{
		{
			name:     "transactionId wins over every other alias",
			raw:      map[string]any{"transactionId": "tx1", "id": "other", "txid": "older"},
			expected: "tx1",
		},
		{
			name:     "id is second choice",
			raw:      map[string]any{"id": "tx2", "txid": "older"},
			expected: "tx2",
		},
		{
			name:     "txid is third choice",
			raw:      map[string]any{"txid": "tx3"},
			expected: "tx3",
		},
		{
			name:     "externalId is last resort",
			raw:      map[string]any{"externalId": "ord9"},
			expected: "ord9",
		},
		{
			name:     "numeric id stringified",
			raw:      map[string]any{"id": float64(987654)},
			expected: "987654",
		},
		{
			name:     "no alias present",
			raw:      map[string]any{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeCreateResponse(tt.raw)
			assert.Equal(t, tt.expected, result.TransactionID)
		})
	}
}

func TestNormalizeCreateResponse_QRAliases(t *testing.T) {
	tests := []struct {
		name           string
		raw            map[string]any
		expectedBase64 string
		expectedCode   string
	}{
		{
			name:           "nested pix object",
			raw:            map[string]any{"pix": map[string]any{"base64": "AAA", "code": "0002xyz"}},
			expectedBase64: "AAA",
			expectedCode:   "0002xyz",
		},
		{
			name:           "top-level qrCode alias",
			raw:            map[string]any{"qrCode": "BBB"},
			expectedBase64: "BBB",
		},
		{
			name:           "nested alias wins over top-level",
			raw:            map[string]any{"pix": map[string]any{"base64": "inner"}, "qrCodeBase64": "outer"},
			expectedBase64: "inner",
		},
		{
			name:           "legacy qrCodeImage and qrCodeText",
			raw:            map[string]any{"pix": map[string]any{"qrCodeImage": "img", "qrCodeText": "txt"}},
			expectedBase64: "img",
			expectedCode:   "txt",
		},
		{
			name:         "snake case and bare text aliases",
			raw:          map[string]any{"qr_code": "", "text": "copy-paste"},
			expectedCode: "copy-paste",
		},
		{
			name:         "top-level payload alias",
			raw:          map[string]any{"payload": "0002abc"},
			expectedCode: "0002abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeCreateResponse(tt.raw)
			assert.Equal(t, tt.expectedBase64, result.Pix.Base64)
			assert.Equal(t, tt.expectedCode, result.Pix.Code)
		})
	}
}

func TestNormalizeCreateResponse_Status(t *testing.T) {
	paid := NormalizeCreateResponse(map[string]any{"status": "paid"})
	assert.Equal(t, "paid", paid.Status)

	// The normalizer never invents a status value.
	missing := NormalizeCreateResponse(map[string]any{})
	assert.Equal(t, domain.StatusUnknown, missing.Status)
}

func TestNormalizeCreateResponse_OpaquePassthrough(t *testing.T) {
	order := map[string]any{"items": float64(3)}
	result := NormalizeCreateResponse(map[string]any{"fee": float64(12.5), "order": order})

	assert.Equal(t, float64(12.5), result.Fee)
	assert.Equal(t, order, result.Order)
}
