// Package gateway implements the domain.Gateway interface by making HTTP
// requests to the upstream PIX provider.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/telepix/pix-gateway/internal/domain"
	"github.com/telepix/pix-gateway/internal/logging"
	"github.com/telepix/pix-gateway/internal/metrics"
)

const defaultTimeout = 15 * time.Second

// Client talks to the PIX gateway. Every outbound call carries the account
// credentials as headers; the fallback loop across endpoint candidates lives
// here and nowhere else.
type Client struct {
	publicKey  string
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new gateway client.
func NewClient(publicKey, secretKey string, logger *slog.Logger) *Client {
	logger.Info("gateway client initialized",
		"public_key", logging.MaskSecret(publicKey))

	return &Client{
		publicKey: publicKey,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// Create posts the creation payload to the primary endpoint. When the primary
// answers 404 or 405 - the gateway rejecting the endpoint shape itself, seen
// across its URL renames - the secondary candidate is attempted exactly once.
// Any other failure is surfaced as-is.
func (c *Client) Create(ctx context.Context, urls []string, payload domain.CreatePayload) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal create payload: %w", err)
	}

	result, err := c.do(ctx, http.MethodPost, urls[0], body)
	if err == nil {
		return result, nil
	}

	if len(urls) > 1 && isEndpointShapeError(err) {
		c.logger.Warn("create endpoint rejected, retrying legacy endpoint",
			"primary", urls[0], "fallback", urls[1])
		return c.do(ctx, http.MethodPost, urls[1], body)
	}

	return nil, err
}

// FetchStatus tries each candidate URL in order, sequentially, and returns the
// first successful body. When every candidate fails the caller receives
// ErrChargeNotFound rather than the last transport error.
func (c *Client) FetchStatus(ctx context.Context, urls []string) (map[string]any, error) {
	for i, url := range urls {
		if i > 0 {
			metrics.StatusFallbacks.Inc()
		}

		result, err := c.do(ctx, http.MethodGet, url, nil)
		if err == nil {
			return result, nil
		}

		c.logger.Debug("status candidate failed", "url", url, "error", err)
	}

	metrics.StatusNotFound.Inc()
	return nil, domain.ErrChargeNotFound
}

// do performs one request against one URL. Non-2xx responses come back as
// UpstreamError with the body untouched; network-level failures come back
// wrapped in ErrGatewayUnreachable.
func (c *Client) do(ctx context.Context, method, url string, body []byte) (map[string]any, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-public-key", c.publicKey)
	req.Header.Set("x-secret-key", c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrGatewayUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{StatusCode: resp.StatusCode, Body: respBody}
	}

	result := map[string]any{}
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &result); err != nil {
			return nil, fmt.Errorf("failed to decode gateway response: %w", err)
		}
	}

	return result, nil
}

func isEndpointShapeError(err error) bool {
	var upstreamErr *domain.UpstreamError
	if !errors.As(err, &upstreamErr) {
		return false
	}
	return upstreamErr.StatusCode == http.StatusNotFound ||
		upstreamErr.StatusCode == http.StatusMethodNotAllowed
}
