// Package api contains the HTTP handlers and routing for the PIX gateway adapter.
package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/telepix/pix-gateway/internal/domain"
	"github.com/telepix/pix-gateway/internal/pix"
)

// Handler contains the HTTP handlers for the adapter API.
type Handler struct {
	service *pix.Service
}

// NewHandler creates a new API handler with the pix service.
func NewHandler(service *pix.Service) *Handler {
	return &Handler{service: service}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// CreateCharge handles POST /api/pix/create
// Builds the upstream payload, calls the gateway and returns the canonical result.
func (h *Handler) CreateCharge(c *gin.Context) {
	var req domain.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  "VALIDATION_ERROR",
		})
		return
	}

	result, err := h.service.CreateCharge(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetStatus handles GET /api/pix/status/:id
// Returns the upstream status object verbatim, or 404 when every candidate
// endpoint has been exhausted.
func (h *Handler) GetStatus(c *gin.Context) {
	raw, err := h.service.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, raw)
}

// HandleWebhook handles POST /api/webhook/pix
// The gateway retries aggressively on anything but 200, so the acknowledgment
// is unconditional regardless of the parse or verification outcome.
func (h *Handler) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		body = nil
	}

	h.service.HandleWebhook(c.Request.Context(), body, c.GetHeader("x-signature"))

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "pix-gateway",
	})
}

// Root handles the GET / and GET /api liveness probes kept from the first
// deployment; the bot pings them before enabling payments.
func (h *Handler) Root(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": message})
	}
}

// handleServiceError maps the domain error taxonomy to HTTP responses.
func handleServiceError(c *gin.Context, err error) {
	// Non-2xx gateway responses pass through with their original status and body.
	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) {
		if len(upstreamErr.Body) > 0 {
			c.Data(upstreamErr.StatusCode, "application/json", upstreamErr.Body)
			return
		}
		c.JSON(upstreamErr.StatusCode, ErrorResponse{
			Error: "gateway error",
			Code:  "UPSTREAM_ERROR",
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrChargeNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "not found",
			Code:  "NOT_FOUND",
		})
	case errors.Is(err, domain.ErrInvalidCharge):
		var gatewayErr *domain.GatewayError
		message, code := err.Error(), "VALIDATION_ERROR"
		if errors.As(err, &gatewayErr) {
			message, code = gatewayErr.Message, gatewayErr.Code
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: message,
			Code:  code,
		})
	case errors.Is(err, domain.ErrGatewayUnreachable):
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "payment gateway unreachable",
			Code:  "TRANSPORT_ERROR",
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Internal server error",
			Code:  "INTERNAL_ERROR",
		})
	}
}
