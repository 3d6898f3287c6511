package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"fitstream/internal/services"
)

// Stripe payloads are small; anything past this size is not a real event.
const maxWebhookBodyBytes = 65536

type WebhookHandler struct {
	payments *services.PaymentService
}

func NewWebhookHandler(payments *services.PaymentService) *WebhookHandler {
	return &WebhookHandler{payments: payments}
}

// HandleStripeWebhook verifies and processes a Stripe event. Unverified
// payloads get a 400 so Stripe stops retrying them; processing failures
// get a 500 so it retries later.
func (h *WebhookHandler) HandleStripeWebhook(c echo.Context) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response().Writer, req.Body, maxWebhookBodyBytes)

	payload, err := io.ReadAll(req.Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read request body")
	}

	sigHeader := req.Header.Get("Stripe-Signature")
	if err := h.payments.ProcessWebhookEvent(req.Context(), payload, sigHeader); err != nil {
		if errors.Is(err, services.ErrInvalidSignature) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid signature")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"received": "true"})
}
