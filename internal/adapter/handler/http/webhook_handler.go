package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/usecase"
)

type WebhookHandler struct {
	webhooks      *usecase.WebhookService
	webhookSecret string
	logger        *zap.Logger
}

func NewWebhookHandler(webhooks *usecase.WebhookService, webhookSecret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhooks:      webhooks,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

func (h *WebhookHandler) HandleStripeWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("Error reading request body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error reading request body"})
	}

	sig := c.Request().Header.Get("Stripe-Signature")

	event, err := webhook.ConstructEventWithOptions(
		body,
		sig,
		h.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)

	if err != nil {
		h.logger.Error("Webhook signature verification failed",
			zap.Error(err),
		)
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Webhook signature verification failed",
		})
	}

	h.logger.Info("Webhook event received",
		zap.String("type", string(event.Type)),
		zap.String("id", event.ID),
		zap.Time("created", time.Unix(event.Created, 0)),
	)

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			h.logger.Error("Error parsing checkout session", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error parsing webhook"})
		}

		completed := usecase.CheckoutCompleted{
			BookingID:   session.Metadata["booking_id"],
			SessionID:   session.ID,
			AmountCents: session.AmountTotal,
			Currency:    string(session.Currency),
			Method:      "card",
		}
		if session.PaymentIntent != nil {
			completed.PaymentIntentID = session.PaymentIntent.ID
		}

		if err := h.webhooks.HandleCheckoutCompleted(c.Request().Context(), completed); err != nil {
			switch {
			case errors.Is(err, domainErrors.ErrMissingBookingMetadata):
				h.logger.Warn("Checkout session without booking metadata",
					zap.String("session_id", session.ID))
				return c.JSON(http.StatusBadRequest, echo.Map{
					"error": "Missing booking_id metadata",
				})
			case errors.Is(err, domainErrors.ErrBookingNotFound):
				h.logger.Warn("Checkout session for unknown booking",
					zap.String("session_id", session.ID),
					zap.String("booking_id", completed.BookingID))
				return c.JSON(http.StatusNotFound, echo.Map{
					"error": "Booking not found",
				})
			default:
				h.logger.Error("Failed to process checkout completion",
					zap.String("session_id", session.ID),
					zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"error": "Failed to process webhook",
				})
			}
		}

	default:
		h.logger.Info("Unhandled webhook event type",
			zap.String("type", string(event.Type)))
	}

	return c.JSON(http.StatusOK, echo.Map{"received": true})
}
