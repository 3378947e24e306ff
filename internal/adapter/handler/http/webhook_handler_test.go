package http

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/usecase"
)

const testWebhookSecret = "whsec_test_secret"

func signedWebhookRequest(t *testing.T, payload string) *http.Request {
	t.Helper()
	now := time.Now()
	sig := webhook.ComputeSignature(now, []byte(payload), testWebhookSecret)
	header := fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))

	req := httptest.NewRequest(http.MethodPost, "/webhook/stripe", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Stripe-Signature", header)
	return req
}

func checkoutCompletedPayload(bookingID string) string {
	return fmt.Sprintf(`{
		"id": "evt_test_1",
		"type": "checkout.session.completed",
		"created": %d,
		"data": {
			"object": {
				"id": "cs_test_1",
				"amount_total": 4500,
				"currency": "eur",
				"payment_intent": {"id": "pi_test_1"},
				"metadata": {"booking_id": %q}
			}
		}
	}`, time.Now().Unix(), bookingID)
}

func newWebhookHandler(bookings *stubBookingRepo, payments *stubPaymentRepo) *WebhookHandler {
	svc := usecase.NewWebhookService(bookings, payments, zap.NewNop())
	return NewWebhookHandler(svc, testWebhookSecret, zap.NewNop())
}

func TestHandleStripeWebhook(t *testing.T) {
	e := echo.New()

	t.Run("checkout completed confirms the booking", func(t *testing.T) {
		bookingID := uuid.New()
		bookings := &stubBookingRepo{
			getByID: func(id uuid.UUID) (*model.Booking, error) {
				return &model.Booking{ID: id, Status: model.BookingStatusPending}, nil
			},
		}
		payments := &stubPaymentRepo{}
		h := newWebhookHandler(bookings, payments)

		rec := httptest.NewRecorder()
		c := e.NewContext(signedWebhookRequest(t, checkoutCompletedPayload(bookingID.String())), rec)
		require.NoError(t, h.HandleStripeWebhook(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["received"])

		require.Len(t, payments.confirmed, 1)
		assert.Equal(t, bookingID, payments.confirmed[0])
	})

	t.Run("bad signature rejected", func(t *testing.T) {
		h := newWebhookHandler(&stubBookingRepo{}, &stubPaymentRepo{})

		req := httptest.NewRequest(http.MethodPost, "/webhook/stripe",
			strings.NewReader(checkoutCompletedPayload(uuid.NewString())))
		req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, h.HandleStripeWebhook(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing booking metadata", func(t *testing.T) {
		h := newWebhookHandler(&stubBookingRepo{}, &stubPaymentRepo{})

		rec := httptest.NewRecorder()
		c := e.NewContext(signedWebhookRequest(t, checkoutCompletedPayload("")), rec)
		require.NoError(t, h.HandleStripeWebhook(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown booking", func(t *testing.T) {
		bookings := &stubBookingRepo{
			getByID: func(id uuid.UUID) (*model.Booking, error) {
				return nil, domainErrors.ErrBookingNotFound
			},
		}
		h := newWebhookHandler(bookings, &stubPaymentRepo{})

		rec := httptest.NewRecorder()
		c := e.NewContext(signedWebhookRequest(t, checkoutCompletedPayload(uuid.NewString())), rec)
		require.NoError(t, h.HandleStripeWebhook(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("redelivery acknowledged without new payment", func(t *testing.T) {
		bookings := &stubBookingRepo{
			getByID: func(id uuid.UUID) (*model.Booking, error) {
				return &model.Booking{ID: id, Status: model.BookingStatusConfirmed}, nil
			},
		}
		payments := &stubPaymentRepo{}
		h := newWebhookHandler(bookings, payments)

		rec := httptest.NewRecorder()
		c := e.NewContext(signedWebhookRequest(t, checkoutCompletedPayload(uuid.NewString())), rec)
		require.NoError(t, h.HandleStripeWebhook(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, payments.confirmed)
	})

	t.Run("other event types acknowledged", func(t *testing.T) {
		h := newWebhookHandler(&stubBookingRepo{}, &stubPaymentRepo{})

		payload := fmt.Sprintf(`{"id":"evt_2","type":"payment_intent.created","created":%d,"data":{"object":{}}}`, time.Now().Unix())
		rec := httptest.NewRecorder()
		c := e.NewContext(signedWebhookRequest(t, payload), rec)
		require.NoError(t, h.HandleStripeWebhook(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
