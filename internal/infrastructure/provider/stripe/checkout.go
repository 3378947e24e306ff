package stripe

import (
	"context"
	"fmt"

	stripeapi "github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"go.uber.org/zap"

	"github.com/lavauto/lavauto-server/internal/domain/provider"
)

// CheckoutClient creates hosted Stripe Checkout sessions for bookings.
type CheckoutClient struct {
	clientURL string
	publicURL string
	logger    *zap.Logger
}

// NewCheckoutClient creates a new Stripe checkout client and sets the
// global API key.
func NewCheckoutClient(secretKey, clientURL, publicURL string, logger *zap.Logger) *CheckoutClient {
	stripeapi.Key = secretKey
	return &CheckoutClient{
		clientURL: clientURL,
		publicURL: publicURL,
		logger:    logger,
	}
}

// CreateSession opens a one-time payment session. The booking id rides
// in the metadata so the webhook can find its way back; the cancel URL
// points at the redirect endpoint that deletes the pending booking.
func (c *CheckoutClient) CreateSession(ctx context.Context, p provider.CheckoutParams) (*provider.CheckoutSession, error) {
	params := &stripeapi.CheckoutSessionParams{
		Mode:               stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripeapi.StringSlice([]string{"card"}),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				Quantity: stripeapi.Int64(1),
				PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripeapi.String(p.Currency),
					UnitAmount: stripeapi.Int64(p.AmountCents),
					ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripeapi.String(p.ServiceName),
					},
				},
			},
		},
		CustomerEmail: stripeapi.String(p.CustomerEmail),
		SuccessURL:    stripeapi.String(c.clientURL + "/dashboard/client?payment=success"),
		CancelURL:     stripeapi.String(c.publicURL + "/api/v1/booking/cancel?bookingId=" + p.BookingID.String()),
	}
	params.Context = ctx
	params.AddMetadata("booking_id", p.BookingID.String())

	s, err := checkoutsession.New(params)
	if err != nil {
		c.logger.Error("Error creating checkout session",
			zap.String("booking_id", p.BookingID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	c.logger.Info("Checkout session created",
		zap.String("session_id", s.ID),
		zap.String("booking_id", p.BookingID.String()))

	return &provider.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}
