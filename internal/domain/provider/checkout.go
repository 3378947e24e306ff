package provider

import (
	"context"

	"github.com/google/uuid"
)

// CheckoutParams is everything needed to open a hosted checkout for a
// booking. Amount is in the currency's smallest unit.
type CheckoutParams struct {
	BookingID     uuid.UUID
	CustomerEmail string
	ServiceName   string
	AmountCents   int64
	Currency      string
}

// CheckoutSession is the provider's hosted session the customer is
// redirected to.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutProvider creates hosted checkout sessions. The booking id is
// carried in the session metadata so the webhook can reconcile it.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
}
