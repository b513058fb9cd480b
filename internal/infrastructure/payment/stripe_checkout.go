package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"go.uber.org/zap"
)

// LineItem is one priced row of a checkout session. UnitAmount is in minor
// currency units.
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// CheckoutSessionInput describes a hosted checkout session to create
type CheckoutSessionInput struct {
	Currency   string
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
	// Metadata is echoed back on the payment confirmation event; the order
	// id travels here.
	Metadata map[string]string
}

// CheckoutSessionOutput carries the created session
type CheckoutSessionOutput struct {
	SessionID string
	URL       string
}

// StripeCheckoutAdapter creates hosted checkout sessions on Stripe
type StripeCheckoutAdapter struct {
	config *StripeConfig
	logger *zap.Logger
}

// NewStripeCheckoutAdapter creates a new Stripe checkout adapter
func NewStripeCheckoutAdapter(config *StripeConfig, logger *zap.Logger) (*StripeCheckoutAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.InitStripeClient()

	return &StripeCheckoutAdapter{
		config: config,
		logger: logger,
	}, nil
}

// CreateSession creates a hosted checkout session. The customer is asked
// for a billing address and phone number; both land on the confirmation
// event this service consumes later.
func (a *StripeCheckoutAdapter) CreateSession(ctx context.Context, input CheckoutSessionInput) (*CheckoutSessionOutput, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(input.LineItems))
	for _, item := range input.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(item.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(input.Currency),
				UnitAmount: stripe.Int64(item.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:                lineItems,
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
		SuccessURL: stripe.String(input.SuccessURL),
		CancelURL:  stripe.String(input.CancelURL),
		Metadata:   input.Metadata,
	}

	s, err := session.New(params)
	if err != nil {
		a.logger.Error("Failed to create checkout session", zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to create checkout session: %w", err)
	}

	a.logger.Info("Created checkout session",
		zap.String("session_id", s.ID))

	return &CheckoutSessionOutput{
		SessionID: s.ID,
		URL:       s.URL,
	}, nil
}
