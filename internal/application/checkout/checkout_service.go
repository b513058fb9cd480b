package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storeadmin/backend/internal/domain/catalog"
	"github.com/storeadmin/backend/internal/domain/order"
	"github.com/storeadmin/backend/internal/domain/shared"
	"github.com/storeadmin/backend/internal/infrastructure/payment"
)

// CheckoutRequest is the storefront cart submission
type CheckoutRequest struct {
	ProductIDs   []uuid.UUID `json:"productIds"`
	ClientUserID string      `json:"clientUserId"`
}

// CheckoutResponse carries the hosted payment page URL
type CheckoutResponse struct {
	URL string `json:"url"`
}

// SessionProvider creates hosted payment sessions
type SessionProvider interface {
	CreateSession(ctx context.Context, input payment.CheckoutSessionInput) (*payment.CheckoutSessionOutput, error)
}

// Pricing carries the checkout pricing knobs from configuration. Amounts
// are minor currency units except FreeDeliveryOver, which compares against
// the major-unit cart total.
type Pricing struct {
	Currency         string
	DeliveryCost     int64
	FreeDeliveryOver int64
}

// Service prices a cart, records the unpaid order, and opens a hosted
// payment session for it.
type Service struct {
	productRepo   catalog.ProductRepository
	orderRepo     order.Repository
	sessions      SessionProvider
	storefrontURL string
	pricing       Pricing
	logger        *zap.Logger
}

// NewService creates a checkout Service
func NewService(
	productRepo catalog.ProductRepository,
	orderRepo order.Repository,
	sessions SessionProvider,
	storefrontURL string,
	pricing Pricing,
	logger *zap.Logger,
) *Service {
	return &Service{
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		sessions:      sessions,
		storefrontURL: storefrontURL,
		pricing:       pricing,
		logger:        logger,
	}
}

// Checkout prices the cart, creates the unpaid order, and returns the
// payment page URL. The order is written before the session is requested;
// a session failure leaves the unpaid order behind with no compensation.
// Resubmitting the same cart makes a new order and a new session.
func (s *Service) Checkout(ctx context.Context, storeID uuid.UUID, req CheckoutRequest) (*CheckoutResponse, error) {
	if len(req.ProductIDs) == 0 {
		return nil, shared.NewValidationError("Product ids are required")
	}

	products, err := s.productRepo.FindByIDs(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	// One line per product, quantity fixed at one. The product's own stock
	// quantity is folded into the unit amount instead.
	hundred := decimal.NewFromInt(100)
	lineItems := make([]payment.LineItem, 0, len(products)+1)
	unitTotal := int64(0)
	for _, product := range products {
		unitAmount := product.Price.
			Mul(hundred).
			Mul(decimal.NewFromInt(int64(product.Quantity))).
			IntPart()
		unitTotal += unitAmount
		lineItems = append(lineItems, payment.LineItem{
			Name:       product.Name,
			UnitAmount: unitAmount,
			Quantity:   1,
		})
	}

	totalPrice := decimal.NewFromInt(unitTotal).Div(hundred)
	deliveryCost := s.pricing.DeliveryCost
	if totalPrice.GreaterThan(decimal.NewFromInt(s.pricing.FreeDeliveryOver)) {
		deliveryCost = 0
	}
	lineItems = append(lineItems, payment.LineItem{
		Name:       "Delivery Cost",
		UnitAmount: deliveryCost,
		Quantity:   1,
	})

	newOrder, err := order.NewOrder(storeID, req.ProductIDs)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Create(ctx, newOrder); err != nil {
		return nil, err
	}

	output, err := s.sessions.CreateSession(ctx, payment.CheckoutSessionInput{
		Currency:   s.pricing.Currency,
		LineItems:  lineItems,
		SuccessURL: fmt.Sprintf("%s/cart?success=1", s.storefrontURL),
		CancelURL:  fmt.Sprintf("%s/cart?canceled=1", s.storefrontURL),
		Metadata:   map[string]string{"orderId": newOrder.ID.String()},
	})
	if err != nil {
		s.logger.Error("checkout session creation failed",
			zap.String("order_id", newOrder.ID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("checkout session created",
		zap.String("order_id", newOrder.ID.String()),
		zap.String("session_id", output.SessionID),
		zap.Int64("delivery_cost", deliveryCost))

	return &CheckoutResponse{URL: output.URL}, nil
}
