package order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"

	"github.com/storeadmin/backend/internal/domain/order"
	"github.com/storeadmin/backend/internal/infrastructure/payment"
)

// PaymentWebhookService consumes payment-provider events and marks orders
// paid when their checkout session completes.
type PaymentWebhookService struct {
	config    *payment.StripeConfig
	orderRepo order.Repository
	logger    *zap.Logger
}

// NewPaymentWebhookService creates a PaymentWebhookService
func NewPaymentWebhookService(config *payment.StripeConfig, orderRepo order.Repository, logger *zap.Logger) *PaymentWebhookService {
	return &PaymentWebhookService{
		config:    config,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// WebhookResult contains the result of processing a webhook
type WebhookResult struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Processed bool   `json:"processed"`
	Message   string `json:"message,omitempty"`
}

// ProcessWebhook verifies the delivery signature and applies the event
func (s *PaymentWebhookService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.config.WebhookSecret)
	if err != nil {
		s.logger.Error("Failed to verify webhook signature", zap.Error(err))
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	s.logger.Info("Processing payment webhook event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))

	result := &WebhookResult{
		EventID:   event.ID,
		EventType: string(event.Type),
		Processed: true,
	}

	switch event.Type {
	case "checkout.session.completed":
		err = s.handleSessionCompleted(ctx, event)
	default:
		s.logger.Debug("Unhandled webhook event type",
			zap.String("event_type", string(event.Type)))
		result.Message = "Event type not handled"
	}

	if err != nil {
		s.logger.Error("Failed to process webhook event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		result.Processed = false
		result.Message = err.Error()
		return result, err
	}

	return result, nil
}

func (s *PaymentWebhookService) handleSessionCompleted(ctx context.Context, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("failed to unmarshal checkout session: %w", err)
	}

	rawOrderID := session.Metadata["orderId"]
	if rawOrderID == "" {
		s.logger.Warn("Checkout session has no order id, skipping",
			zap.String("session_id", session.ID))
		return nil
	}
	orderID, err := uuid.Parse(rawOrderID)
	if err != nil {
		return fmt.Errorf("invalid order id in session metadata: %w", err)
	}

	phone := ""
	address := ""
	if session.CustomerDetails != nil {
		phone = session.CustomerDetails.Phone
		if session.CustomerDetails.Address != nil {
			a := session.CustomerDetails.Address
			address = joinAddress(a.Line1, a.Line2, a.City, a.State, a.PostalCode, a.Country)
		}
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to load order %s: %w", orderID, err)
	}
	if err := o.MarkPaid(phone, address); err != nil {
		// A replayed confirmation lands here; the order already carries
		// the payment details.
		s.logger.Info("Order already paid, ignoring",
			zap.String("order_id", orderID.String()))
		return nil
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return fmt.Errorf("failed to save order %s: %w", orderID, err)
	}

	s.logger.Info("Order marked paid",
		zap.String("order_id", orderID.String()),
		zap.String("session_id", session.ID))
	return nil
}

func joinAddress(parts ...string) string {
	out := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += part
	}
	return out
}
