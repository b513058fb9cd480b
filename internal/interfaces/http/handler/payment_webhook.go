package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	orderapp "github.com/storeadmin/backend/internal/application/order"
)

// PaymentWebhookHandler receives payment-provider events. Called by the
// provider, never by a browser; no authentication beyond the signature.
type PaymentWebhookHandler struct {
	BaseHandler
	webhooks *orderapp.PaymentWebhookService
}

// NewPaymentWebhookHandler creates a new PaymentWebhookHandler
func NewPaymentWebhookHandler(webhooks *orderapp.PaymentWebhookService, logger *zap.Logger) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{
		BaseHandler: BaseHandler{logger: logger},
		webhooks:    webhooks,
	}
}

// RegisterRoutes registers the payment webhook route
func (h *PaymentWebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhook/payment", h.Handle)
}

// PaymentWebhookResponse acknowledges a processed delivery
type PaymentWebhookResponse struct {
	Received  bool   `json:"received"`
	EventID   string `json:"event_id,omitempty"`
	EventType string `json:"event_type,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Handle verifies the signature and applies the event
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil || len(payload) > maxWebhookPayloadSize {
		c.JSON(http.StatusBadRequest, PaymentWebhookResponse{
			Received: false,
			Message:  "Failed to read request body",
		})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		c.JSON(http.StatusBadRequest, PaymentWebhookResponse{
			Received: false,
			Message:  "Missing Stripe-Signature header",
		})
		return
	}

	result, err := h.webhooks.ProcessWebhook(c.Request.Context(), payload, signature)
	if err != nil {
		if result == nil {
			// Signature verification failed; the payload never parsed.
			c.JSON(http.StatusBadRequest, PaymentWebhookResponse{
				Received: false,
				Message:  "Webhook signature verification failed",
			})
			return
		}
		h.logger.Error("request failed",
			zap.String("operation", "PAYMENT_WEBHOOK"),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, PaymentWebhookResponse{
			Received:  false,
			EventID:   result.EventID,
			EventType: result.EventType,
			Message:   result.Message,
		})
		return
	}

	c.JSON(http.StatusOK, PaymentWebhookResponse{
		Received:  true,
		EventID:   result.EventID,
		EventType: result.EventType,
		Message:   result.Message,
	})
}
