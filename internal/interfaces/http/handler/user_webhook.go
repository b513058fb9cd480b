package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/storeadmin/backend/internal/application/identity"
	"github.com/storeadmin/backend/internal/domain/shared"
)

// Webhook payloads are small; cap reads well below the body limit.
const maxWebhookPayloadSize = 65536

// UserWebhookHandler receives identity-provider user events. The provider
// registers one endpoint and may probe it with GET, so all three methods
// answer identically.
type UserWebhookHandler struct {
	BaseHandler
	userSync *identityapp.UserSyncService
}

// NewUserWebhookHandler creates a new UserWebhookHandler
func NewUserWebhookHandler(userSync *identityapp.UserSyncService, logger *zap.Logger) *UserWebhookHandler {
	return &UserWebhookHandler{
		BaseHandler: BaseHandler{logger: logger},
		userSync:    userSync,
	}
}

// RegisterRoutes registers the user webhook routes
func (h *UserWebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/webhook/user", h.Handle)
	rg.POST("/webhook/user", h.Handle)
	rg.PUT("/webhook/user", h.Handle)
}

// Handle verifies and applies one delivery. Verification failures answer
// 400 with an empty body; the sender retries with a fresh signature.
func (h *UserWebhookHandler) Handle(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil || len(payload) > maxWebhookPayloadSize {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.userSync.HandleEvent(c.Request.Context(), payload, c.Request.Header); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			c.Status(http.StatusBadRequest)
			return
		}
		h.logger.Error("request failed",
			zap.String("operation", "USER_WEBHOOK"),
			zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
