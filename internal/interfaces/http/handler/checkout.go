package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	checkoutapp "github.com/storeadmin/backend/internal/application/checkout"
)

// CheckoutHandler serves the storefront checkout endpoint. The route is
// open to any origin; browsers on the storefront host call it directly.
type CheckoutHandler struct {
	BaseHandler
	checkout *checkoutapp.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkout *checkoutapp.Service, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		BaseHandler: BaseHandler{logger: logger},
		checkout:    checkout,
	}
}

// RegisterRoutes registers the checkout routes on the store group
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.OPTIONS("/checkout", h.Preflight)
	rg.POST("/checkout", h.Create)
}

// Preflight answers the CORS preflight; the headers are set by the
// storefront CORS middleware.
func (h *CheckoutHandler) Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Create prices the cart and returns the hosted payment page URL
func (h *CheckoutHandler) Create(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	var req checkoutapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Product ids are required")
		return
	}

	resp, err := h.checkout.Checkout(c.Request.Context(), storeID, req)
	if err != nil {
		h.Error(c, "CHECKOUT", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
