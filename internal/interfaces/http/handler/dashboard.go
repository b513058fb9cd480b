package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	catalogapp "github.com/storeadmin/backend/internal/application/catalog"
)

// DashboardHandler serves the admin UI projections and the store-scoped
// vocabulary writes. Every route requires a session identity.
type DashboardHandler struct {
	BaseHandler
	dashboard *catalogapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard *catalogapp.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: BaseHandler{logger: logger},
		dashboard:   dashboard,
	}
}

// RegisterRoutes registers the dashboard routes on the store group
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/products", h.Products)
	rg.GET("/dashboard/products/:product_id/form", h.ProductForm)
	rg.GET("/dashboard/orders", h.Orders)
	rg.GET("/settings", h.Settings)
	rg.POST("/colors", h.CreateColor)
	rg.POST("/sizes", h.CreateSize)
}

// Products lists the store's products as table rows
func (h *DashboardHandler) Products(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	rows, err := h.dashboard.Products(c.Request.Context(), storeID, userID)
	if err != nil {
		h.EnvelopedError(c, "DASHBOARD_PRODUCTS", err)
		return
	}
	h.Success(c, rows)
}

// ProductForm returns the product edit-form payload. The create form uses
// a placeholder id; anything that is not a product id yields an empty
// form.
func (h *DashboardHandler) ProductForm(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		productID = uuid.Nil
	}

	form, err := h.dashboard.ProductForm(c.Request.Context(), storeID, userID, productID)
	if err != nil {
		h.EnvelopedError(c, "DASHBOARD_PRODUCT_FORM", err)
		return
	}
	h.Success(c, form)
}

// Orders lists the store's orders as table rows
func (h *DashboardHandler) Orders(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	rows, err := h.dashboard.Orders(c.Request.Context(), storeID, userID)
	if err != nil {
		h.EnvelopedError(c, "DASHBOARD_ORDERS", err)
		return
	}
	h.Success(c, rows)
}

// Settings returns the store record for the settings form
func (h *DashboardHandler) Settings(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	store, err := h.dashboard.Settings(c.Request.Context(), storeID, userID)
	if err != nil {
		h.EnvelopedError(c, "SETTINGS", err)
		return
	}
	h.Success(c, store)
}

// CreateColor adds a color to the store vocabulary
func (h *DashboardHandler) CreateColor(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	var req catalogapp.AttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	color, err := h.dashboard.CreateColor(c.Request.Context(), storeID, userID, req)
	if err != nil {
		h.EnvelopedError(c, "COLOR_CREATE", err)
		return
	}
	h.Created(c, color)
}

// CreateSize adds a size to the store vocabulary
func (h *DashboardHandler) CreateSize(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	var req catalogapp.AttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	size, err := h.dashboard.CreateSize(c.Request.Context(), storeID, userID, req)
	if err != nil {
		h.EnvelopedError(c, "SIZE_CREATE", err)
		return
	}
	h.Created(c, size)
}
