package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	catalogapp "github.com/storeadmin/backend/internal/application/catalog"
)

// ProductHandler serves the product resource consumed by both the
// storefront (reads) and the admin dashboard (writes).
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		BaseHandler: BaseHandler{logger: logger},
		products:    products,
	}
}

// RegisterRoutes registers the product routes on the store group
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products", h.Create)
	rg.GET("/products/:product_id", h.Get)
	rg.PATCH("/products/:product_id", h.Update)
	rg.DELETE("/products/:product_id", h.Delete)
}

func (h *ProductHandler) productID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Product id is required")
		return uuid.Nil, false
	}
	return id, true
}

// Get returns the product with its associations, or JSON null when there
// is no such product. The storefront reads this without authentication.
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.productID(c)
	if !ok {
		return
	}

	product, err := h.products.Get(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, "PRODUCT_GET", err)
		return
	}
	if product == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create makes a product from the admin form submission
func (h *ProductHandler) Create(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	var req catalogapp.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.products.Create(c.Request.Context(), storeID, userID, req)
	if err != nil {
		h.Error(c, "PRODUCT_CREATE", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Update replaces the product's fields and associations from the admin
// form. The form always submits the full record.
func (h *ProductHandler) Update(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	productID, ok := h.productID(c)
	if !ok {
		return
	}
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	var req catalogapp.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.products.Update(c.Request.Context(), storeID, productID, userID, req)
	if err != nil {
		h.Error(c, "PRODUCT_PATCH", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete removes the product and returns the deleted record
func (h *ProductHandler) Delete(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	productID, ok := h.productID(c)
	if !ok {
		return
	}
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	product, err := h.products.Delete(c.Request.Context(), storeID, productID, userID)
	if err != nil {
		h.Error(c, "PRODUCT_DELETE", err)
		return
	}
	c.JSON(http.StatusOK, product)
}
