package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storeadmin/backend/internal/domain/shared"
	"github.com/storeadmin/backend/internal/interfaces/http/dto"
	"github.com/storeadmin/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities. The storefront and
// product routes answer errors as single-line plain text because the
// existing clients render the body directly; the dashboard routes use the
// JSON envelope.
type BaseHandler struct {
	logger *zap.Logger
}

// requireUser resolves the session identity or answers 403
func (h *BaseHandler) requireUser(c *gin.Context) (string, bool) {
	userID := middleware.GetSessionUserID(c)
	if userID == "" {
		c.String(http.StatusForbidden, "Unauthenticated")
		return "", false
	}
	return userID, true
}

// storeID parses the store id path parameter or answers 400
func (h *BaseHandler) storeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("store_id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Store id is required")
		return uuid.Nil, false
	}
	return id, true
}

// Error answers a plain-text error with the status derived from the
// error's domain code. Unexpected errors are logged under the operation
// tag and answered generically.
func (h *BaseHandler) Error(c *gin.Context, operation string, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.String(dto.GetHTTPStatus(domainErr.Code), domainErr.Message)
		return
	}

	h.logger.Error("request failed",
		zap.String("operation", operation),
		zap.Error(err))
	c.String(http.StatusInternalServerError, "Internal error")
}

// Success sends an enveloped success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends an enveloped 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// EnvelopedError answers a JSON envelope error with the status derived
// from the error's domain code. Used by the dashboard routes.
func (h *BaseHandler) EnvelopedError(c *gin.Context, operation string, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code), dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}

	h.logger.Error("request failed",
		zap.String("operation", operation),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrCodeInternal, "Internal error"))
}
