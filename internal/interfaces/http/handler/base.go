package handler

import (
	"errors"
	"net/http"

	"github.com/assettrack/backend/internal/domain/asset"
	"github.com/assettrack/backend/internal/domain/shared"
	"github.com/assettrack/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts service errors to HTTP responses. Assignment
// conflicts carry the conflicting tenant so the caller can decide whether
// to re-issue with force.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := getRequestID(c)

	var conflictErr *asset.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, dto.NewErrorResponseWithDetails(
			dto.ErrCodeAssignmentConflict,
			conflictErr.Error(),
			requestID,
			conflictDetails(conflictErr),
		))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID))
		return
	}

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInternal,
		"An unexpected error occurred",
		requestID,
	))
}

// errorInfoFor renders a service error into the envelope's error shape
// without writing a response, for per-item results in bulk operations
func errorInfoFor(err error) *dto.ErrorInfo {
	var conflictErr *asset.ConflictError
	if errors.As(err, &conflictErr) {
		return &dto.ErrorInfo{
			Code:    dto.ErrCodeAssignmentConflict,
			Message: conflictErr.Error(),
			Details: conflictDetails(conflictErr),
		}
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return &dto.ErrorInfo{
			Code:    dto.NormalizeErrorCode(domainErr.Code),
			Message: domainErr.Message,
		}
	}

	return &dto.ErrorInfo{
		Code:    dto.ErrCodeInternal,
		Message: "An unexpected error occurred",
	}
}

func conflictDetails(e *asset.ConflictError) map[string]interface{} {
	return map[string]interface{}{
		"tag":                     e.Tag,
		"conflicting_tenant_id":   e.ConflictingTenantID.String(),
		"conflicting_tenant_name": e.ConflictingTenantName,
	}
}
