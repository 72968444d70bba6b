package handler

import (
	"errors"
	"net/http"

	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/gasdepot/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// BaseHandler provides shared response helpers for all handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a new BaseHandler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// Success sends a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.SuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with data and pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, meta dto.Meta) {
	c.JSON(http.StatusOK, dto.SuccessResponseWithMeta(data, meta))
}

// Created sends a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.SuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response for malformed input
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse(dto.ErrCodeBadRequest, message))
}

// BindingError sends a 400 response for a failed request binding. Validator
// failures are broken out per field; anything else (malformed JSON, type
// mismatches) gets a generic message.
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]dto.ValidationDetail, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   fieldError.Field(),
				Message: validationMessage(fieldError),
			})
		}
		c.JSON(http.StatusBadRequest,
			dto.ErrorResponseWithDetails(dto.ErrCodeValidation, "Request validation failed", details))
		return
	}

	h.BadRequest(c, "malformed request body")
}

func validationMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "uuid":
		return "Must be a valid UUID"
	case "oneof":
		return "Must be one of: " + fieldError.Param()
	case "min":
		return "Must be at least " + fieldError.Param()
	case "max":
		return "Must be at most " + fieldError.Param()
	case "hhmm":
		return "Must be a 24-hour time such as 08:30"
	default:
		return "Invalid value"
	}
}

// HandleDomainError maps a domain error to the appropriate HTTP response.
// Unrecognized errors are logged and returned as 500 without leaking detail.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code), dto.ErrorResponse(code, domainErr.Message))
		return
	}

	h.logger.Error("unhandled error",
		zap.String("request_id", getRequestID(c)),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse(dto.ErrCodeInternal, "internal server error"))
}

// getRequestID returns the request id set by the middleware, if any
func getRequestID(c *gin.Context) string {
	if id, ok := c.Get("request_id"); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
