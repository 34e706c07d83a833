package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"electronics-store/middleware"
	"electronics-store/models"
	"electronics-store/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.Response{Success: true, Message: message, Data: data})
}

func respondFail(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{Success: false, Code: code, Message: message})
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognised is logged
// and answered with 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Code:    "validation_error",
			Message: verr.Error(),
			Error:   verr.Field,
		})
	case errors.Is(err, models.ErrEmptyCart):
		respondFail(c, http.StatusConflict, "cart_empty", "Your cart is empty")
	case errors.Is(err, models.ErrNotFound):
		respondFail(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		respondFail(c, http.StatusUnauthorized, "unauthorized", "Authentication required")
	case errors.Is(err, models.ErrForbidden):
		respondFail(c, http.StatusForbidden, "forbidden", "Access denied")
	case errors.Is(err, utils.ErrFileTooLarge), errors.Is(err, utils.ErrInvalidFileType):
		respondFail(c, http.StatusBadRequest, "invalid_file", err.Error())
	default:
		_ = c.Error(err)
		logger.Error("Request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		respondFail(c, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Code:    "invalid_request",
		Message: "Invalid request",
		Error:   err.Error(),
	})
}

// idParam reads a positive integer path parameter, answering 404 when it is malformed.
func idParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		respondFail(c, http.StatusNotFound, "not_found", name+" not found")
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return page, limit
}

// identity returns the authenticated caller or answers 401.
func identity(c *gin.Context) (models.Identity, bool) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "unauthorized", "Authentication required")
	}
	return ident, ok
}
