package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/noah-protocol/noah-client/internal/api/shared/errors"
	"github.com/noah-protocol/noah-client/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, apierrors.NewValidationError(message))
}

// respondError maps an executor error to its status code; unknown errors are internal
func respondError(c *gin.Context, err error, message string) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message))
		return
	}

	status := http.StatusInternalServerError
	switch apiErr.Code {
	case apierrors.ErrCodeBadRequest:
		status = http.StatusBadRequest
	case apierrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case apierrors.ErrCodeValidationFailed:
		status = http.StatusUnprocessableEntity
	case apierrors.ErrCodeServiceError:
		status = http.StatusBadGateway
		logger.WarnCtx(c.Request.Context(), message, zap.String("details", apiErr.Message))
	}

	c.JSON(status, apiErr)
}
