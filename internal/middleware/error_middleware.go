package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/web79/smiportal/internal/app/models/dto"
	"github.com/web79/smiportal/internal/pkg/apperrors"
	"github.com/web79/smiportal/internal/pkg/logger"
)

// HandleAPIError maps an application error to its HTTP status and error body.
// Server side failures are logged.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetailFor(err)

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func errorDetailFor(err error) (int, *dto.ErrorDetail) {
	switch {
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, apperrors.MessageOf(err, "Validation failed")).
			WithField(apperrors.FieldOf(err))
	case apperrors.Is(err, apperrors.ErrEmailAlreadyExists, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, apperrors.MessageOf(err, "Resource already exists"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, apperrors.MessageOf(err, "Resource not found"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, apperrors.MessageOf(err, "Invalid email or password"))
	case errors.Is(err, apperrors.ErrBranchMismatch):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeBranchMismatch, apperrors.MessageOf(err, "Incorrect branch selected"))
	case errors.Is(err, apperrors.ErrTokenMissing):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, apperrors.MessageOf(err, "Not authorized, no token."))
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, apperrors.MessageOf(err, "Token expired"))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, apperrors.MessageOf(err, "Invalid token"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, apperrors.MessageOf(err, "Permission denied"))
	case errors.Is(err, apperrors.ErrMailDelivery):
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "Failed to send evaluation email.").
			WithSeverity(dto.ErrorSeverityCritical)
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
			WithSeverity(dto.ErrorSeverityCritical)
	}
}
