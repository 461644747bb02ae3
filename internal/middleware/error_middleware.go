package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
	"github.com/rmendoza/alumnitrack/internal/pkg/apperrors"
)

// HandleAPIError maps application errors onto HTTP responses. Controllers
// funnel every service error through here so status codes and payload shape
// stay consistent across the API.
func HandleAPIError(c *gin.Context, err error) {
	// CustomError carries a caller-facing message and optional details
	var customErr *apperrors.CustomError
	message := ""
	var details map[string]interface{}
	if errors.As(err, &customErr) {
		message = customErr.Message
		details = customErr.Details
	}

	respond := func(status int, code dto.ErrorCode, fallback string) {
		if message == "" {
			message = fallback
		}
		errorDetail := dto.NewErrorDetail(code, message)
		if details != nil {
			errorDetail = errorDetail.WithDetails(details)
		}
		c.JSON(status, dto.NewErrorResponse(errorDetail))
	}

	switch {
	// Not found
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrProfileNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Profile not found")
	case errors.Is(err, apperrors.ErrAnnouncementNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Announcement not found")
	case errors.Is(err, apperrors.ErrDeletionRequestNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Deletion request not found")
	case errors.Is(err, apperrors.ErrQuestionnaireNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Questionnaire answers not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrEmailNotVerified):
		respond(http.StatusForbidden, dto.ErrorCodeEmailNotVerified, "Please verify your email address before signing in")
	case errors.Is(err, apperrors.ErrAccountBlocked):
		respond(http.StatusForbidden, dto.ErrorCodeAccountBlocked, "Account access has been revoked")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Account is disabled")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenRevoked):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrInvalidEmailToken):
		respond(http.StatusBadRequest, dto.ErrorCodeInvalidToken, "Invalid or expired verification token")
	case errors.Is(err, apperrors.ErrInvalidPasswordResetToken):
		respond(http.StatusBadRequest, dto.ErrorCodeInvalidToken, "Invalid or expired password reset token")
	case errors.Is(err, apperrors.ErrEmailAlreadyVerified):
		respond(http.StatusConflict, dto.ErrorCodeConflict, "Email is already verified")

	// Authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	// Conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrPendingRequestExists):
		respond(http.StatusConflict, dto.ErrorCodeConflict, "A pending deletion request already exists")
	case errors.Is(err, apperrors.ErrRequestAlreadyDecided):
		respond(http.StatusConflict, dto.ErrorCodeConflict, "Deletion request has already been decided")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists")
	case errors.Is(err, apperrors.ErrConflict):
		respond(http.StatusConflict, dto.ErrorCodeConflict, "Conflict")

	// Bad input
	case errors.Is(err, apperrors.ErrInvalidEmail):
		respond(http.StatusBadRequest, dto.ErrorCodeInvalidEmail, "Invalid email address")
	case errors.Is(err, apperrors.ErrInvalidPassword):
		respond(http.StatusBadRequest, dto.ErrorCodeInvalidPassword, "Invalid password")
	case errors.Is(err, apperrors.ErrInvalidPhone):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid phone number")
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrBadRequest):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Bad request")

	default:
		// Never leak internal error text to clients
		message = ""
		respond(http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}
