// Package controllers handles HTTP request handling
package controllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
)

// currentUserID reads the authenticated user ID set by the JWT middleware.
// Returns false and writes a 401 response when it is missing.
func currentUserID(ctx *gin.Context) (int64, bool) {
	value, exists := ctx.Get("userID")
	if !exists {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}

	userID, ok := value.(int64)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return 0, false
	}

	return userID, true
}

// currentSessionID reads the session ID claim set by the JWT middleware.
// Empty when the token predates the claim; callers treat that as "no
// session-scoped state to touch".
func currentSessionID(ctx *gin.Context) string {
	if value, exists := ctx.Get("sessionID"); exists {
		if sessionID, ok := value.(string); ok {
			return sessionID
		}
	}
	return ""
}

// paginated wraps a list in the standard pagination envelope
func paginated(items interface{}, page, pageSize, total int) dto.PaginatedResponse {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	}

	return dto.PaginatedResponse{
		Items: items,
		Pagination: dto.PaginationInfo{
			CurrentPage: page,
			TotalPages:  totalPages,
			PageSize:    pageSize,
			TotalItems:  total,
		},
	}
}

func badRequest(ctx *gin.Context, message, details string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	if details != "" {
		errorDetail = errorDetail.WithDetails(details)
	}
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
