package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
	"github.com/rmendoza/alumnitrack/internal/app/services"
	"github.com/rmendoza/alumnitrack/internal/middleware"
	"github.com/rs/zerolog"
)

// ActivityController exposes the audit trail to admins
type ActivityController struct {
	activityService *services.ActivityService
	logger          zerolog.Logger
}

// NewActivityController creates a new ActivityController
func NewActivityController(activityService *services.ActivityService, logger zerolog.Logger) *ActivityController {
	return &ActivityController{
		activityService: activityService,
		logger:          logger,
	}
}

// ListActivity retrieves activity log entries newest first
// @Summary List activity log entries
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Param userId query int false "Filter by user"
// @Param category query string false "Filter by category"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Activity retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /activity [get]
func (c *ActivityController) ListActivity(ctx *gin.Context) {
	var filter dto.ActivityFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	entries, total, err := c.activityService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.ActivityLogResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.FromActivityLog(entry))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(
		paginated(items, filter.Page, filter.PageSize, total), "Activity retrieved"))
}

// ListOwnActivity retrieves the caller's own activity log entries
// @Summary List own activity log entries
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Activity retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /activity/me [get]
func (c *ActivityController) ListOwnActivity(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var filter dto.ActivityFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	filter.UserID = &userID

	entries, total, err := c.activityService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.ActivityLogResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.FromActivityLog(entry))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(
		paginated(items, filter.Page, filter.PageSize, total), "Activity retrieved"))
}
