package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
	"github.com/rmendoza/alumnitrack/internal/app/services"
	"github.com/rmendoza/alumnitrack/internal/middleware"
	"github.com/rs/zerolog"
)

// AnnouncementController handles announcement operations and the unseen badge
type AnnouncementController struct {
	announcementService *services.AnnouncementService
	logger              zerolog.Logger
}

// NewAnnouncementController creates a new AnnouncementController
func NewAnnouncementController(announcementService *services.AnnouncementService, logger zerolog.Logger) *AnnouncementController {
	return &AnnouncementController{
		announcementService: announcementService,
		logger:              logger,
	}
}

// ListAnnouncements retrieves announcements newest first
// @Summary List announcements
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search in title and body"
// @Param audience query string false "Filter by audience"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Announcements retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /announcements [get]
func (c *AnnouncementController) ListAnnouncements(ctx *gin.Context) {
	var filter dto.AnnouncementFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	announcements, total, err := c.announcementService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.AnnouncementResponse, 0, len(announcements))
	for _, a := range announcements {
		items = append(items, dto.FromAnnouncement(a))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(
		paginated(items, filter.Page, filter.PageSize, total), "Announcements retrieved"))
}

// GetAnnouncementByID retrieves a single announcement
// @Summary Get announcement by ID
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.AnnouncementResponse} "Announcement retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid announcement ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /announcements/{id} [get]
func (c *AnnouncementController) GetAnnouncementByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "Invalid announcement ID", "ID must be a valid number")
		return
	}

	announcement, err := c.announcementService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromAnnouncement(announcement), "Announcement retrieved"))
}

// CreateAnnouncement publishes a new announcement
// @Summary Create announcement
// @Description Publishes an announcement, optionally with an image, and pushes a feed event
// @Tags announcements
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param body formData string true "Body"
// @Param audience formData string false "Audience" default(all)
// @Param image formData file false "Image attachment"
// @Success 201 {object} dto.StructuredResponse{data=dto.AnnouncementResponse} "Announcement created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /announcements [post]
func (c *AnnouncementController) CreateAnnouncement(ctx *gin.Context) {
	adminID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateAnnouncementRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	// Image is optional; any error here just means none was attached
	image, _ := ctx.FormFile("image")

	announcement, err := c.announcementService.Create(ctx.Request.Context(), adminID, &req, image, ctx.Request.UserAgent())
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to create announcement")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromAnnouncement(announcement), "Announcement created"))
}

// UpdateAnnouncement edits an announcement
// @Summary Update announcement
// @Description Applies a partial edit. A new image replaces the old one.
// @Tags announcements
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Param title formData string false "Title"
// @Param body formData string false "Body"
// @Param audience formData string false "Audience"
// @Param image formData file false "Replacement image"
// @Success 200 {object} dto.StructuredResponse{data=dto.AnnouncementResponse} "Announcement updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /announcements/{id} [put]
func (c *AnnouncementController) UpdateAnnouncement(ctx *gin.Context) {
	adminID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "Invalid announcement ID", "ID must be a valid number")
		return
	}

	var req dto.UpdateAnnouncementRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	image, _ := ctx.FormFile("image")

	announcement, err := c.announcementService.Update(ctx.Request.Context(), adminID, id, &req, image, ctx.Request.UserAgent())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromAnnouncement(announcement), "Announcement updated"))
}

// DeleteAnnouncement removes an announcement
// @Summary Delete announcement
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} dto.StructuredResponse "Announcement deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid announcement ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /announcements/{id} [delete]
func (c *AnnouncementController) DeleteAnnouncement(ctx *gin.Context) {
	adminID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "Invalid announcement ID", "ID must be a valid number")
		return
	}

	if err := c.announcementService.Delete(ctx.Request.Context(), adminID, id, ctx.Request.UserAgent()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Announcement deleted"))
}

// GetUnseenCount returns the unseen announcement badge value
// @Summary Get unseen announcement count
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.UnseenCountResponse} "Unseen count retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /announcements/unseen-count [get]
func (c *AnnouncementController) GetUnseenCount(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	count, err := c.announcementService.UnseenCount(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.UnseenCountResponse{UnseenCount: count}, "Unseen count retrieved"))
}

// MarkSeen resets the caller's unseen announcement badge
// @Summary Mark announcements as seen
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse "Marked as seen"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /announcements/mark-seen [post]
func (c *AnnouncementController) MarkSeen(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.announcementService.MarkSeen(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Marked as seen"))
}
