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

// ProfileController handles alumni profile operations
type ProfileController struct {
	profileService *services.ProfileService
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		logger:         logger,
	}
}

// GetOwnProfile retrieves the caller's profile
// @Summary Get own profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.ProfileResponse} "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/me [get]
func (c *ProfileController) GetOwnProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	profile, err := c.profileService.GetOwn(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromProfile(profile), "Profile retrieved"))
}

// UpdateOwnProfile edits the caller's profile
// @Summary Update own profile
// @Description Applies a partial edit. Omitted fields keep their current value.
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.StructuredResponse{data=dto.ProfileResponse} "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/me [put]
func (c *ProfileController) UpdateOwnProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profile, err := c.profileService.Update(ctx.Request.Context(), userID, &req, ctx.Request.UserAgent())
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Profile update failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromProfile(profile), "Profile updated"))
}

// ListProfiles retrieves the alumni directory
// @Summary List alumni profiles
// @Description Lists profiles with optional search and filters, newest first
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by name, email or course"
// @Param course query string false "Filter by course"
// @Param graduationYear query int false "Filter by graduation year"
// @Param verified query bool false "Filter by verification mark"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Profiles retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles [get]
func (c *ProfileController) ListProfiles(ctx *gin.Context) {
	var filter dto.ProfileFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profiles, total, err := c.profileService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]*dto.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, dto.FromProfile(p))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(
		paginated(items, filter.Page, filter.PageSize, total), "Profiles retrieved"))
}

// VerifyProfile toggles the admin verification mark on a profile
// @Summary Verify an alumni profile
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Target user ID"
// @Param request body dto.VerifyProfileRequest true "Verification mark"
// @Success 200 {object} dto.StructuredResponse{data=dto.ProfileResponse} "Profile verification updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/{userId}/verify [put]
func (c *ProfileController) VerifyProfile(ctx *gin.Context) {
	adminID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	targetID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		badRequest(ctx, "Invalid user ID", "User ID must be a valid number")
		return
	}

	var req dto.VerifyProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profile, err := c.profileService.SetVerified(ctx.Request.Context(), adminID, targetID, req.Verified, ctx.Request.UserAgent())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromProfile(profile), "Profile verification updated"))
}
