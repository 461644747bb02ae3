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

// DeletionController handles the account deletion request workflow
type DeletionController struct {
	deletionService   *services.DeletionService
	deletionProcessor *services.DeletionProcessor
	logger            zerolog.Logger
}

// NewDeletionController creates a new DeletionController
func NewDeletionController(
	deletionService *services.DeletionService,
	deletionProcessor *services.DeletionProcessor,
	logger zerolog.Logger,
) *DeletionController {
	return &DeletionController{
		deletionService:   deletionService,
		deletionProcessor: deletionProcessor,
		logger:            logger,
	}
}

// CreateDeletionRequest opens a deletion request for the caller
// @Summary Request account deletion
// @Description Opens a deletion request. At most one pending request can exist per account.
// @Tags deletion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDeletionRequest true "Deletion reason"
// @Success 201 {object} dto.StructuredResponse{data=dto.DeletionRequestResponse} "Deletion request opened"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "A pending request already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /deletion-requests [post]
func (c *DeletionController) CreateDeletionRequest(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateDeletionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	created, err := c.deletionService.Create(ctx.Request.Context(), userID, req.Reason, ctx.Request.UserAgent())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromDeletionRequest(created), "Deletion request opened"))
}

// GetOwnDeletionRequest retrieves the caller's most recent deletion request
// @Summary Get own deletion request
// @Tags deletion
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.DeletionRequestResponse} "Deletion request retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No deletion request found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /deletion-requests/me [get]
func (c *DeletionController) GetOwnDeletionRequest(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	req, err := c.deletionService.GetOwn(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromDeletionRequest(req), "Deletion request retrieved"))
}

// ListDeletionRequests retrieves deletion requests for the admin view
// @Summary List deletion requests
// @Tags deletion
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(pending, approved, denied)
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Deletion requests retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /deletion-requests [get]
func (c *DeletionController) ListDeletionRequests(ctx *gin.Context) {
	var filter dto.DeletionFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	requests, total, err := c.deletionService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.DeletionRequestResponse, 0, len(requests))
	for _, r := range requests {
		items = append(items, dto.FromDeletionRequest(r))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(
		paginated(items, filter.Page, filter.PageSize, total), "Deletion requests retrieved"))
}

// DecideDeletionRequest records an admin decision on a pending request
// @Summary Decide a deletion request
// @Description Approves or denies a pending request. Approval immediately revokes every session of the target account.
// @Tags deletion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Deletion request ID"
// @Param request body dto.DecideDeletionRequest true "Decision"
// @Success 200 {object} dto.StructuredResponse{data=dto.DeletionRequestResponse} "Decision recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Deletion request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already decided"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /deletion-requests/{id}/decision [put]
func (c *DeletionController) DecideDeletionRequest(ctx *gin.Context) {
	adminID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	requestID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "Invalid deletion request ID", "ID must be a valid number")
		return
	}

	var req dto.DecideDeletionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	decided, err := c.deletionService.Decide(ctx.Request.Context(), adminID, requestID, req.Approve, req.Note, ctx.Request.UserAgent())
	if err != nil {
		c.logger.Warn().Err(err).Int64("requestID", requestID).Msg("Deletion decision failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromDeletionRequest(decided), "Decision recorded"))
}

// ProcessDeletions runs the batch deletion processor
// @Summary Process approved deletion requests
// @Description Scrubs every approved, unprocessed deletion request. Guarded by the job secret header, not a user token.
// @Tags deletion
// @Produce json
// @Param X-Job-Secret header string true "Job secret"
// @Success 200 {object} dto.StructuredResponse{data=dto.ProcessDeletionsResponse} "Processor run finished"
// @Failure 403 {object} dto.ErrorResponse "Missing or wrong job secret"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs/process-deletions [post]
func (c *DeletionController) ProcessDeletions(ctx *gin.Context) {
	resp, err := c.deletionProcessor.Run(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Deletion processor run failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Processor run finished"))
}
