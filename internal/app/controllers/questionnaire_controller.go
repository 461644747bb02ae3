package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
	"github.com/rmendoza/alumnitrack/internal/app/services"
	"github.com/rmendoza/alumnitrack/internal/middleware"
	"github.com/rs/zerolog"
)

// QuestionnaireController handles the post-registration questionnaire
type QuestionnaireController struct {
	questionnaireService *services.QuestionnaireService
	logger               zerolog.Logger
}

// NewQuestionnaireController creates a new QuestionnaireController
func NewQuestionnaireController(questionnaireService *services.QuestionnaireService, logger zerolog.Logger) *QuestionnaireController {
	return &QuestionnaireController{
		questionnaireService: questionnaireService,
		logger:               logger,
	}
}

// SubmitQuestionnaire stores the caller's questionnaire answers
// @Summary Submit questionnaire
// @Description Stores the post-registration questionnaire and stops the prompt from firing again. Resubmitting replaces earlier answers.
// @Tags questionnaire
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.QuestionnaireRequest true "Questionnaire answers"
// @Success 200 {object} dto.StructuredResponse{data=dto.QuestionnaireResponse} "Questionnaire submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questionnaire [post]
func (c *QuestionnaireController) SubmitQuestionnaire(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.QuestionnaireRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	answers, err := c.questionnaireService.Submit(ctx.Request.Context(), userID, currentSessionID(ctx), &req, ctx.Request.UserAgent())
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Questionnaire submission failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromQuestionnaire(answers), "Questionnaire submitted"))
}

// GetOwnQuestionnaire retrieves the caller's questionnaire answers
// @Summary Get own questionnaire answers
// @Tags questionnaire
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.QuestionnaireResponse} "Answers retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No answers submitted yet"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questionnaire [get]
func (c *QuestionnaireController) GetOwnQuestionnaire(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	answers, err := c.questionnaireService.GetOwn(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromQuestionnaire(answers), "Answers retrieved"))
}
