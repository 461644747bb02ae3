package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rmendoza/alumnitrack/internal/app/models"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
	"github.com/rmendoza/alumnitrack/internal/app/repositories"
	"github.com/rmendoza/alumnitrack/internal/pkg/apperrors"
	"github.com/rmendoza/alumnitrack/internal/pkg/flagledger"
)

// Stores the questionnaire flow touches, declared here so submission can
// be exercised without a database.
type questionnaireAnswerStore interface {
	Upsert(ctx context.Context, answers *models.QuestionnaireAnswers) error
	GetByUserID(ctx context.Context, userID int64) (*models.QuestionnaireAnswers, error)
}

type questionnaireProfileStore interface {
	SetQuestionnaireCompleted(ctx context.Context, userID int64, completed bool) error
}

// activityRecorder is the audit-trail surface services write to.
type activityRecorder interface {
	Log(userID int64, category models.ActivityCategory, description string, metadata map[string]any, userAgent string)
}

// QuestionnaireService handles the post-registration questionnaire
type QuestionnaireService struct {
	questionnaireRepo questionnaireAnswerStore
	profileRepo       questionnaireProfileStore
	activityService   activityRecorder
	ledger            *flagledger.Ledger
	logger            zerolog.Logger
}

// NewQuestionnaireService creates a new QuestionnaireService
func NewQuestionnaireService(
	questionnaireRepo *repositories.QuestionnaireRepository,
	profileRepo *repositories.ProfileRepository,
	activityService *ActivityService,
	ledger *flagledger.Ledger,
	logger zerolog.Logger,
) *QuestionnaireService {
	return &QuestionnaireService{
		questionnaireRepo: questionnaireRepo,
		profileRepo:       profileRepo,
		activityService:   activityService,
		ledger:            ledger,
		logger:            logger,
	}
}

// Submit stores questionnaire answers, marks the profile complete, and drops
// the caller's session prompt guard so the gate re-evaluates from the stored
// state. Resubmitting replaces the previous answers.
func (s *QuestionnaireService) Submit(ctx context.Context, userID int64, sessionID string, req *dto.QuestionnaireRequest, userAgent string) (*models.QuestionnaireAnswers, error) {
	country := strings.TrimSpace(req.Country)
	if country == "" {
		return nil, apperrors.NewBadRequestError("country is required")
	}
	skills := strings.TrimSpace(req.Skills)
	if skills == "" {
		return nil, apperrors.NewBadRequestError("skills are required")
	}

	answers := &models.QuestionnaireAnswers{
		UserID:           userID,
		Country:          country,
		Skills:           skills,
		EmploymentStatus: models.EmploymentStatus(req.EmploymentStatus),
	}
	// Region and province only make sense for a Philippines location
	if strings.EqualFold(country, "Philippines") {
		if req.Region == nil || strings.TrimSpace(*req.Region) == "" {
			return nil, apperrors.NewBadRequestError("region is required for a Philippines location")
		}
		answers.Region = req.Region
		answers.Province = req.Province
	}

	if err := s.questionnaireRepo.Upsert(ctx, answers); err != nil {
		return nil, err
	}

	if err := s.profileRepo.SetQuestionnaireCompleted(ctx, userID, true); err != nil {
		// The answers are saved; the flag catches up on the next submission
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to mark questionnaire completed")
	}

	if sessionID != "" {
		if err := s.ledger.ClearPromptFired(ctx, userID, sessionID); err != nil {
			s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to clear prompt guard after submission")
		}
	}

	s.activityService.Log(userID, models.ActivityQuestionnaire, "Submitted questionnaire", map[string]any{
		"employmentStatus": req.EmploymentStatus,
	}, userAgent)

	return answers, nil
}

// GetOwn retrieves the caller's questionnaire answers
func (s *QuestionnaireService) GetOwn(ctx context.Context, userID int64) (*models.QuestionnaireAnswers, error) {
	return s.questionnaireRepo.GetByUserID(ctx, userID)
}
