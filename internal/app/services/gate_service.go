package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rmendoza/alumnitrack/internal/app/models"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
	"github.com/rmendoza/alumnitrack/internal/app/repositories"
	"github.com/rmendoza/alumnitrack/internal/pkg/apperrors"
	"github.com/rmendoza/alumnitrack/internal/pkg/flagledger"
)

// GateCause says why a reconciliation pass is running. Only an interactive
// sign-in may raise the questionnaire prompt.
type GateCause string

const (
	CauseSignIn           GateCause = "sign-in"
	CauseProbe            GateCause = "probe"
	CauseRefresh          GateCause = "refresh"
	CausePasswordRecovery GateCause = "password-recovery"
)

// Stores the gate reads and writes, declared here so the reconciliation
// logic can be exercised without a database.
type gateUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type gateProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	Create(ctx context.Context, p *models.Profile) error
	Update(ctx context.Context, p *models.Profile) error
	SetQuestionnaireCompleted(ctx context.Context, userID int64, completed bool) error
}

type gateQuestionnaireStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.QuestionnaireAnswers, error)
}

type gateTokenStore interface {
	IsActive(ctx context.Context, tokenID uuid.UUID) (bool, error)
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

type gateDeletionStore interface {
	HasApproved(ctx context.Context, userID int64) (bool, error)
}

// GateService reconciles a session against the account's server-side state:
// it guarantees a profile row exists, backfills it from signup metadata,
// enforces approved deletion blocks, and decides whether the questionnaire
// prompt fires. Infrastructure failures fail open: a user with a valid
// session is never signed out because a lookup misbehaved. Only an approved
// deletion closes the gate.
type GateService struct {
	userRepo          gateUserStore
	profileRepo       gateProfileStore
	tokenRepo         gateTokenStore
	deletionRepo      gateDeletionStore
	questionnaireRepo gateQuestionnaireStore
	ledger            *flagledger.Ledger
	// sessionTTL bounds the prompt guard so it dies with the session
	sessionTTL time.Duration
	logger     zerolog.Logger
}

// NewGateService creates a new GateService
func NewGateService(
	userRepo *repositories.UserRepository,
	profileRepo *repositories.ProfileRepository,
	tokenRepo *repositories.TokenRepository,
	deletionRepo *repositories.DeletionRequestRepository,
	questionnaireRepo *repositories.QuestionnaireRepository,
	ledger *flagledger.Ledger,
	sessionTTL time.Duration,
	logger zerolog.Logger,
) *GateService {
	return &GateService{
		userRepo:          userRepo,
		profileRepo:       profileRepo,
		tokenRepo:         tokenRepo,
		deletionRepo:      deletionRepo,
		questionnaireRepo: questionnaireRepo,
		ledger:            ledger,
		sessionTTL:        sessionTTL,
		logger:            logger,
	}
}

// Reconcile runs one pass for a session. sessionID is the refresh token ID.
func (s *GateService) Reconcile(ctx context.Context, userID int64, sessionID uuid.UUID, cause GateCause) (*dto.GateResult, error) {
	// A password-recovery pass bypasses reconciliation entirely; the client
	// routes straight to the reset flow.
	if cause == CausePasswordRecovery {
		return &dto.GateResult{Status: dto.GatePasswordRecovery}, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return &dto.GateResult{Status: dto.GateUnauthenticated}, nil
		}
		// Fail open: keep the session alive without a profile
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Gate: user lookup failed, failing open")
		return &dto.GateResult{Status: dto.GateAuthenticated}, nil
	}

	if blocked, result := s.checkDeletionBlock(ctx, userID); blocked {
		return result, nil
	}

	if !user.IsActive {
		return &dto.GateResult{Status: dto.GateUnauthenticated}, nil
	}

	profile := s.ensureProfile(ctx, user)
	if profile != nil {
		profile = s.backfillProfile(ctx, user, profile)
	}

	result := &dto.GateResult{
		Status:  dto.GateAuthenticated,
		Profile: dto.FromProfile(profile),
	}
	if result.Profile != nil {
		result.Profile.Email = user.Email
	}

	if cause == CauseSignIn && profile != nil && !profile.QuestionnaireCompleted && !s.legacyAnswersExist(ctx, userID) {
		result.NeedsQuestionnaire = s.claimPrompt(ctx, userID, sessionID)
	}

	// The welcome banner fires on the first interactive sign-in after
	// registration and never again.
	if cause == CauseSignIn {
		if taken, err := s.ledger.TakeJustRegistered(ctx, userID); err != nil {
			s.logger.Warn().Err(err).Int64("userID", userID).Msg("Gate: failed to read just-registered flag")
		} else {
			result.JustRegistered = taken
		}
	}

	// A sign-out racing this pass wins: if the session token died while we
	// were reconciling, report unauthenticated instead of resurrecting it.
	active, err := s.tokenRepo.IsActive(ctx, sessionID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Gate: session liveness check failed, failing open")
	} else if !active {
		return &dto.GateResult{Status: dto.GateUnauthenticated}, nil
	}

	return result, nil
}

// checkDeletionBlock closes the gate when an approved deletion request
// exists. All sessions are revoked and the one-shot notice is surfaced
// exactly once.
func (s *GateService) checkDeletionBlock(ctx context.Context, userID int64) (bool, *dto.GateResult) {
	approved, err := s.deletionRepo.HasApproved(ctx, userID)
	if err != nil {
		// Fail open; the deletion processor is the backstop
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Gate: deletion check failed, failing open")
		return false, nil
	}
	if !approved {
		return false, nil
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Gate: failed to revoke sessions for blocked account")
	}

	notice := false
	if _, ok, err := s.ledger.TakeBlockedNotice(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Gate: failed to read blocked notice")
	} else {
		notice = ok
	}

	return true, &dto.GateResult{
		Status:        dto.GateBlocked,
		BlockedNotice: notice,
	}
}

// ensureProfile returns the user's profile, synthesizing one from signup
// metadata when none exists yet. Returns nil only when every path failed;
// the caller then proceeds without a profile.
func (s *GateService) ensureProfile(ctx context.Context, user *models.User) *models.Profile {
	profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err == nil {
		return profile
	}
	if !errors.Is(err, apperrors.ErrProfileNotFound) {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Gate: profile fetch failed, failing open")
		return nil
	}

	fresh := &models.Profile{
		UserID:         user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Course:         user.Course,
		GraduationYear: user.GraduationYear,
		CurrentJob:     user.CurrentJob,
		Company:        user.Company,
		Location:       user.Location,
		PhoneNumber:    user.PhoneNumber,
	}
	if fresh.GraduationYear == nil {
		// Missing graduation year defaults to the current year
		year := time.Now().Year()
		fresh.GraduationYear = &year
	}

	err = s.profileRepo.Create(ctx, fresh)
	if err == nil {
		s.logger.Info().Int64("userID", user.ID).Msg("Gate: synthesized profile from signup metadata")
		return fresh
	}
	if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		// Lost a create race with another pass; their row wins
		profile, err = s.profileRepo.GetByUserID(ctx, user.ID)
		if err == nil {
			return profile
		}
	}

	s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Gate: profile creation failed, failing open")
	return nil
}

// backfillProfile copies signup metadata into profile fields the user has
// never filled in. Existing values are never overwritten. After any write
// the profile is re-read so the caller sees the stored state.
func (s *GateService) backfillProfile(ctx context.Context, user *models.User, profile *models.Profile) *models.Profile {
	changed := false

	if profile.FirstName == "" && user.FirstName != "" {
		profile.FirstName = user.FirstName
		changed = true
	}
	if profile.LastName == "" && user.LastName != "" {
		profile.LastName = user.LastName
		changed = true
	}
	if profile.Course == "" && user.Course != "" {
		profile.Course = user.Course
		changed = true
	}
	if profile.GraduationYear == nil && user.GraduationYear != nil {
		profile.GraduationYear = user.GraduationYear
		changed = true
	}
	if profile.CurrentJob == "" && user.CurrentJob != "" {
		profile.CurrentJob = user.CurrentJob
		changed = true
	}
	if profile.Company == "" && user.Company != "" {
		profile.Company = user.Company
		changed = true
	}
	if profile.Location == "" && user.Location != "" {
		profile.Location = user.Location
		changed = true
	}
	if profile.PhoneNumber == "" && user.PhoneNumber != "" {
		profile.PhoneNumber = user.PhoneNumber
		changed = true
	}

	if !changed {
		return profile
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Gate: profile backfill write failed")
		return profile
	}

	stored, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Gate: re-read after backfill failed")
		return profile
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Gate: backfilled profile from signup metadata")
	return stored
}

// legacyAnswersExist handles accounts that answered the questionnaire before
// the profile flag existed: an answers row counts as completion and the flag
// is backfilled. An inconclusive check suppresses the prompt.
func (s *GateService) legacyAnswersExist(ctx context.Context, userID int64) bool {
	_, err := s.questionnaireRepo.GetByUserID(ctx, userID)
	if err == nil {
		if err := s.profileRepo.SetQuestionnaireCompleted(ctx, userID, true); err != nil {
			s.logger.Warn().Err(err).Int64("userID", userID).Msg("Gate: failed to backfill questionnaire flag")
		}
		return true
	}
	if errors.Is(err, apperrors.ErrQuestionnaireNotFound) {
		return false
	}

	s.logger.Warn().Err(err).Int64("userID", userID).Msg("Gate: questionnaire lookup failed, suppressing prompt")
	return true
}

// claimPrompt reports whether this session may raise the questionnaire
// prompt, and records the claim so it happens at most once per session.
func (s *GateService) claimPrompt(ctx context.Context, userID int64, sessionID uuid.UUID) bool {
	fired, err := s.ledger.PromptFired(ctx, userID, sessionID.String())
	if err != nil {
		// When in doubt, don't nag
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Gate: prompt guard read failed")
		return false
	}
	if fired {
		return false
	}

	if err := s.ledger.MarkPromptFired(ctx, userID, sessionID.String(), s.sessionTTL); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Gate: prompt guard write failed")
		return false
	}

	return true
}
