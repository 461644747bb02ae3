package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rmendoza/alumnitrack/internal/app/models"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
	"github.com/rmendoza/alumnitrack/internal/app/repositories"
	"github.com/rmendoza/alumnitrack/internal/pkg/flagledger"
)

// DeletionService handles the account deletion request workflow: alumni open
// requests, admins decide them, and the batch processor finishes approved
// ones. Approval takes effect immediately by revoking every session and
// arming the one-shot blocked notice; the processor later scrubs the data.
type DeletionService struct {
	deletionRepo    *repositories.DeletionRequestRepository
	tokenRepo       *repositories.TokenRepository
	activityService *ActivityService
	ledger          *flagledger.Ledger
	logger          zerolog.Logger
}

// NewDeletionService creates a new DeletionService
func NewDeletionService(
	deletionRepo *repositories.DeletionRequestRepository,
	tokenRepo *repositories.TokenRepository,
	activityService *ActivityService,
	ledger *flagledger.Ledger,
	logger zerolog.Logger,
) *DeletionService {
	return &DeletionService{
		deletionRepo:    deletionRepo,
		tokenRepo:       tokenRepo,
		activityService: activityService,
		ledger:          ledger,
		logger:          logger,
	}
}

// Create opens a deletion request for the caller. At most one pending
// request can exist per account.
func (s *DeletionService) Create(ctx context.Context, userID int64, reason, userAgent string) (*models.DeletionRequest, error) {
	req := &models.DeletionRequest{
		UserID: userID,
		Reason: reason,
	}
	if err := s.deletionRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.activityService.Log(userID, models.ActivityDeletion, "Requested account deletion", map[string]any{
		"requestId": req.ID,
	}, userAgent)

	return req, nil
}

// GetOwn retrieves the caller's most recent deletion request
func (s *DeletionService) GetOwn(ctx context.Context, userID int64) (*models.DeletionRequest, error) {
	return s.deletionRepo.GetLatestByUserID(ctx, userID)
}

// List retrieves deletion requests for the admin view
func (s *DeletionService) List(ctx context.Context, filter dto.DeletionFilterRequest) ([]*models.DeletionRequest, int, error) {
	return s.deletionRepo.List(ctx, filter)
}

// Decide records an admin decision. Approval immediately revokes every
// session of the target account and arms the blocked notice the user sees
// exactly once on their next appearance.
func (s *DeletionService) Decide(ctx context.Context, adminID, requestID int64, approve bool, note, userAgent string) (*models.DeletionRequest, error) {
	status := models.DeletionDenied
	if approve {
		status = models.DeletionApproved
	}

	req, err := s.deletionRepo.Decide(ctx, requestID, status, adminID, note)
	if err != nil {
		return nil, err
	}

	if approve {
		if err := s.tokenRepo.RevokeAllUserTokens(ctx, req.UserID); err != nil {
			s.logger.Error().Err(err).Int64("userID", req.UserID).Msg("Failed to revoke sessions after deletion approval")
		}
		if err := s.ledger.SetBlockedNotice(ctx, req.UserID, "Your account deletion request has been approved."); err != nil {
			s.logger.Warn().Err(err).Int64("userID", req.UserID).Msg("Failed to arm blocked notice")
		}
	}

	action := "Denied deletion request"
	if approve {
		action = "Approved deletion request"
	}
	s.activityService.Log(adminID, models.ActivityAdmin, action, map[string]any{
		"requestId":    requestID,
		"targetUserId": req.UserID,
	}, userAgent)

	return req, nil
}
