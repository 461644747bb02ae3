package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rmendoza/alumnitrack/internal/app/models"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
	"github.com/rmendoza/alumnitrack/internal/app/repositories"
	"github.com/rmendoza/alumnitrack/internal/db"
)

// processorBatchLimit caps how many requests one run handles
const processorBatchLimit = 100

// Stores the processor touches, declared here so a batch run can be
// exercised without a database.
type processorTxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

type processorDeletionStore interface {
	ListApprovedUnprocessed(ctx context.Context, limit int) ([]*models.DeletionRequest, error)
	MarkProcessed(ctx context.Context, tx pgx.Tx, id int64, processErr string) error
}

type processorUserStore interface {
	Anonymize(ctx context.Context, tx pgx.Tx, userID int64) error
}

type processorProfileStore interface {
	AnonymizeTx(ctx context.Context, tx pgx.Tx, userID int64) error
}

type processorTokenStore interface {
	RevokeAllUserTokensTx(ctx context.Context, tx pgx.Tx, userID int64) error
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// DeletionProcessor finishes approved deletion requests: it revokes any
// straggler sessions, anonymizes the account and profile, and stamps the
// request processed. Each request runs in its own transaction, so one
// failure never blocks the rest of the batch, and reruns are no-ops for
// already-processed rows. Each run also sweeps expired refresh tokens.
type DeletionProcessor struct {
	database        processorTxRunner
	deletionRepo    processorDeletionStore
	userRepo        processorUserStore
	profileRepo     processorProfileStore
	tokenRepo       processorTokenStore
	activityService activityRecorder
	logger          zerolog.Logger
}

// NewDeletionProcessor creates a new DeletionProcessor
func NewDeletionProcessor(
	database *db.PostgresDB,
	deletionRepo *repositories.DeletionRequestRepository,
	userRepo *repositories.UserRepository,
	profileRepo *repositories.ProfileRepository,
	tokenRepo *repositories.TokenRepository,
	activityService *ActivityService,
	logger zerolog.Logger,
) *DeletionProcessor {
	return &DeletionProcessor{
		database:        database,
		deletionRepo:    deletionRepo,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		tokenRepo:       tokenRepo,
		activityService: activityService,
		logger:          logger,
	}
}

// Run processes every approved, unprocessed deletion request and reports
// the per-request outcomes.
func (p *DeletionProcessor) Run(ctx context.Context) (*dto.ProcessDeletionsResponse, error) {
	resp := &dto.ProcessDeletionsResponse{
		Results: []dto.ProcessedDeletionResult{},
	}

	// Housekeeping piggybacks on the scheduled run; a failed sweep never
	// blocks the deletions.
	removed, err := p.tokenRepo.CleanupExpiredTokens(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("Expired token sweep failed")
	} else {
		resp.ExpiredTokensRemoved = removed
	}

	pending, err := p.deletionRepo.ListApprovedUnprocessed(ctx, processorBatchLimit)
	if err != nil {
		return nil, err
	}

	for _, req := range pending {
		result := dto.ProcessedDeletionResult{
			RequestID: req.ID,
			UserID:    req.UserID,
		}

		if err := p.processOne(ctx, req); err != nil {
			p.logger.Error().
				Err(err).
				Int64("requestID", req.ID).
				Int64("userID", req.UserID).
				Msg("Failed to process deletion request")

			// Record the failure for the next run to retry
			if markErr := p.deletionRepo.MarkProcessed(ctx, nil, req.ID, err.Error()); markErr != nil {
				p.logger.Error().Err(markErr).Int64("requestID", req.ID).Msg("Failed to record processing error")
			}

			result.Error = err.Error()
			resp.Failed++
		} else {
			result.Success = true
			resp.Processed++

			p.activityService.Log(req.UserID, models.ActivityDeletion, "Account deletion processed", map[string]any{
				"requestId": req.ID,
			}, "")
		}

		resp.Results = append(resp.Results, result)
	}

	p.logger.Info().
		Int("processed", resp.Processed).
		Int("failed", resp.Failed).
		Int64("expiredTokensRemoved", resp.ExpiredTokensRemoved).
		Msg("Deletion processor run finished")

	return resp, nil
}

// processOne scrubs a single account inside one transaction
func (p *DeletionProcessor) processOne(ctx context.Context, req *models.DeletionRequest) error {
	return p.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := p.tokenRepo.RevokeAllUserTokensTx(ctx, tx, req.UserID); err != nil {
			return err
		}
		if err := p.profileRepo.AnonymizeTx(ctx, tx, req.UserID); err != nil {
			return err
		}
		if err := p.userRepo.Anonymize(ctx, tx, req.UserID); err != nil {
			return err
		}
		return p.deletionRepo.MarkProcessed(ctx, tx, req.ID, "")
	})
}
