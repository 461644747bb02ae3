package services

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rmendoza/alumnitrack/internal/app/models"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
	"github.com/rmendoza/alumnitrack/internal/app/repositories"
)

// ActivityService records the audit trail. Logging is fire and forget: a
// failed insert is retried briefly in the background and then dropped, and
// never fails the action that produced it.
type ActivityService struct {
	activityRepo *repositories.ActivityLogRepository
	logger       zerolog.Logger
}

// NewActivityService creates a new ActivityService
func NewActivityService(activityRepo *repositories.ActivityLogRepository, logger zerolog.Logger) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Log records an activity entry asynchronously
func (s *ActivityService) Log(userID int64, category models.ActivityCategory, description string, metadata map[string]any, userAgent string) {
	entry := &models.ActivityLog{
		UserID:      userID,
		Category:    category,
		Description: description,
		Metadata:    metadata,
		UserAgent:   userAgent,
	}

	go s.insertWithRetry(entry)
}

func (s *ActivityService) insertWithRetry(entry *models.ActivityLog) {
	// Detached from the request context on purpose: the request finishing
	// must not cancel the write.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx)

	err := backoff.Retry(func() error {
		return s.activityRepo.Insert(ctx, entry)
	}, policy)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Int64("userID", entry.UserID).
			Str("category", string(entry.Category)).
			Msg("Dropping activity log entry after retries")
	}
}

// List retrieves activity entries for the admin view
func (s *ActivityService) List(ctx context.Context, filter dto.ActivityFilterRequest) ([]*models.ActivityLog, int, error) {
	return s.activityRepo.List(ctx, filter)
}
