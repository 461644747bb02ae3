package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rmendoza/alumnitrack/internal/app/models"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
	"github.com/rmendoza/alumnitrack/internal/pkg/helpers"
	"github.com/rmendoza/alumnitrack/internal/pkg/logger"
)

// ActivityLogRepository handles audit trail database operations
type ActivityLogRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *pgxpool.Pool) *ActivityLogRepository {
	return &ActivityLogRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Insert stores one activity log entry
func (r *ActivityLogRepository) Insert(ctx context.Context, entry *models.ActivityLog) error {
	metadata := entry.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal activity metadata: %w", err)
	}

	sql, args, err := r.sb.Insert("activity_logs").
		Columns("user_id", "category", "description", "metadata", "user_agent").
		Values(entry.UserID, entry.Category, entry.Description, metadataJSON, entry.UserAgent).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert activity query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("userID", entry.UserID).Msg("Error inserting activity log")
		return fmt.Errorf("error inserting activity log: %w", err)
	}

	return nil
}

// List retrieves activity entries newest first with filters and pagination
func (r *ActivityLogRepository) List(ctx context.Context, filter dto.ActivityFilterRequest) ([]*models.ActivityLog, int, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	base := r.sb.Select().From("activity_logs l").
		Join("users u ON u.id = l.user_id")

	if filter.UserID != nil {
		base = base.Where(squirrel.Eq{"l.user_id": *filter.UserID})
	}
	if filter.Category != "" {
		base = base.Where(squirrel.Eq{"l.category": filter.Category})
	}

	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build activity count query: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting activity logs: %w", err)
	}

	listSQL, listArgs, err := base.Columns(
		"l.id", "l.user_id", "l.category", "l.description", "l.metadata",
		"l.user_agent", "l.created_at", "u.email").
		OrderBy("l.created_at DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build activity list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing activity logs: %w", err)
	}
	defer rows.Close()

	var entries []*models.ActivityLog
	for rows.Next() {
		var entry models.ActivityLog
		var metadataJSON []byte
		var email string
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Category, &entry.Description,
			&metadataJSON, &entry.UserAgent, &entry.CreatedAt, &email,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning activity row: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &entry.Metadata); err != nil {
				logger.Warn().Err(err).Int64("logID", entry.ID).Msg("Skipping malformed activity metadata")
			}
		}
		entry.User = &models.User{ID: entry.UserID, Email: email}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return entries, total, nil
}
