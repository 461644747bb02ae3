package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rmendoza/alumnitrack/internal/app/models"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
	"github.com/rmendoza/alumnitrack/internal/pkg/apperrors"
	"github.com/rmendoza/alumnitrack/internal/pkg/helpers"
	"github.com/rmendoza/alumnitrack/internal/pkg/logger"
)

// AnnouncementRepository handles announcement database operations
type AnnouncementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new announcement and sets the generated ID on the model
func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	sql, args, err := r.sb.Insert("announcements").
		Columns("title", "body", "audience", "image_url", "published_at", "created_by").
		Values(a.Title, a.Body, a.Audience, a.ImageURL, time.Now(), a.CreatedBy).
		Suffix("RETURNING id, published_at, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create announcement query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("title", a.Title).Msg("Error creating announcement")
		return fmt.Errorf("error creating announcement: %w", err)
	}

	return nil
}

// GetByID retrieves an announcement with its author
func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.title", "a.body", "a.audience", "a.image_url",
		"a.published_at", "a.created_by", "a.created_at", "a.updated_at",
		"u.first_name", "u.last_name").
		From("announcements a").
		LeftJoin("users u ON u.id = a.created_by").
		Where(squirrel.Eq{"a.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get announcement query: %w", err)
	}

	var a models.Announcement
	var authorFirst, authorLast *string
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&a.ID, &a.Title, &a.Body, &a.Audience, &a.ImageURL,
		&a.PublishedAt, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
		&authorFirst, &authorLast,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		logger.Error().Err(err).Int64("announcementID", id).Msg("Error scanning announcement row")
		return nil, fmt.Errorf("error retrieving announcement: %w", err)
	}

	if a.CreatedBy != nil && authorFirst != nil {
		a.Author = &models.User{
			ID:        *a.CreatedBy,
			FirstName: *authorFirst,
			LastName:  helpers.StringOrEmpty(authorLast),
		}
	}

	return &a, nil
}

// Update writes announcement edits
func (r *AnnouncementRepository) Update(ctx context.Context, a *models.Announcement) error {
	sql, args, err := r.sb.Update("announcements").
		Set("title", a.Title).
		Set("body", a.Body).
		Set("audience", a.Audience).
		Set("image_url", a.ImageURL).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update announcement query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("announcementID", a.ID).Msg("Error updating announcement")
		return fmt.Errorf("error updating announcement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}

	return nil
}

// Delete removes an announcement
func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("announcements").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete announcement query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting announcement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}

	return nil
}

// List retrieves announcements newest first with filters and pagination
func (r *AnnouncementRepository) List(ctx context.Context, filter dto.AnnouncementFilterRequest) ([]*models.Announcement, int, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	base := r.sb.Select().From("announcements a").
		LeftJoin("users u ON u.id = a.created_by")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(squirrel.Or{
			squirrel.ILike{"a.title": pattern},
			squirrel.ILike{"a.body": pattern},
		})
	}
	if filter.Audience != "" {
		base = base.Where(squirrel.Eq{"a.audience": filter.Audience})
	}

	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build announcement count query: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting announcements: %w", err)
	}

	listSQL, listArgs, err := base.Columns(
		"a.id", "a.title", "a.body", "a.audience", "a.image_url",
		"a.published_at", "a.created_by", "a.created_at", "a.updated_at",
		"u.first_name", "u.last_name").
		OrderBy("a.published_at DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build announcement list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing announcements: %w", err)
	}
	defer rows.Close()

	var items []*models.Announcement
	for rows.Next() {
		var a models.Announcement
		var authorFirst, authorLast *string
		err := rows.Scan(
			&a.ID, &a.Title, &a.Body, &a.Audience, &a.ImageURL,
			&a.PublishedAt, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
			&authorFirst, &authorLast,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning announcement row: %w", err)
		}
		if a.CreatedBy != nil && authorFirst != nil {
			a.Author = &models.User{
				ID:        *a.CreatedBy,
				FirstName: *authorFirst,
				LastName:  helpers.StringOrEmpty(authorLast),
			}
		}
		items = append(items, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating announcement rows: %w", err)
	}

	return items, total, nil
}

// CountUnseen counts announcements published after the user's watermark.
// A user with no watermark sees everything as unseen.
func (r *AnnouncementRepository) CountUnseen(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM announcements a
		WHERE a.published_at > COALESCE(
			(SELECT last_seen_at FROM announcement_reads WHERE user_id = $1),
			'-infinity'::timestamptz)`,
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unseen announcements: %w", err)
	}
	return count, nil
}

// TouchLastSeen moves the user's watermark to now
func (r *AnnouncementRepository) TouchLastSeen(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO announcement_reads (user_id, last_seen_at)
		VALUES ($1, NOW())
		ON CONFLICT (user_id) DO UPDATE SET last_seen_at = NOW()`,
		userID)
	if err != nil {
		return fmt.Errorf("error updating announcement watermark: %w", err)
	}
	return nil
}
