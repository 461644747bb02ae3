package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rmendoza/alumnitrack/internal/app/models"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
	"github.com/rmendoza/alumnitrack/internal/pkg/apperrors"
	"github.com/rmendoza/alumnitrack/internal/pkg/dberrors"
	"github.com/rmendoza/alumnitrack/internal/pkg/helpers"
	"github.com/rmendoza/alumnitrack/internal/pkg/logger"
)

var deletionColumns = []string{
	"id", "user_id", "reason", "status", "decided_by", "decided_at",
	"decision_note", "processed_at", "process_error", "created_at",
}

// DeletionRequestRepository handles account deletion request database operations
type DeletionRequestRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDeletionRequestRepository creates a new DeletionRequestRepository
func NewDeletionRequestRepository(db *pgxpool.Pool) *DeletionRequestRepository {
	return &DeletionRequestRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanDeletionRequest(row pgx.Row) (*models.DeletionRequest, error) {
	var d models.DeletionRequest
	err := row.Scan(
		&d.ID, &d.UserID, &d.Reason, &d.Status, &d.DecidedBy, &d.DecidedAt,
		&d.DecisionNote, &d.ProcessedAt, &d.ProcessError, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create opens a new pending request. The partial unique index rejects a
// second pending request for the same account.
func (r *DeletionRequestRepository) Create(ctx context.Context, d *models.DeletionRequest) error {
	sql, args, err := r.sb.Insert("deletion_requests").
		Columns("user_id", "reason", "status").
		Values(d.UserID, d.Reason, models.DeletionPending).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create deletion request query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrPendingRequestExists
		}
		logger.Error().Err(err).Int64("userID", d.UserID).Msg("Error creating deletion request")
		return fmt.Errorf("error creating deletion request: %w", err)
	}
	d.Status = models.DeletionPending

	return nil
}

// GetByID retrieves a deletion request
func (r *DeletionRequestRepository) GetByID(ctx context.Context, id int64) (*models.DeletionRequest, error) {
	sql, args, err := r.sb.Select(deletionColumns...).
		From("deletion_requests").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get deletion request query: %w", err)
	}

	req, err := scanDeletionRequest(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDeletionRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving deletion request: %w", err)
	}

	return req, nil
}

// GetLatestByUserID retrieves the most recent request for a user
func (r *DeletionRequestRepository) GetLatestByUserID(ctx context.Context, userID int64) (*models.DeletionRequest, error) {
	sql, args, err := r.sb.Select(deletionColumns...).
		From("deletion_requests").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get latest deletion request query: %w", err)
	}

	req, err := scanDeletionRequest(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDeletionRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving deletion request: %w", err)
	}

	return req, nil
}

// HasApproved reports whether the user has an approved deletion request.
// The reconciliation gate uses this to block sessions.
func (r *DeletionRequestRepository) HasApproved(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM deletion_requests WHERE user_id = $1 AND status = 'approved')`,
		userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking approved deletion: %w", err)
	}
	return exists, nil
}

// Decide records an admin decision on a pending request. Only pending
// requests can be decided; anything else returns ErrRequestAlreadyDecided.
func (r *DeletionRequestRepository) Decide(ctx context.Context, id int64, status models.DeletionStatus, adminID int64, note string) (*models.DeletionRequest, error) {
	sql, args, err := r.sb.Update("deletion_requests").
		Set("status", status).
		Set("decided_by", adminID).
		Set("decided_at", time.Now()).
		Set("decision_note", helpers.GetContentNullString(note)).
		Where(squirrel.Eq{"id": id, "status": models.DeletionPending}).
		Suffix("RETURNING " + joinColumns(deletionColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build decide deletion request query: %w", err)
	}

	req, err := scanDeletionRequest(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the request does not exist or it was already decided
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, apperrors.ErrRequestAlreadyDecided
		}
		logger.Error().Err(err).Int64("requestID", id).Msg("Error deciding deletion request")
		return nil, fmt.Errorf("error deciding deletion request: %w", err)
	}

	return req, nil
}

// List retrieves deletion requests newest first with filters and pagination
func (r *DeletionRequestRepository) List(ctx context.Context, filter dto.DeletionFilterRequest) ([]*models.DeletionRequest, int, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	base := r.sb.Select().From("deletion_requests d").
		Join("users u ON u.id = d.user_id")

	if filter.Status != "" {
		base = base.Where(squirrel.Eq{"d.status": filter.Status})
	}

	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build deletion count query: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting deletion requests: %w", err)
	}

	cols := make([]string, 0, len(deletionColumns)+1)
	for _, c := range deletionColumns {
		cols = append(cols, "d."+c)
	}
	cols = append(cols, "u.email")

	listSQL, listArgs, err := base.Columns(cols...).
		OrderBy("d.created_at DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build deletion list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing deletion requests: %w", err)
	}
	defer rows.Close()

	var items []*models.DeletionRequest
	for rows.Next() {
		var d models.DeletionRequest
		var email string
		err := rows.Scan(
			&d.ID, &d.UserID, &d.Reason, &d.Status, &d.DecidedBy, &d.DecidedAt,
			&d.DecisionNote, &d.ProcessedAt, &d.ProcessError, &d.CreatedAt,
			&email,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning deletion request row: %w", err)
		}
		d.User = &models.User{ID: d.UserID, Email: email}
		items = append(items, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating deletion request rows: %w", err)
	}

	return items, total, nil
}

// ListApprovedUnprocessed returns approved requests the batch processor has
// not successfully handled yet, oldest first. Previously failed rows are
// picked up again.
func (r *DeletionRequestRepository) ListApprovedUnprocessed(ctx context.Context, limit int) ([]*models.DeletionRequest, error) {
	sql, args, err := r.sb.Select(deletionColumns...).
		From("deletion_requests").
		Where(squirrel.Eq{"status": models.DeletionApproved}).
		Where("processed_at IS NULL").
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build unprocessed deletions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing unprocessed deletions: %w", err)
	}
	defer rows.Close()

	var items []*models.DeletionRequest
	for rows.Next() {
		req, err := scanDeletionRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning deletion request row: %w", err)
		}
		items = append(items, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deletion request rows: %w", err)
	}

	return items, nil
}

// MarkProcessed stamps a processor outcome on a request. Success clears any
// previous error; failure records it and leaves processed_at empty for retry.
func (r *DeletionRequestRepository) MarkProcessed(ctx context.Context, tx pgx.Tx, id int64, processErr string) error {
	builder := r.sb.Update("deletion_requests").Where(squirrel.Eq{"id": id})
	if processErr == "" {
		builder = builder.Set("processed_at", time.Now()).Set("process_error", nil)
	} else {
		builder = builder.Set("process_error", processErr)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark processed query: %w", err)
	}

	var cmdErr error
	if tx != nil {
		_, cmdErr = tx.Exec(ctx, sql, args...)
	} else {
		_, cmdErr = r.db.Exec(ctx, sql, args...)
	}
	if cmdErr != nil {
		return fmt.Errorf("error marking deletion request processed: %w", cmdErr)
	}

	return nil
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
