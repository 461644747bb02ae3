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
	"github.com/rmendoza/alumnitrack/internal/pkg/apperrors"
	"github.com/rmendoza/alumnitrack/internal/pkg/logger"
)

// QuestionnaireRepository handles questionnaire answer database operations
type QuestionnaireRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewQuestionnaireRepository creates a new QuestionnaireRepository
func NewQuestionnaireRepository(db *pgxpool.Pool) *QuestionnaireRepository {
	return &QuestionnaireRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByUserID retrieves a user's questionnaire answers
func (r *QuestionnaireRepository) GetByUserID(ctx context.Context, userID int64) (*models.QuestionnaireAnswers, error) {
	sql, args, err := r.sb.Select("id", "user_id", "country", "region", "province",
		"skills", "employment_status", "created_at", "updated_at").
		From("questionnaire_answers").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get questionnaire query: %w", err)
	}

	var q models.QuestionnaireAnswers
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&q.ID, &q.UserID, &q.Country, &q.Region, &q.Province,
		&q.Skills, &q.EmploymentStatus, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionnaireNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning questionnaire row")
		return nil, fmt.Errorf("error retrieving questionnaire answers: %w", err)
	}

	return &q, nil
}

// Upsert stores questionnaire answers, replacing any previous submission
func (r *QuestionnaireRepository) Upsert(ctx context.Context, q *models.QuestionnaireAnswers) error {
	sql, args, err := r.sb.Insert("questionnaire_answers").
		Columns("user_id", "country", "region", "province", "skills", "employment_status").
		Values(q.UserID, q.Country, q.Region, q.Province, q.Skills, q.EmploymentStatus).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			country = EXCLUDED.country,
			region = EXCLUDED.region,
			province = EXCLUDED.province,
			skills = EXCLUDED.skills,
			employment_status = EXCLUDED.employment_status,
			updated_at = ?
			RETURNING id, created_at, updated_at`, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert questionnaire query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("userID", q.UserID).Msg("Error upserting questionnaire answers")
		return fmt.Errorf("error storing questionnaire answers: %w", err)
	}

	return nil
}
