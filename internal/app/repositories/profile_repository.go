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
	"github.com/rmendoza/alumnitrack/internal/pkg/dberrors"
	"github.com/rmendoza/alumnitrack/internal/pkg/helpers"
	"github.com/rmendoza/alumnitrack/internal/pkg/logger"
)

var profileColumns = []string{
	"id", "user_id", "first_name", "last_name", "course", "graduation_year",
	"current_job", "company", "location", "location_scope", "region",
	"specific_location", "phone_number", "is_verified", "verified_at",
	"verified_by", "questionnaire_completed", "created_at", "updated_at",
}

// ProfileRepository handles alumni profile database operations
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Course, &p.GraduationYear,
		&p.CurrentJob, &p.Company, &p.Location, &p.LocationScope, &p.Region,
		&p.SpecificLocation, &p.PhoneNumber, &p.IsVerified, &p.VerifiedAt,
		&p.VerifiedBy, &p.QuestionnaireCompleted, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByUserID retrieves the profile belonging to a user
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	sql, args, err := r.sb.Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	profile, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	return profile, nil
}

// Create inserts a new profile row. Returns ErrResourceAlreadyExists when a
// profile for the user already exists, so concurrent reconciliation passes
// can fall back to re-reading.
func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	sql, args, err := r.sb.Insert("profiles").
		Columns("user_id", "first_name", "last_name", "course", "graduation_year",
			"current_job", "company", "location", "location_scope", "region",
			"specific_location", "phone_number").
		Values(p.UserID, p.FirstName, p.LastName, p.Course, p.GraduationYear,
			p.CurrentJob, p.Company, p.Location, p.LocationScope, p.Region,
			p.SpecificLocation, p.PhoneNumber).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create profile query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Int64("userID", p.UserID).Msg("Error creating profile")
		return fmt.Errorf("error creating profile: %w", err)
	}

	return nil
}

// Update writes the editable profile fields
func (r *ProfileRepository) Update(ctx context.Context, p *models.Profile) error {
	sql, args, err := r.sb.Update("profiles").
		Set("first_name", p.FirstName).
		Set("last_name", p.LastName).
		Set("course", p.Course).
		Set("graduation_year", p.GraduationYear).
		Set("current_job", p.CurrentJob).
		Set("company", p.Company).
		Set("location", p.Location).
		Set("location_scope", p.LocationScope).
		Set("region", p.Region).
		Set("specific_location", p.SpecificLocation).
		Set("phone_number", p.PhoneNumber).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"user_id": p.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", p.UserID).Msg("Error updating profile")
		return fmt.Errorf("error updating profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}

// SetVerified toggles the admin verification mark
func (r *ProfileRepository) SetVerified(ctx context.Context, userID int64, verified bool, adminID int64) error {
	builder := r.sb.Update("profiles").
		Set("is_verified", verified).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"user_id": userID})

	if verified {
		builder = builder.Set("verified_at", time.Now()).Set("verified_by", adminID)
	} else {
		builder = builder.Set("verified_at", nil).Set("verified_by", nil)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set verified query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating verification mark: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}

// SetQuestionnaireCompleted flips the questionnaire flag on the profile
func (r *ProfileRepository) SetQuestionnaireCompleted(ctx context.Context, userID int64, completed bool) error {
	sql, args, err := r.sb.Update("profiles").
		Set("questionnaire_completed", completed).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build questionnaire flag query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating questionnaire flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}

// List retrieves profiles for the directory with filters and pagination.
// Returns the page of profiles and the total match count.
func (r *ProfileRepository) List(ctx context.Context, filter dto.ProfileFilterRequest) ([]*models.Profile, int, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	base := r.sb.Select().From("profiles p").
		Join("users u ON u.id = p.user_id").
		Where(squirrel.Eq{"u.is_active": true})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(squirrel.Or{
			squirrel.ILike{"p.first_name": pattern},
			squirrel.ILike{"p.last_name": pattern},
			squirrel.ILike{"p.company": pattern},
			squirrel.ILike{"p.current_job": pattern},
		})
	}
	if filter.Course != "" {
		base = base.Where(squirrel.Eq{"p.course": filter.Course})
	}
	if filter.GraduationYear != nil {
		base = base.Where(squirrel.Eq{"p.graduation_year": *filter.GraduationYear})
	}
	if filter.Verified != nil {
		base = base.Where(squirrel.Eq{"p.is_verified": *filter.Verified})
	}

	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build profile count query: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting profiles: %w", err)
	}

	cols := make([]string, 0, len(profileColumns)+1)
	for _, c := range profileColumns {
		cols = append(cols, "p."+c)
	}
	cols = append(cols, "u.email")

	listSQL, listArgs, err := base.Columns(cols...).
		OrderBy("p.last_name ASC", "p.first_name ASC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build profile list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		var p models.Profile
		var email string
		err := rows.Scan(
			&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Course, &p.GraduationYear,
			&p.CurrentJob, &p.Company, &p.Location, &p.LocationScope, &p.Region,
			&p.SpecificLocation, &p.PhoneNumber, &p.IsVerified, &p.VerifiedAt,
			&p.VerifiedBy, &p.QuestionnaireCompleted, &p.CreatedAt, &p.UpdatedAt,
			&email,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning profile row: %w", err)
		}
		p.User = &models.User{ID: p.UserID, Email: email}
		profiles = append(profiles, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating profile rows: %w", err)
	}

	return profiles, total, nil
}

// AnonymizeTx strips personal data from a profile inside a caller
// transaction, used by the deletion processor.
func (r *ProfileRepository) AnonymizeTx(ctx context.Context, tx pgx.Tx, userID int64) error {
	sql, args, err := r.sb.Update("profiles").
		Set("first_name", "").
		Set("last_name", "").
		Set("current_job", "").
		Set("company", "").
		Set("location", "").
		Set("location_scope", "").
		Set("region", "").
		Set("specific_location", "").
		Set("phone_number", "").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build anonymize profile query: %w", err)
	}

	// No rows is fine; the account may never have completed reconciliation
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error anonymizing profile: %w", err)
	}

	return nil
}
