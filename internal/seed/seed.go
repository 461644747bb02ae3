package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/rmendoza/alumnitrack/internal/app/models"
	appRepos "github.com/rmendoza/alumnitrack/internal/app/repositories"
	"golang.org/x/crypto/bcrypt"
)

const defaultAdminEmail = "admin@alumnitrack.app"

// CreateDefaultData creates the default admin account if it doesn't exist.
// The password must be changed after the first sign-in.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}
	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}

	lgr.Info().Msg("Creating default admin user...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Email:     defaultAdminEmail,
		Password:  string(hashedPassword),
		Role:      appModels.RoleAdmin,
		IsActive:  true,
		FirstName: "System",
		LastName:  "Administrator",
		Course:    "N/A",
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	// The admin signs in without the email verification round trip
	if err := userRepo.MarkEmailVerified(ctx, admin.ID); err != nil {
		lgr.Error().Err(err).Int64("adminID", admin.ID).Msg("Error marking admin email verified")
		return err
	}

	lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
	return nil
}
