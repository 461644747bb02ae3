package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository            *UserRepository
	TokenRepository           *TokenRepository
	VerificationTokenRepo     *ActionTokenRepository
	PasswordResetTokenRepo    *ActionTokenRepository
	ProfileRepository         *ProfileRepository
	QuestionnaireRepository   *QuestionnaireRepository
	AnnouncementRepository    *AnnouncementRepository
	ActivityLogRepository     *ActivityLogRepository
	DeletionRequestRepository *DeletionRequestRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:            NewUserRepository(db),
		TokenRepository:           NewTokenRepository(db),
		VerificationTokenRepo:     NewEmailVerificationTokenRepository(db),
		PasswordResetTokenRepo:    NewPasswordResetTokenRepository(db),
		ProfileRepository:         NewProfileRepository(db),
		QuestionnaireRepository:   NewQuestionnaireRepository(db),
		AnnouncementRepository:    NewAnnouncementRepository(db),
		ActivityLogRepository:     NewActivityLogRepository(db),
		DeletionRequestRepository: NewDeletionRequestRepository(db),
	}
}
