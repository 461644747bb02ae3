package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rmendoza/alumnitrack/internal/app/models"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
	"github.com/rmendoza/alumnitrack/internal/app/repositories"
	"github.com/rmendoza/alumnitrack/internal/pkg/apperrors"
	"github.com/rmendoza/alumnitrack/internal/pkg/auth"
	"github.com/rmendoza/alumnitrack/internal/pkg/email"
	"github.com/rmendoza/alumnitrack/internal/pkg/flagledger"
	"github.com/rmendoza/alumnitrack/internal/pkg/validation"
)

const (
	verificationTokenLifetime  = 24 * time.Hour
	passwordResetTokenLifetime = time.Hour
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo          *repositories.UserRepository
	tokenRepo         *repositories.TokenRepository
	verificationRepo  *repositories.ActionTokenRepository
	passwordResetRepo *repositories.ActionTokenRepository
	jwtService        *auth.JWTService
	emailService      email.EmailService
	gateService       *GateService
	activityService   *ActivityService
	ledger            *flagledger.Ledger
	logger            zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	verificationRepo *repositories.ActionTokenRepository,
	passwordResetRepo *repositories.ActionTokenRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	gateService *GateService,
	activityService *ActivityService,
	ledger *flagledger.Ledger,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:          userRepo,
		tokenRepo:         tokenRepo,
		verificationRepo:  verificationRepo,
		passwordResetRepo: passwordResetRepo,
		jwtService:        jwtService,
		emailService:      emailService,
		gateService:       gateService,
		activityService:   activityService,
		ledger:            ledger,
		logger:            logger,
	}
}

// Register creates a new alumni account and mails a verification link. The
// profile row is not created here; the first reconciliation pass after
// sign-in synthesizes it from the signup metadata.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, userAgent string) (*dto.RegisterResponse, error) {
	emailResult := validation.ValidateEmail(req.Email)
	if !emailResult.Valid {
		custom := apperrors.NewCustomError(apperrors.ErrInvalidEmail, emailResult.Reason)
		if emailResult.Suggestion != "" {
			custom = custom.WithDetails(map[string]interface{}{"suggestion": emailResult.Suggestion})
		}
		return nil, custom
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidPassword, err.Error())
	}
	if err := validation.ValidateName(req.FirstName); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "first name: "+err.Error())
	}
	if err := validation.ValidateName(req.LastName); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "last name: "+err.Error())
	}
	if err := validation.ValidatePhone(req.PhoneNumber); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidPhone, err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:          req.Email,
		Password:       hash,
		Role:           models.RoleAlumni,
		IsActive:       true,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Course:         req.Course,
		GraduationYear: req.GraduationYear,
		CurrentJob:     req.CurrentJob,
		Company:        req.Company,
		Location:       req.Location,
		PhoneNumber:    req.PhoneNumber,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token := uuid.New()
	if err := s.verificationRepo.CreateToken(ctx, token, user.ID, time.Now().Add(verificationTokenLifetime)); err != nil {
		return nil, err
	}

	if err := s.emailService.SendVerificationEmail(user.Email, user.FirstName, token.String()); err != nil {
		// The account exists; the user can request a new link later
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send verification email")
	}

	if err := s.ledger.SetJustRegistered(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to set just-registered flag")
	}

	s.activityService.Log(user.ID, models.ActivityAuth, "Registered", map[string]any{
		"email": user.Email,
	}, userAgent)

	return &dto.RegisterResponse{
		UserID:  user.ID,
		Email:   user.Email,
		Message: "Registration successful, check your email to verify your account",
	}, nil
}

// Login authenticates a user, issues a token pair, and runs a sign-in
// reconciliation pass. An account blocked by an approved deletion request
// never gets a usable session out of this call.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest, userAgent string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	if user.EmailVerifiedAt == nil {
		return nil, apperrors.ErrEmailNotVerified
	}

	pair, sessionID, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	gate, err := s.gateService.Reconcile(ctx, user.ID, sessionID, CauseSignIn)
	if err != nil {
		return nil, err
	}
	if gate.Status == dto.GateBlocked {
		// The gate already revoked the sessions; surface the notice
		custom := apperrors.NewCustomError(apperrors.ErrAccountBlocked, "account access has been revoked")
		if gate.BlockedNotice {
			custom = custom.WithDetails(map[string]interface{}{"notice": true})
		}
		return nil, custom
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}

	s.activityService.Log(user.ID, models.ActivityAuth, "Signed in", nil, userAgent)

	return &dto.AuthResponse{
		Token: tokenResponseFromPair(pair),
		User:  userResponseFrom(user),
		Gate:  gate,
	}, nil
}

// RefreshToken rotates a refresh token: the old one is revoked and a new
// pair issued. A reconciliation pass runs with the refresh cause, which
// never raises the questionnaire prompt.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	tokenID, err := uuid.Parse(refreshToken)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, err := s.tokenRepo.GetToken(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeToken(ctx, tokenID); err != nil {
		return nil, err
	}

	pair, sessionID, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	gate, err := s.gateService.Reconcile(ctx, user.ID, sessionID, CauseRefresh)
	if err != nil {
		return nil, err
	}
	if gate.Status == dto.GateBlocked {
		return nil, apperrors.ErrAccountBlocked
	}

	return &dto.AuthResponse{
		Token: tokenResponseFromPair(pair),
		User:  userResponseFrom(user),
		Gate:  gate,
	}, nil
}

// Probe runs a reconciliation pass for an existing session, for example on
// page load or tab focus. The refresh token identifies the session; it must
// belong to the calling user. When recovery is set the pass short-circuits
// to the password-recovery state.
func (s *AuthService) Probe(ctx context.Context, userID int64, refreshToken string, recovery bool) (*dto.GateResult, error) {
	sessionID, err := uuid.Parse(refreshToken)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	ownerID, err := s.tokenRepo.GetToken(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) || errors.Is(err, apperrors.ErrTokenRevoked) || errors.Is(err, apperrors.ErrTokenExpired) {
			return &dto.GateResult{Status: dto.GateUnauthenticated}, nil
		}
		return nil, err
	}
	if ownerID != userID {
		return nil, apperrors.ErrTokenInvalid
	}

	cause := CauseProbe
	if recovery {
		cause = CausePasswordRecovery
	}

	return s.gateService.Reconcile(ctx, userID, sessionID, cause)
}

// Logout revokes a refresh token and drops its session prompt guard
func (s *AuthService) Logout(ctx context.Context, userID int64, refreshToken, userAgent string) error {
	tokenID, err := uuid.Parse(refreshToken)
	if err != nil {
		return apperrors.ErrTokenInvalid
	}

	if err := s.tokenRepo.RevokeToken(ctx, tokenID); err != nil {
		return err
	}

	if err := s.ledger.ClearPromptFired(ctx, userID, tokenID.String()); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to clear prompt guard on logout")
	}

	s.activityService.Log(userID, models.ActivityAuth, "Signed out", nil, userAgent)

	return nil
}

// VerifyEmail confirms an email address with a mailed token
func (s *AuthService) VerifyEmail(ctx context.Context, tokenStr string) error {
	token, err := uuid.Parse(tokenStr)
	if err != nil {
		return apperrors.ErrInvalidEmailToken
	}

	userID, err := s.verificationRepo.ConsumeToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenInvalid) {
			return apperrors.ErrInvalidEmailToken
		}
		return err
	}

	if err := s.userRepo.MarkEmailVerified(ctx, userID); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
			s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to send welcome email")
		}
	}

	s.activityService.Log(userID, models.ActivityAuth, "Email verified", nil, "")

	return nil
}

// ForgotPassword starts the password recovery flow. Always succeeds from the
// caller's point of view so the endpoint leaks nothing about which emails
// have accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, reqEmail string) error {
	user, err := s.userRepo.GetByEmail(ctx, reqEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Debug().Str("email", reqEmail).Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	if err := s.passwordResetRepo.InvalidateUserTokens(ctx, user.ID); err != nil {
		return err
	}

	token := uuid.New()
	if err := s.passwordResetRepo.CreateToken(ctx, token, user.ID, time.Now().Add(passwordResetTokenLifetime)); err != nil {
		return err
	}

	if err := s.emailService.SendPasswordResetEmail(user.Email, user.FirstName, token.String()); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send password reset email")
	}

	return nil
}

// ResetPassword completes the password recovery flow. Every existing session
// is revoked so only the new credential grants access.
func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if err := validation.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.NewCustomError(apperrors.ErrInvalidPassword, err.Error())
	}

	token, err := uuid.Parse(req.Token)
	if err != nil {
		return apperrors.ErrInvalidPasswordResetToken
	}

	userID, err := s.passwordResetRepo.ConsumeToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenInvalid) {
			return apperrors.ErrInvalidPasswordResetToken
		}
		return err
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to revoke sessions after password reset")
	}

	s.activityService.Log(userID, models.ActivityAuth, "Password reset", nil, "")

	return nil
}

// ChangePassword sets a new password for a signed-in user after checking
// the current one. Existing sessions stay valid; only a recovery-flow reset
// revokes them.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword, userAgent string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := auth.CheckPassword(user.Password, currentPassword); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	if err := validation.ValidatePassword(newPassword); err != nil {
		return apperrors.NewCustomError(apperrors.ErrInvalidPassword, err.Error())
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.activityService.Log(userID, models.ActivityAuth, "Password changed", nil, userAgent)

	return nil
}

// issueSession creates a token pair and stores the refresh token. The
// refresh token ID is the session identifier.
func (s *AuthService) issueSession(ctx context.Context, user *models.User) (*auth.TokenPair, uuid.UUID, error) {
	pair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	sessionID, err := uuid.Parse(pair.RefreshToken)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("unexpected refresh token format: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, sessionID, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, uuid.Nil, err
	}

	return pair, sessionID, nil
}

func tokenResponseFromPair(pair *auth.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:           pair.AccessToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(pair.ExpiresIn),
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresIn: int64(pair.RefreshExpiresIn),
	}
}

func userResponseFrom(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
	}
}
