package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rmendoza/alumnitrack/internal/app/models"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
	"github.com/rmendoza/alumnitrack/internal/app/repositories"
	"github.com/rmendoza/alumnitrack/internal/pkg/apperrors"
	"github.com/rmendoza/alumnitrack/internal/pkg/validation"
)

// ProfileService handles alumni profile operations
type ProfileService struct {
	profileRepo     *repositories.ProfileRepository
	userRepo        *repositories.UserRepository
	activityService *ActivityService
	logger          zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	profileRepo *repositories.ProfileRepository,
	userRepo *repositories.UserRepository,
	activityService *ActivityService,
	logger zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		profileRepo:     profileRepo,
		userRepo:        userRepo,
		activityService: activityService,
		logger:          logger,
	}
}

// GetOwn retrieves the caller's profile
func (s *ProfileService) GetOwn(ctx context.Context, userID int64) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// Update applies a partial profile edit. Only fields present in the request
// are touched; everything else keeps its stored value.
func (s *ProfileService) Update(ctx context.Context, userID int64, req *dto.UpdateProfileRequest, userAgent string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		if err := validation.ValidateName(*req.FirstName); err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "first name: "+err.Error())
		}
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		if err := validation.ValidateName(*req.LastName); err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "last name: "+err.Error())
		}
		profile.LastName = *req.LastName
	}
	if req.Course != nil {
		profile.Course = *req.Course
	}
	if req.GraduationYear != nil {
		profile.GraduationYear = req.GraduationYear
	}
	if req.CurrentJob != nil {
		profile.CurrentJob = *req.CurrentJob
	}
	if req.Company != nil {
		profile.Company = *req.Company
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.LocationScope != nil {
		profile.LocationScope = models.LocationScope(*req.LocationScope)
	}
	if req.Region != nil {
		profile.Region = *req.Region
	}
	if req.SpecificLocation != nil {
		profile.SpecificLocation = *req.SpecificLocation
	}
	if req.PhoneNumber != nil {
		if err := validation.ValidatePhone(*req.PhoneNumber); err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidPhone, err.Error())
		}
		profile.PhoneNumber = *req.PhoneNumber
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	s.activityService.Log(userID, models.ActivityProfile, "Updated profile", nil, userAgent)

	return s.profileRepo.GetByUserID(ctx, userID)
}

// List retrieves the alumni directory page
func (s *ProfileService) List(ctx context.Context, filter dto.ProfileFilterRequest) ([]*models.Profile, int, error) {
	return s.profileRepo.List(ctx, filter)
}

// SetVerified toggles the admin verification mark on a profile
func (s *ProfileService) SetVerified(ctx context.Context, adminID, userID int64, verified bool, userAgent string) (*models.Profile, error) {
	if err := s.profileRepo.SetVerified(ctx, userID, verified, adminID); err != nil {
		return nil, err
	}

	action := "Unverified profile"
	if verified {
		action = "Verified profile"
	}
	s.activityService.Log(adminID, models.ActivityAdmin, action, map[string]any{
		"targetUserId": userID,
	}, userAgent)

	return s.profileRepo.GetByUserID(ctx, userID)
}
