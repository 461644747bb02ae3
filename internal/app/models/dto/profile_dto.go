package dto

import (
	"time"

	"github.com/rmendoza/alumnitrack/internal/app/models"
)

// UpdateProfileRequest represents profile update data. Nil fields are left
// untouched so partial edits never clobber existing values.
type UpdateProfileRequest struct {
	FirstName        *string `json:"firstName,omitempty"`
	LastName         *string `json:"lastName,omitempty"`
	Course           *string `json:"course,omitempty"`
	GraduationYear   *int    `json:"graduationYear,omitempty"`
	CurrentJob       *string `json:"currentJob,omitempty"`
	Company          *string `json:"company,omitempty"`
	Location         *string `json:"location,omitempty"`
	LocationScope    *string `json:"locationScope,omitempty" binding:"omitempty,oneof=philippines abroad"`
	Region           *string `json:"region,omitempty"`
	SpecificLocation *string `json:"specificLocation,omitempty"`
	PhoneNumber      *string `json:"phoneNumber,omitempty"`
}

// ProfileResponse represents an alumni profile
type ProfileResponse struct {
	ID                     int64      `json:"id"`
	UserID                 int64      `json:"userId"`
	Email                  string     `json:"email,omitempty"`
	FirstName              string     `json:"firstName"`
	LastName               string     `json:"lastName"`
	Course                 string     `json:"course"`
	GraduationYear         *int       `json:"graduationYear,omitempty"`
	CurrentJob             string     `json:"currentJob,omitempty"`
	Company                string     `json:"company,omitempty"`
	Location               string     `json:"location,omitempty"`
	LocationScope          string     `json:"locationScope,omitempty"`
	Region                 string     `json:"region,omitempty"`
	SpecificLocation       string     `json:"specificLocation,omitempty"`
	PhoneNumber            string     `json:"phoneNumber,omitempty"`
	IsVerified             bool       `json:"isVerified"`
	VerifiedAt             *time.Time `json:"verifiedAt,omitempty"`
	QuestionnaireCompleted bool       `json:"questionnaireCompleted"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

// FromProfile converts a models.Profile to a ProfileResponse
func FromProfile(p *models.Profile) *ProfileResponse {
	if p == nil {
		return nil
	}

	resp := &ProfileResponse{
		ID:                     p.ID,
		UserID:                 p.UserID,
		FirstName:              p.FirstName,
		LastName:               p.LastName,
		Course:                 p.Course,
		GraduationYear:         p.GraduationYear,
		CurrentJob:             p.CurrentJob,
		Company:                p.Company,
		Location:               p.Location,
		LocationScope:          string(p.LocationScope),
		Region:                 p.Region,
		SpecificLocation:       p.SpecificLocation,
		PhoneNumber:            p.PhoneNumber,
		IsVerified:             p.IsVerified,
		VerifiedAt:             p.VerifiedAt,
		QuestionnaireCompleted: p.QuestionnaireCompleted,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
	if p.User != nil {
		resp.Email = p.User.Email
	}
	return resp
}

// ProfileFilterRequest carries directory list filters
type ProfileFilterRequest struct {
	Search         string `form:"search"`
	Course         string `form:"course"`
	GraduationYear *int   `form:"graduationYear"`
	Verified       *bool  `form:"verified"`
	Page           int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize       int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// VerifyProfileRequest toggles the admin verification mark
type VerifyProfileRequest struct {
	Verified bool `json:"verified"`
}
