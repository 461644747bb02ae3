package models

import (
	"time"
)

// Profile defines the alumni profile model based on the 'profiles' table.
// Exactly one row exists per user once reconciliation has run.
type Profile struct {
	ID                     int64         `json:"id" db:"id" example:"1"`
	UserID                 int64         `json:"userId" db:"user_id" example:"1"`
	FirstName              string        `json:"firstName" db:"first_name" example:"Jon"`
	LastName               string        `json:"lastName" db:"last_name" example:"Reyes"`
	Course                 string        `json:"course" db:"course" example:"BS Information Technology"`
	GraduationYear         *int          `json:"graduationYear,omitempty" db:"graduation_year" example:"2024"`
	CurrentJob             string        `json:"currentJob" db:"current_job" example:"Software Engineer"`
	Company                string        `json:"company" db:"company" example:"Acme Corp"`
	Location               string        `json:"location" db:"location" example:"Cebu City"`
	LocationScope          LocationScope `json:"locationScope" db:"location_scope" example:"philippines"`
	Region                 string        `json:"region" db:"region" example:"Region VII"`
	SpecificLocation       string        `json:"specificLocation" db:"specific_location" example:"Cebu City, Cebu"`
	PhoneNumber            string        `json:"phoneNumber" db:"phone_number" example:"+639171234567"`
	IsVerified             bool          `json:"isVerified" db:"is_verified" example:"false"` // Set by an admin after review
	VerifiedAt             *time.Time    `json:"verifiedAt,omitempty" db:"verified_at"`
	VerifiedBy             *int64        `json:"verifiedBy,omitempty" db:"verified_by"`
	QuestionnaireCompleted bool          `json:"questionnaireCompleted" db:"questionnaire_completed" example:"false"`
	CreatedAt              time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time     `json:"updatedAt" db:"updated_at"`
	User                   *User         `json:"user,omitempty"` // Relation, no db tag
}
