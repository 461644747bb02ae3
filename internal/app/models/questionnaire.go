package models

import (
	"time"
)

// QuestionnaireAnswers defines the post-registration questionnaire response
// based on the 'questionnaire_answers' table. One row per user; resubmitting
// replaces the previous answers.
type QuestionnaireAnswers struct {
	ID               int64            `json:"id" db:"id" example:"1"`
	UserID           int64            `json:"userId" db:"user_id" example:"1"`
	Country          string           `json:"country" db:"country" example:"Philippines"`
	Region           *string          `json:"region,omitempty" db:"region" example:"Region VII"`
	Province         *string          `json:"province,omitempty" db:"province" example:"Cebu"`
	Skills           string           `json:"skills" db:"skills" example:"Go, SQL, project management"`
	EmploymentStatus EmploymentStatus `json:"employmentStatus" db:"employment_status" example:"Employed"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time        `json:"updatedAt" db:"updated_at"`
}
