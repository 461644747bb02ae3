package dto

import (
	"time"

	"github.com/rmendoza/alumnitrack/internal/app/models"
)

// QuestionnaireRequest represents the post-registration questionnaire
// submission. Region and province only apply when country is Philippines.
type QuestionnaireRequest struct {
	Country          string  `json:"country" binding:"required,max=100"`
	Region           *string `json:"region,omitempty" binding:"omitempty,max=100"`
	Province         *string `json:"province,omitempty" binding:"omitempty,max=255"`
	Skills           string  `json:"skills" binding:"required,max=2000"`
	EmploymentStatus string  `json:"employmentStatus" binding:"required,oneof=Employed Unemployed"`
}

// QuestionnaireResponse represents stored questionnaire answers
type QuestionnaireResponse struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	Country          string    `json:"country"`
	Region           *string   `json:"region,omitempty"`
	Province         *string   `json:"province,omitempty"`
	Skills           string    `json:"skills"`
	EmploymentStatus string    `json:"employmentStatus"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// FromQuestionnaire converts models.QuestionnaireAnswers to a response
func FromQuestionnaire(q *models.QuestionnaireAnswers) *QuestionnaireResponse {
	if q == nil {
		return nil
	}

	return &QuestionnaireResponse{
		ID:               q.ID,
		UserID:           q.UserID,
		Country:          q.Country,
		Region:           q.Region,
		Province:         q.Province,
		Skills:           q.Skills,
		EmploymentStatus: string(q.EmploymentStatus),
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}
