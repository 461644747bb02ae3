package dto

import (
	"time"

	"github.com/rmendoza/alumnitrack/internal/app/models"
)

// CreateDeletionRequest opens an account deletion request
type CreateDeletionRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

// DecideDeletionRequest records an admin decision on a pending request
type DecideDeletionRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note,omitempty" binding:"max=1000"`
}

// DeletionRequestResponse represents an account deletion request
type DeletionRequestResponse struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	UserEmail    string     `json:"userEmail,omitempty"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status" enums:"pending,approved,denied"`
	DecidedBy    *int64     `json:"decidedBy,omitempty"`
	DecidedAt    *time.Time `json:"decidedAt,omitempty"`
	DecisionNote *string    `json:"decisionNote,omitempty"`
	ProcessedAt  *time.Time `json:"processedAt,omitempty"`
	ProcessError *string    `json:"processError,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// FromDeletionRequest converts a models.DeletionRequest to a response
func FromDeletionRequest(r *models.DeletionRequest) DeletionRequestResponse {
	if r == nil {
		return DeletionRequestResponse{}
	}

	resp := DeletionRequestResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		Reason:       r.Reason,
		Status:       string(r.Status),
		DecidedBy:    r.DecidedBy,
		DecidedAt:    r.DecidedAt,
		DecisionNote: r.DecisionNote,
		ProcessedAt:  r.ProcessedAt,
		ProcessError: r.ProcessError,
		CreatedAt:    r.CreatedAt,
	}
	if r.User != nil {
		resp.UserEmail = r.User.Email
	}
	return resp
}

// DeletionFilterRequest carries deletion request list filters (admin view)
type DeletionFilterRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending approved denied"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// ProcessedDeletionResult is the per-request outcome of a processor run
type ProcessedDeletionResult struct {
	RequestID int64  `json:"requestId"`
	UserID    int64  `json:"userId"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// ProcessDeletionsResponse summarizes a batch processor run
type ProcessDeletionsResponse struct {
	Processed            int                       `json:"processed"`
	Failed               int                       `json:"failed"`
	ExpiredTokensRemoved int64                     `json:"expiredTokensRemoved"`
	Results              []ProcessedDeletionResult `json:"results"`
}
