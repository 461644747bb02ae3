package models

import (
	"time"
)

// DeletionRequest defines an account deletion request based on the
// 'deletion_requests' table. A partial unique index allows at most one
// pending request per account.
type DeletionRequest struct {
	ID           int64          `json:"id" db:"id" example:"1"`
	UserID       int64          `json:"userId" db:"user_id" example:"1"`
	Reason       string         `json:"reason" db:"reason" example:"No longer using the portal"`
	Status       DeletionStatus `json:"status" db:"status" example:"pending"`
	DecidedBy    *int64         `json:"decidedBy,omitempty" db:"decided_by"`
	DecidedAt    *time.Time     `json:"decidedAt,omitempty" db:"decided_at"`
	DecisionNote *string        `json:"decisionNote,omitempty" db:"decision_note"`
	ProcessedAt  *time.Time     `json:"processedAt,omitempty" db:"processed_at"`  // Set by the batch processor
	ProcessError *string        `json:"processError,omitempty" db:"process_error"` // Last processor failure, if any
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	User         *User          `json:"user,omitempty"` // Relation, no db tag
}
