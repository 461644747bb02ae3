package models

import (
	"time"
)

// ActivityLog defines an audit trail entry based on the 'activity_logs' table.
// Writes are best effort; a failed insert never fails the user action.
type ActivityLog struct {
	ID          int64            `json:"id" db:"id" example:"1"`
	UserID      int64            `json:"userId" db:"user_id" example:"1"`
	Category    ActivityCategory `json:"category" db:"category" example:"auth"`
	Description string           `json:"description" db:"description" example:"Signed in"`
	Metadata    map[string]any   `json:"metadata" db:"metadata"` // Stored as JSONB
	UserAgent   string           `json:"userAgent" db:"user_agent"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	User        *User            `json:"user,omitempty"` // Relation, no db tag
}
