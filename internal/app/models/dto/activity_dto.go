package dto

import (
	"time"

	"github.com/rmendoza/alumnitrack/internal/app/models"
)

// ActivityLogResponse represents one audit trail entry
type ActivityLogResponse struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"userId"`
	UserEmail   string         `json:"userEmail,omitempty"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	UserAgent   string         `json:"userAgent,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// FromActivityLog converts a models.ActivityLog to an ActivityLogResponse
func FromActivityLog(l *models.ActivityLog) ActivityLogResponse {
	if l == nil {
		return ActivityLogResponse{}
	}

	resp := ActivityLogResponse{
		ID:          l.ID,
		UserID:      l.UserID,
		Category:    string(l.Category),
		Description: l.Description,
		Metadata:    l.Metadata,
		UserAgent:   l.UserAgent,
		CreatedAt:   l.CreatedAt,
	}
	if l.User != nil {
		resp.UserEmail = l.User.Email
	}
	return resp
}

// ActivityFilterRequest carries activity list filters (admin view)
type ActivityFilterRequest struct {
	UserID   *int64 `form:"userId"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}
