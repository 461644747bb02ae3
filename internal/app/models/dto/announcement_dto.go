package dto

import (
	"time"

	"github.com/rmendoza/alumnitrack/internal/app/models"
)

// CreateAnnouncementRequest represents a new announcement. Submitted as
// multipart form data so an image can ride along.
type CreateAnnouncementRequest struct {
	Title    string `form:"title" binding:"required,max=255"`
	Body     string `form:"body" binding:"required"`
	Audience string `form:"audience,default=all"`
}

// UpdateAnnouncementRequest represents announcement edits
type UpdateAnnouncementRequest struct {
	Title    *string `form:"title" binding:"omitempty,max=255"`
	Body     *string `form:"body"`
	Audience *string `form:"audience"`
}

// AnnouncementResponse represents a single announcement
type AnnouncementResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Audience    string    `json:"audience"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	AuthorName  string    `json:"authorName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromAnnouncement converts a models.Announcement to an AnnouncementResponse
func FromAnnouncement(a *models.Announcement) AnnouncementResponse {
	if a == nil {
		return AnnouncementResponse{}
	}

	resp := AnnouncementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Body:        a.Body,
		Audience:    a.Audience,
		ImageURL:    a.ImageURL,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Author != nil {
		resp.AuthorName = a.Author.FirstName + " " + a.Author.LastName
	}
	return resp
}

// AnnouncementFilterRequest carries announcement list filters
type AnnouncementFilterRequest struct {
	Search   string `form:"search"`
	Audience string `form:"audience"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// UnseenCountResponse is the unseen announcement badge payload
type UnseenCountResponse struct {
	UnseenCount int64 `json:"unseenCount"`
}
