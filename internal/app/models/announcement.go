package models

import (
	"time"
)

// Announcement defines the announcement model based on the 'announcements' table
type Announcement struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Title       string    `json:"title" db:"title" example:"Homecoming 2026"`
	Body        string    `json:"body" db:"body" example:"Registration for the grand alumni homecoming is now open."`
	Audience    string    `json:"audience" db:"audience" example:"all"` // "all" or a course name
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url" example:"uploads/announcements/1.jpg"`
	PublishedAt time.Time `json:"publishedAt" db:"published_at"`
	CreatedBy   *int64    `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
	Author      *User     `json:"author,omitempty"` // Relation, no db tag
}

// AnnouncementRead is the per-user watermark row backing the unseen badge
type AnnouncementRead struct {
	UserID     int64     `json:"userId" db:"user_id"`
	LastSeenAt time.Time `json:"lastSeenAt" db:"last_seen_at"`
}
