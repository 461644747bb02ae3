package models

import (
	"time"
)

// User defines the account model based on the 'users' table. The signup
// metadata fields (first/last name, course, graduation year, job, company,
// location, phone) are a copy of what the alumnus typed at registration;
// the profile row is the editable source of truth and reconciliation
// backfills it from here.
type User struct {
	ID              int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Email           string     `json:"email" db:"email" example:"jon@gmail.com"`                                // User's email address
	Password        string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	Role            RoleType   `json:"role" db:"role" example:"ALUMNI"`                                         // User's role (ALUMNI or ADMIN)
	IsActive        bool       `json:"isActive" db:"is_active" example:"true"`                                  // Whether the account is active
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt,omitempty" db:"email_verified_at"`                        // When the email address was confirmed (nullable)
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2025-04-20T18:00:00Z"` // Timestamp of the last login (nullable)
	FirstName       string     `json:"firstName" db:"first_name" example:"Jon"`
	LastName        string     `json:"lastName" db:"last_name" example:"Reyes"`
	Course          string     `json:"course" db:"course" example:"BS Information Technology"`
	GraduationYear  *int       `json:"graduationYear,omitempty" db:"graduation_year" example:"2024"` // Pointer for potential NULL
	CurrentJob      string     `json:"currentJob" db:"current_job" example:"Software Engineer"`
	Company         string     `json:"company" db:"company" example:"Acme Corp"`
	Location        string     `json:"location" db:"location" example:"Cebu City"`
	PhoneNumber     string     `json:"phoneNumber" db:"phone_number" example:"+639171234567"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at" example:"2025-01-01T10:00:00Z"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at" example:"2025-01-02T15:30:00Z"`
}

// IsAdmin reports whether the account carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
