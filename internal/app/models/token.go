package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a long-lived session credential based on the
// 'refresh_tokens' table. The token ID doubles as the session identifier
// used by the per-session flag ledger.
type RefreshToken struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ActionToken is a one-shot token row shared by the email verification and
// password reset tables.
type ActionToken struct {
	Token     uuid.UUID `json:"token" db:"token"`
	UserID    int64     `json:"userId" db:"user_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Used      bool      `json:"used" db:"used"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
