// Package flagledger owns the small set of one-shot state flags the portal
// keeps outside the relational store. Every key is declared here with its
// TTL and read semantics so no caller touches the backing store directly.
package flagledger

import (
	"context"
	"fmt"
	"time"
)

// Key formats and lifetimes. Keys are documented here and nowhere else:
//
//	blocked_notice:<userID>          one-shot notice shown after a forced
//	                                 sign-out; cleared on first read
//	prompt_fired:<userID>:<session>  questionnaire prompt guard, one per
//	                                 session; expires with the session
//	just_registered:<userID>         one-shot welcome banner after signup;
//	                                 cleared on first read
const (
	blockedNoticeKeyFmt  = "blocked_notice:%d"
	promptFiredKeyFmt    = "prompt_fired:%d:%s"
	justRegisteredKeyFmt = "just_registered:%d"

	// BlockedNoticeTTL bounds how long an unread blocked notice survives.
	BlockedNoticeTTL = 7 * 24 * time.Hour

	// JustRegisteredTTL bounds how long the welcome banner stays claimable.
	JustRegisteredTTL = time.Hour
)

// Store is the minimal key-value surface the ledger needs. The production
// implementation is Redis; tests use the in-memory store.
type Store interface {
	// Set stores value under key with the given TTL (0 means no expiry).
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// GetDel atomically reads and removes the key.
	GetDel(ctx context.Context, key string) (string, bool, error)
	// Del removes the key.
	Del(ctx context.Context, key string) error
}

// Ledger exposes the documented flags over a Store.
type Ledger struct {
	store Store
}

// New creates a Ledger backed by the given store.
func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// SetBlockedNotice persists the one-shot notice displayed after an account
// is forcibly signed out.
func (l *Ledger) SetBlockedNotice(ctx context.Context, userID int64, notice string) error {
	return l.store.Set(ctx, fmt.Sprintf(blockedNoticeKeyFmt, userID), notice, BlockedNoticeTTL)
}

// TakeBlockedNotice reads and clears the blocked notice. The second return
// value reports whether a notice was present.
func (l *Ledger) TakeBlockedNotice(ctx context.Context, userID int64) (string, bool, error) {
	return l.store.GetDel(ctx, fmt.Sprintf(blockedNoticeKeyFmt, userID))
}

// MarkPromptFired records that the questionnaire prompt was issued for a
// session. The TTL should match the session lifetime.
func (l *Ledger) MarkPromptFired(ctx context.Context, userID int64, sessionID string, ttl time.Duration) error {
	return l.store.Set(ctx, fmt.Sprintf(promptFiredKeyFmt, userID, sessionID), "1", ttl)
}

// PromptFired reports whether the questionnaire prompt already fired for a
// session.
func (l *Ledger) PromptFired(ctx context.Context, userID int64, sessionID string) (bool, error) {
	_, ok, err := l.store.Get(ctx, fmt.Sprintf(promptFiredKeyFmt, userID, sessionID))
	return ok, err
}

// ClearPromptFired removes the prompt guard, used when the questionnaire
// is completed so a later account state change can re-evaluate cleanly.
func (l *Ledger) ClearPromptFired(ctx context.Context, userID int64, sessionID string) error {
	return l.store.Del(ctx, fmt.Sprintf(promptFiredKeyFmt, userID, sessionID))
}

// SetJustRegistered marks a fresh signup for the one-shot welcome banner.
func (l *Ledger) SetJustRegistered(ctx context.Context, userID int64) error {
	return l.store.Set(ctx, fmt.Sprintf(justRegisteredKeyFmt, userID), "1", JustRegisteredTTL)
}

// TakeJustRegistered reads and clears the welcome banner flag.
func (l *Ledger) TakeJustRegistered(ctx context.Context, userID int64) (bool, error) {
	_, ok, err := l.store.GetDel(ctx, fmt.Sprintf(justRegisteredKeyFmt, userID))
	return ok, err
}
