package dto

// GateStatus is the outcome of a session reconciliation pass
type GateStatus string

const (
	GateAuthenticated    GateStatus = "authenticated"
	GateBlocked          GateStatus = "blocked"
	GateUnauthenticated  GateStatus = "unauthenticated"
	GatePasswordRecovery GateStatus = "password-recovery"
)

// GateResult is what a reconciliation pass hands back to the client: the
// session verdict, the (possibly backfilled) profile, and whether the
// questionnaire prompt should fire for this session.
type GateResult struct {
	Status GateStatus `json:"status" example:"authenticated" enums:"authenticated,blocked,unauthenticated,password-recovery"`
	// NeedsQuestionnaire is raised at most once per session, and only on
	// an interactive sign-in.
	NeedsQuestionnaire bool `json:"needsQuestionnaire"`
	// JustRegistered is true on the first sign-in after registration so the
	// client can show the welcome banner once.
	JustRegistered bool `json:"justRegistered,omitempty"`
	// BlockedNotice is true exactly once after an approved deletion blocks
	// the account; subsequent passes report blocked without the notice.
	BlockedNotice bool             `json:"blockedNotice,omitempty"`
	Profile       *ProfileResponse `json:"profile,omitempty"`
}
