package services

// Services defined in this package:
// - AuthService: registration, login, token rotation, email verification,
//   password recovery
// - GateService: per-session reconciliation (profile synthesis/backfill,
//   deletion blocks, questionnaire prompt)
// - ProfileService: alumni profile reads and edits, directory listing,
//   admin verification mark
// - QuestionnaireService: post-registration questionnaire
// - AnnouncementService: announcements, unseen badge, real-time feed
// - ActivityService: best-effort audit trail
// - DeletionService: deletion request workflow
// - DeletionProcessor: batch scrubbing of approved deletion requests
