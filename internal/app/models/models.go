package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAlumni RoleType = "ALUMNI"
	RoleAdmin  RoleType = "ADMIN"
)

// LocationScope describes how a profile location was entered
type LocationScope string

const (
	ScopePhilippines LocationScope = "philippines"
	ScopeAbroad      LocationScope = "abroad"
)

// EmploymentStatus is the answer to the questionnaire employment question
type EmploymentStatus string

const (
	StatusEmployed   EmploymentStatus = "Employed"
	StatusUnemployed EmploymentStatus = "Unemployed"
)

// DeletionStatus is the lifecycle state of an account deletion request
type DeletionStatus string

const (
	DeletionPending  DeletionStatus = "pending"
	DeletionApproved DeletionStatus = "approved"
	DeletionDenied   DeletionStatus = "denied"
)

// ActivityCategory groups activity log entries
type ActivityCategory string

const (
	ActivityAuth          ActivityCategory = "auth"
	ActivityProfile       ActivityCategory = "profile"
	ActivityQuestionnaire ActivityCategory = "questionnaire"
	ActivityAnnouncement  ActivityCategory = "announcement"
	ActivityDeletion      ActivityCategory = "deletion"
	ActivityAdmin         ActivityCategory = "admin"
)
