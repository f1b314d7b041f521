package model

// Package model contains the domain models/data structures.
// These are pure domain types with no database-specific dependencies, so
// they can be used across layers (HTTP, service, repository, storage)
// without coupling to persistence.

// User roles. Role is fixed to "user" at registration; only "admin" may
// reach the full listing and review endpoints.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Document statuses. Every document starts out pending; a review moves it
// to approved or rejected.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidReviewStatus reports whether s is a status a reviewer may assign.
func ValidReviewStatus(s string) bool {
	return s == StatusApproved || s == StatusRejected
}
