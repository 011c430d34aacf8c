package domain

import "time"

// User is the persistent user record. SessionToken is non-nil iff the user
// currently has a live session; at most one live token exists per user and
// tokens are unique across users while live.
type User struct {
	ID           string
	Username     string // unique, immutable after creation, compared as stored
	PasswordHash string // bcrypt encoded
	SessionToken *string
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasSession reports whether the user currently holds a live session.
func (u User) HasSession() bool {
	return u.SessionToken != nil && *u.SessionToken != ""
}
