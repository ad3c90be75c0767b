package models

import "time"

// Session is one logged-in client instance for a user: an opaque refresh
// token paired with an absolute expiry. Rows are appended on login/signup and
// never mutated; validity is evaluated against ExpiresAt at check time.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Active reports whether the session is still valid at the given instant.
// Expiry is strict: a session whose ExpiresAt equals now is not active.
func (s *Session) Active(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
