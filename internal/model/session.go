package model

import "time"

// Session is an opaque bearer credential bound to an account.
// A zero ExpiresAt means the session never expires.
type Session struct {
	Token     string
	AccountID AccountID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has expired as of now
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
