package session

import "time"

// Session is what the storefront remembers about a logged-in user.
type Session struct {
	Token     string
	Username  string
	Balance   int64
	ExpiresAt time.Time
}

func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

// Expired reports whether the token is known to have expired. A zero
// ExpiresAt means the expiry is unknown and the session is kept.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(s.ExpiresAt)
}
