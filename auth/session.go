package auth

import "time"

// Session is the authenticated caller of an admin operation. A nil *Session is an
// anonymous visitor.
type Session struct {
	AdminID   string
	Username  string
	ExpiresAt time.Time
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.AdminID != ""
}
