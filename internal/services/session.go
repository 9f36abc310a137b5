package services

// Session identifies the authenticated user for the duration of their
// interaction. It is an explicit value passed into repository-facing calls
// rather than process-wide state, so ownership is always visible at the
// call site.
type Session struct {
	UserID uint
	Email  string
}

// Active reports whether the session still identifies a user.
func (s *Session) Active() bool {
	return s != nil && s.UserID != 0
}

// Clear resets the session to the logged-out state. Clearing an already
// cleared session is a no-op.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.UserID = 0
	s.Email = ""
}
