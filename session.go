package myblog

import "time"

// Flash carries at most one pending message per severity across a redirect.
// Writes overwrite, reads consume; it is a single-slot mailbox, not a queue.
type Flash struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Empty reports whether no message is pending.
func (f Flash) Empty() bool { return f.Success == "" && f.Error == "" }

// Session is the per-client state keyed by an opaque token carried in a
// signed cookie.
type Session struct {
	Token     string       `json:"token"`
	User      *SessionUser `json:"user,omitempty"` // set once registration succeeds
	Flash     Flash        `json:"flash"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`

	// IsNew marks a session created during the current request; the transport
	// uses it to decide when to set the cookie.
	IsNew bool `json:"-"`
}

// LoggedIn reports whether an account is bound to the session.
func (s *Session) LoggedIn() bool { return s != nil && s.User != nil }

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
