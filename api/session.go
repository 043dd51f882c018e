package api

import (
	"net/http"

	"github.com/merute/welcome/internal/auth"
	"github.com/merute/welcome/internal/metrics"
	"github.com/merute/welcome/internal/partner"
	"github.com/merute/welcome/store/ephemeral"
)

// SessionCookie carries the signed dialog session token.
const SessionCookie = "merute_session"

// Sessions binds browsers to partner dialog sessions through a signed cookie.
type Sessions struct {
	store  *ephemeral.SessionStore
	secure bool
}

// NewSessions also exports the live session count on m.
func NewSessions(store *ephemeral.SessionStore, secure bool, m *metrics.Metrics) *Sessions {
	m.WatchDialogSessions(store.Len)
	return &Sessions{store: store, secure: secure}
}

// Lookup returns the live session named by the request cookie. Missing,
// forged and expired cookies all yield false.
func (s *Sessions) Lookup(r *http.Request) (*partner.Session, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, false
	}
	id, err := auth.ParseSessionToken(c.Value)
	if err != nil {
		return nil, false
	}
	return s.store.Get(id)
}

// Ensure returns the request's session, creating one when needed, and
// refreshes the cookie so it expires with the session.
func (s *Sessions) Ensure(w http.ResponseWriter, r *http.Request) (*partner.Session, error) {
	sess, ok := s.Lookup(r)
	if !ok {
		var err error
		if sess, err = s.store.Create(); err != nil {
			return nil, err
		}
	}

	token, err := auth.IssueSessionToken(sess.ID, s.store.TTL())
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.store.TTL().Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}
