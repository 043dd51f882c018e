package ephemeral

import (
	"time"

	"github.com/google/uuid"
	"github.com/merute/welcome/internal/partner"
)

// SessionStore keeps partner dialog sessions alive for a sliding TTL.
type SessionStore struct {
	store *Store[*partner.Session]
	ttl   time.Duration
}

// NewSessionStore creates a store whose sessions expire after ttl of
// inactivity.
func NewSessionStore(ttl time.Duration, maxSessions int) *SessionStore {
	return &SessionStore{
		store: NewStore[*partner.Session](maxSessions, 0),
		ttl:   ttl,
	}
}

// Create registers a fresh session under a random id.
func (s *SessionStore) Create() (*partner.Session, error) {
	sess := partner.NewSession(uuid.NewString())
	if err := s.store.Set(sess.ID, sess, s.ttl); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get returns the live session and extends its expiry.
func (s *SessionStore) Get(id string) (*partner.Session, bool) {
	return s.store.Touch(id, s.ttl)
}

// Delete forgets a session.
func (s *SessionStore) Delete(id string) {
	s.store.Delete(id)
}

// Len reports the number of tracked sessions.
func (s *SessionStore) Len() int {
	return s.store.Len()
}

// TTL is the inactivity timeout.
func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

// Close stops the background sweep.
func (s *SessionStore) Close() {
	s.store.Close()
}
