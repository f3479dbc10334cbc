package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hanseo-dev/jasoseo-ai/internal/coverletter"
)

// DefaultTTL bounds how long a session survives without being written.
const DefaultTTL = 30 * time.Minute

// Session is the per-visitor state: the last request, its generated result
// and whether the visitor has paid. The original product kept this in
// browser storage; holding it server side is what lets the access gate
// withhold locked sections instead of masking them cosmetically.
type Session struct {
	ID        string
	Request   coverletter.Request
	Result    *coverletter.Result
	Paid      bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store is an in-memory session store with TTL expiry. Sessions are
// ephemeral on purpose: there is no durable database behind this product.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]Session
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]Session),
	}
}

// New creates and registers a fresh session.
func (s *Store) New() Session {
	now := s.now()
	sess := Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Get returns a copy of the session for the given id. Expired sessions are
// dropped and reported as missing.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return Session{}, false
	}

	if s.now().After(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return Session{}, false
	}

	return sess, true
}

// Put stores the session and slides its expiry forward.
func (s *Store) Put(sess Session) {
	sess.ExpiresAt = s.now().Add(s.ttl)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
}

// MarkPaid flips the paid flag for the session, reporting whether the
// session exists and is still live.
func (s *Store) MarkPaid(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || s.now().After(sess.ExpiresAt) {
		return false
	}

	sess.Paid = true
	sess.ExpiresAt = s.now().Add(s.ttl)
	s.sessions[id] = sess
	return true
}

// Purge drops all expired sessions and returns how many were removed.
func (s *Store) Purge() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
