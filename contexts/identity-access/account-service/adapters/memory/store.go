// Package memory is the in-memory account store used by tests and DSN-less
// local runs. It also provides the clock and id generator, so a single store
// can satisfy every account port in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"calendar/contexts/identity-access/account-service/domain/entities"
	"calendar/contexts/identity-access/account-service/ports"
	"calendar/internal/shared/results"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]entities.User // keyed by username
	sessions map[string]entities.Session

	// Fault, when set, makes every call report a store fault. Test hook.
	Fault error
	// FixedNow, when set, pins the clock for deterministic expiry tests.
	FixedNow time.Time
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]entities.User),
		sessions: make(map[string]entities.Session),
	}
}

func (s *Store) FindByUsername(_ context.Context, username string) results.Store[entities.User] {
	if s.Fault != nil {
		return results.StoreFault[entities.User](s.Fault, "")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return results.StoreMissing[entities.User](username)
	}
	return results.StoreValue(user)
}

func (s *Store) Add(_ context.Context, user entities.User) results.StoreAck {
	if s.Fault != nil {
		return results.StoreError(s.Fault, "")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Username]; exists {
		return results.StoreError(ports.ErrUsernameTaken, "")
	}
	s.users[user.Username] = user
	return results.StoreOk()
}

func (s *Store) Open(_ context.Context, session entities.Session) results.StoreAck {
	if s.Fault != nil {
		return results.StoreError(s.Fault, "")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return results.StoreOk()
}

func (s *Store) Revoke(_ context.Context, sessionID string) results.StoreAck {
	if s.Fault != nil {
		return results.StoreError(s.Fault, "")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return results.StoreNotFound(sessionID)
	}
	delete(s.sessions, sessionID)
	return results.StoreOk()
}

// SessionCount reports how many sessions are open. Test helper.
func (s *Store) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) Now() time.Time {
	if !s.FixedNow.IsZero() {
		return s.FixedNow
	}
	return time.Now().UTC()
}

func (s *Store) NewID() string { return uuid.NewString() }
