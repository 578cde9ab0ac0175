package ports

import (
	"context"
	"errors"
	"time"

	"calendar/contexts/identity-access/account-service/domain/entities"
	"calendar/internal/shared/results"
)

// ErrUsernameTaken is reported by UserStore.Add as the cause of a store
// error when the username is already registered.
var ErrUsernameTaken = errors.New("username is already taken")

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() string
}

// UserStore persists accounts.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) results.Store[entities.User]
	Add(ctx context.Context, user entities.User) results.StoreAck
}

// SessionStore persists login sessions.
type SessionStore interface {
	Open(ctx context.Context, session entities.Session) results.StoreAck
	// Revoke removes a session; revoking an absent session is NotFound.
	Revoke(ctx context.Context, sessionID string) results.StoreAck
}
