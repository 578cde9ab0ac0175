package entities

import "time"

const (
	MinUsernameLength = 6
	MaxUsernameLength = 30
	MinPasswordLength = 6
	MaxPasswordLength = 30
)

// User is an account holder. ID is internal and never leaves the backend;
// token claims carry its public encoding instead.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is the server-side record opened at login and revoked at logout.
// Its ID doubles as the jti claim of the bearer token minted with it.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}
