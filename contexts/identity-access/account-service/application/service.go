package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"calendar/contexts/identity-access/account-service/domain/entities"
	"calendar/contexts/identity-access/account-service/ports"
	"calendar/internal/shared/results"
)

const (
	// MsgBadCredentials is deliberately identical for an unknown username
	// and a wrong password.
	MsgBadCredentials = "Username or password is incorrect"
	MsgUsernameTaken  = "Username is already taken."

	msgLoginFailed    = "An error happened during login process. Please try again later."
	msgRegisterFailed = "An error happened during registration process. Please try again later."
	msgLogoutFailed   = "An error happened during logout process."
)

// Credentials is a username/password pair from the login or register body.
type Credentials struct {
	Username string
	Password string
}

// LoginResult is what a successful login or registration yields.
type LoginResult struct {
	Username string
	Token    string
}

// Service owns account registration, credential checks and session
// lifecycle. Token minting is delegated to the issuer so the event engine
// can treat tokens as opaque.
type Service struct {
	Users    ports.UserStore
	Sessions ports.SessionStore
	Tokens   TokenIssuer
	Clock    ports.Clock
	IDs      ports.IDGenerator
	Logger   *slog.Logger
}

// Login authenticates the credentials, opens a session and mints a token
// whose audience is the request origin.
func (s Service) Login(ctx context.Context, creds Credentials, origin string) results.Result[LoginResult] {
	find := s.Users.FindByUsername(ctx, creds.Username)
	if find.IsNotFound() {
		return results.BadRequest[LoginResult](MsgBadCredentials)
	}
	if find.IsError() {
		s.logFault("account_login_failed", creds.Username, find.Cause())
		return results.Error[LoginResult](msgLoginFailed)
	}

	user := find.Entity()
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		return results.BadRequest[LoginResult](MsgBadCredentials)
	}

	return s.openSession(ctx, user, origin, msgLoginFailed)
}

// Register creates the account, then signs the new user in.
func (s Service) Register(ctx context.Context, creds Credentials, origin string) results.Result[LoginResult] {
	if msg, ok := validateCredentials(creds); !ok {
		return results.BadRequest[LoginResult](msg)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logFault("account_register_failed", creds.Username, err)
		return results.Error[LoginResult](msgRegisterFailed)
	}

	user := entities.User{
		ID:           s.IDs.NewID(),
		Username:     creds.Username,
		PasswordHash: string(hash),
		CreatedAt:    s.Clock.Now(),
	}

	if add := s.Users.Add(ctx, user); add.IsError() {
		if errors.Is(add.Cause(), ports.ErrUsernameTaken) {
			return results.BadRequest[LoginResult](MsgUsernameTaken)
		}
		s.logFault("account_register_failed", creds.Username, add.Cause())
		return results.Error[LoginResult](msgRegisterFailed)
	}

	return s.openSession(ctx, user, origin, msgRegisterFailed)
}

// Logout revokes the session behind the presented token. A session that is
// already gone still logs out cleanly.
func (s Service) Logout(ctx context.Context, sessionID string) results.Ack {
	revoke := s.Sessions.Revoke(ctx, sessionID)
	if revoke.IsError() {
		s.logFault("account_logout_failed", sessionID, revoke.Cause())
		return results.AckError(msgLogoutFailed)
	}
	return results.AckOk()
}

func (s Service) openSession(ctx context.Context, user entities.User, origin, failureMessage string) results.Result[LoginResult] {
	now := s.Clock.Now()
	session := entities.Session{
		ID:        s.IDs.NewID(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.Tokens.Config.ExpiresIn),
	}
	if open := s.Sessions.Open(ctx, session); open.IsError() {
		s.logFault("account_session_open_failed", user.Username, open.Cause())
		return results.Error[LoginResult](failureMessage)
	}

	token := s.Tokens.IssueForUser(user, origin, session.ID)
	return results.Map(token, func(signed string) LoginResult {
		return LoginResult{Username: user.Username, Token: signed}
	})
}

func (s Service) logFault(event, subject string, cause error) {
	detail := ""
	if cause != nil {
		detail = cause.Error()
	}
	resolveLogger(s.Logger).Error("account operation failed",
		"event", event,
		"module", "identity-access/account-service",
		"layer", "application",
		"subject", subject,
		"error", detail,
	)
}

// validateCredentials bounds-checks the credentials exactly as they will be
// stored: no trimming, character counts rather than bytes.
func validateCredentials(creds Credentials) (string, bool) {
	if length := utf8.RuneCountInString(creds.Username); length < entities.MinUsernameLength || length > entities.MaxUsernameLength {
		return fmt.Sprintf("The username must be between %d and %d characters long.",
			entities.MinUsernameLength, entities.MaxUsernameLength), false
	}
	if length := utf8.RuneCountInString(creds.Password); length < entities.MinPasswordLength || length > entities.MaxPasswordLength {
		return fmt.Sprintf("The password must be between %d and %d characters long.",
			entities.MinPasswordLength, entities.MaxPasswordLength), false
	}
	return "", true
}
