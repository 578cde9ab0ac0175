package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"calendar/contexts/identity-access/account-service/adapters/memory"
	"calendar/contexts/identity-access/account-service/application"
	"calendar/internal/shared/publicid"
)

const testOrigin = "http://localhost:5173"

func newService(store *memory.Store) application.Service {
	tokens := application.TokenConfig{
		Secret:         []byte("test-signing-secret"),
		Issuer:         "calendar-api",
		ExpiresIn:      30 * time.Minute,
		AllowedOrigins: []string{testOrigin},
	}
	return application.Service{
		Users:    store,
		Sessions: store,
		Tokens: application.TokenIssuer{
			Config: tokens,
			Codec:  publicid.XORCodec{},
			Clock:  store,
		},
		Clock: store,
		IDs:   store,
	}
}

func TestRegisterThenLogin(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	creds := application.Credentials{Username: "calendar-fan", Password: "sup3r-secret"}

	registered := service.Register(context.Background(), creds, testOrigin)
	if !registered.IsOk() {
		t.Fatalf("register should succeed, got %s (%s)", registered.Status(), registered.Message())
	}
	if registered.Value().Token == "" {
		t.Fatalf("registration should sign the user in")
	}
	if registered.Value().Username != creds.Username {
		t.Fatalf("unexpected username %q", registered.Value().Username)
	}

	logged := service.Login(context.Background(), creds, testOrigin)
	if !logged.IsOk() {
		t.Fatalf("login should succeed, got %s (%s)", logged.Status(), logged.Message())
	}
	if store.SessionCount() != 2 {
		t.Fatalf("expected a session per sign-in, got %d", store.SessionCount())
	}
}

func TestRegisterUsernameBounds(t *testing.T) {
	service := newService(memory.NewStore())

	short := service.Register(context.Background(), application.Credentials{
		Username: "tiny", Password: "long-enough",
	}, testOrigin)
	if !short.IsBadRequest() {
		t.Fatalf("expected bad request, got %s", short.Status())
	}
	if short.Message() != "The username must be between 6 and 30 characters long." {
		t.Fatalf("unexpected message %q", short.Message())
	}
}

func TestRegisterPasswordBounds(t *testing.T) {
	service := newService(memory.NewStore())

	weak := service.Register(context.Background(), application.Credentials{
		Username: "calendar-fan", Password: "short",
	}, testOrigin)
	if !weak.IsBadRequest() {
		t.Fatalf("expected bad request, got %s", weak.Status())
	}
	if weak.Message() != "The password must be between 6 and 30 characters long." {
		t.Fatalf("unexpected message %q", weak.Message())
	}
}

func TestUsernameValidatedAsStored(t *testing.T) {
	service := newService(memory.NewStore())

	// Surrounding spaces count toward the length and are stored verbatim, so
	// the login username must match exactly what was registered.
	creds := application.Credentials{Username: " amber ", Password: "sup3r-secret"}
	registered := service.Register(context.Background(), creds, testOrigin)
	if !registered.IsOk() {
		t.Fatalf("a padded username within the bounds should register, got %s (%s)", registered.Status(), registered.Message())
	}

	if logged := service.Login(context.Background(), creds, testOrigin); !logged.IsOk() {
		t.Fatalf("login with the exact registered username should succeed, got %s", logged.Status())
	}
	trimmed := service.Login(context.Background(), application.Credentials{
		Username: "amber", Password: "sup3r-secret",
	}, testOrigin)
	if !trimmed.IsBadRequest() {
		t.Fatalf("the trimmed username is a different account, got %s", trimmed.Status())
	}
}

func TestUsernameBoundsCountCharactersNotBytes(t *testing.T) {
	service := newService(memory.NewStore())

	// Ten two-byte runes: within the 30-character bound despite 20 bytes.
	registered := service.Register(context.Background(), application.Credentials{
		Username: "éééééééééé", Password: "sup3r-secret",
	}, testOrigin)
	if !registered.IsOk() {
		t.Fatalf("a multi-byte username within the bounds should register, got %s (%s)", registered.Status(), registered.Message())
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	service := newService(memory.NewStore())
	creds := application.Credentials{Username: "calendar-fan", Password: "sup3r-secret"}

	if first := service.Register(context.Background(), creds, testOrigin); !first.IsOk() {
		t.Fatalf("first register should succeed, got %s", first.Status())
	}
	second := service.Register(context.Background(), creds, testOrigin)
	if !second.IsBadRequest() {
		t.Fatalf("expected bad request, got %s", second.Status())
	}
	if second.Message() != application.MsgUsernameTaken {
		t.Fatalf("unexpected message %q", second.Message())
	}
}

func TestLoginRejectionsAreIndistinguishable(t *testing.T) {
	service := newService(memory.NewStore())
	creds := application.Credentials{Username: "calendar-fan", Password: "sup3r-secret"}
	if reg := service.Register(context.Background(), creds, testOrigin); !reg.IsOk() {
		t.Fatalf("register should succeed, got %s", reg.Status())
	}

	unknown := service.Login(context.Background(), application.Credentials{
		Username: "nobody-here", Password: "sup3r-secret",
	}, testOrigin)
	wrongPassword := service.Login(context.Background(), application.Credentials{
		Username: creds.Username, Password: "not-the-password",
	}, testOrigin)

	if !unknown.IsBadRequest() || !wrongPassword.IsBadRequest() {
		t.Fatalf("both rejections should be bad request, got %s and %s", unknown.Status(), wrongPassword.Status())
	}
	if unknown.Message() != wrongPassword.Message() {
		t.Fatalf("rejection messages must not reveal which part failed: %q vs %q", unknown.Message(), wrongPassword.Message())
	}
	if unknown.Message() != application.MsgBadCredentials {
		t.Fatalf("unexpected message %q", unknown.Message())
	}
}

func TestLoginUnknownOriginUnauthorized(t *testing.T) {
	service := newService(memory.NewStore())
	creds := application.Credentials{Username: "calendar-fan", Password: "sup3r-secret"}
	if reg := service.Register(context.Background(), creds, testOrigin); !reg.IsOk() {
		t.Fatalf("register should succeed, got %s", reg.Status())
	}

	logged := service.Login(context.Background(), creds, "https://evil.example")
	if !logged.IsUnauthorized() {
		t.Fatalf("expected unauthorized, got %s", logged.Status())
	}
	if logged.Message() != application.MsgUnauthorizedOrigin {
		t.Fatalf("unexpected message %q", logged.Message())
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	creds := application.Credentials{Username: "calendar-fan", Password: "sup3r-secret"}

	registered := service.Register(context.Background(), creds, testOrigin)
	if !registered.IsOk() {
		t.Fatalf("register should succeed, got %s", registered.Status())
	}

	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(registered.Value().Token, &claims, func(*jwt.Token) (any, error) {
		return []byte("test-signing-secret"), nil
	})
	if err != nil {
		t.Fatalf("token should parse: %v", err)
	}

	if ack := service.Logout(context.Background(), claims.ID); !ack.IsOk() {
		t.Fatalf("logout should succeed, got %s", ack.Status())
	}
	if store.SessionCount() != 0 {
		t.Fatalf("session should be revoked, %d left", store.SessionCount())
	}

	// Revoking the same session again still reports a clean logout.
	if ack := service.Logout(context.Background(), claims.ID); !ack.IsOk() {
		t.Fatalf("repeated logout should still succeed, got %s", ack.Status())
	}
}

func TestStoreFaultDoesNotLeakCause(t *testing.T) {
	store := memory.NewStore()
	store.Fault = errors.New("dial tcp: connection refused")
	service := newService(store)

	logged := service.Login(context.Background(), application.Credentials{
		Username: "calendar-fan", Password: "sup3r-secret",
	}, testOrigin)
	if !logged.IsError() {
		t.Fatalf("expected error, got %s", logged.Status())
	}
	if logged.Message() == "" || logged.Message() == store.Fault.Error() {
		t.Fatalf("fault detail must be replaced by a generic message, got %q", logged.Message())
	}
}
