package application_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"calendar/contexts/identity-access/account-service/adapters/memory"
	"calendar/contexts/identity-access/account-service/application"
	"calendar/contexts/identity-access/account-service/domain/entities"
	"calendar/internal/shared/publicid"
)

func TestIssueForUserClaims(t *testing.T) {
	clock := memory.NewStore()
	clock.FixedNow = time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

	codec := publicid.XORCodec{}
	issuer := application.TokenIssuer{
		Config: application.TokenConfig{
			Secret:         []byte("test-signing-secret"),
			Issuer:         "calendar-api",
			ExpiresIn:      30 * time.Minute,
			AllowedOrigins: []string{testOrigin},
		},
		Codec: codec,
		Clock: clock,
	}
	user := entities.User{ID: "7d0c43ab-8f13-4e59-9f0e-2b8f4c1d9a61", Username: "calendar-fan"}

	issued := issuer.IssueForUser(user, testOrigin, "session-1")
	if !issued.IsOk() {
		t.Fatalf("issue should succeed, got %s (%s)", issued.Status(), issued.Message())
	}

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(issued.Value(), &claims, func(token *jwt.Token) (any, error) {
		return []byte("test-signing-secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return clock.FixedNow }))
	if err != nil || !parsed.Valid {
		t.Fatalf("token should verify: %v", err)
	}

	if claims.Issuer != "calendar-api" {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
	if len(claims.Audience) != 1 || claims.Audience[0] != testOrigin {
		t.Fatalf("audience should be the request origin, got %v", claims.Audience)
	}
	if claims.ID != "session-1" {
		t.Fatalf("jti should be the session id, got %q", claims.ID)
	}
	if !claims.ExpiresAt.Time.Equal(clock.FixedNow.Add(30 * time.Minute)) {
		t.Fatalf("unexpected expiry %v", claims.ExpiresAt.Time)
	}

	// The subject is the public encoding of the internal id, not the id itself.
	if claims.Subject == user.ID {
		t.Fatalf("subject must not expose the raw user id")
	}
	decoded, err := codec.Decode(claims.Subject)
	if err != nil || decoded != user.ID {
		t.Fatalf("subject should decode back to the user id, got %q (%v)", decoded, err)
	}
}

func TestIssueForUserRejectsUnknownOrigin(t *testing.T) {
	issuer := application.TokenIssuer{
		Config: application.TokenConfig{
			Secret:         []byte("test-signing-secret"),
			Issuer:         "calendar-api",
			ExpiresIn:      30 * time.Minute,
			AllowedOrigins: []string{testOrigin},
		},
		Codec: publicid.XORCodec{},
		Clock: memory.NewStore(),
	}

	issued := issuer.IssueForUser(entities.User{ID: "abc"}, "https://evil.example", "session-1")
	if !issued.IsUnauthorized() {
		t.Fatalf("expected unauthorized, got %s", issued.Status())
	}
}
