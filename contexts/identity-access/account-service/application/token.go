package application

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"calendar/contexts/identity-access/account-service/domain/entities"
	"calendar/contexts/identity-access/account-service/ports"
	"calendar/internal/shared/publicid"
	"calendar/internal/shared/results"
)

// MsgUnauthorizedOrigin is returned when the request origin is not on the
// configured allow-list.
const MsgUnauthorizedOrigin = "Unauthorized origin."

// TokenConfig holds the signing parameters for bearer tokens.
type TokenConfig struct {
	Secret         []byte
	Issuer         string
	ExpiresIn      time.Duration
	AllowedOrigins []string
}

// TokenIssuer mints HS256 bearer tokens. The audience claim is the request
// origin, accepted only when it appears on the allow-list; the subject is
// the public encoding of the internal user id.
type TokenIssuer struct {
	Config TokenConfig
	Codec  publicid.Codec
	Clock  ports.Clock
}

func (t TokenIssuer) IssueForUser(user entities.User, origin, sessionID string) results.Result[string] {
	audience, ok := t.resolveAudience(origin)
	if !ok {
		return results.Unauthorized[string](MsgUnauthorizedOrigin)
	}

	now := t.Clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   t.Codec.Encode(user.ID),
		Issuer:    t.Config.Issuer,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.Config.ExpiresIn)),
		ID:        sessionID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Config.Secret)
	if err != nil {
		return results.ErrorFrom[string](err)
	}
	return results.Ok(signed)
}

func (t TokenIssuer) resolveAudience(origin string) (string, bool) {
	for _, allowed := range t.Config.AllowedOrigins {
		if allowed == origin {
			return origin, true
		}
	}
	return "", false
}
