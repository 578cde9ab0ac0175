package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"calendar/internal/shared/publicid"
)

// TokenVerifier checks bearer tokens minted by the account service and
// resolves the internal caller id from the public subject claim.
type TokenVerifier struct {
	Secret         []byte
	Issuer         string
	AllowedOrigins []string
	Codec          publicid.Codec
}

// VerifyBearer validates an Authorization header value and returns the
// internal user id and the session id (jti) carried by the token.
func (v TokenVerifier) VerifyBearer(header string) (string, string, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", "", errors.New("missing bearer token")
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" {
		return "", "", errors.New("missing bearer token")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return v.Secret, nil
		},
		jwt.WithIssuer(v.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", "", err
	}
	if !token.Valid {
		return "", "", errors.New("invalid token")
	}
	if !v.audienceAllowed(claims.Audience) {
		return "", "", errors.New("token audience is not an allowed origin")
	}

	userID, err := v.Codec.Decode(claims.Subject)
	if err != nil {
		return "", "", fmt.Errorf("decode subject: %w", err)
	}
	return userID, claims.ID, nil
}

func (v TokenVerifier) audienceAllowed(audience jwt.ClaimStrings) bool {
	for _, aud := range audience {
		for _, allowed := range v.AllowedOrigins {
			if aud == allowed {
				return true
			}
		}
	}
	return false
}

// requireUser gates a handler behind bearer authentication and passes the
// resolved internal user id through.
func (s *Server) requireUser(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _, err := s.verifier.VerifyBearer(r.Header.Get("Authorization"))
		if err != nil {
			s.logger.Debug("bearer authentication failed",
				"event", "http_auth_failed",
				"module", "internal/platform/httpserver",
				"layer", "platform",
				"path", r.URL.Path,
				"error", err.Error(),
			)
			writeEventError(w, http.StatusUnauthorized, "unauthorized", "a valid bearer token is required")
			return
		}
		next(w, r, userID)
	}
}
