package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	accountservice "calendar/contexts/identity-access/account-service"
	accountapp "calendar/contexts/identity-access/account-service/application"
	accounthttp "calendar/contexts/identity-access/account-service/transport/http"
	eventservice "calendar/contexts/scheduling/event-service"
	eventhttp "calendar/contexts/scheduling/event-service/transport/http"
	"calendar/internal/shared/publicid"
)

const testOrigin = "http://localhost:5173"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	tokens := accountapp.TokenConfig{
		Secret:         []byte("test-signing-secret"),
		Issuer:         "calendar-api",
		ExpiresIn:      30 * time.Minute,
		AllowedOrigins: []string{testOrigin},
	}
	verifier := TokenVerifier{
		Secret:         tokens.Secret,
		Issuer:         tokens.Issuer,
		AllowedOrigins: tokens.AllowedOrigins,
		Codec:          publicid.XORCodec{},
	}
	return New(
		eventservice.NewInMemoryModule(nil, false),
		accountservice.NewInMemoryModule(tokens, nil),
		verifier,
		tokens.AllowedOrigins,
		nil,
		"",
	)
}

func doJSON(t *testing.T, server *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", testOrigin)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, server *Server, username string) string {
	t.Helper()
	rec := doJSON(t, server, http.MethodPost, "/api/account/register", "", accounthttp.RegisterRequest{
		Username: username,
		Password: "sup3r-secret",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register should return 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var logged accounthttp.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &logged); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if logged.Token == "" {
		t.Fatalf("registration should return a token")
	}
	return logged.Token
}

func TestEventRoutesRequireBearer(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/api/event", "", eventhttp.EventCreateRequest{Title: "x"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}

	rec = doJSON(t, server, http.MethodGet, "/api/event/1", "not-a-jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a malformed token, got %d", rec.Code)
	}
}

func TestEventLifecycleOverHTTP(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "calendar-fan")

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rec := doJSON(t, server, http.MethodPost, "/api/event", token, eventhttp.EventCreateRequest{
		Title:       "Planning",
		Description: "Quarterly planning",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create should return 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created eventhttp.EventResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("created event should carry an id")
	}
	if loc := rec.Header().Get("Location"); loc != fmt.Sprintf("/api/event/%d", created.ID) {
		t.Fatalf("unexpected Location header %q", loc)
	}

	rec = doJSON(t, server, http.MethodGet, fmt.Sprintf("/api/event/%d", created.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get should return 200, got %d", rec.Code)
	}

	rec = doJSON(t, server, http.MethodPatch, fmt.Sprintf("/api/event/%d/partial", created.ID), token, []eventhttp.PatchOperation{
		{Op: "replace", Path: "/title", Value: json.RawMessage(`"Replanned"`)},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch should return 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var patched eventhttp.EventResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &patched); err != nil {
		t.Fatalf("decode patch response: %v", err)
	}
	if patched.Title != "Replanned" || patched.Description != "Quarterly planning" {
		t.Fatalf("patch should change only the targeted field, got %+v", patched)
	}

	rec = doJSON(t, server, http.MethodDelete, fmt.Sprintf("/api/event/%d", created.ID), token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete should return 204, got %d", rec.Code)
	}
	rec = doJSON(t, server, http.MethodDelete, fmt.Sprintf("/api/event/%d", created.ID), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("deleting twice should return 404, got %d", rec.Code)
	}
}

func TestCreateEventInvalidRangeReturns422(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "calendar-fan")

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rec := doJSON(t, server, http.MethodPost, "/api/event", token, eventhttp.EventCreateRequest{
		Title:     "Backwards",
		StartTime: start,
		EndTime:   start.Add(-time.Hour),
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	var errResp eventhttp.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Message != "Start time should be before end time." {
		t.Fatalf("unexpected message %q", errResp.Message)
	}
}

func TestListRoutes(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "calendar-fan")

	start := time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC)
	rec := doJSON(t, server, http.MethodPost, "/api/event", token, eventhttp.EventCreateRequest{
		Title:       "Standup",
		Description: "hidden from lists",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create should return 201, got %d", rec.Code)
	}

	rec = doJSON(t, server, http.MethodGet, "/api/event/events/date/2024-07-15", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("date list should return 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var listed []eventhttp.PartialEventResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed) != 1 || listed[0].Title != "Standup" {
		t.Fatalf("unexpected list payload: %+v", listed)
	}
	// The trimmed list shape must not leak the description.
	if bytes.Contains(rec.Body.Bytes(), []byte("hidden from lists")) {
		t.Fatalf("list payload should not include descriptions")
	}

	rec = doJSON(t, server, http.MethodGet, "/api/event/events/range?startDate=2024-07-01&endDate=2024-07-31", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("range list should return 200, got %d", rec.Code)
	}

	rec = doJSON(t, server, http.MethodGet, "/api/event/events/range?startDate=2024-08-01&endDate=2024-07-01", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("reversed range should return 400, got %d", rec.Code)
	}

	rec = doJSON(t, server, http.MethodGet, "/api/event/events/date/not-a-date", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unparseable date should return 400, got %d", rec.Code)
	}
}

func TestLogoutFlow(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "calendar-fan")

	rec := doJSON(t, server, http.MethodPost, "/api/account/logout", token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout should return 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, server, http.MethodPost, "/api/account/logout", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("logout without a token should return 401, got %d", rec.Code)
	}
}

func TestRegisterValidationOverHTTP(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/api/account/register", "", accounthttp.RegisterRequest{
		Username: "tiny",
		Password: "sup3r-secret",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, server, http.MethodPost, "/api/account/login", "", accounthttp.LoginRequest{
		Username: "nobody-here",
		Password: "sup3r-secret",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown credentials should return 400, got %d", rec.Code)
	}
}

func TestVerifyBearerRejectsForgedToken(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "calendar-fan")

	forged := TokenVerifier{
		Secret:         []byte("a-different-secret"),
		Issuer:         "calendar-api",
		AllowedOrigins: []string{testOrigin},
		Codec:          publicid.XORCodec{},
	}
	if _, _, err := forged.VerifyBearer("Bearer " + token); err == nil {
		t.Fatalf("a token signed with another secret must not verify")
	}

	if _, _, err := server.verifier.VerifyBearer("Bearer " + token); err != nil {
		t.Fatalf("the minting secret should verify its own token: %v", err)
	}
	if _, _, err := server.verifier.VerifyBearer(""); err == nil {
		t.Fatalf("an empty header must not verify")
	}
}
