package httpserver

import (
	"encoding/json"
	"net/http"

	accounthttp "calendar/contexts/identity-access/account-service/transport/http"
)

// handleLogin godoc
//
//	@Summary  Login
//	@Accept   json
//	@Produce  json
//	@Success  200  {object}  httptransport.LoginResponse
//	@Failure  400  {object}  httptransport.ErrorResponse
//	@Router   /api/account/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccountError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	result := s.accounts.Handler.LoginHandler(r.Context(), req, r.Header.Get("Origin"))
	if result.IsOk() {
		writeJSON(w, http.StatusOK, result.Value())
		return
	}
	writeResultStatus(w, result.Status(), result.Message(), writeAccountError)
}

// handleRegister godoc
//
//	@Summary  Register a new account
//	@Accept   json
//	@Produce  json
//	@Success  200  {object}  httptransport.LoginResponse
//	@Failure  400  {object}  httptransport.ErrorResponse
//	@Router   /api/account/register [post]
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccountError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	result := s.accounts.Handler.RegisterHandler(r.Context(), req, r.Header.Get("Origin"))
	if result.IsOk() {
		writeJSON(w, http.StatusOK, result.Value())
		return
	}
	writeResultStatus(w, result.Status(), result.Message(), writeAccountError)
}

// handleLogout godoc
//
//	@Summary  Logout
//	@Success  204
//	@Failure  401  {object}  httptransport.ErrorResponse
//	@Router   /api/account/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	_, sessionID, err := s.verifier.VerifyBearer(r.Header.Get("Authorization"))
	if err != nil {
		writeAccountError(w, http.StatusUnauthorized, "unauthorized", "a valid bearer token is required")
		return
	}
	ack := s.accounts.Handler.LogoutHandler(r.Context(), sessionID)
	if ack.IsOk() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeResultStatus(w, ack.Status(), ack.Message(), writeAccountError)
}

func writeAccountError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, accounthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
