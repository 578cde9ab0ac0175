// Package httpadapter maps HTTP DTOs to the account application service.
package httpadapter

import (
	"context"
	"log/slog"

	"calendar/contexts/identity-access/account-service/application"
	httptransport "calendar/contexts/identity-access/account-service/transport/http"
	"calendar/internal/shared/results"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) LoginHandler(ctx context.Context, request httptransport.LoginRequest, origin string) results.Result[httptransport.LoginResponse] {
	result := h.Service.Login(ctx, application.Credentials{
		Username: request.Username,
		Password: request.Password,
	}, origin)
	return results.Map(result, toLoginResponse)
}

func (h Handler) RegisterHandler(ctx context.Context, request httptransport.RegisterRequest, origin string) results.Result[httptransport.LoginResponse] {
	result := h.Service.Register(ctx, application.Credentials{
		Username: request.Username,
		Password: request.Password,
	}, origin)
	return results.Map(result, toLoginResponse)
}

func (h Handler) LogoutHandler(ctx context.Context, sessionID string) results.Ack {
	return h.Service.Logout(ctx, sessionID)
}

func toLoginResponse(login application.LoginResult) httptransport.LoginResponse {
	return httptransport.LoginResponse{
		Username: login.Username,
		Token:    login.Token,
	}
}
