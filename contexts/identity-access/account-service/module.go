package accountservice

import (
	"log/slog"

	httpadapter "calendar/contexts/identity-access/account-service/adapters/http"
	"calendar/contexts/identity-access/account-service/adapters/memory"
	"calendar/contexts/identity-access/account-service/application"
	"calendar/contexts/identity-access/account-service/ports"
	"calendar/internal/shared/publicid"
)

// Module is the account-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Users    ports.UserStore
	Sessions ports.SessionStore
	Clock    ports.Clock
	IDs      ports.IDGenerator
	Tokens   application.TokenConfig
	Codec    publicid.Codec
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	issuer := application.TokenIssuer{
		Config: deps.Tokens,
		Codec:  deps.Codec,
		Clock:  deps.Clock,
	}
	service := application.Service{
		Users:    deps.Users,
		Sessions: deps.Sessions,
		Tokens:   issuer,
		Clock:    deps.Clock,
		IDs:      deps.IDs,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with the in-memory
// store backing every port.
func NewInMemoryModule(tokens application.TokenConfig, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Users:    store,
		Sessions: store,
		Clock:    store,
		IDs:      store,
		Tokens:   tokens,
		Codec:    publicid.XORCodec{},
		Logger:   logger,
	})
	module.Store = store
	return module
}
