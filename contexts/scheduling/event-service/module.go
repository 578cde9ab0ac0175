package eventservice

import (
	"log/slog"

	httpadapter "calendar/contexts/scheduling/event-service/adapters/http"
	"calendar/contexts/scheduling/event-service/adapters/memory"
	"calendar/contexts/scheduling/event-service/application"
	"calendar/contexts/scheduling/event-service/ports"
)

// Module is the event-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Events       ports.EventStore
	EnforceOwner bool
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Events:       deps.Events,
		Logger:       deps.Logger,
		EnforceOwner: deps.EnforceOwner,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with the in-memory
// store.
func NewInMemoryModule(logger *slog.Logger, enforceOwner bool) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Events:       store,
		EnforceOwner: enforceOwner,
		Logger:       logger,
	})
	module.Store = store
	return module
}
