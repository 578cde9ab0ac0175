package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	accountservice "calendar/contexts/identity-access/account-service"
	accountpostgres "calendar/contexts/identity-access/account-service/adapters/postgres"
	accountapp "calendar/contexts/identity-access/account-service/application"
	eventservice "calendar/contexts/scheduling/event-service"
	eventpostgres "calendar/contexts/scheduling/event-service/adapters/postgres"
	"calendar/internal/platform/config"
	"calendar/internal/platform/db"
	"calendar/internal/platform/httpserver"
	"calendar/internal/shared/publicid"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	tokens := accountapp.TokenConfig{
		Secret:         []byte(cfg.JWTSecret),
		Issuer:         cfg.JWTIssuer,
		ExpiresIn:      time.Duration(cfg.JWTExpiresMinutes) * time.Minute,
		AllowedOrigins: cfg.AllowedOrigins,
	}

	var (
		events   eventservice.Module
		accounts accountservice.Module
		pg       *db.Postgres
	)
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		// No database configured: run on the in-memory adapters.
		logger.Warn("POSTGRES_DSN is empty, using in-memory stores",
			"event", "bootstrap_memory_mode",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		events = eventservice.NewInMemoryModule(logger, cfg.EnforceEventOwnership)
		accounts = accountservice.NewInMemoryModule(tokens, logger)
	} else {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(eventpostgres.AutoMigrate, accountpostgres.AutoMigrate); err != nil {
			closeErr := pg.Close()
			return nil, errors.Join(err, closeErr)
		}

		events = eventservice.NewModule(eventservice.Dependencies{
			Events:       eventpostgres.NewRepository(pg.DB, logger),
			EnforceOwner: cfg.EnforceEventOwnership,
			Logger:       logger,
		})

		accountRepo := accountpostgres.NewRepository(pg.DB, logger)
		accounts = accountservice.NewModule(accountservice.Dependencies{
			Users:    accountRepo,
			Sessions: accountRepo,
			Clock:    accountpostgres.SystemClock{},
			IDs:      accountpostgres.UUIDGenerator{},
			Tokens:   tokens,
			Codec:    publicid.XORCodec{},
			Logger:   logger,
		})
	}

	verifier := httpserver.TokenVerifier{
		Secret:         tokens.Secret,
		Issuer:         tokens.Issuer,
		AllowedOrigins: tokens.AllowedOrigins,
		Codec:          publicid.XORCodec{},
	}

	server := httpserver.New(events, accounts, verifier, cfg.AllowedOrigins, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Run(ctx)
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
