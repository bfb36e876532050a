package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/auth"
	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/config"
	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/presence"
	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/relay"
	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/service/notify"
	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/store"
	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/store/sqlite"
	transporthttp "github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/transport/http"
)

// App wires together the store, relay, and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	store           store.Store
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	st, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	logger.Info().Str("db_path", cfg.DatabasePath).Msg("database initialized")

	jwtConfig := &auth.JWTConfig{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.JWTTTL,
	}

	authService := auth.NewService(st, jwtConfig)

	// The presence registry lives for the lifetime of the process.
	registry := presence.NewRegistry()
	rly := relay.New(registry, st, logger)
	notifier := notify.New(st, logger)

	server := transporthttp.NewServer(rly, authService, st, notifier, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		store:           st,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes database and other resources.
func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}
