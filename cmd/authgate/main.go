package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/authgate/auth"
	"github.com/kbukum/authgate/auth/credential"
	"github.com/kbukum/authgate/auth/jwt"
	"github.com/kbukum/authgate/auth/password"
	"github.com/kbukum/authgate/bootstrap"
	"github.com/kbukum/authgate/internal/api"
	"github.com/kbukum/authgate/logger"
	"github.com/kbukum/authgate/observability"
	"github.com/kbukum/authgate/server"
	"github.com/kbukum/authgate/server/middleware"
	"github.com/kbukum/authgate/version"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "authgate: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().Short()
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	if err := wire(ctx, app); err != nil {
		return err
	}
	return app.Run(ctx)
}

// wire builds the auth stack and the HTTP server and registers them with
// the app. Telemetry is registered first so that it is flushed after the
// server has drained.
func wire(ctx context.Context, app *bootstrap.App[*Config]) error {
	cfg := app.Cfg
	log := app.Logger

	telemetry, err := observability.Setup(ctx, cfg.Observability, observability.ServiceInfo{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Environment: string(cfg.Environment),
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	if err := app.RegisterComponent(observability.NewComponent(telemetry, cfg.Observability)); err != nil {
		return err
	}

	srv, err := newServer(cfg, log, telemetry.Metrics)
	if err != nil {
		return err
	}
	if err := app.RegisterComponent(srv); err != nil {
		return err
	}

	app.Summary.TrackInfrastructure("Auth", "auth", cfg.Auth.Describe(), 0)
	return nil
}

// newServer assembles the credential store, token service, authenticator
// and routes into a ready-to-start server.
func newServer(cfg *Config, log *logger.Logger, metrics *observability.Metrics) (*server.Server, error) {
	if cfg.Auth.IsInsecureSecret() {
		log.Warn("Using the placeholder JWT secret, set JWT_SECRET before deploying")
	}

	hasher := password.New(cfg.Auth.Password)
	store, err := credential.NewStoreFromSeeds(cfg.Auth.Users, hasher)
	if err != nil {
		return nil, fmt.Errorf("credentials: %w", err)
	}
	tokens, err := jwt.NewService(&cfg.Auth.JWT, auth.NewClaims)
	if err != nil {
		return nil, err
	}
	authenticator, err := auth.NewAuthenticator(store, hasher, tokens,
		auth.WithMetrics(metrics),
		auth.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware(metrics)
	srv.RegisterVersionEndpoint()

	gate := middleware.Auth(tokens, log)
	api.NewHandler(authenticator, cfg.Name).Register(srv.GinEngine(), gate)
	return srv, nil
}
