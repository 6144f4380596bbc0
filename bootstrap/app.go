package bootstrap

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/authgate/component"
	"github.com/kbukum/authgate/logger"
)

// App owns the config, the logger and the registered components of one
// process. C is the service's config type.
type App[C Config] struct {
	Cfg        C
	Logger     *logger.Logger
	Components *component.Registry
	Summary    *Summary

	name, version string
	grace         time.Duration
}

// NewApp defaults and validates cfg, then sets up logging from its
// logging section unless WithLogger is given.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	base := cfg.Service()
	s := newSettings(opts)
	if s.log == nil {
		logger.Init(&base.Logging)
		s.log = logger.GetGlobalLogger()
	}

	return &App[C]{
		Cfg:        cfg,
		Logger:     s.log,
		Components: component.NewRegistry(s.log),
		Summary:    &Summary{service: base.Name, version: base.Version, out: s.out},
		name:       base.Name,
		version:    base.Version,
		grace:      s.grace,
	}, nil
}

// RegisterComponent adds c to the registry.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// Run starts every component, prints the summary and blocks until SIGINT,
// SIGTERM or ctx ends. Components are stopped on every return path.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.start(ctx); err != nil {
		_ = a.stop()
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	a.Logger.Info("Application ready, waiting for shutdown signal")
	<-ctx.Done()

	return a.stop()
}

func (a *App[C]) start(ctx context.Context) error {
	began := time.Now()
	a.Logger.Info("Starting application", logger.Fields("name", a.name, "version", a.version))

	if err := a.Components.StartAll(ctx); err != nil {
		a.Logger.Error("Startup failed", logger.ErrorFields("start", err))
		return fmt.Errorf("initialization failed: %w", err)
	}
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status != component.StatusHealthy {
			a.Logger.Warn("Component not healthy after start", logger.Fields("name", h.Name, logger.FieldStatus, h.Status, "message", h.Message))
		}
	}

	a.Summary.took = time.Since(began)
	a.Logger.Debug("Startup complete", logger.DurationFields("startup", a.Summary.took))
	a.Summary.Display(ctx, a.Components)
	return nil
}

func (a *App[C]) stop() error {
	a.Logger.Info("Shutting down application", logger.Fields("timeout", a.grace.String()))
	ctx, cancel := context.WithTimeout(context.Background(), a.grace)
	defer cancel()

	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Shutdown completed with errors", logger.ErrorFields("stop", err))
		return err
	}
	a.Logger.Info("Application shutdown complete")
	return nil
}
