package observability

import (
	"context"

	"github.com/kbukum/authgate/component"
)

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component hands a Provider to the component registry so that exporters
// are flushed on shutdown after the HTTP server has stopped.
type Component struct {
	provider *Provider
	cfg      Config
}

// NewComponent wraps p. cfg is only used for the description.
func NewComponent(p *Provider, cfg Config) *Component {
	cfg.ApplyDefaults()
	return &Component{provider: p, cfg: cfg}
}

// Name implements component.Component.
func (c *Component) Name() string { return "telemetry" }

// Start is a no-op. Exporters are created by Setup before the server is built.
func (c *Component) Start(context.Context) error { return nil }

// Stop flushes and shuts down the exporters.
func (c *Component) Stop(ctx context.Context) error {
	return c.provider.Shutdown(ctx)
}

// Health implements component.Component.
func (c *Component) Health(context.Context) component.Health {
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe implements component.Describable.
func (c *Component) Describe() component.Description {
	details := "disabled"
	if c.provider.Enabled() {
		details = "otlp/http " + c.cfg.Endpoint
	}
	return component.Description{Name: "Telemetry", Type: "otel", Details: details}
}
