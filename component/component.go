package component

import "context"

type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is started once at boot and stopped once at shutdown. Name
// must be unique within a Registry.
type Component interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}

// Description is one infrastructure line of the startup summary, such as
// "HTTP Server [server]: 0.0.0.0:3000 (http/1.1, h2c)".
type Description struct {
	Name    string
	Type    string
	Details string
	Port    int
}

// Describable components appear in the startup summary.
type Describable interface {
	Describe() Description
}

type Route struct {
	Method  string
	Path    string
	Handler string
}

// RouteProvider components have their routes listed in the startup summary.
type RouteProvider interface {
	Routes() []Route
}
