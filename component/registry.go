package component

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/kbukum/authgate/logger"
)

const stopTimeout = 10 * time.Second

// Registry starts components in registration order and stops the started
// ones in reverse.
type Registry struct {
	mu      sync.Mutex
	all     []Component
	started int
	log     *logger.Logger
}

// NewRegistry returns an empty registry. A nil log uses the global logger.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Registry{log: log.WithComponent("components")}
}

// Register appends c. Components a later one depends on go first.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.ContainsFunc(r.all, func(o Component) bool { return o.Name() == c.Name() }) {
		return fmt.Errorf("component %s already registered", c.Name())
	}
	r.all = append(r.all, c)
	return nil
}

// StartAll stops at the first failure. What started before it stays
// started for StopAll.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.all[r.started:] {
		if err := c.Start(ctx); err != nil {
			return fmt.Errorf("failed to start %s: %w", c.Name(), err)
		}
		r.started++
		r.log.Debug("Component started", logger.Fields("name", c.Name()))
	}
	return nil
}

// StopAll gives each started component its own deadline and returns every
// stop error joined.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for ; r.started > 0; r.started-- {
		c := r.all[r.started-1]
		stopCtx, cancel := context.WithTimeout(ctx, stopTimeout)
		if err := c.Stop(stopCtx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", c.Name(), err))
		}
		cancel()
	}
	return errors.Join(errs...)
}

// HealthAll asks every component, in registration order.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	out := make([]Health, 0, len(r.All()))
	for _, c := range r.All() {
		out = append(out, c.Health(ctx))
	}
	return out
}

// All returns the components in registration order.
func (r *Registry) All() []Component {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.all)
}
