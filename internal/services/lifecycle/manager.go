package lifecycle

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// StopFunc releases one component.
type StopFunc func(ctx context.Context) error

type component struct {
	name string
	stop StopFunc
}

// Manager stops registered components in reverse registration order, so
// the HTTP server registered last goes down before the stores it uses.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu         sync.Mutex
	components []component
	stopped    bool
}

func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{timeout: timeout, logger: logger}
}

// Register adds a component. Nil stop functions are ignored.
func (m *Manager) Register(name string, stop StopFunc) {
	if stop == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.components = append(m.components, component{name: name, stop: stop})
}

// RegisterCloser adapts a plain Close method.
func (m *Manager) RegisterCloser(name string, closeFn func() error) {
	if closeFn == nil {
		return
	}
	m.Register(name, func(context.Context) error { return closeFn() })
}

// Shutdown stops every component once, within the manager timeout. All
// failures are collected; one failing component does not keep the rest alive.
func (m *Manager) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return nil
	}
	m.stopped = true

	var errs []error
	for i := len(m.components) - 1; i >= 0; i-- {
		c := m.components[i]
		if err := c.stop(ctx); err != nil {
			m.logger.Error("component stop failed", zap.String("component", c.name), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		m.logger.Info("component stopped", zap.String("component", c.name))
	}
	return errors.Join(errs...)
}

// SignalContext returns a context canceled on SIGINT or SIGTERM.
func (m *Manager) SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		m.logger.Info("shutdown requested")
	}()
	return ctx, stop
}
