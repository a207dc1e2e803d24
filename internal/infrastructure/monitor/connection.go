package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CheckFunc checks one dependency.
type CheckFunc func(ctx context.Context) error

type check struct {
	name     string
	fn       CheckFunc
	critical bool
}

// Monitor checks registered dependencies on an interval and keeps the last result.
type Monitor struct {
	checks   []check
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger

	mu     sync.RWMutex
	status Status

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

func New(interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		interval: interval,
		timeout:  3 * time.Second,
		logger:   logger,
		status:   Status{Checks: map[string]CheckStatus{}},
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Register adds a check. It must be called before Start.
// Only critical checks affect Status.Healthy.
func (m *Monitor) Register(name string, critical bool, fn CheckFunc) {
	if fn == nil {
		return
	}
	m.checks = append(m.checks, check{name: name, fn: fn, critical: critical})
}

// Start runs one round synchronously and then keeps probing in the background.
func (m *Monitor) Start() {
	m.Refresh(context.Background())
	go m.loop()
}

// Stop ends the background loop and waits for it to exit.
func (m *Monitor) Stop(ctx context.Context) error {
	m.stopOnce.Do(func() { close(m.stopCh) })
	select {
	case <-m.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Monitor) loop() {
	defer close(m.done)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.Refresh(context.Background())
		case <-m.stopCh:
			return
		}
	}
}

// Refresh runs every check once, concurrently, and stores the outcome.
func (m *Monitor) Refresh(ctx context.Context) Status {
	results := make([]CheckStatus, len(m.checks))
	var wg sync.WaitGroup
	for i, c := range m.checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = m.run(ctx, c)
		}()
	}
	wg.Wait()

	status := Status{
		Healthy:   true,
		Checks:    make(map[string]CheckStatus, len(m.checks)),
		LastCheck: time.Now().UTC(),
	}
	for i, c := range m.checks {
		status.Checks[c.name] = results[i]
		if c.critical && !results[i].OK {
			status.Healthy = false
		}
	}

	m.mu.Lock()
	prev := m.status
	m.status = status
	m.mu.Unlock()

	for name, cs := range status.Checks {
		if was, ok := prev.Checks[name]; ok && was.OK == cs.OK {
			continue
		}
		if cs.OK {
			m.logger.Info("dependency up", zap.String("check", name))
		} else {
			m.logger.Warn("dependency down", zap.String("check", name), zap.String("error", cs.Error))
		}
	}
	return status
}

func (m *Monitor) run(ctx context.Context, c check) CheckStatus {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	start := time.Now()
	err := c.fn(ctx)
	cs := CheckStatus{
		OK:        err == nil,
		Latency:   time.Since(start),
		CheckedAt: start.UTC(),
		Critical:  c.critical,
	}
	if err != nil {
		cs.Error = err.Error()
	}
	return cs
}

// IsHealthy reports whether every critical check passed last round.
func (m *Monitor) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Healthy
}

// GetStatus returns a copy of the last snapshot.
func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := m.status
	out.Checks = make(map[string]CheckStatus, len(m.status.Checks))
	for k, v := range m.status.Checks {
		out.Checks[k] = v
	}
	return out
}
