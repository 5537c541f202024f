// Package daemon provides the core daemon runner for the reminder daemon.
// It runs the scheduler loop and the control socket side by side and
// manages their start, stop and graceful shutdown.
package daemon

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/waw666waw666/reminder/pkg/logger"
)

// Sentinel errors for the daemon runner.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running daemon.
	ErrAlreadyRunning = errors.New("daemon is already running")

	// ErrNotRunning is returned when Shutdown() is called on a stopped daemon.
	ErrNotRunning = errors.New("daemon is not running")

	// ErrShutdownTimeout is returned when shutdown exceeds the configured timeout.
	ErrShutdownTimeout = errors.New("shutdown timed out")
)

// DefaultShutdownTimeout bounds Shutdown when Config leaves it unset.
const DefaultShutdownTimeout = 10 * time.Second

// Component is a long-running part of the daemon. Start blocks until ctx
// is cancelled or the component fails.
type Component interface {
	Start(ctx context.Context) error
}

// Config holds the configuration for the daemon runner.
type Config struct {
	// ShutdownTimeout is the maximum time Shutdown waits for the
	// components to return.
	ShutdownTimeout time.Duration
}

// Runner manages the daemon lifecycle.
type Runner struct {
	config     *Config
	components []Component
	log        logger.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a runner for components. If config is nil, default values
// are used.
func New(config *Config, l logger.Logger, components ...Component) *Runner {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Runner{
		config:     applyConfigDefaults(config),
		components: components,
		log:        l,
	}
}

// applyConfigDefaults returns a Config with default values applied for zero fields.
func applyConfigDefaults(config *Config) *Config {
	if config == nil {
		config = &Config{}
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultShutdownTimeout
	}
	return config
}

// Config returns the runner's configuration.
func (r *Runner) Config() *Config {
	return r.config
}

// Start runs every component and blocks until all of them have returned.
// When one component returns, the others are cancelled. The result
// aggregates every component error.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrAlreadyRunning
	}
	ctx, r.cancel = context.WithCancel(ctx)
	cancel := r.cancel
	r.running = true
	r.done = make(chan struct{})
	done := r.done
	r.mu.Unlock()

	defer func() {
		cancel()
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
		close(done)
	}()

	r.log.Info("daemon started")
	errc := make(chan error, len(r.components))
	for _, c := range r.components {
		go func(c Component) {
			errc <- c.Start(ctx)
		}(c)
	}

	var result *multierror.Error
	for range r.components {
		if err := <-errc; err != nil {
			r.log.Error("daemon component failed: %v", err)
			result = multierror.Append(result, err)
		}
		// Any component returning ends the daemon.
		cancel()
	}
	r.log.Info("daemon stopped")
	return result.ErrorOrNil()
}

// Shutdown gracefully stops the daemon and waits for Start to return.
// Returns ErrNotRunning if the daemon is not running.
// Returns ErrShutdownTimeout if the components do not stop in time.
func (r *Runner) Shutdown() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return ErrNotRunning
	}
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	cancel()
	select {
	case <-done:
		return nil
	case <-time.After(r.config.ShutdownTimeout):
		return ErrShutdownTimeout
	}
}

// IsRunning returns true if the daemon is currently running.
func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
