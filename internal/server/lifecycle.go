// Package server runs the game server's long-lived services and coordinates
// their shutdown on signal, context cancellation or the first failure.
package server

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// DefaultStopTimeout bounds how long a single service may take to stop.
const DefaultStopTimeout = 10 * time.Second

// Service is a long-running component such as the telnet acceptor or the
// health endpoint.
type Service interface {
	// Serve blocks until the service stops or fails.
	Serve() error
	// Stop asks Serve to return. It must respect ctx's deadline.
	Stop(ctx context.Context) error
}

// FuncService adapts a serve/stop function pair into the Service interface.
type FuncService struct {
	ServeFn func() error
	StopFn  func(ctx context.Context) error
}

// Serve calls the underlying serve function.
func (f *FuncService) Serve() error { return f.ServeFn() }

// Stop calls the underlying stop function. A nil StopFn is a no-op.
func (f *FuncService) Stop(ctx context.Context) error {
	if f.StopFn == nil {
		return nil
	}
	return f.StopFn(ctx)
}

// Lifecycle starts services in registration order and stops them in reverse.
type Lifecycle struct {
	logger      *zap.Logger
	stopTimeout time.Duration
	mu          sync.Mutex
	services    []namedService
}

type namedService struct {
	name    string
	service Service
}

// LifecycleOption customizes a Lifecycle.
type LifecycleOption func(*Lifecycle)

// WithStopTimeout overrides DefaultStopTimeout.
func WithStopTimeout(d time.Duration) LifecycleOption {
	return func(l *Lifecycle) { l.stopTimeout = d }
}

// NewLifecycle creates a new Lifecycle manager.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger, opts ...LifecycleOption) *Lifecycle {
	l := &Lifecycle{logger: logger, stopTimeout: DefaultStopTimeout}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add registers a named service.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run serves every registered service and blocks until SIGINT, SIGTERM,
// cancellation of ctx, or a service failure. It then stops the services in
// reverse order and waits for every Serve call to return.
//
// Postcondition: Returns the first service failure joined with any stop
// errors, or nil after a clean shutdown.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()
	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, len(services))
	var wg sync.WaitGroup
	for _, ns := range services {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.logger.Info("starting service", zap.String("service", ns.name))
			if err := ns.service.Serve(); err != nil {
				l.logger.Error("service failed",
					zap.String("service", ns.name),
					zap.Error(err),
					zap.Duration("uptime", time.Since(start)),
				)
				errCh <- fmt.Errorf("service %s: %w", ns.name, err)
			}
		}()
	}
	l.logger.Info("all services started", zap.Int("count", len(services)))

	var failure error
	select {
	case failure = <-errCh:
		l.logger.Error("service error, shutting down", zap.Error(failure))
	case <-ctx.Done():
		l.logger.Info("shutdown requested")
	}

	stopErr := l.shutdown(services)
	wg.Wait()

	l.logger.Info("shutdown complete", zap.Duration("total_uptime", time.Since(start)))
	return errors.Join(failure, stopErr)
}

func (l *Lifecycle) shutdown(services []namedService) error {
	var errs []error
	for i := len(services) - 1; i >= 0; i-- {
		ns := services[i]
		ctx, cancel := context.WithTimeout(context.Background(), l.stopTimeout)
		began := time.Now()
		if err := ns.service.Stop(ctx); err != nil {
			l.logger.Warn("service stop failed", zap.String("service", ns.name), zap.Error(err))
			errs = append(errs, fmt.Errorf("stopping %s: %w", ns.name, err))
		}
		cancel()
		l.logger.Info("service stopped",
			zap.String("service", ns.name),
			zap.Duration("elapsed", time.Since(began)),
		)
	}
	return errors.Join(errs...)
}
