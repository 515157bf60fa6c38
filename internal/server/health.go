package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/cory-johannsen/adventure/internal/config"
)

// HealthService exposes the standard gRPC health protocol so orchestrators
// can probe the game server. The overall status ("") tracks the server and
// named entries track its dependencies.
type HealthService struct {
	addr   string
	server *grpc.Server
	health *health.Server
	logger *zap.Logger

	mu  sync.Mutex
	lis net.Listener
}

// NewHealthService builds a health endpoint that reports SERVING overall.
//
// Precondition: logger must be non-nil.
func NewHealthService(cfg config.HealthConfig, logger *zap.Logger) *HealthService {
	hs := health.NewServer()
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return &HealthService{
		addr:   cfg.Addr(),
		server: srv,
		health: hs,
		logger: logger,
	}
}

// SetServing records the status of a named dependency.
func (h *HealthService) SetServing(service string, serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus(service, status)
}

// Serve listens on the configured address and blocks until Stop.
func (h *HealthService) Serve() error {
	lis, err := net.Listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", h.addr, err)
	}
	return h.ServeListener(lis)
}

// ServeListener serves health checks on lis until Stop.
//
// Postcondition: Returns nil after Stop.
func (h *HealthService) ServeListener(lis net.Listener) error {
	h.mu.Lock()
	h.lis = lis
	h.mu.Unlock()
	h.logger.Info("health endpoint listening", zap.String("addr", lis.Addr().String()))
	if err := h.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Addr returns the bound address, or nil before Serve.
func (h *HealthService) Addr() net.Addr {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.lis == nil {
		return nil
	}
	return h.lis.Addr()
}

// Stop marks everything NOT_SERVING and drains in-flight checks, forcing
// the server closed if ctx expires first.
func (h *HealthService) Stop(ctx context.Context) error {
	h.health.Shutdown()
	done := make(chan struct{})
	go func() {
		h.server.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		h.server.Stop()
		<-done
		return ctx.Err()
	}
}
