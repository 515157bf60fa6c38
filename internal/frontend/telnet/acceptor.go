package telnet

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/config"
)

// SessionHandler runs the command loop for one connected client.
type SessionHandler interface {
	HandleSession(ctx context.Context, conn *Conn) error
}

// Acceptor listens for Telnet connections on a TCP port and dispatches
// each connection to a SessionHandler. It satisfies server.Service.
type Acceptor struct {
	cfg     config.TelnetConfig
	handler SessionHandler
	logger  *zap.Logger

	listener net.Listener
	conns    map[*Conn]struct{}
	wg       sync.WaitGroup
	quit     chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewAcceptor creates a Telnet acceptor with the given configuration.
//
// Precondition: handler and logger must be non-nil.
// Postcondition: Returns an Acceptor ready to be started with Serve.
func NewAcceptor(cfg config.TelnetConfig, handler SessionHandler, logger *zap.Logger) *Acceptor {
	return &Acceptor{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		conns:   make(map[*Conn]struct{}),
		quit:    make(chan struct{}),
	}
}

// Serve listens on the configured address and accepts connections until
// Stop is called.
//
// Postcondition: The listener is closed when this method returns.
func (a *Acceptor) Serve() error {
	listener, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.cfg.Addr(), err)
	}
	return a.ServeListener(listener)
}

// ServeListener accepts connections from an existing listener.
//
// Precondition: The acceptor must not already be running.
func (a *Acceptor) ServeListener(listener net.Listener) error {
	a.mu.Lock()
	select {
	case <-a.quit:
		a.mu.Unlock()
		listener.Close()
		return nil
	default:
	}
	a.listener = listener
	a.running = true
	a.mu.Unlock()

	a.logger.Info("telnet acceptor listening", zap.String("addr", listener.Addr().String()))

	for {
		raw, err := listener.Accept()
		if err != nil {
			select {
			case <-a.quit:
				return nil
			default:
				a.logger.Error("accepting connection", zap.Error(err))
				time.Sleep(50 * time.Millisecond)
				continue
			}
		}

		conn := NewConn(raw, a.cfg.ReadTimeout, a.cfg.WriteTimeout)
		if !a.track(conn) {
			conn.Close()
			return nil
		}
		go a.handleConn(conn)
	}
}

// track registers conn unless the acceptor is stopping.
func (a *Acceptor) track(conn *Conn) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return false
	}
	a.conns[conn] = struct{}{}
	a.wg.Add(1)
	return true
}

func (a *Acceptor) untrack(conn *Conn) {
	a.mu.Lock()
	delete(a.conns, conn)
	a.mu.Unlock()
	a.wg.Done()
}

// handleConn runs one client session to completion.
func (a *Acceptor) handleConn(conn *Conn) {
	defer a.untrack(conn)
	defer conn.Close()
	start := time.Now()
	addr := conn.RemoteAddr().String()
	a.logger.Info("client connected", zap.String("remote_addr", addr))

	if err := conn.Negotiate(); err != nil {
		a.logger.Warn("telnet negotiation failed", zap.String("remote_addr", addr), zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-a.quit:
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := a.handler.HandleSession(ctx, conn); err != nil {
		a.logger.Debug("session ended",
			zap.String("remote_addr", addr),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return
	}
	a.logger.Info("session ended cleanly",
		zap.String("remote_addr", addr),
		zap.Duration("duration", time.Since(start)),
	)
}

// Stop closes the listener and every open connection, then waits for the
// sessions to finish or ctx to expire.
//
// Postcondition: Returns ctx.Err() if sessions were still running at the deadline.
func (a *Acceptor) Stop(ctx context.Context) error {
	a.mu.Lock()
	select {
	case <-a.quit:
		a.mu.Unlock()
		return nil
	default:
	}
	a.running = false
	close(a.quit)
	if a.listener != nil {
		a.listener.Close()
	}
	for conn := range a.conns {
		conn.Close()
	}
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		a.logger.Info("telnet acceptor stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Addr returns the actual listening address, or empty string if not yet listening.
func (a *Acceptor) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener != nil {
		return a.listener.Addr().String()
	}
	return ""
}

// IsRunning returns whether the acceptor is currently accepting connections.
func (a *Acceptor) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}
