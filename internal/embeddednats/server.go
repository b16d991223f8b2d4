// Package embeddednats runs a nats-server in-process for the adapter's
// integration tests and examples.
package embeddednats

import (
	"context"
	"fmt"
	"net"
	"time"

	nserver "github.com/nats-io/nats-server/v2/server"
)

// Server wraps an embedded nats-server instance.
type Server struct {
	ns *nserver.Server
}

// New creates a loopback server on a dynamic port. JetStream stays off; the
// adapter only needs core pub/sub.
func New() (*Server, error) {
	ns, err := nserver.NewServer(&nserver.Options{
		Host:                  "127.0.0.1",
		Port:                  -1,
		NoSigs:                true,
		DisableShortFirstPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("nats server create: %w", err)
	}
	return &Server{ns: ns}, nil
}

// Start launches the server in its own goroutine.
func (s *Server) Start() { go s.ns.Start() }

// ClientURL returns the nats:// URL clients should connect to.
func (s *Server) ClientURL() string { return s.ns.ClientURL() }

// Ready blocks until the server accepts connections or the context expires.
func (s *Server) Ready(ctx context.Context) error {
	t := time.NewTicker(25 * time.Millisecond)
	defer t.Stop()
	for {
		if s.ns.ReadyForConnections(50 * time.Millisecond) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// Shutdown signals the server to stop and waits for it, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.ns.Shutdown()
	done := make(chan struct{})
	go func() {
		s.ns.WaitForShutdown()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("server shutdown wait: %w", ctx.Err())
	}
}

// Port returns the bound TCP port, 0 if unknown.
func (s *Server) Port() int {
	if a, ok := s.ns.Addr().(*net.TCPAddr); ok {
		return a.Port
	}
	return 0
}
