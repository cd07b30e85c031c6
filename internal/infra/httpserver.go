package infra

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

const minShutdownGrace = 5 * time.Second

// HTTPServer wraps http.Server and ties its lifetime to a context.
type HTTPServer struct {
	server *http.Server
	grace  time.Duration
}

// NewHTTPServer creates a configured HTTP server instance. The write timeout
// has to cover one extraction plus one background synthesis round trip, and
// shutdown waits up to BackendTimeout so runs in flight can finish.
func NewHTTPServer(cfg *Config, handler http.Handler) *HTTPServer {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}
	grace := cfg.BackendTimeout
	if grace < minShutdownGrace {
		grace = minShutdownGrace
	}
	return &HTTPServer{server: srv, grace: grace}
}

// Addr returns the configured listen address.
func (s *HTTPServer) Addr() string {
	return s.server.Addr
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve accepts connections on l until ctx is cancelled. A clean shutdown
// returns nil.
func (s *HTTPServer) Serve(ctx context.Context, l net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(l)
	}()

	select {
	case err := <-errCh:
		return serveResult(err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return serveResult(<-errCh)
}

func serveResult(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
