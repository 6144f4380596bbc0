package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/kbukum/authgate/component"
	"github.com/kbukum/authgate/logger"
	"github.com/kbukum/authgate/security"
)

var (
	_ component.Component     = (*Server)(nil)
	_ component.Describable   = (*Server)(nil)
	_ component.RouteProvider = (*Server)(nil)
)

const shutdownTimeout = 5 * time.Second

var protocols = map[security.Mode]string{
	security.Plain:  "http/1.1, h2c",
	security.Server: "https, h2",
	security.Mutual: "https, h2, mtls",
}

// Name implements component.Component.
func (s *Server) Name() string { return "http-server" }

// Start loads TLS material, binds the port and serves in the background.
// Certificate and bind errors are returned before anything is served.
func (s *Server) Start(ctx context.Context) error {
	tlsConfig, err := s.config.TLS.ServerConfig()
	if err != nil {
		return err
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("server: bind %s: %w", s.http.Addr, err)
	}
	s.listener = ln
	s.http.TLSConfig = tlsConfig

	go func() {
		serve := s.http.Serve
		if tlsConfig != nil {
			serve = func(l net.Listener) error { return s.http.ServeTLS(l, "", "") }
		}
		if err := serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			s.log.Error("Server stopped unexpectedly", logger.ErrorFields("serve", err))
		}
	}()

	s.log.Info("HTTP server listening", logger.Fields("addr", ln.Addr().String(), "mode", s.config.TLS.Mode().String()))
	return nil
}

// Stop drains in-flight requests for at most five seconds.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.log.Info("HTTP server stopped")
	return nil
}

// Health is healthy once the listener is bound.
func (s *Server) Health(context.Context) component.Health {
	h := component.Health{Name: s.Name(), Status: component.StatusHealthy}
	if s.listener == nil {
		h.Status, h.Message = component.StatusUnhealthy, "not listening"
	}
	return h
}

// Describe implements component.Describable.
func (s *Server) Describe() component.Description {
	addr := s.ListenAddr()
	if addr == "" {
		addr = s.Addr()
	}
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: fmt.Sprintf("%s (%s)", addr, protocols[s.config.TLS.Mode()]),
		Port:    s.config.Port,
	}
}
