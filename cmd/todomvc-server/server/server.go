// Package server provides an importable HTTP server hosting the TodoMVC app.
// This allows E2E tests to programmatically start/stop the app without running main().
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/thesyncim/todomvc/internal"
)

// Config holds server configuration options.
type Config struct {
	Addr         string         // Listen address (e.g., ":8080" or ":0" for random port)
	ReadTimeout  time.Duration  // HTTP read timeout
	WriteTimeout time.Duration  // HTTP write timeout
	Logger       *slog.Logger   // Request and lifecycle logs; nil discards them
	Clock        internal.Clock // Times requests; nil means the system clock
}

// DefaultConfig returns a configuration suitable for testing.
// Uses ":0" to bind to a random available port.
func DefaultConfig() Config {
	return Config{
		Addr:         ":0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server serves the TodoMVC application under test.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	logger     *slog.Logger
	addr       string
	mu         sync.Mutex
	running    bool
}

// NewServer creates a new server with the given configuration.
// The server is not started until Start() is called.
func NewServer(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = internal.SystemClock{}
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      logRequests(logger, clock, NewHandler()),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	return &Server{
		httpServer: httpServer,
		logger:     logger,
	}, nil
}

// Start begins listening and serving HTTP requests.
// Returns the actual address the server is listening on (useful when port is 0).
// This method is non-blocking - the server runs in a goroutine.
func (s *Server) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return s.addr, nil
	}

	// Create listener to get actual port
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	s.listener = ln
	s.addr = ln.Addr().String()
	s.running = true

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server stopped", "addr", s.addr, "err", err)
		}
	}()

	s.logger.Info("server started", "addr", s.addr)
	return s.addr, nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	s.logger.Info("server stopping", "addr", s.addr)
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
// Returns empty string if server is not running.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return ""
	}
	return s.addr
}

// URL returns the app's root URL on the loopback host, or empty string if
// the server is not running. Browsers treat localhost as a secure context,
// which the wildcard address returned by Addr is not.
func (s *Server) URL() string {
	addr := s.Addr()
	if addr == "" {
		return ""
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return ""
	}
	return "http://localhost:" + port + "/"
}
