// TodoMVC server
//
// Serves the bundled TodoMVC application so the E2E suite, or a person with
// a browser, can exercise it.
//
// Usage:
//
//	go run ./cmd/todomvc-server -addr :8080
//	TODOMVC_URL=http://localhost:8080/ go test -tags=e2e ./e2e/...
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thesyncim/todomvc/cmd/todomvc-server/server"
)

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(*level)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *level, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	cfg := server.DefaultConfig()
	cfg.Addr = *addr
	cfg.Logger = logger

	srv, err := server.NewServer(cfg)
	if err != nil {
		logger.Error("failed to create server", "err", err)
		os.Exit(1)
	}
	if _, err := srv.Start(); err != nil {
		logger.Error("failed to start server", "err", err)
		os.Exit(1)
	}

	fmt.Printf("TodoMVC ready at %s\n", srv.URL())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
		os.Exit(1)
	}
}
