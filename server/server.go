// Package server exposes the council over HTTP: a streaming chat endpoint
// speaking Server-Sent Events and a health probe.
//
// Endpoints:
//
//	POST /api/chat    - run a conversation turn, response is an SSE stream
//	GET  /api/health  - liveness probe
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hupe1980/agentcouncil/core"
	"github.com/hupe1980/agentcouncil/logging"
	"github.com/hupe1980/agentcouncil/orchestrator"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = "127.0.0.1:8420"

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout guards against slow-header clients.
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// IdleTimeout applies to keep-alive connections between requests.
	IdleTimeout = 120 * time.Second
)

// Options tunes the HTTP server.
type Options struct {
	// Addr is the listen address. Defaults to DefaultAddr.
	Addr string

	// Logger receives request logs and handler errors. Defaults to NoOp.
	Logger logging.Logger
}

// Server routes HTTP requests to the orchestrator and the persistence
// gateway.
type Server struct {
	mux    *http.ServeMux
	store  core.Store
	orch   *orchestrator.Orchestrator
	logger logging.Logger
	addr   string
}

// New constructs a server with all routes registered.
func New(store core.Store, orch *orchestrator.Orchestrator, optFns ...func(o *Options)) *Server {
	opts := Options{
		Addr:   DefaultAddr,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	s := &Server{
		mux:    http.NewServeMux(),
		store:  store,
		orch:   orch,
		logger: opts.Logger,
		addr:   opts.Addr,
	}

	s.mux.HandleFunc("POST /api/chat", s.handleChat)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	return s
}

// Handler returns the routing handler with middleware applied.
// Middleware order: recovery, then request logging.
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		recoveryMiddleware(s.logger),
		loggingMiddleware(s.logger),
	)
}

// Run starts the server and blocks until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		// No WriteTimeout: SSE responses stay open for the whole run and
		// would be cut off by any fixed write deadline.
		IdleTimeout: IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
