// Package podserver is the toy HTTP service: every GET / answers with the
// pod IP, the output of ifconfig, or a Fibonacci number, depending on mode.
package podserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/NivBraz/funcbox/internal/config"
	"github.com/NivBraz/funcbox/internal/httpserver"
	"github.com/NivBraz/funcbox/pkg/compute"
)

// CommandRunner runs an external command and returns its standard output.
type CommandRunner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

type Server struct {
	cfg    config.Server
	runner CommandRunner
	getenv func(string) (string, bool)
	logger *zap.Logger
}

type Option func(*Server)

func WithRunner(r CommandRunner) Option {
	return func(s *Server) { s.runner = r }
}

// WithEnv replaces os.LookupEnv.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(s *Server) { s.getenv = lookup }
}

func New(cfg config.Server, logger *zap.Logger, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		runner: ExecRunner{},
		getenv: os.LookupEnv,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	body, err := s.respond(r.Context())
	if err != nil {
		s.logger.Error("request failed", zap.String("mode", s.cfg.Mode), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

func (s *Server) respond(ctx context.Context) (string, error) {
	switch s.cfg.Mode {
	case config.ModePodIP:
		ip, ok := s.getenv(s.cfg.PodIPEnv)
		if !ok {
			return "", fmt.Errorf("%s is not set", s.cfg.PodIPEnv)
		}
		return "This is the Pod IP: " + ip, nil

	case config.ModeIfconfig:
		out, err := s.runner.Output(ctx, s.cfg.IfconfigCommand)
		if err != nil {
			return "", fmt.Errorf("running %s: %w", s.cfg.IfconfigCommand, err)
		}
		return string(out), nil

	case config.ModeFib:
		return fmt.Sprintf("Fibonacci(%d) = %d", s.cfg.FibN, compute.Fibonacci(s.cfg.FibN)), nil
	}
	return "", fmt.Errorf("unknown mode %q", s.cfg.Mode)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return httpserver.Serve(ctx, srv, s.logger)
}
