// Package server exposes the converter over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shapestone/shape-moxfield/internal/config"
	"github.com/shapestone/shape-moxfield/internal/logging"
	"github.com/shapestone/shape-moxfield/pkg/moxfield"
)

// ErrEmptyBody is returned for a convert request without a body.
var ErrEmptyBody = errors.New("request body is empty")

const shutdownTimeout = 10 * time.Second

// Server serves conversions over HTTP.
type Server struct {
	cfg    config.ServerConfig
	logger *slog.Logger
	router chi.Router
}

// New creates a Server. A nil logger discards logs.
func New(cfg config.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		router: chi.NewRouter(),
	}
	s.router.Use(requestID)
	s.router.Use(requestLogger(logger))
	s.router.Use(middleware.Recoverer)
	s.RegisterRoutes(s.router)
	return s
}

// RegisterRoutes mounts the service endpoints on r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Post("/convert", s.Convert)
	r.Get("/healthz", s.Health)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout.Duration,
		WriteTimeout: s.cfg.WriteTimeout.Duration,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ConvertResponse is the JSON form of a conversion.
type ConvertResponse struct {
	Lines     []string `json:"lines"`
	Records   int      `json:"records"`
	LineCount int      `json:"lines_count"`
	Dropped   int      `json:"dropped"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Convert converts the CSV request body. The response is the text list,
// or a ConvertResponse when the client accepts application/json.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	body := r.Body
	if s.cfg.MaxRequestSize > 0 {
		body = http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestSize)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, ErrEmptyBody)
		return
	}

	out, res := moxfield.ConvertWithResult(string(data))
	for _, warning := range res.Warnings {
		logger.Debug("tolerated malformed input", "line", warning.Line, "problem", warning.Message)
	}
	logger.Debug("converted", "records", res.Records, "lines", res.Lines, "dropped", res.Dropped)

	if !acceptsJSON(r) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, out)
		return
	}

	resp := ConvertResponse{
		Lines:     []string{},
		Records:   res.Records,
		LineCount: res.Lines,
		Dropped:   res.Dropped,
	}
	if out != "" {
		resp.Lines = strings.Split(out, "\n")
	}
	for _, warning := range res.Warnings {
		resp.Warnings = append(resp.Warnings, warning.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

// Health reports liveness.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func acceptsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
