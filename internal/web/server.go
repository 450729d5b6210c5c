// Package web is the local web backend: a short-lived HTTP server on an ephemeral
// localhost port that serves one feedback form and accepts one submission.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iammorganparry/interactive-feedback/internal/feedback"
)

// maxFormBytes caps the submission body.
const maxFormBytes = 1 << 20

// Server serves a single feedback request. The submit handler is the only writer of
// the PendingAnswer; the orchestrator is the only reader.
type Server struct {
	req     feedback.Request
	pending *feedback.PendingAnswer
	logger  *slog.Logger

	state atomic.Int32

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
	served   chan struct{}
}

// NewServer prepares a server for req. Answers are delivered through pending.
func NewServer(req feedback.Request, pending *feedback.PendingAnswer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		req:     req,
		pending: pending,
		logger:  logger,
		served:  make(chan struct{}),
	}
	s.state.Store(int32(Listening))
	return s
}

// Handler returns the chi router for the form and submission endpoints.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger(s.logger))
	r.Use(Recovery(s.logger))

	r.Get("/", s.handleForm)
	r.Post("/submit", s.handleSubmit)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	return r
}

// Start binds host on an OS-assigned port and serves in the background.
// It returns the URL the human should open.
func (s *Server) Start(host string) (string, error) {
	if host == "" {
		host = "localhost"
	}
	ln, err := net.Listen("tcp", net.JoinHostPort(host, "0"))
	if err != nil {
		return "", fmt.Errorf("listen on %s: %w", host, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelDebug),
	}

	s.mu.Lock()
	s.srv = srv
	s.listener = ln
	s.mu.Unlock()

	s.state.CompareAndSwap(int32(Listening), int32(AwaitingSubmission))

	go func() {
		defer close(s.served)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("feedback server error", "error", err)
		}
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	url := "http://" + net.JoinHostPort(host, strconv.Itoa(port))
	s.logger.Info("feedback form ready", "url", url)
	return url, nil
}

// State returns the current lifecycle state.
func (s *Server) State() State {
	return State(s.state.Load())
}

// Shutdown stops accepting connections and waits for in-flight requests, so the
// acknowledgement page reaches the browser.
func (s *Server) Shutdown(ctx context.Context) error {
	srv := s.httpServer()
	if srv == nil {
		return nil
	}
	err := srv.Shutdown(ctx)
	if err != nil {
		srv.Close()
	}
	<-s.served
	return err
}

// Close marks the request as timed out and closes the listener immediately.
// In-flight requests are abandoned and any submission still racing is discarded.
func (s *Server) Close() error {
	s.transition(TimedOut)

	srv := s.httpServer()
	if srv == nil {
		return nil
	}
	err := srv.Close()
	<-s.served
	return err
}

// transition moves to a terminal state unless one was already reached.
func (s *Server) transition(to State) bool {
	for {
		cur := s.state.Load()
		if State(cur).terminal() {
			return false
		}
		if s.state.CompareAndSwap(cur, int32(to)) {
			return true
		}
	}
}

func (s *Server) httpServer() *http.Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.srv
}
