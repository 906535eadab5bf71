// Package web exposes a board session over HTTP as JSON.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/CAFxX/httpcompression"
	log "github.com/sirupsen/logrus"

	"tagboard/internal/board"
	"tagboard/internal/model"
	"tagboard/internal/session"
)

const (
	maxActionBytes      = 1 << 20
	defaultHistoryLimit = 50
)

type ServerConfig struct {
	Addr    string
	Session *session.Session
	Logger  *log.Logger
}

type Server struct {
	cfg    ServerConfig
	logger *log.Logger
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Addr == "" {
		return nil, errors.New("web: addr is empty")
	}
	if cfg.Session == nil {
		return nil, errors.New("web: session is nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New()
	}
	return &Server{cfg: cfg, logger: logger}, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/action", s.handleAction)
	mux.HandleFunc("GET /api/cards/{id}/html", s.handleCardHTML)
	mux.HandleFunc("GET /api/history", s.handleHistory)

	var h http.Handler = mux
	if compress, err := httpcompression.DefaultAdapter(); err != nil {
		s.logger.WithError(err).Warn("response compression disabled")
	} else {
		h = compress(h)
	}
	return s.logRequests(h)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.WithField("addr", s.cfg.Addr).Info("listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Session.Snapshot())
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxActionBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	a, err := board.DecodeAction(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	snap, err := s.cfg.Session.Do(r.Context(), a)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleCardHTML(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid card id"))
		return
	}
	var text string
	found := false
	s.cfg.Session.View(func(b *board.Board) {
		if c, ok := b.Card(model.CardID(id)); ok {
			text, found = c.Text, true
		}
	})
	if !found {
		writeError(w, http.StatusNotFound, board.ErrNoSuchCard)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, string(renderCardHTML(text)))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, errors.New("invalid limit"))
			return
		}
		limit = n
	}
	entries, err := s.cfg.Session.History(r.Context(), limit)
	if errors.Is(err, session.ErrNoJournal) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// statusFor maps an action error to an HTTP status.
func statusFor(err error) int {
	var invalid model.InvalidTagError
	switch {
	case errors.As(err, &invalid), errors.Is(err, board.ErrUnknownAction):
		return http.StatusBadRequest
	case errors.Is(err, board.ErrNoSuchCard),
		errors.Is(err, board.ErrNoSuchCategory),
		errors.Is(err, board.ErrNoSuchColumn):
		return http.StatusNotFound
	case board.IsValidation(err):
		return http.StatusConflict
	default:
		// *board.PersistError and anything unexpected.
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
