package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"GoldSentinel/internal/model"
)

// Server exposes /metrics, /healthz and the latest decision over HTTP.
type Server struct {
	srv *http.Server

	mu     sync.RWMutex
	latest *model.Decision
}

// NewServer builds the status server bound to addr.
func NewServer(addr string) *Server {
	s := &Server{}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Router returns the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/decision", s.handleDecision).Methods(http.MethodGet)
	return r
}

// SetLatest stores the decision served by /api/decision.
func (s *Server) SetLatest(d *model.Decision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = d
}

func (s *Server) handleDecision(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	d := s.latest
	s.mu.RUnlock()

	if d == nil {
		http.Error(w, "no decision yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(d); err != nil {
		log.Error().Err(err).Msg("encode decision")
	}
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.srv.Addr).Msg("status server listening")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
