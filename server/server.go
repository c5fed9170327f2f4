// Package server exposes the views over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spektr-org/fomezero/config"
	"github.com/spektr-org/fomezero/dataset"
	"github.com/spektr-org/fomezero/engine"
	"github.com/spektr-org/fomezero/pipeline"
	"github.com/spektr-org/fomezero/views"
)

const shutdownTimeout = 10 * time.Second

// Server serves the dashboard API for one data source.
type Server struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	logger   *zap.SugaredLogger
	router   chi.Router
}

// New wires the router.
func New(cfg *config.Config, p *pipeline.Pipeline, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Server{cfg: cfg, pipeline: p, logger: logger}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader, "Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/views", s.handleListViews)
		r.Get("/views/{view}", s.handleView)
		r.Get("/views/{view}/download", s.handleDownload)
		r.Get("/options", s.handleOptions)
		r.Get("/map", s.handleMap)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Infow("listening", "addr", s.cfg.ListenAddr, "data_path", s.cfg.DataPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListViews(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, views.Registry())
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	res, ok := s.run(w, r)
	if !ok {
		return
	}
	w.Header().Set("X-Run-ID", res.RunID)
	writeJSON(w, http.StatusOK, res.Page)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	res, ok := s.run(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", dataset.DownloadFilename))
	if err := dataset.WriteCSV(w, res.Filtered); err != nil {
		// headers are already sent
		s.logger.Errorw("download failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
	}
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.pipeline.Options(r.Context(), s.cfg.DataPath)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	points, err := s.pipeline.MapPoints(r.Context(), s.cfg.DataPath, criteria)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) run(w http.ResponseWriter, r *http.Request) (*pipeline.Result, bool) {
	criteria, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	res, err := s.pipeline.Run(r.Context(), s.cfg.DataPath, chi.URLParam(r, "view"), criteria)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return res, true
}

// ============================================================================
// RESPONSES
// ============================================================================

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	requestID := RequestIDFromContext(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Errorw("request failed", "error", err, "request_id", requestID)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: requestID})
}

func statusFor(err error) int {
	var validation *engine.ValidationError
	var notFound *engine.NotFoundError
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
