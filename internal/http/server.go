// Package http provides the JSON API server for the study tracker.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	applog "studytrack/internal/log"
	"studytrack/internal/middleware/ratelimit"
	"studytrack/internal/middleware/security"
	"studytrack/internal/middleware/trace"
	"studytrack/internal/services"
)

// Services bundles the application services the server exposes.
type Services struct {
	Studies *services.StudyService
	Records *services.RecordService
	Memos   *services.MemoService
	Reports *services.ReportService
}

// Options configures optional server behavior.
type Options struct {
	// AllowedOrigin is sent back as Access-Control-Allow-Origin. "*"
	// allows any origin; empty disables CORS headers entirely.
	AllowedOrigin string

	// ReadyCheck is called by the readiness endpoint. A nil check means
	// the server is ready as soon as it can serve requests.
	ReadyCheck func(ctx context.Context) error

	Logger *applog.Logger
}

type Server struct {
	http.Server

	services Services
	opts     Options

	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware
	logs     *applog.StructuredLogger

	startTime time.Time
}

func NewServer(addr string, svc Services, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = applog.New(applog.DefaultConfig())
	}

	s := &Server{
		services:  svc,
		opts:      opts,
		detector:  security.NewDetector(),
		limiter:   ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		startTime: time.Now(),
	}
	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP)
	s.logs = applog.NewStructuredLogger(opts.Logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("GET /api/studies", s.handleListStudies)
	mux.HandleFunc("POST /api/studies", s.handleCreateStudy)
	mux.HandleFunc("GET /api/studies/{id}", s.handleGetStudy)
	mux.HandleFunc("PUT /api/studies/{id}", s.handleUpdateStudy)
	mux.HandleFunc("DELETE /api/studies/{id}", s.handleDeleteStudy)

	mux.HandleFunc("GET /api/records", s.handleListRecords)
	mux.HandleFunc("POST /api/records", s.handleCreateRecord)
	mux.HandleFunc("GET /api/records/{id}", s.handleGetRecord)
	mux.HandleFunc("PUT /api/records/{id}", s.handleUpdateRecord)
	mux.HandleFunc("DELETE /api/records/{id}", s.handleDeleteRecord)

	mux.HandleFunc("GET /api/memos/{date}", s.handleGetMemo)
	mux.HandleFunc("PUT /api/memos/{date}", s.handleSaveMemo)

	mux.HandleFunc("GET /api/reports/monthly/{year}", s.handleMonthlyReport)
	mux.HandleFunc("GET /api/reports/daily/{year}/{month}", s.handleDailyReport)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	rateLimited := s.limiter.Middleware(s.detector.ExtractClientIP, nil)

	var handler http.Handler = mux
	handler = rateLimited(handler)
	handler = s.corsMiddleware(handler)
	handler = headers.Middleware(handler)
	handler = applog.Middleware(opts.Logger)(handler)
	handler = s.tracer.Middleware(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Shutdown stops background goroutines and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	return s.Server.Shutdown(ctx)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := s.opts.AllowedOrigin; origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if origin != "*" {
				w.Header().Set("Vary", "Origin")
			}
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.opts.ReadyCheck != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.opts.ReadyCheck(ctx); err != nil {
			slog.WarnContext(r.Context(), "Readiness check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "DOWN",
				"reason": err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "UP",
		"service":       "studytrack",
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"uptimeSeconds": int64(time.Since(s.startTime).Seconds()),
	})
}
