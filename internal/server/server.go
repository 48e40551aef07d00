package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cloud-ru/loan-amortization-go/internal/metrics"
	"github.com/cloud-ru/loan-amortization-go/internal/tools"
)

const maxBodyBytes = 1 << 20

// Server - HTTP сервер инструментов
type Server struct {
	httpServer *http.Server
	limiter    *RateLimiter
	logger     *slog.Logger
}

// New собирает маршруты: GET /tools, POST /tools/{name}, GET /metrics, GET /healthz
func New(addr string, registry tools.Registry, limiter *RateLimiter, logger *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      NewHandler(registry, limiter, logger),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		limiter: limiter,
		logger:  logger,
	}
}

// NewHandler возвращает корневой обработчик со всеми middleware
func NewHandler(registry tools.Registry, limiter *RateLimiter, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /tools", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{"tools": registry.Names()})
	})
	mux.Handle("POST /tools/{name}", rateLimitMiddleware(limiter, callTool(registry)))

	return requestIDMiddleware(loggingMiddleware(logger, mux))
}

func callTool(registry tools.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")

		params := map[string]interface{}{}
		body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(body).Decode(&params); err != nil {
			metrics.APICalls.WithLabelValues("http", name, "bad_request").Inc()
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		result, err := registry.Call(r.Context(), name, params)
		switch {
		case errors.Is(err, tools.ErrUnknownTool):
			writeError(w, http.StatusNotFound, err.Error())
			return
		case err != nil:
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Run запускает сервер и останавливает его при отмене ctx
func (s *Server) Run(ctx context.Context) error {
	defer s.limiter.Stop()

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}
