package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/airfinder/internal/cli"
	"github.com/UnknownOlympus/airfinder/internal/models"
	"github.com/UnknownOlympus/airfinder/internal/service"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger checks a backing dependency for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server exposes the proximity search over HTTP together with health and metrics endpoints.
type Server struct {
	log    *slog.Logger
	search service.Config
	reg    *prometheus.Registry
	pinger Pinger // nil when the data source has nothing to ping
}

// AirportResponse is one entry of the /airports reply.
type AirportResponse struct {
	Name           string  `json:"name"`
	Longitude      float64 `json:"longitude"`
	Latitude       float64 `json:"latitude"`
	DistanceMeters float64 `json:"distance_meters"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New creates a server running searches with the given collaborators.
func New(log *slog.Logger, search service.Config, reg *prometheus.Registry, pinger Pinger) *Server {
	return &Server{log: log, search: search, reg: reg, pinger: pinger}
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /airports", s.handleAirports)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))

	return s.withRequestID(mux)
}

// Run listens on the given port until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port int) error {
	readTimeout := 5
	writeTimeout := 30
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.InfoContext(ctx, "Starting HTTP server", "port", port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownTimeout := 10
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Duration(shutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	s.log.InfoContext(ctx, "HTTP server stopped")

	return nil
}

func (s *Server) handleAirports(writer http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	log := s.requestLogger(ctx)
	query := req.URL.Query()

	input, err := cli.ParseInput(query.Get("longitude"), query.Get("latitude"), query.Get("radius"))
	if err != nil {
		s.writeJSON(ctx, writer, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	search := service.NewProximitySearch(s.search, input.Center)
	airports, err := search.FindNearestWithinRadius(ctx, input.Radius)
	switch {
	case errors.Is(err, models.ErrDegenerateGeometry):
		s.writeJSON(ctx, writer, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	case err != nil:
		log.ErrorContext(ctx, "Search failed", "error", err)
		s.writeJSON(ctx, writer, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	resp := make([]AirportResponse, 0, len(airports))
	for _, airport := range airports {
		resp = append(resp, AirportResponse{
			Name:           airport.Name,
			Longitude:      airport.Location.Longitude,
			Latitude:       airport.Location.Latitude,
			DistanceMeters: search.DistanceTo(airport),
		})
	}

	log.DebugContext(ctx, "Search served", "airports", len(resp))
	s.writeJSON(ctx, writer, http.StatusOK, resp)
}

func (s *Server) handleHealth(writer http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	s.log.DebugContext(ctx, "Performing health checks...")

	status, body := http.StatusOK, "OK"
	if s.pinger != nil {
		if err := s.pinger.Ping(ctx); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
	}

	writer.WriteHeader(status)
	if _, err := writer.Write([]byte(body)); err != nil {
		s.log.ErrorContext(ctx, "failed to write reply", "error", err)
	}

	s.log.DebugContext(ctx, "Health checks completed", "status", status)
}

func (s *Server) writeJSON(ctx context.Context, writer http.ResponseWriter, status int, body any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(body); err != nil {
		s.log.ErrorContext(ctx, "failed to write reply", "error", err)
	}
}

type requestIDKey struct{}

// withRequestID tags every request with an X-Request-ID, reusing the caller's when present.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
		reqID := req.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		writer.Header().Set("X-Request-ID", reqID)

		next.ServeHTTP(writer, req.WithContext(context.WithValue(req.Context(), requestIDKey{}, reqID)))
	})
}

func (s *Server) requestLogger(ctx context.Context) *slog.Logger {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return s.log.With("request_id", reqID)
	}

	return s.log
}
