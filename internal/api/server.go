// Package api serves the metrics endpoint and a small status API over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/smazurov/streamwatch/internal/logging"
	"github.com/smazurov/streamwatch/internal/version"
)

// Options configures the HTTP server.
type Options struct {
	MetricsHandler http.Handler   // Prometheus exposition handler, mounted at /metrics
	Status         *StatusTracker // Status read model, nil disables /api/status
}

// Server exposes /metrics plus a Huma v2 status API using Go 1.22+ native
// routing.
type Server struct {
	api        huma.API
	mux        *http.ServeMux
	httpServer *http.Server
	options    *Options
	logger     *slog.Logger
}

// NewServer creates the API server.
func NewServer(opts *Options) *Server {
	mux := http.NewServeMux()

	config := huma.DefaultConfig("StreamWatch API", version.String())
	config.Info.Description = "Stream health monitoring for ffprobe/ffmpeg pipelines"
	// Empty servers list makes OpenAPI use relative paths, working with any host
	config.Servers = []*huma.Server{}

	api := humago.New(mux, config)
	api.UseMiddleware(HTTPLoggingMiddleware)

	server := &Server{
		api:     api,
		mux:     mux,
		options: opts,
		logger:  logging.GetLogger("api"),
	}

	if opts.MetricsHandler != nil {
		mux.Handle("GET /metrics", opts.MetricsHandler)
	}

	server.registerRoutes()
	return server
}

// GetMux returns the underlying HTTP ServeMux for additional setup.
func (s *Server) GetMux() *http.ServeMux {
	return s.mux
}

// GetAPI returns the Huma API instance.
func (s *Server) GetAPI() huma.API {
	return s.api
}

// Start starts the HTTP server on the specified address and blocks until
// the server stops.
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting API server", "addr", addr)
	s.logger.Info("Metrics exposed", "url", "http://"+addr+"/metrics")

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}
	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down without waiting for open connections.
func (s *Server) Stop() error {
	s.logger.Info("Stopping API server")
	if s.httpServer != nil {
		return s.httpServer.Close()
	}
	return nil
}

// registerRoutes sets up all API endpoints.
func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health",
		Description: "Check API health status",
		Tags:        []string{"health"},
	}, func(ctx context.Context, input *struct{}) (*HealthResponse, error) {
		return &HealthResponse{
			Body: HealthData{
				Status:  "ok",
				Message: "API is healthy",
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Version",
		Description: "Get application version information",
		Tags:        []string{"system"},
	}, func(ctx context.Context, input *struct{}) (*VersionResponse, error) {
		info := version.Get()
		return &VersionResponse{
			Body: VersionData{
				Version:   info.Version,
				GitCommit: info.GitCommit,
				BuildDate: info.BuildDate,
				GoVersion: info.GoVersion,
				Platform:  info.Platform,
			},
		}, nil
	})

	if s.options.Status != nil {
		huma.Register(s.api, huma.Operation{
			OperationID: "get-status",
			Method:      http.MethodGet,
			Path:        "/api/status",
			Summary:     "Monitor Status",
			Description: "Get the current supervision state of the monitored stream",
			Tags:        []string{"monitor"},
		}, func(ctx context.Context, input *struct{}) (*StatusResponse, error) {
			return &StatusResponse{Body: s.options.Status.Snapshot()}, nil
		})
	}
}
