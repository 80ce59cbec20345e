package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/jens-platform/ifc-match/internal/ingest"
	"github.com/jens-platform/ifc-match/internal/recon"
	"github.com/jens-platform/ifc-match/internal/web/handlers"
	"github.com/jens-platform/ifc-match/internal/web/middleware"
)

// Server serves the reconciliation report API over the last computed result.
type Server struct {
	config     *Config
	engine     *recon.Engine
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a report server instance. The first reconciliation run
// happens when Run is called (at startup or via POST /api/reconcile).
func NewServer(config *Config) *Server {
	server := &Server{
		config: config,
		engine: recon.NewEngine(),
	}

	server.setupRoutes()

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      server.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

// Run reads the configured inputs and recomputes the reconciliation result.
func (s *Server) Run() (*recon.MatchResult, error) {
	elements, skippedElements, err := ingest.ReadElementManifest(s.config.Inputs.ElementsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read elements: %w", err)
	}

	rows, skippedRows, err := ingest.ReadSchedule(s.config.Inputs.SchedulePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule: %w", err)
	}

	if skippedElements > 0 || skippedRows > 0 {
		fmt.Printf("Ingest skipped %d element lines, %d schedule lines\n", skippedElements, skippedRows)
	}

	return s.engine.Reconcile(false, elements, rows), nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	handlerConfig := &handlers.Config{}
	handlerConfig.Features.ExportEnabled = s.config.Features.ExportEnabled
	handlerConfig.Features.ReconcileEnabled = s.config.Features.ReconcileEnabled

	reportHandler := &handlers.ReportHandler{Engine: s.engine, Config: handlerConfig}
	exportHandler := &handlers.ExportHandler{Engine: s.engine, Config: handlerConfig}
	reconcileHandler := &handlers.ReconcileHandler{Runner: s, Config: handlerConfig}

	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/result", reportHandler.GetResult).Methods("GET")
	api.HandleFunc("/result/coverage", reportHandler.GetCoverage).Methods("GET")
	api.HandleFunc("/result/unmatched", reportHandler.GetUnmatched).Methods("GET")
	api.HandleFunc("/result/ambiguous", reportHandler.GetAmbiguous).Methods("GET")
	api.HandleFunc("/elements/{id:[0-9]+}/decision", reportHandler.GetDecision).Methods("GET")
	api.HandleFunc("/stats", reportHandler.GetStats).Methods("GET")

	if s.config.Features.ReconcileEnabled {
		api.HandleFunc("/reconcile", reconcileHandler.Reconcile).Methods("POST")
	}
	if s.config.Features.ExportEnabled {
		api.HandleFunc("/export", exportHandler.ExportData).Methods("POST")
	}

	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestLogging())
}

// Start runs the initial reconciliation and serves until interrupted.
func (s *Server) Start() error {
	if _, err := s.Run(); err != nil {
		// Serve anyway; the result endpoints report not-found until a
		// successful POST /api/reconcile.
		fmt.Printf("Initial reconciliation failed: %v\n", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		fmt.Printf("Starting report server on http://%s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server error: %v\n", err)
		}
	}()

	<-stop
	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		fmt.Printf("Server shutdown error: %v\n", err)
	}

	fmt.Println("Server stopped")
	return nil
}
