package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"hydauction-listing-service/internal/config"
	"hydauction-listing-service/internal/ports/inbound"
	"hydauction-listing-service/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// Server is the HTTP transport for the listing service
type Server struct {
	handler    *Handler
	httpServer *http.Server
	config     *config.Config
	logger     zerolog.Logger
}

type ServerParams struct {
	Config         *config.Config
	AuthService    inbound.AuthService
	ListingService inbound.ListingService
	Sessions       outbound.SessionStore
	Logger         zerolog.Logger
}

// NewServer creates a new HTTP server with all routes wired behind the
// authorization gate
func NewServer(params ServerParams) *Server {
	handler := NewHandler(HandlerParams{
		AuthService:    params.AuthService,
		ListingService: params.ListingService,
		Logger:         params.Logger,
	})

	gate := NewGate(GateParams{
		Sessions: params.Sessions,
		Logger:   params.Logger,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /items", handler.ListItems)
	mux.HandleFunc("POST /items", handler.AddItem)
	mux.HandleFunc("DELETE /items/{id}", handler.DeleteItem)
	mux.HandleFunc("POST /signup", handler.Signup)
	mux.HandleFunc("POST /login", handler.Login)
	mux.HandleFunc("POST /logout", handler.Logout)
	mux.HandleFunc("GET /health", handleHealth)

	// Static assets and uploaded images
	staticDir := params.Config.Server.StaticDir
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	})
	mux.Handle("GET /public/", http.StripPrefix("/public/",
		http.FileServer(http.Dir(params.Config.Server.PublicDir))))

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", params.Config.Server.Port),
		Handler:      gate.Middleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		handler:    handler,
		httpServer: httpServer,
		config:     params.Config,
		logger:     params.Logger,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Stopping HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}
