// Package gateway exposes the conversational assistant over HTTP and
// WebSocket.
package gateway

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tripwise/tripwise/internal/chat"
	"github.com/tripwise/tripwise/internal/config"
	"github.com/tripwise/tripwise/internal/logging"
)

// Server is the tripwise HTTP + WebSocket server.
type Server struct {
	cfg        config.ServerConfig
	orch       *chat.Orchestrator
	log        *logging.Logger
	httpServer *http.Server
	upgrader   websocket.Upgrader
	startedAt  time.Time
}

// New creates a gateway server around the orchestrator.
func New(cfg config.ServerConfig, orch *chat.Orchestrator, log *logging.Logger) *Server {
	return &Server{
		cfg:  cfg,
		orch: orch,
		log:  log.Sub("gateway"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The chat UI is served from arbitrary origins in development.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Start begins listening for HTTP and WebSocket connections.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      withMiddleware(mux, s.log),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // model calls can be slow
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(l net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.startedAt = time.Now()
	s.log.Info().Str("addr", ln.Addr().String()).Msg("gateway server ready")

	go func() {
		<-ctx.Done()
		s.log.Info().Msg("shutting down gateway server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Warn().Err(err).Msg("graceful shutdown failed")
		}
	}()

	if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// registerRoutes wires the public HTTP API.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/reset-chat", s.handleResetChat)
	mux.HandleFunc("GET /api/session-status", s.handleSessionStatus)
	mux.HandleFunc("GET /api/travel-destinations", s.handleDestinations)
	mux.HandleFunc("GET /api/functions", s.handleFunctions)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
}
