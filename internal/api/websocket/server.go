// Package websocket streams backfill progress to connected clients.
package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/fortuna/rinkside/internal/backfill"
)

// Server represents the WebSocket server
type Server struct {
	port           string
	server         *http.Server
	hub            *Hub
	allowedOrigins map[string]bool
	upgrader       websocket.Upgrader
}

// NewServer creates a new WebSocket server. An empty origin list accepts
// upgrades from any origin.
func NewServer(allowedOrigins []string) *Server {
	s := &Server{
		hub:            NewHub(),
		allowedOrigins: make(map[string]bool, len(allowedOrigins)),
	}
	for _, origin := range allowedOrigins {
		s.allowedOrigins[origin] = true
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// checkOrigin accepts requests without an Origin header (non-browser clients)
// and browser requests from a configured origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.allowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return s.allowedOrigins[origin]
}

// Reporter returns a backfill progress listener that broadcasts every event
// to connected clients.
func (s *Server) Reporter() backfill.Reporter {
	return backfill.ReporterFunc(func(p backfill.Progress) {
		message, err := json.Marshal(p)
		if err != nil {
			return
		}
		s.hub.Broadcast(message)
	})
}

// Start starts the WebSocket server
func (s *Server) Start(port string) error {
	s.port = port

	// Start the hub in a goroutine
	go s.hub.Run()

	// Set up HTTP routes
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/backfill", s.handleBackfillFeed)
	mux.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: mux,
	}

	log.Printf("WebSocket server listening on :%s", port)
	return s.server.ListenAndServe()
}

// handleBackfillFeed handles WebSocket connections for the progress feed
func (s *Server) handleBackfillFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := newClient(s.hub, conn)
	s.hub.Register(client)

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, s.hub.ClientCount())
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Stop()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
