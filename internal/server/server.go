package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// Server is the WebSocket front door: it upgrades connections and runs the
// hub and the table service until shut down.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	logger   *log.Logger
	hub      *Hub
	service  *Service
}

// NewServer wires the hub and table service from configuration.
func NewServer(cfg *Config, logger *log.Logger, clock quartz.Clock) (*Server, error) {
	hub := NewHub(logger)
	service, err := NewService(cfg, hub, logger, clock)
	if err != nil {
		return nil, err
	}

	return &Server{
		addr: cfg.Addr(),
		upgrader: websocket.Upgrader{
			// Origin checking is the deployment proxy's job.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:  logger.WithPrefix("server"),
		hub:     hub,
		service: service,
	}, nil
}

// Service exposes the table service, mainly for tests.
func (s *Server) Service() *Service {
	return s.service
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	httpServer := &http.Server{Addr: s.addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.hub.Run(ctx) })
	g.Go(func() error { return s.service.Run(ctx) })
	g.Go(func() error {
		s.logger.Info("Starting WebSocket server", "addr", s.addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return httpServer.Shutdown(context.Background())
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s.service)
	s.hub.register <- client
	client.Start()

	go func() {
		<-client.Done()
		s.hub.unregister <- client
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}
