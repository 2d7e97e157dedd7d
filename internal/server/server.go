package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/zeusync/spatial/internal/core/observability/log"
	"github.com/zeusync/spatial/internal/core/systems/physics"
)

// Server answers raycast queries against a physics.World over HTTP and WebSocket.
type Server struct {
	world *physics.World

	httpServer *http.Server
	listener   net.Listener
	upgrader   websocket.Upgrader

	// Session management
	sessions     sync.Map // map[string]*session
	sessionCount int64    // atomic
	sessionMu    sync.Mutex
	stopping     bool // guarded by sessionMu

	// Counters
	queryCount int64 // atomic
	errorCount int64 // atomic

	// Server state
	running int32 // atomic bool
	closed  int32 // atomic bool

	// Configuration and logging
	config Config
	logger log.Log

	workerGroup sync.WaitGroup
}

// Stats is a point-in-time view of server activity.
type Stats struct {
	Bodies   int   `json:"bodies"`
	Sessions int64 `json:"sessions"`
	Queries  int64 `json:"queries"`
	Errors   int64 `json:"errors"`
}

// NewServer creates a server for world. A nil logger is replaced by one built from
// config.LogLevel.
func NewServer(config Config, world *physics.World, logger log.Log) *Server {
	if logger == nil {
		logger = log.New(config.LogLevel)
	}

	server := &Server{
		world:  world,
		config: config,
		logger: logger.With(log.String("component", "server")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
		},
	}

	server.logger.Info("Server created",
		log.String("listen_addr", config.ListenAddr),
		log.Float64("max_distance", config.MaxDistance),
		log.Int("bodies", world.Len()))

	return server
}

// Start binds the listen address and serves in the background until Stop.
func (s *Server) Start(_ context.Context) error {
	if atomic.LoadInt32(&s.closed) == 1 {
		return ErrServerClosed
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}

	s.logger.Info("Starting server")

	s.sessionMu.Lock()
	s.stopping = false
	s.sessionMu.Unlock()

	listener, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		atomic.StoreInt32(&s.running, 0)
		s.logger.Error("Failed to create listener", log.Error(err))
		return fmt.Errorf("%w: %w", ErrListenerFailed, err)
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.workerGroup.Add(1)
	go func() {
		defer s.workerGroup.Done()
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server failed", log.Error(err))
		}
	}()

	s.logger.Info("Server listening", log.String("addr", listener.Addr().String()))
	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop shuts the HTTP server down, closes every WebSocket session and waits for the
// serving and session goroutines to exit.
func (s *Server) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 1, 0) {
		return ErrServerNotRunning
	}

	s.logger.Info("Stopping server")

	// Hijacked WebSocket connections are not tracked by Shutdown. Sessions that finish
	// upgrading after this point see stopping and close themselves.
	s.sessionMu.Lock()
	s.stopping = true
	s.sessions.Range(func(_, value any) bool {
		if sess, ok := value.(*session); ok {
			sess.close()
		}
		return true
	})
	s.sessionMu.Unlock()

	err := s.httpServer.Shutdown(ctx)
	s.workerGroup.Wait()

	if err != nil {
		s.logger.Error("Shutdown incomplete", log.Error(err))
		return err
	}
	s.logger.Info("Server stopped")
	return nil
}

// Close stops the server if it is running and prevents further starts.
func (s *Server) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil // Already closed
	}

	s.logger.Info("Closing server")

	if atomic.LoadInt32(&s.running) == 1 {
		_ = s.Stop(context.Background())
	}

	s.logger.Info("Server closed")
	return nil
}

// Raycast runs a single query against the world.
func (s *Server) Raycast(q Query) (Response, error) {
	atomic.AddInt64(&s.queryCount, 1)

	req, err := q.resolve(s.config.MaxDistance)
	if err != nil {
		atomic.AddInt64(&s.errorCount, 1)
		return Response{}, err
	}

	if req.all {
		collisions := s.world.CastAll(req.ray, req.maxDistance, req.filter)
		hits := make([]HitInfo, 0, len(collisions))
		for _, c := range collisions {
			hits = append(hits, newHitInfo(c))
		}
		return Response{Hit: len(hits) > 0, Hits: hits}, nil
	}

	c, ok := s.world.Cast(req.ray, req.maxDistance, req.filter)
	if !ok {
		return Response{}, nil
	}
	info := newHitInfo(c)
	return Response{Hit: true, HitInfo: &info}, nil
}

// GetStats returns server statistics
func (s *Server) GetStats() Stats {
	return Stats{
		Bodies:   s.world.Len(),
		Sessions: atomic.LoadInt64(&s.sessionCount),
		Queries:  atomic.LoadInt64(&s.queryCount),
		Errors:   atomic.LoadInt64(&s.errorCount),
	}
}
