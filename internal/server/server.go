package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/jecs/internal/core/observability/log"
	"github.com/zeusync/jecs/internal/todo"
)

// Server exposes one todo.App to websocket clients. The App is owned by the
// command loop goroutine; connections only enqueue commands and receive frames.
type Server struct {
	app    *todo.App
	config Config
	logger log.Log

	commands chan request
	done     chan struct{}

	clients   map[*client]struct{}
	clientsMu sync.Mutex

	httpServer *http.Server

	running int32 // atomic bool
	closed  int32 // atomic bool
}

// Config holds server configuration
type Config struct {
	ListenAddr string
	// Token, when set, must be passed as the token query parameter.
	Token string

	MaxMessageSize  int64
	SendBuffer      int
	CommandBuffer   int
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() Config {
	return Config{
		ListenAddr:      "127.0.0.1:8080",
		MaxMessageSize:  64 * 1024,
		SendBuffer:      16,
		CommandBuffer:   64,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

type request struct {
	cmd  Command
	err  error // set when the frame could not be decoded
	from *client
}

// NewServer creates a server driving app.
func NewServer(config Config, app *todo.App, logger log.Log) *Server {
	if logger == nil {
		logger = log.NewNop()
	}
	defaults := DefaultServerConfig()
	if config.MaxMessageSize <= 0 {
		config.MaxMessageSize = defaults.MaxMessageSize
	}
	if config.SendBuffer <= 0 {
		config.SendBuffer = defaults.SendBuffer
	}
	if config.CommandBuffer <= 0 {
		config.CommandBuffer = defaults.CommandBuffer
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = defaults.WriteTimeout
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = defaults.ShutdownTimeout
	}

	s := &Server{
		app:      app,
		config:   config,
		logger:   logger.With(log.String("component", "server")),
		commands: make(chan request, config.CommandBuffer),
		done:     make(chan struct{}),
		clients:  make(map[*client]struct{}),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	s.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler serving /ws.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.ListenAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the command loop and the HTTP listener on ln until ctx is done
// or either of them fails. It can be called once.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if atomic.LoadInt32(&s.closed) == 1 {
		_ = ln.Close()
		return ErrServerClosed
	}
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		_ = ln.Close()
		return ErrServerAlreadyRunning
	}
	defer atomic.StoreInt32(&s.closed, 1)

	s.logger.Info("Server listening", log.String("addr", ln.Addr().String()))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.loop(ctx)
	})
	g.Go(func() error {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return s.shutdown()
	})

	err := g.Wait()
	s.logger.Info("Server stopped")
	return err
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	s.clientsMu.Lock()
	for c := range s.clients {
		c.close()
		delete(s.clients, c)
	}
	s.clientsMu.Unlock()

	return s.httpServer.Shutdown(ctx)
}

// loop is the only goroutine touching the App.
func (s *Server) loop(ctx context.Context) error {
	defer close(s.done)
	s.logger.Debug("Command loop started")
	defer s.logger.Debug("Command loop stopped")

	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-s.commands:
			s.handleCommand(ctx, req)
		}
	}
}

func (s *Server) handleCommand(ctx context.Context, req request) {
	err := req.err
	if err == nil {
		err = s.apply(ctx, req.cmd)
	}
	frame := Frame{Snapshot: s.app.Snapshot()}

	switch {
	case err != nil:
		s.logger.Warn("Command failed", log.String("op", req.cmd.Op), log.Error(err))
		frame.Error = err.Error()
		s.send(req.from, frame)
	case req.cmd.Op == OpSync:
		s.send(req.from, frame)
	default:
		s.broadcast(frame)
	}
}

func (s *Server) apply(ctx context.Context, cmd Command) error {
	switch cmd.Op {
	case OpSync:
		return nil
	case OpAdd:
		_, err := s.app.Add(ctx, cmd.Title)
		return err
	case OpToggle:
		return s.app.Toggle(ctx, cmd.ID)
	case OpEdit:
		return s.app.Edit(ctx, cmd.ID)
	case OpCommit:
		return s.app.CommitEdit(ctx, cmd.ID, cmd.Title)
	case OpAbort:
		return s.app.AbortEdit(ctx, cmd.ID)
	case OpDestroy:
		return s.app.Destroy(ctx, cmd.ID)
	case OpClear:
		return s.app.ClearCompleted(ctx)
	case OpMarkAll:
		return s.app.MarkAll(ctx, cmd.Completed)
	case OpFilter:
		f, err := todo.ParseFilter(cmd.Filter)
		if err != nil {
			return err
		}
		return s.app.SetFilter(ctx, f)
	case OpDebugDump:
		return s.app.SetDebug(ctx, cmd.Display, cmd.Verbose)
	default:
		return fmt.Errorf("%q: %w", cmd.Op, ErrUnknownOp)
	}
}

// enqueue hands cmd to the loop; it fails once the loop has stopped.
func (s *Server) enqueue(req request) bool {
	select {
	case s.commands <- req:
		return true
	case <-s.done:
		return false
	}
}

// GetStats returns server statistics
func (s *Server) GetStats() Stats {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return Stats{
		ClientCount: len(s.clients),
		Running:     atomic.LoadInt32(&s.running) == 1 && atomic.LoadInt32(&s.closed) == 0,
	}
}

// Stats contains server statistics
type Stats struct {
	ClientCount int
	Running     bool
}
