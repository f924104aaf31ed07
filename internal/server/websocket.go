package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/zeusync/jecs/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type client struct {
	conn   *websocket.Conn
	send   chan []byte
	remote string
	once   sync.Once
}

// close ends the writer; callers hold clientsMu.
func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

func (s *Server) authorize(r *http.Request) error {
	if s.config.Token == "" {
		return nil
	}
	if r.URL.Query().Get("token") != s.config.Token {
		return ErrUnauthorized
	}
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if err := s.authorize(r); err != nil {
		s.logger.Warn("Rejected connection", log.String("remote_addr", r.RemoteAddr), log.Error(err))
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", log.Error(err))
		return
	}
	c := &client{
		conn:   conn,
		send:   make(chan []byte, s.config.SendBuffer),
		remote: conn.RemoteAddr().String(),
	}

	s.clientsMu.Lock()
	s.clients[c] = struct{}{}
	total := len(s.clients)
	s.clientsMu.Unlock()
	s.logger.Info("Client connected", log.String("remote_addr", c.remote), log.Int("total_clients", total))

	go s.writePump(c)
	if !s.enqueue(request{cmd: Command{Op: OpSync}, from: c}) {
		s.unregister(c)
		return
	}
	s.readPump(c)
}

func (s *Server) readPump(c *client) {
	defer s.unregister(c)
	c.conn.SetReadLimit(s.config.MaxMessageSize)

	for {
		_, p, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("Client read failed", log.String("remote_addr", c.remote), log.Error(err))
			}
			return
		}

		req := request{from: c}
		if err := json.Unmarshal(p, &req.cmd); err != nil {
			req.err = fmt.Errorf("%w: %v", ErrInvalidMessage, err)
		}
		if !s.enqueue(req) {
			return
		}
	}
}

func (s *Server) writePump(c *client) {
	defer func() { _ = c.conn.Close() }()

	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			s.logger.Warn("Client write failed", log.String("remote_addr", c.remote), log.Error(err))
			s.unregister(c)
			return
		}
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (s *Server) unregister(c *client) {
	s.clientsMu.Lock()
	_, ok := s.clients[c]
	if ok {
		delete(s.clients, c)
		c.close()
	}
	total := len(s.clients)
	s.clientsMu.Unlock()

	if ok {
		s.logger.Info("Client disconnected", log.String("remote_addr", c.remote), log.Int("total_clients", total))
	}
}

func (s *Server) send(c *client, frame Frame) {
	msg, err := json.Marshal(frame)
	if err != nil {
		s.logger.Error("Failed to encode frame", log.Error(err))
		return
	}
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.deliverLocked(c, msg)
}

func (s *Server) broadcast(frame Frame) {
	msg, err := json.Marshal(frame)
	if err != nil {
		s.logger.Error("Failed to encode frame", log.Error(err))
		return
	}
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for c := range s.clients {
		s.deliverLocked(c, msg)
	}
}

// deliverLocked queues msg for c, dropping clients that fell behind.
func (s *Server) deliverLocked(c *client, msg []byte) {
	if _, ok := s.clients[c]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
		s.logger.Warn("Dropping slow client", log.String("remote_addr", c.remote))
		delete(s.clients, c)
		c.close()
	}
}
