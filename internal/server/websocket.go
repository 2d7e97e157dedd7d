package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zeusync/spatial/internal/core/observability/log"
)

// session is one WebSocket connection. Each text frame carries a Query; each reply is
// a Response.
type session struct {
	id          string
	conn        *websocket.Conn
	connectedAt time.Time
	closeOnce   sync.Once
}

func (ss *session) close() {
	ss.closeOnce.Do(func() {
		_ = ss.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"),
			time.Now().Add(time.Second))
		_ = ss.conn.Close()
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.WithContext(r.Context()).Debug("WebSocket upgrade failed", log.Error(err))
		return
	}

	conn.SetReadLimit(s.config.MaxBodySize)

	sess := &session{
		id:          uuid.NewString(),
		conn:        conn,
		connectedAt: time.Now(),
	}

	s.sessionMu.Lock()
	if s.stopping {
		s.sessionMu.Unlock()
		sess.close()
		return
	}
	s.sessions.Store(sess.id, sess)
	atomic.AddInt64(&s.sessionCount, 1)
	s.workerGroup.Add(1)
	s.sessionMu.Unlock()

	s.logger.Info("Session opened",
		log.String("session_id", sess.id),
		log.String("remote_addr", conn.RemoteAddr().String()),
		log.Int64("total_sessions", atomic.LoadInt64(&s.sessionCount)))

	s.serveSession(sess)
}

func (s *Server) serveSession(sess *session) {
	defer func() {
		defer s.workerGroup.Done()

		s.sessions.Delete(sess.id)
		atomic.AddInt64(&s.sessionCount, -1)
		sess.close()

		s.logger.Info("Session closed",
			log.String("session_id", sess.id),
			log.Duration("duration", time.Since(sess.connectedAt)),
			log.Int64("total_sessions", atomic.LoadInt64(&s.sessionCount)))
	}()

	for {
		msgType, data, err := sess.conn.ReadMessage()
		if err != nil {
			if errors.Is(err, websocket.ErrReadLimit) {
				s.logger.Warn("Session frame too large",
					log.String("session_id", sess.id),
					log.Int64("max_body_size", s.config.MaxBodySize))
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("Session read failed", log.String("session_id", sess.id), log.Error(err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		resp := s.sessionQuery(data)
		if s.config.WriteTimeout > 0 {
			_ = sess.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		}
		if err = sess.conn.WriteJSON(resp); err != nil {
			s.logger.Warn("Session write failed", log.String("session_id", sess.id), log.Error(err))
			return
		}
	}
}

func (s *Server) sessionQuery(data []byte) Response {
	var q Query
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&q); err != nil {
		atomic.AddInt64(&s.errorCount, 1)
		return Response{Error: fmt.Errorf("%w: %w", ErrInvalidQuery, err).Error()}
	}
	resp, err := s.Raycast(q)
	if err != nil {
		return Response{Error: err.Error()}
	}
	return resp
}
