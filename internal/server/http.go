package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/spatial/internal/core/observability/log"
)

const requestIDHeader = "X-Request-ID"

// Handler returns the HTTP routes. It can be mounted without calling Start.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /raycast", s.handleRaycast)
	mux.HandleFunc("POST /raycast/batch", s.handleBatch)
	mux.HandleFunc("GET /bodies", s.handleBodies)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return s.withRequestID(mux)
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := log.ContextWithRequestID(r.Context(), id)
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))

		s.logger.WithContext(ctx).Debug("Request served",
			log.String("method", r.Method),
			log.String("path", r.URL.Path),
			log.Duration("elapsed", time.Since(start)))
	})
}

func (s *Server) handleRaycast(w http.ResponseWriter, r *http.Request) {
	var q Query
	if err := s.decode(w, r, &q); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	resp, err := s.Raycast(q)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleBatch answers several queries in one request, in order, on the request
// goroutine. A bad query yields an error entry at its position instead of failing the
// whole batch.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var queries []Query
	if err := s.decode(w, r, &queries); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if len(queries) > s.config.MaxBatchSize {
		s.writeError(w, r, http.StatusBadRequest,
			fmt.Errorf("%w: %d queries, limit %d", ErrBatchTooLarge, len(queries), s.config.MaxBatchSize))
		return
	}

	responses := make([]Response, 0, len(queries))
	for _, q := range queries {
		if err := r.Context().Err(); err != nil {
			s.writeError(w, r, http.StatusServiceUnavailable, err)
			return
		}
		resp, err := s.Raycast(q)
		if err != nil {
			resp = Response{Error: err.Error()}
		}
		responses = append(responses, resp)
	}
	s.writeJSON(w, http.StatusOK, responses)
}

func (s *Server) handleBodies(w http.ResponseWriter, _ *http.Request) {
	bodies := make([]BodyInfo, 0, s.world.Len())
	for b := range s.world.Bodies() {
		bodies = append(bodies, newBodyInfo(b))
	}
	s.writeJSON(w, http.StatusOK, bodies)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.GetStats())
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.config.MaxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Failed to write response", log.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logger := s.logger.WithContext(r.Context())
	if errors.Is(err, ErrInvalidQuery) || errors.Is(err, ErrBatchTooLarge) {
		logger.Debug("Rejected query", log.Error(err))
	} else {
		logger.Warn("Request failed", log.Error(err))
	}
	s.writeJSON(w, status, Response{Error: err.Error()})
}
