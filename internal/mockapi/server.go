// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jeranaias/nutrirag-tui/internal/backend"
	"github.com/jeranaias/nutrirag-tui/internal/model"
	"github.com/jeranaias/nutrirag-tui/internal/router"
)

// Options configures the mock server.
type Options struct {
	Logger *slog.Logger
	// Latency delays every query answer, to exercise typing indicators.
	Latency time.Duration
	// Now is injectable for tests.
	Now func() time.Time
}

// Server is the mock backend.
type Server struct {
	store   *store
	logger  *slog.Logger
	latency time.Duration
}

// New creates an empty mock backend.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Server{
		store:   newStore(now),
		logger:  logger.With("component", "mockapi"),
		latency: opts.Latency,
	}
}

// Handler returns the HTTP router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/query", s.handleQuery)

		r.Post("/chats", s.handleCreateChat)
		r.Get("/chats", s.handleListChats)
		r.Get("/chats/{chatID}", s.handleGetChat)
		r.Delete("/chats/{chatID}", s.handleDeleteChat)
	})

	return r
}

// requestLogger logs one line per request at Info.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, backend.HealthResponse{Status: "ok"})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req backend.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeDetail(w, http.StatusBadRequest, "Query is required")
		return
	}

	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-r.Context().Done():
			return
		}
	}

	// General queries answer from the guides alone, whatever profile is sent.
	mode := router.ParseMode(req.Mode)
	clinical := req.ClinicalData
	if mode != router.ModeClinical {
		clinical = nil
	}

	answer, sources := answerFor(req.Query, clinical)
	if req.TopK > 0 && len(sources) > req.TopK {
		sources = sources[:req.TopK]
	}

	if req.ChatID != "" {
		if err := s.store.exchange(req.ChatID, req.Query, answer, sources); err != nil {
			writeDetail(w, http.StatusNotFound, "Chat not found")
			return
		}
	}

	s.logger.Debug("answered query", "mode", mode, "chat_id", req.ChatID, "clinical", clinical != nil)
	writeJSON(w, http.StatusOK, backend.QueryResponse{Query: req.Query, Answer: answer, Sources: sources})
}

func (s *Server) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	var req backend.CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Nuevo chat"
	}

	chat := s.store.create(title)
	writeJSON(w, http.StatusOK, backend.CreateChatResponse{ChatID: chat.ID})
}

func (s *Server) handleListChats(w http.ResponseWriter, r *http.Request) {
	limit := backend.DefaultChatListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeDetail(w, http.StatusUnprocessableEntity, "limit must be a positive integer")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, backend.ListChatsResponse{Chats: s.store.list(limit)})
}

func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.store.messages(chi.URLParam(r, "chatID"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, backend.ChatMessagesResponse{Messages: msgs})
}

func (s *Server) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	if err := s.store.delete(chi.URLParam(r, "chatID")); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, errChatNotFound) {
		writeDetail(w, http.StatusNotFound, "Chat not found")
		return
	}
	s.logger.Error("store failure", "error", err)
	writeDetail(w, http.StatusInternalServerError, "Internal server error")
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes a FastAPI-style {"detail": "..."} error body.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// Seed creates a chat with one exchange per question. Used by demos and tests.
func (s *Server) Seed(title string, questions ...string) model.Chat {
	chat := s.store.create(title)
	for _, q := range questions {
		answer, sources := answerFor(q, nil)
		_ = s.store.exchange(chat.ID, q, answer, sources)
	}
	return chat
}
