// Package server exposes the tutor engine over a JSON HTTP API.
package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/kurobon/gittutor/internal/app"
)

// Server routes API requests into the app controller.
type Server struct {
	App *app.App
	Mux *http.ServeMux
	log *zap.Logger
}

// New builds the server and installs its routes.
func New(a *app.App, log *zap.Logger) *Server {
	s := &Server{App: a, Mux: http.NewServeMux(), log: log}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Mux.HandleFunc("/ping", s.handlePing)
	s.Mux.HandleFunc("/api/session/init", s.handleInitSession)
	s.Mux.HandleFunc("/api/command", s.handleCommand)
	s.Mux.HandleFunc("/api/edit", s.handleEdit)
	s.Mux.HandleFunc("/api/state", s.handleState)
	s.Mux.HandleFunc("/api/lessons", s.handleLessons)
	s.Mux.HandleFunc("/api/lessons/activate", s.handleActivateLesson)
	s.Mux.HandleFunc("/api/lessons/reset", s.handleResetLesson)
	s.Mux.HandleFunc("/api/quiz/answer", s.handleQuiz)
	s.Mux.HandleFunc("/api/badges", s.handleBadges)
	s.Mux.HandleFunc("/api/export", s.handleExport)
	s.Mux.HandleFunc("/api/import", s.handleImport)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.log.Info("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
	s.Mux.ServeHTTP(w, r)
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"message": "pong", "system": "Git Tutor Backend"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// sessionID falls back to a fixed ID so a bare frontend works without
// session plumbing, matching the single-user default.
func sessionID(raw string) string {
	if raw == "" {
		return "user-session-1"
	}
	return raw
}
