// Package api exposes the search engine over HTTP: full-text search with
// the complete filter/option surface, autocomplete suggestions, facet
// discovery, collection stats, and a WebSocket live-search endpoint.
//
// Every request loads the current collection snapshot from the store and
// runs a stateless search over it; the API layer holds no search state of
// its own.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/inkwellcms/searchlight/pkg/config"
	"github.com/inkwellcms/searchlight/pkg/log"
	"github.com/inkwellcms/searchlight/pkg/realtime"
	"github.com/inkwellcms/searchlight/pkg/storage"
)

type Server struct {
	store  *storage.Store
	cfg    *config.Config
	hub    *realtime.Hub
	logger *log.Logger
}

// NewServer creates an API server over the given content store. The hub is
// optional; without it the live-search endpoint still works but sessions
// are not notified of content reloads.
func NewServer(store *storage.Store, cfg *config.Config, hub *realtime.Hub) *Server {
	return &Server{
		store:  store,
		cfg:    cfg,
		hub:    hub,
		logger: log.ForService("api"),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
