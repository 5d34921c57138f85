package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/inkwellcms/searchlight/pkg/search"
	"github.com/inkwellcms/searchlight/pkg/version"
)

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	filters, opts, err := search.ParseParams(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid date format", err.Error())
		return
	}

	// The configured default page size applies only when the caller did
	// not ask for an explicit window.
	if opts.Limit == nil && s.cfg.DefaultLimit > 0 {
		limit := s.cfg.DefaultLimit
		opts.Limit = &limit
	}

	items, err := s.store.LoadAll()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to load content", err.Error())
		return
	}

	results, err := search.Search(items, filters, opts)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "Search failed", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, toSearchResponse(filters.Query, results, opts.Offset, opts.Limit))
}

func (s *Server) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := s.cfg.SuggestLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	items, err := s.store.LoadAll()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to load content", err.Error())
		return
	}

	response := SuggestResponse{
		Query:       query,
		Suggestions: search.Suggestions(items, query, limit),
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleFilterOptions(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.LoadAll()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to load content", err.Error())
		return
	}

	response := OptionsResponse{
		Options: search.FilterOptions(items),
		Count:   len(items),
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetStats()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to get stats", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, health)
}
