package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/inkwellcms/searchlight/pkg/realtime"
	"github.com/inkwellcms/searchlight/pkg/search"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The API is CORS-open; the websocket endpoint matches.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveRequest is one client frame: the search parameters in query-string
// form ("q=rust&type=blog&sort=newest"), reusing the exact parameter
// surface of GET /api/search.
type LiveRequest struct {
	Params string `json:"params"`
}

// LiveResponse is one server frame. Type is "results" for search output,
// "reload" piggybacked on results re-run after a content change, or
// "error" with Message set.
type LiveResponse struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	SearchResponse
}

// HandleLiveSearch upgrades the connection and serves search-as-you-type:
// each client frame replaces the session's current request, input is
// debounced by the configured quiet period, and when the content
// collection reloads the session re-runs its last request against the
// fresh snapshot.
func (s *Server) HandleLiveSearch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnf("websocket upgrade failed: %v", err)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			s.logger.Debugf("closing live session: %v", err)
		}
	}()

	var reloads <-chan realtime.ReloadEvent
	if s.hub != nil {
		id, ch := s.hub.Register()
		defer s.hub.Unregister(id)
		reloads = ch
	}

	requests := make(chan LiveRequest)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			var req LiveRequest
			if err := conn.ReadJSON(&req); err != nil {
				readErr <- err
				return
			}
			// The handler may have returned through a write failure; the
			// done channel keeps this send from blocking forever.
			select {
			case requests <- req:
			case <-done:
				return
			}
		}
	}()

	debounce := s.cfg.Debounce.Duration
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	var (
		pending    *LiveRequest
		lastParams string
		hasRun     bool
	)

	for {
		select {
		case req := <-requests:
			pending = &req
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case <-timer.C:
			if pending == nil {
				continue
			}
			lastParams = pending.Params
			hasRun = true
			pending = nil
			if err := s.runLiveSearch(conn, lastParams, "results"); err != nil {
				s.logger.Debugf("live session write failed: %v", err)
				return
			}

		case <-reloads:
			if !hasRun {
				continue
			}
			if err := s.runLiveSearch(conn, lastParams, "reload"); err != nil {
				s.logger.Debugf("live session write failed: %v", err)
				return
			}

		case err := <-readErr:
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debugf("live session read failed: %v", err)
			}
			return
		}
	}
}

func (s *Server) runLiveSearch(conn *websocket.Conn, params, frameType string) error {
	values, err := url.ParseQuery(params)
	if err != nil {
		return conn.WriteJSON(LiveResponse{Type: "error", Message: "invalid parameters: " + err.Error()})
	}

	filters, opts, err := search.ParseParams(values)
	if err != nil {
		return conn.WriteJSON(LiveResponse{Type: "error", Message: err.Error()})
	}
	if opts.Limit == nil && s.cfg.DefaultLimit > 0 {
		limit := s.cfg.DefaultLimit
		opts.Limit = &limit
	}

	items, err := s.store.LoadAll()
	if err != nil {
		return conn.WriteJSON(LiveResponse{Type: "error", Message: "failed to load content"})
	}

	results, err := search.Search(items, filters, opts)
	if err != nil {
		return conn.WriteJSON(LiveResponse{Type: "error", Message: err.Error()})
	}

	return conn.WriteJSON(LiveResponse{
		Type:           frameType,
		SearchResponse: toSearchResponse(filters.Query, results, opts.Offset, opts.Limit),
	})
}
