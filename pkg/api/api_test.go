package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/inkwellcms/searchlight/pkg/config"
	"github.com/inkwellcms/searchlight/pkg/content"
	"github.com/inkwellcms/searchlight/pkg/realtime"
	"github.com/inkwellcms/searchlight/pkg/storage"
)

func testServer(t *testing.T, items []content.Item) (*httptest.Server, *storage.Store, *realtime.Hub) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "content.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("closing store: %v", err)
		}
	})

	if err := store.SaveItems(items); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	cfg := &config.Config{
		SuggestLimit: 5,
		Debounce:     config.Duration{Duration: 10 * time.Millisecond},
	}
	hub := realtime.NewHub(4)
	server := NewServer(store, cfg, hub)

	mux := http.NewServeMux()
	server.RegisterRoutes(mux)

	ts := httptest.NewServer(CorsMiddleware(mux))
	t.Cleanup(ts.Close)
	return ts, store, hub
}

func apiItem(id, title, typ string, tags ...string) content.Item {
	return content.Item{
		ID:        id,
		Title:     title,
		Type:      typ,
		Status:    "published",
		Tags:      tags,
		Author:    "Ana",
		CreatedAt: "2024-01-01T00:00:00Z",
		UpdatedAt: "2024-01-02T00:00:00Z",
		Blocks: []content.Block{
			{Kind: content.KindParagraph, Data: content.ParagraphData{Text: "body of " + title}},
		},
	}
}

func getJSON(t *testing.T, url string, out interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Errorf("closing body: %v", err)
		}
	}()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding response from %s: %v", url, err)
		}
	}
	return resp
}

func TestHandleSearch(t *testing.T) {
	ts, _, _ := testServer(t, []content.Item{
		apiItem("1", "Intro to Rust", "blog", "rust"),
		apiItem("2", "Rust Ownership", "blog", "rust"),
		apiItem("3", "Cooking Pasta", "recipe", "food"),
	})

	var response SearchResponse
	resp := getJSON(t, ts.URL+"/api/search?q=rust", &response)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	if response.TotalCount != 2 {
		t.Fatalf("total count = %d, want 2", response.TotalCount)
	}
	for _, hit := range response.Results {
		if hit.Item.ID == "3" {
			t.Fatal("unmatched item returned")
		}
		if hit.WordCount < 1 || hit.ReadingTime < 1 {
			t.Fatalf("derived signals missing: %+v", hit)
		}
	}
	if response.SearchTimeMS < 0 {
		t.Fatalf("search time = %f", response.SearchTimeMS)
	}
}

func TestHandleSearchPagination(t *testing.T) {
	ts, _, _ := testServer(t, []content.Item{
		apiItem("1", "One", "blog"),
		apiItem("2", "Two", "blog"),
		apiItem("3", "Three", "blog"),
	})

	var response SearchResponse
	getJSON(t, ts.URL+"/api/search?limit=1&offset=1", &response)

	if len(response.Results) != 1 {
		t.Fatalf("expected 1 result in window, got %d", len(response.Results))
	}
	if response.TotalCount != 3 {
		t.Fatalf("total count = %d, want 3", response.TotalCount)
	}
}

func TestHandleSearchInvalidDate(t *testing.T) {
	ts, _, _ := testServer(t, nil)

	resp := getJSON(t, ts.URL+"/api/search?created_after=tomorrow", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleSearchFilters(t *testing.T) {
	ts, _, _ := testServer(t, []content.Item{
		apiItem("1", "Go Post", "blog", "go", "golang"),
		apiItem("2", "Docs Page", "docs", "api"),
	})

	var response SearchResponse
	getJSON(t, ts.URL+"/api/search?tag=GO", &response)
	if response.TotalCount != 1 || response.Results[0].Item.ID != "1" {
		t.Fatalf("case-insensitive tag filter failed: %+v", response)
	}

	getJSON(t, ts.URL+"/api/search?type=docs", &response)
	if response.TotalCount != 1 || response.Results[0].Item.ID != "2" {
		t.Fatalf("type filter failed: %+v", response)
	}
}

func TestHandleSuggest(t *testing.T) {
	ts, _, _ := testServer(t, []content.Item{
		apiItem("1", "Go Concurrency", "blog", "go"),
		apiItem("2", "Going Serverless", "blog", "cloud"),
	})

	var response SuggestResponse
	getJSON(t, ts.URL+"/api/suggest?q=go", &response)
	if len(response.Suggestions) == 0 {
		t.Fatal("expected suggestions")
	}

	getJSON(t, ts.URL+"/api/suggest?q=g", &response)
	if len(response.Suggestions) != 0 {
		t.Fatalf("1-character query must return nothing, got %v", response.Suggestions)
	}
}

func TestHandleFilterOptions(t *testing.T) {
	ts, _, _ := testServer(t, []content.Item{
		apiItem("1", "A", "blog", "go"),
		apiItem("2", "B", "docs", "api"),
	})

	var response OptionsResponse
	getJSON(t, ts.URL+"/api/options", &response)

	if len(response.Options.ContentTypes) != 2 {
		t.Fatalf("content types = %v", response.Options.ContentTypes)
	}
	if len(response.Options.BlockKinds) != 1 || response.Options.BlockKinds[0] != "paragraph" {
		t.Fatalf("block kinds = %v", response.Options.BlockKinds)
	}
	if response.Count != 2 {
		t.Fatalf("count = %d, want 2", response.Count)
	}
}

func TestHandleStats(t *testing.T) {
	ts, _, _ := testServer(t, []content.Item{
		apiItem("1", "A", "blog"),
		apiItem("2", "B", "blog"),
	})

	var stats storage.Stats
	getJSON(t, ts.URL+"/api/stats", &stats)
	if stats.TotalItems != 2 {
		t.Fatalf("total = %d, want 2", stats.TotalItems)
	}
}

func TestHandleHealth(t *testing.T) {
	ts, _, _ := testServer(t, nil)

	var health HealthResponse
	resp := getJSON(t, ts.URL+"/health", &health)
	if resp.StatusCode != http.StatusOK || health.Status != "ok" {
		t.Fatalf("health = %+v (status %d)", health, resp.StatusCode)
	}
}

func TestCorsMiddleware(t *testing.T) {
	ts, _, _ := testServer(t, nil)

	resp := getJSON(t, ts.URL+"/health", nil)
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("CORS header = %q", got)
	}
}
