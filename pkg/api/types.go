package api

import (
	"time"

	"github.com/inkwellcms/searchlight/pkg/content"
	"github.com/inkwellcms/searchlight/pkg/search"
)

// ResultResponse is one ranked hit: the original content item plus its
// score and the derived signals callers usually display next to it.
type ResultResponse struct {
	Item        *content.Item `json:"item"`
	Score       float64       `json:"score"`
	WordCount   int           `json:"word_count"`
	ReadingTime int           `json:"reading_time"`
	Highlights  []string      `json:"highlights,omitempty"`
}

type SearchResponse struct {
	Query        string           `json:"query"`
	Results      []ResultResponse `json:"results"`
	TotalCount   int              `json:"total_count"`
	SearchTimeMS float64          `json:"search_time_ms"`
	Offset       int              `json:"offset"`
	Limit        *int             `json:"limit,omitempty"`
}

type SuggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

type OptionsResponse struct {
	Options search.Facets `json:"options"`
	Count   int           `json:"count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

func toSearchResponse(query string, results *search.Results, offset int, limit *int) SearchResponse {
	hits := make([]ResultResponse, len(results.Results))
	for i, r := range results.Results {
		record := r.Record()
		hits[i] = ResultResponse{
			Item:        r.Item,
			Score:       r.Score,
			WordCount:   record.WordCount,
			ReadingTime: record.ReadingTime,
			Highlights:  r.Highlights,
		}
	}

	return SearchResponse{
		Query:        query,
		Results:      hits,
		TotalCount:   results.TotalCount,
		SearchTimeMS: results.SearchTime,
		Offset:       offset,
		Limit:        limit,
	}
}
