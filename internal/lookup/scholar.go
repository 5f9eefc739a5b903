package lookup

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ppiankov/veracity/internal/model"
)

const defaultSerpAPIURL = "https://serpapi.com"

// ScholarCitations counts Google Scholar results for a URL through SerpAPI
type ScholarCitations struct {
	client
}

var _ CitationCounter = (*ScholarCitations)(nil)

type scholarResponse struct {
	SearchMetadata struct {
		Status string `json:"status"`
	} `json:"search_metadata"`
	OrganicResults []struct {
		Position int    `json:"position"`
		Title    string `json:"title"`
		Link     string `json:"link"`
	} `json:"organic_results"`
	Error string `json:"error"`
}

// NewScholarCitations creates a citation counter from the lookup configuration
func NewScholarCitations(cfg model.LookupConfig, h model.HTTPConfig) *ScholarCitations {
	return &ScholarCitations{client: newClient(cfg, h, defaultSerpAPIURL)}
}

// Count returns the number of organic Scholar results that reference rawURL
func (s *ScholarCitations) Count(ctx context.Context, rawURL string) (int, error) {
	if s.apiKey == "" {
		return 0, fmt.Errorf("citation lookup: %w", ErrNoAPIKey)
	}

	query := url.Values{}
	query.Set("engine", "google_scholar")
	query.Set("q", rawURL)
	query.Set("api_key", s.apiKey)

	var resp scholarResponse
	if err := s.getJSON(ctx, "/search", query, &resp); err != nil {
		return 0, fmt.Errorf("citation lookup: %w", err)
	}
	// SerpAPI reports "no results" as an error string on a 200
	if resp.Error != "" && len(resp.OrganicResults) == 0 {
		if resp.Error == "Google hasn't returned any results for this query." {
			return 0, nil
		}
		return 0, fmt.Errorf("citation lookup: %s", resp.Error)
	}

	return len(resp.OrganicResults), nil
}
