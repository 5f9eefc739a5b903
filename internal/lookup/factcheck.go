package lookup

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ppiankov/veracity/internal/model"
)

const defaultFactCheckURL = "https://factchecktools.googleapis.com"

// GoogleFactChecker searches the Google Fact Check Tools claim index
type GoogleFactChecker struct {
	client
	languageCode string
}

var _ FactChecker = (*GoogleFactChecker)(nil)

type claimSearchResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		Claimant    string `json:"claimant"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
				Site string `json:"site"`
			} `json:"publisher"`
			URL           string `json:"url"`
			TextualRating string `json:"textualRating"`
		} `json:"claimReview"`
	} `json:"claims"`
	NextPageToken string `json:"nextPageToken"`
}

// NewGoogleFactChecker creates a fact checker from the lookup configuration
func NewGoogleFactChecker(cfg model.LookupConfig, h model.HTTPConfig) *GoogleFactChecker {
	return &GoogleFactChecker{
		client:       newClient(cfg, h, defaultFactCheckURL),
		languageCode: "en",
	}
}

// Lookup reports whether at least one published claim review matches the excerpt
func (g *GoogleFactChecker) Lookup(ctx context.Context, excerpt string) (bool, error) {
	if g.apiKey == "" {
		return false, fmt.Errorf("fact-check lookup: %w", ErrNoAPIKey)
	}

	query := url.Values{}
	query.Set("query", excerpt)
	query.Set("languageCode", g.languageCode)
	query.Set("pageSize", "10")
	query.Set("key", g.apiKey)

	var resp claimSearchResponse
	if err := g.getJSON(ctx, "/v1alpha1/claims:search", query, &resp); err != nil {
		return false, fmt.Errorf("fact-check lookup: %w", err)
	}

	return len(resp.Claims) > 0, nil
}
