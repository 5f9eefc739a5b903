// Package lookup queries the external fact-check and citation services.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/util"
)

// ErrNoAPIKey is returned by a lookup that has no credentials configured
var ErrNoAPIKey = errors.New("no API key configured")

// FactChecker reports whether any published fact-check matches an excerpt
type FactChecker interface {
	Lookup(ctx context.Context, excerpt string) (bool, error)
}

// CitationCounter counts scholarly references to a URL
type CitationCounter interface {
	Count(ctx context.Context, rawURL string) (int, error)
}

const defaultLookupTimeout = 10 * time.Second

// client is the HTTP plumbing shared by the lookup services
type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
}

func newClient(cfg model.LookupConfig, h model.HTTPConfig, fallbackBaseURL string) client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fallbackBaseURL
	}

	return client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(h.HTTPProxy, h.HTTPSProxy, h.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		baseURL:   baseURL,
		apiKey:    cfg.APIKey,
		userAgent: h.UserAgent,
	}
}

// getJSON issues a GET against baseURL+path with the given query and decodes a 200 response
func (c client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("build URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error repeats the request URL, which carries the API key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d %s", resp.StatusCode, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// CloseIdleConnections releases pooled connections
func (c client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
