package pipeline

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ppiankov/veracity/internal/extract"
	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/util"
)

// ContentSource turns a URL into page text. Implementations never fail:
// every problem is reported inside the returned PageContent.
type ContentSource interface {
	Fetch(ctx context.Context, rawURL string) model.PageContent
}

// Fetcher retrieves a page over HTTP and extracts its paragraph text
type Fetcher struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	userAgent  string
	maxBytes   int64
	timeout    time.Duration
}

var _ ContentSource = (*Fetcher)(nil)

// NewFetcher creates a new Fetcher with the given configuration
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 2_000_000
	}

	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via --insecure
	}

	client := &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("stopped after 3 redirects")
			}
			return nil
		},
	}

	f := &Fetcher{
		httpClient: client,
		userAgent:  cfg.UserAgent,
		maxBytes:   maxBytes,
		timeout:    timeout,
	}
	if cfg.RespectRobots {
		f.robots = util.NewRobotsChecker(client, cfg.UserAgent)
	}
	return f
}

// Fetch retrieves the page in a single bounded attempt
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) model.PageContent {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.FetchFailure(fmt.Sprintf("parse URL: %v", err))
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return model.FetchFailure(fmt.Sprintf("unsupported scheme %q", parsed.Scheme))
	}
	if parsed.Host == "" {
		return model.FetchFailure("URL has no host")
	}

	if f.robots != nil {
		allowed, err := f.robots.Allowed(ctx, rawURL)
		if err != nil {
			return model.FetchFailure(fmt.Sprintf("robots.txt: %v", err))
		}
		if !allowed {
			return model.FetchFailure("disallowed by robots.txt")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return model.FetchFailure(fmt.Sprintf("create request: %v", err))
	}

	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return model.FetchFailure(fmt.Sprintf("fetch: %v", err))
	}
	defer func() { _ = resp.Body.Close() }()

	content := model.PageContent{
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		content.Error = fmt.Sprintf("unexpected status: %d %s", resp.StatusCode, resp.Status)
		return content
	}

	text, err := extract.Paragraphs(io.LimitReader(resp.Body, f.maxBytes), content.ContentType)
	if err != nil {
		content.Error = fmt.Sprintf("extract text: %v", err)
		return content
	}

	content.OK = true
	content.Text = text
	content.TextLength = len(text)
	return content
}

// Close releases idle connections held by the fetcher
func (f *Fetcher) Close() {
	f.httpClient.CloseIdleConnections()
}
