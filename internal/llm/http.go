package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ppiankov/veracity/internal/util"
)

func newHTTPClient(config Config, fallbackTimeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: config.timeout(fallbackTimeout),
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
		},
	}
}

// postJSON sends payload as JSON and decodes a 200 response into out.
// errorMessage extracts a readable message from a non-200 body, if it can.
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, payload any, out any, errorMessage func([]byte) string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if errorMessage != nil {
			if msg := errorMessage(respBody); msg != "" {
				return fmt.Errorf("API error (%d): %s", resp.StatusCode, msg)
			}
		}
		return fmt.Errorf("API error (%d): %s", resp.StatusCode, truncateForError(string(respBody)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// CloseIdleConnections releases pooled connections
func (b *OpenAIBackend) CloseIdleConnections() { b.httpClient.CloseIdleConnections() }

// CloseIdleConnections releases pooled connections
func (b *AnthropicBackend) CloseIdleConnections() { b.httpClient.CloseIdleConnections() }

// CloseIdleConnections releases pooled connections
func (b *OllamaBackend) CloseIdleConnections() { b.httpClient.CloseIdleConnections() }

// CloseIdleConnections releases pooled connections
func (b *HuggingFaceBackend) CloseIdleConnections() { b.httpClient.CloseIdleConnections() }
