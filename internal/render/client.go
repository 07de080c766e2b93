package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// httpClient is an HTTP implementation of Renderer. It is safe for
// concurrent use; the underlying http.Client carries a bounded timeout so a
// stuck collaborator fails the whole generate call instead of hanging it.
type httpClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a Renderer talking to the rendering service at
// baseURL. Outbound requests are traced via otelhttp.
func NewHTTPClient(baseURL string, timeout time.Duration) (Renderer, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("render service base url is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

func (c *httpClient) post(ctx context.Context, path string, req Request) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal render request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read render response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrUnavailable
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("render service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return data, nil
}

func (c *httpClient) Generate(ctx context.Context, req Request) (*Result, error) {
	data, err := c.post(ctx, "/generate", req)
	if err != nil {
		return nil, err
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode render result: %w", err)
	}
	return &res, nil
}

func (c *httpClient) Preview(ctx context.Context, req Request) (json.RawMessage, error) {
	data, err := c.post(ctx, "/preview", req)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
