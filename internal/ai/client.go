package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type httpClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates an Enhancer backed by an external enhancement
// endpoint (POST {baseURL}/enhance).
func NewHTTPClient(baseURL string, timeout time.Duration) (Enhancer, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("ai service base url is required")
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

type enhanceRequest struct {
	TemplateData json.RawMessage `json:"templateData"`
	Prompt       string          `json:"prompt"`
}

type enhanceResponse struct {
	TemplateData json.RawMessage `json:"templateData"`
}

func (c *httpClient) Enhance(ctx context.Context, templateData json.RawMessage, prompt string) (json.RawMessage, error) {
	body, err := json.Marshal(enhanceRequest{TemplateData: templateData, Prompt: prompt})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/enhance", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("ai service returned %d", resp.StatusCode)
	}

	var out enhanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode ai response: %w", err)
	}
	return out.TemplateData, nil
}
