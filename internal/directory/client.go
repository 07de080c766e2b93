package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// httpClient is an HTTP implementation of Directory. It is safe for
// concurrent use.
type httpClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a Directory talking to the patient/doctor provider
// at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) (Directory, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("directory service base url is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

func (c *httpClient) get(ctx context.Context, path, orgID string, out any) error {
	u := c.baseURL + path + "?organization_id=" + url.QueryEscape(orgID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("directory service: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrPersonNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("directory service returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *httpClient) GetPatient(ctx context.Context, id, orgID string) (*Patient, error) {
	var p Patient
	if err := c.get(ctx, "/patients/"+url.PathEscape(id), orgID, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *httpClient) GetDoctor(ctx context.Context, id, orgID string) (*Doctor, error) {
	var d Doctor
	if err := c.get(ctx, "/doctors/"+url.PathEscape(id), orgID, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
