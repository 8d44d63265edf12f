package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tajrlabs/catalog/internal/models"
)

// HTTPSource fetches raw records from the items endpoint over REST.
type HTTPSource struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPSource creates a source for the items endpoint at baseURL. token, if
// non-empty, is sent as a bearer token.
func NewHTTPSource(baseURL, token string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSource{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchItems retrieves the raw catalog records.
func (s *HTTPSource) FetchItems(ctx context.Context, opts FetchOptions) ([]models.RawRecord, error) {
	query := url.Values{}
	query.Set("live_vendors_only", strconv.FormatBool(opts.LiveVendorsOnly))
	query.Set("live_vendors_only_testing", strconv.FormatBool(opts.LiveVendorsOnlyTesting))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/items?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build items request: %w", err)
	}
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch items: unexpected status %d: %s", resp.StatusCode, body)
	}

	var records []models.RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode items response: %w", err)
	}
	return records, nil
}

// UpdateItems pushes item updates back to the endpoint for one language.
func (s *HTTPSource) UpdateItems(ctx context.Context, items []models.RawRecord, language string) error {
	payload, err := json.Marshal(map[string]any{"items": items, "language": language})
	if err != nil {
		return fmt.Errorf("encode items update: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/items/update", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("update items: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("update items: unexpected status %d: %s", resp.StatusCode, body)
	}
	return nil
}

func (s *HTTPSource) authorize(req *http.Request) {
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
}
