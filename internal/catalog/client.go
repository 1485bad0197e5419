package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	fetchAttempts = 3
	fetchDelay    = 500 * time.Millisecond
)

// Client fetches product documents from the catalog API. Transient failures
// are retried a fixed number of times with a fixed delay; there is no
// backoff policy beyond that.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchProduct retrieves one product document by its catalog identifier.
func (c *Client) FetchProduct(ctx context.Context, id string) (Product, error) {
	endpoint := fmt.Sprintf("%s/products/%s", c.baseURL, url.PathEscape(id))

	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(fetchDelay):
			}
		}

		product, err := c.fetchOnce(ctx, endpoint)
		if err == nil {
			return product, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("catalog fetch failed after %d attempts: %w", fetchAttempts, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, endpoint string) (Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return product, nil
}
