// Package rates owns the exchange rate used by the pricing engine. The
// engine itself never refreshes anything; callers ask the provider for the
// current rate and pass it down explicitly.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"drukmart/internal/pricing"
)

// DefaultTTL is how long a fetched rate is considered fresh.
const DefaultTTL = 24 * time.Hour

// Provider caches the source-to-local exchange rate and refreshes it from
// the configured API once the cached value goes stale. Any refresh failure
// falls back to the configured default rate so pricing keeps working.
type Provider struct {
	mu         sync.Mutex
	current    pricing.ExchangeRate
	ttl        time.Duration
	apiURL     string
	fallback   float64
	httpClient *http.Client
}

// NewProvider creates a provider seeded with the fallback rate. apiURL may
// be empty, in which case the fallback rate is used permanently.
func NewProvider(apiURL string, fallbackRate float64) *Provider {
	return &Provider{
		ttl:        DefaultTTL,
		apiURL:     apiURL,
		fallback:   fallbackRate,
		current:    pricing.ExchangeRate{Rate: fallbackRate, FetchedAt: time.Now()},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Current returns the cached exchange rate, refreshing it first when stale.
func (p *Provider) Current(ctx context.Context) pricing.ExchangeRate {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.current.FetchedAt) < p.ttl {
		return p.current
	}
	return p.refreshLocked(ctx)
}

// Refresh forces a fetch regardless of staleness.
func (p *Provider) Refresh(ctx context.Context) pricing.ExchangeRate {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refreshLocked(ctx)
}

func (p *Provider) refreshLocked(ctx context.Context) pricing.ExchangeRate {
	rate, err := p.fetch(ctx)
	if err != nil {
		log.Printf("Exchange rate refresh failed, using fallback %.2f: %v", p.fallback, err)
		rate = p.fallback
	}
	p.current = pricing.ExchangeRate{Rate: rate, FetchedAt: time.Now()}
	return p.current
}

func (p *Provider) fetch(ctx context.Context) (float64, error) {
	if p.apiURL == "" {
		return 0, fmt.Errorf("no exchange rate API configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var body struct {
		Result         string  `json:"result"`
		ConversionRate float64 `json:"conversion_rate"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode rate response: %w", err)
	}
	if body.Result != "success" || body.ConversionRate <= 0 {
		return 0, fmt.Errorf("rate API returned unusable result %q", body.Result)
	}
	return body.ConversionRate, nil
}
