package pooltop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
)

// priceCacheTTL keeps the public price API from rate limiting us when the
// dashboard refreshes every minute
const priceCacheTTL = 5 * time.Minute

// PriceSource returns the coin price in USD and when it was fetched
type PriceSource interface {
	Price(ctx context.Context) (float64, error)
	LastUpdate() time.Time
}

type PriceService struct {
	mu        sync.Mutex
	url       string
	lastFetch time.Time
	lastPrice float64
	lastErr   error
	client    *http.Client
	now       func() time.Time
}

func NewPriceService(sources Sources) *PriceService {
	return &PriceService{
		url: sources.Price.String(),
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		now: time.Now,
	}
}

// Price returns the USD price from the first market entry, using a small
// in-process cache. On errors it returns 0 and the error; callers treat this
// as "no price available".
func (p *PriceService) Price(ctx context.Context) (float64, error) {
	if p == nil {
		return 0, errors.New("price service not initialized")
	}

	now := p.now()
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.lastFetch.IsZero() && now.Sub(p.lastFetch) < priceCacheTTL && p.lastPrice > 0 && p.lastErr == nil {
		return p.lastPrice, nil
	}

	price, err := p.fetch(ctx)
	p.lastFetch = now
	p.lastErr = err
	if err != nil {
		return 0, err
	}
	p.lastPrice = price
	return price, nil
}

func (p *PriceService) fetch(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("price http status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	var markets []coinMarket
	if err := sonic.Unmarshal(data, &markets); err != nil {
		return 0, err
	}
	if len(markets) == 0 || markets[0].CurrentPrice <= 0 {
		return 0, errors.New("price response has no current_price")
	}
	return markets[0].CurrentPrice, nil
}

// LastUpdate returns the time the price was last fetched, zero before the first fetch
func (p *PriceService) LastUpdate() time.Time {
	if p == nil {
		return time.Time{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastFetch
}
