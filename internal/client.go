package pooltop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// PoolAPI is the pool-wide part of the remote API
type PoolAPI interface {
	Config(ctx context.Context) (PoolConfig, error)
	NetworkStats(ctx context.Context) (NetworkStats, error)
	PoolStats(ctx context.Context) (PoolStats, error)
	PoolChart(ctx context.Context) ([]HashrateSample, error)
	PoolBlocks(ctx context.Context) ([]PoolBlock, error)
	PoolPayments(ctx context.Context) ([]PoolPayment, error)
	BoostHashrate(ctx context.Context) (float64, error)
}

// MinerAPI is the per-address part of the remote API
type MinerAPI interface {
	MinerStats(ctx context.Context, addr string) (MinerStats, error)
	UserSettings(ctx context.Context, addr string) (UserSettings, error)
	Identifiers(ctx context.Context, addr string) ([]string, error)
	WorkerStats(ctx context.Context, addr, worker string) (MinerStats, error)
	MinerPayments(ctx context.Context, addr string) ([]MinerPayment, error)
	BlockPayments(ctx context.Context, addr string) ([]BlockPayment, error)
	MinerChart(ctx context.Context, addr string) ([]NamedSamples, error)
}

// APIError is a non-200 answer from one of the remote APIs
type APIError struct {
	Endpoint string
	Status   int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: unexpected http status %d", e.Endpoint, e.Status)
}

// ActionError carries the error message the pool returned for a settings change
type ActionError struct {
	Msg string
}

func (e *ActionError) Error() string {
	return e.Msg
}

// Client talks to the pool API and the bonus API
type Client struct {
	sources Sources
	http    *http.Client
	log     *zap.Logger
}

func NewClient(sources Sources, log *zap.Logger) *Client {
	return &Client{
		sources: sources,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("fetch", zap.String("endpoint", endpoint))
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Endpoint: endpoint, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", endpoint, err)
	}
	if err := sonic.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("post %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", endpoint, err)
	}

	// the pool answers {msg} or {error}, sometimes with a non-200 status
	var body actionResponse
	if err := sonic.Unmarshal(data, &body); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", &APIError{Endpoint: endpoint, Status: resp.StatusCode}
		}
		return "", fmt.Errorf("decode %s: %w", endpoint, err)
	}
	if body.Error != "" {
		return "", &ActionError{Msg: body.Error}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Endpoint: endpoint, Status: resp.StatusCode}
	}
	return body.Msg, nil
}

func (c *Client) Config(ctx context.Context) (PoolConfig, error) {
	var cfg PoolConfig
	err := c.getJSON(ctx, c.sources.endpoint("config"), &cfg)
	return cfg, err
}

func (c *Client) NetworkStats(ctx context.Context) (NetworkStats, error) {
	var stats NetworkStats
	err := c.getJSON(ctx, c.sources.endpoint("network", "stats"), &stats)
	return stats, err
}

func (c *Client) PoolStats(ctx context.Context) (PoolStats, error) {
	var body poolStatsResponse
	err := c.getJSON(ctx, c.sources.endpoint("pool", "stats"), &body)
	return body.PoolStatistics, err
}

func (c *Client) PoolChart(ctx context.Context) ([]HashrateSample, error) {
	samples := []HashrateSample{}
	err := c.getJSON(ctx, c.sources.endpoint("pool", "chart", "hashrate"), &samples)
	return samples, err
}

func (c *Client) PoolBlocks(ctx context.Context) ([]PoolBlock, error) {
	blocks := []PoolBlock{}
	err := c.getJSON(ctx, c.sources.endpoint("pool", "blocks"), &blocks)
	return blocks, err
}

func (c *Client) PoolPayments(ctx context.Context) ([]PoolPayment, error) {
	payments := []PoolPayment{}
	err := c.getJSON(ctx, c.sources.endpoint("pool", "payments"), &payments)
	return payments, err
}

// BoostHashrate returns the bonus hashrate in H/s. The bonus API reports KH/s.
func (c *Client) BoostHashrate(ctx context.Context) (float64, error) {
	var body bonusSummary
	if err := c.getJSON(ctx, c.sources.Bonus.String(), &body); err != nil {
		return 0, err
	}
	if len(body.Hashrate.Total) < 2 {
		return 0, errors.New("bonus summary has no total hashrate")
	}
	return body.Hashrate.Total[1] * 1000, nil
}

func (c *Client) MinerStats(ctx context.Context, addr string) (MinerStats, error) {
	var stats MinerStats
	err := c.getJSON(ctx, c.sources.endpoint("miner", addr, "stats"), &stats)
	return stats, err
}

func (c *Client) UserSettings(ctx context.Context, addr string) (UserSettings, error) {
	var user UserSettings
	err := c.getJSON(ctx, c.sources.endpoint("user", addr), &user)
	return user, err
}

func (c *Client) Identifiers(ctx context.Context, addr string) ([]string, error) {
	ids := []string{}
	err := c.getJSON(ctx, c.sources.endpoint("miner", addr, "identifiers"), &ids)
	return ids, err
}

func (c *Client) WorkerStats(ctx context.Context, addr, worker string) (MinerStats, error) {
	var stats MinerStats
	err := c.getJSON(ctx, c.sources.endpoint("miner", addr, "stats", worker), &stats)
	return stats, err
}

func (c *Client) MinerPayments(ctx context.Context, addr string) ([]MinerPayment, error) {
	payments := []MinerPayment{}
	err := c.getJSON(ctx, c.sources.endpoint("miner", addr, "payments"), &payments)
	return payments, err
}

func (c *Client) BlockPayments(ctx context.Context, addr string) ([]BlockPayment, error) {
	payments := []BlockPayment{}
	err := c.getJSON(ctx, c.sources.endpoint("miner", addr, "block_payments"), &payments)
	return payments, err
}

// MinerChart returns the aggregate series first, followed by the worker
// series sorted by name so palette colors do not depend on map order
func (c *Client) MinerChart(ctx context.Context, addr string) ([]NamedSamples, error) {
	var body map[string][]HashrateSample
	if err := c.getJSON(ctx, c.sources.endpoint("miner", addr, "chart", "hashrate", "allWorkers"), &body); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(body))
	for name := range body {
		if name != GLOBAL_SERIES {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	series := make([]NamedSamples, 0, len(body))
	if global, ok := body[GLOBAL_SERIES]; ok {
		series = append(series, NamedSamples{Name: GLOBAL_SERIES, Samples: global})
	}
	for _, name := range names {
		series = append(series, NamedSamples{Name: name, Samples: body[name]})
	}
	return series, nil
}

// UpdateThreshold sets the payout threshold, given in whole coins
func (c *Client) UpdateThreshold(ctx context.Context, addr, threshold string) (string, error) {
	form := url.Values{}
	form.Set("username", addr)
	form.Set("threshold", threshold)
	return c.postForm(ctx, c.sources.endpoint("user", "updateThreshold"), form)
}

// SubscribeEmail toggles email notifications for the address
func (c *Client) SubscribeEmail(ctx context.Context, addr string, enabled bool, from, to string) (string, error) {
	en := 0
	if enabled {
		en = 1
	}
	form := url.Values{}
	form.Set("username", addr)
	form.Set("enabled", strconv.Itoa(en))
	form.Set("from", from)
	form.Set("to", to)
	return c.postForm(ctx, c.sources.endpoint("user", "subscribeEmail"), form)
}
