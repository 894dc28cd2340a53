package pooltop

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

var testAddress = "4" + strings.Repeat("A", 94)

// fakePool serves the pool API from canned handlers. Paths missing from
// routes answer 404 and every hit is counted.
type fakePool struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	hits   map[string]int
	srv    *httptest.Server
}

func newFakePool(t *testing.T) *fakePool {
	t.Helper()
	f := &fakePool{
		routes: map[string]http.HandlerFunc{},
		hits:   map[string]int{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[r.URL.Path]++
		h, ok := f.routes[r.URL.Path]
		f.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakePool) handle(path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = h
}

func (f *fakePool) json(path string, body func() string) {
	f.handle(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body())
	})
}

func (f *fakePool) fail(path string, status int) {
	f.handle(path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
}

func (f *fakePool) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakePool) sources(t *testing.T) Sources {
	t.Helper()
	s, err := ParseSources(f.srv.URL, f.srv.URL+"/bonus/summary", f.srv.URL+"/price")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func (f *fakePool) client(t *testing.T) *Client {
	return NewClient(f.sources(t), zaptest.NewLogger(t))
}

func TestParseSources(t *testing.T) {
	t.Parallel()
	if _, err := ParseSources("ftp://pool", DEFAULT_BONUS_URL, DEFAULT_PRICE_URL); err == nil {
		t.Fatalf("expected error for ftp scheme")
	}
	if _, err := ParseSources("https://", DEFAULT_BONUS_URL, DEFAULT_PRICE_URL); err == nil {
		t.Fatalf("expected error for missing host")
	}
	s, err := ParseSources("https://pool.example/api", DEFAULT_BONUS_URL, DEFAULT_PRICE_URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := s.endpoint("miner", "abc", "stats"), "https://pool.example/api/miner/abc/stats"; got != want {
		t.Fatalf("unexpected endpoint: got %s want %s", got, want)
	}
}

func TestClientPoolStats(t *testing.T) {
	t.Parallel()
	f := newFakePool(t)
	f.json("/pool/stats", func() string {
		return `{"pool_statistics":{"hashRate":123456.5,"miners":42,"totalBlocksFound":7,"roundHashes":5000,"pplnsWindowTime":21600}}`
	})

	stats, err := f.client(t).PoolStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.HashRate != 123456.5 || stats.Miners != 42 || stats.PPLNSWindowTime != 21600 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestClientAPIError(t *testing.T) {
	t.Parallel()
	f := newFakePool(t)
	f.fail("/network/stats", http.StatusBadGateway)

	_, err := f.client(t).NetworkStats(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("unexpected error type: %T %v", err, err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Fatalf("unexpected status: got %d want %d", apiErr.Status, http.StatusBadGateway)
	}
}

func TestClientMinerChartOrder(t *testing.T) {
	t.Parallel()
	f := newFakePool(t)
	f.json("/miner/"+testAddress+"/chart/hashrate/allWorkers", func() string {
		return `{"zeta":[{"ts":1,"hs":1}],"global":[{"ts":1,"hs":3}],"alpha":[{"ts":1,"hs":2}]}`
	})

	series, err := f.client(t).MinerChart(context.Background(), testAddress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{GLOBAL_SERIES, "alpha", "zeta"}
	if len(series) != len(want) {
		t.Fatalf("unexpected series count: got %d want %d", len(series), len(want))
	}
	for i, name := range want {
		if series[i].Name != name {
			t.Fatalf("unexpected series %d: got %s want %s", i, series[i].Name, name)
		}
	}
}

func TestClientBoostHashrate(t *testing.T) {
	t.Parallel()
	f := newFakePool(t)
	f.json("/bonus/summary", func() string {
		return `{"hashrate":{"total":[1.0,2.5,3.0]}}`
	})

	got, err := f.client(t).BoostHashrate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2500 {
		t.Fatalf("unexpected boost: got %v want 2500", got)
	}
}

func TestClientUpdateThreshold(t *testing.T) {
	t.Parallel()
	f := newFakePool(t)
	forms := make(chan url.Values, 1)
	f.handle("/user/updateThreshold", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		forms <- r.PostForm
		fmt.Fprint(w, `{"msg":"Threshold updated, set to: 0.3"}`)
	})

	msg, err := f.client(t).UpdateThreshold(context.Background(), testAddress, "0.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Threshold updated, set to: 0.3" {
		t.Fatalf("unexpected message: %q", msg)
	}
	form := <-forms
	if form.Get("username") != testAddress || form.Get("threshold") != "0.3" {
		t.Fatalf("unexpected form: %v", form)
	}
}

func TestClientSubscribeEmailError(t *testing.T) {
	t.Parallel()
	f := newFakePool(t)
	f.handle("/user/subscribeEmail", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"FROM email does not match"}`)
	})

	_, err := f.client(t).SubscribeEmail(context.Background(), testAddress, true, "a@example.com", "b@example.com")
	var actionErr *ActionError
	if !errors.As(err, &actionErr) {
		t.Fatalf("unexpected error type: %T %v", err, err)
	}
	if actionErr.Msg != "FROM email does not match" {
		t.Fatalf("unexpected message: %q", actionErr.Msg)
	}
}

func TestPriceServiceCaches(t *testing.T) {
	t.Parallel()
	f := newFakePool(t)
	f.json("/price", func() string {
		return `[{"current_price":151.25}]`
	})

	p := NewPriceService(f.sources(t))
	now := time.Unix(1_700_000_000, 0)
	p.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		got, err := p.Price(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 151.25 {
			t.Fatalf("unexpected price: got %v want 151.25", got)
		}
	}
	if n := f.count("/price"); n != 1 {
		t.Fatalf("unexpected fetch count: got %d want 1", n)
	}

	now = now.Add(priceCacheTTL + time.Second)
	if _, err := p.Price(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := f.count("/price"); n != 2 {
		t.Fatalf("unexpected fetch count after expiry: got %d want 2", n)
	}
}
