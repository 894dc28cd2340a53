package pooltop

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	fetchRequired   = "required"
	fetchBestEffort = "best_effort"
)

// Metrics exposes the dashboard figures in the Prometheus text format. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	cycles        prometheus.Counter
	cycleDuration prometheus.Histogram
	fetchFailures *prometheus.CounterVec

	networkDifficulty prometheus.Gauge
	networkHashrate   prometheus.Gauge
	networkHeight     prometheus.Gauge
	price             prometheus.Gauge
	poolHashrate      prometheus.Gauge
	poolMiners        prometheus.Gauge
	poolBoost         prometheus.Gauge
	minerHashrate     prometheus.Gauge
	minerPending      prometheus.Gauge
	minerPaid         prometheus.Gauge
	minerWorkers      prometheus.Gauge
}

func NewMetrics() *Metrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "pooltop", Name: name, Help: help})
	}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pooltop",
			Name:      "refresh_cycles_total",
			Help:      "Refresh cycles started.",
		}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pooltop",
			Name:      "refresh_cycle_seconds",
			Help:      "Duration of refresh cycles.",
			Buckets:   prometheus.DefBuckets,
		}),
		fetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pooltop",
			Name:      "fetch_failures_total",
			Help:      "Failed remote fetches by source and kind.",
		}, []string{"source", "kind"}),
		networkDifficulty: gauge("network_difficulty", "Current network difficulty."),
		networkHashrate:   gauge("network_hashrate", "Network hashrate in H/s."),
		networkHeight:     gauge("network_height", "Current chain height."),
		price:             gauge("price_usd", "Coin price in USD."),
		poolHashrate:      gauge("pool_hashrate", "Pool hashrate in H/s."),
		poolMiners:        gauge("pool_miners", "Connected pool miners."),
		poolBoost:         gauge("pool_boost_hashrate", "Bonus hashrate in H/s."),
		minerHashrate:     gauge("miner_hashrate", "Tracked wallet hashrate in H/s."),
		minerPending:      gauge("miner_pending_coins", "Tracked wallet pending balance."),
		minerPaid:         gauge("miner_paid_coins", "Tracked wallet paid balance."),
		minerWorkers:      gauge("miner_workers", "Tracked wallet worker count."),
	}
	m.registry.MustRegister(
		m.cycles, m.cycleDuration, m.fetchFailures,
		m.networkDifficulty, m.networkHashrate, m.networkHeight, m.price,
		m.poolHashrate, m.poolMiners, m.poolBoost,
		m.minerHashrate, m.minerPending, m.minerPaid, m.minerWorkers,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done
func (m *Metrics) Serve(ctx context.Context, addr string, log *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	log.Info("serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (m *Metrics) cycleStarted() {
	if m == nil {
		return
	}
	m.cycles.Inc()
}

func (m *Metrics) cycleFinished(d time.Duration) {
	if m == nil {
		return
	}
	m.cycleDuration.Observe(d.Seconds())
}

func (m *Metrics) fetchFailed(source, kind string) {
	if m == nil {
		return
	}
	m.fetchFailures.WithLabelValues(source, kind).Inc()
}

func (m *Metrics) observeNetwork(n NetworkStats) {
	if m == nil {
		return
	}
	m.networkDifficulty.Set(n.Difficulty)
	m.networkHashrate.Set(NetworkHashrate(n.Difficulty))
	m.networkHeight.Set(float64(n.Height))
}

func (m *Metrics) observePrice(p float64) {
	if m == nil {
		return
	}
	m.price.Set(p)
}

func (m *Metrics) observePool(p PoolStats, boost float64) {
	if m == nil {
		return
	}
	m.poolHashrate.Set(p.HashRate)
	m.poolMiners.Set(float64(p.Miners))
	m.poolBoost.Set(boost)
}

func (m *Metrics) observeMiner(s MinerStats, workers int) {
	if m == nil {
		return
	}
	m.minerHashrate.Set(s.Hash)
	m.minerPending.Set(Coins(s.AmtDue))
	m.minerPaid.Set(Coins(s.AmtPaid))
	m.minerWorkers.Set(float64(workers))
}
