package pooltop

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Refresher runs full refresh cycles. Cycles never overlap: a cycle requested
// while another is in flight waits for it and shares its result.
type Refresher struct {
	pool    *PoolSync
	miner   *MinerSync
	cache   *Cache
	state   *State
	metrics *Metrics
	log     *zap.Logger
	group   singleflight.Group
	now     func() time.Time
}

func NewRefresher(pool *PoolSync, miner *MinerSync, cache *Cache, state *State, metrics *Metrics, log *zap.Logger) *Refresher {
	return &Refresher{
		pool:    pool,
		miner:   miner,
		cache:   cache,
		state:   state,
		metrics: metrics,
		log:     log,
		now:     time.Now,
	}
}

// NewApp wires the client, syncs and refresher around one State
func NewApp(client *Client, price PriceSource, state *State, metrics *Metrics, log *zap.Logger) *Refresher {
	cache := &Cache{PoolAPI: client}
	return NewRefresher(
		NewPoolSync(cache, price, state, metrics, log),
		NewMinerSync(client, state, metrics, log),
		cache, state, metrics, log,
	)
}

func (r *Refresher) State() *State {
	return r.state
}

// Cycle runs the pool sync and, with a wallet address set, the miner sync.
// The returned error only reports what was skipped; the next cycle starts
// from scratch either way.
func (r *Refresher) Cycle(ctx context.Context) error {
	_, err, shared := r.group.Do("cycle", func() (interface{}, error) {
		return nil, r.cycle(ctx)
	})
	if shared {
		r.log.Debug("joined in-flight refresh cycle")
	}
	return err
}

func (r *Refresher) cycle(ctx context.Context) error {
	start := r.now()
	r.metrics.cycleStarted()
	defer func() {
		r.metrics.cycleFinished(r.now().Sub(start))
	}()

	poolErr := r.pool.Refresh(ctx)

	var minerErr error
	if addr := r.state.Address(); addr != "" {
		minerErr = r.miner.Refresh(ctx, addr)
	}

	r.state.update(func(s *Snapshot) {
		s.LastRefresh = r.now()
	})

	err := errors.Join(poolErr, minerErr)
	if err != nil {
		r.log.Warn("refresh cycle incomplete", zap.Error(err))
	} else {
		r.log.Debug("refresh cycle done", zap.Duration("took", r.now().Sub(start)))
	}
	return err
}

// Track switches the tracked wallet. An empty address stops tracking. Miner
// data of the previous address is dropped, including results of a cycle
// still in flight.
func (r *Refresher) Track(addr string) error {
	if addr != "" {
		var err error
		if addr, err = ValidateAddress(addr); err != nil {
			return err
		}
	}
	if addr != r.state.Address() {
		r.log.Info("tracked address changed", zap.Bool("tracking", addr != ""))
	}
	r.state.SetAddress(addr)
	return nil
}

// Invalidate drops cached pool config so the next cycle fetches it again
func (r *Refresher) Invalidate() {
	if r.cache != nil {
		r.cache.clear()
	}
}

// MinPayout returns the pool minimum payout in whole coins, fetching the
// pool config if it is not cached yet
func (r *Refresher) MinPayout(ctx context.Context) (float64, error) {
	cfg, err := r.cache.Config(ctx)
	if err != nil {
		return 0, err
	}
	return Coins(cfg.MinWalletPayout), nil
}

// Run fires a cycle right away and then on every interval until ctx is done.
// Each cycle runs in its own goroutine; ticks that land on an in-flight cycle
// join it. after, if set, is called with the result of every cycle.
func (r *Refresher) Run(ctx context.Context, interval time.Duration, after func(error)) {
	run := func() {
		go func() {
			err := r.Cycle(ctx)
			if after != nil {
				after(err)
			}
		}()
	}

	run()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
