package pooltop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PoolSync refreshes the network, price and pool-wide data and rebuilds the
// pool chart
type PoolSync struct {
	api     PoolAPI
	price   PriceSource
	state   *State
	metrics *Metrics
	log     *zap.Logger
	now     func() time.Time
}

func NewPoolSync(api PoolAPI, price PriceSource, state *State, metrics *Metrics, log *zap.Logger) *PoolSync {
	return &PoolSync{
		api:     api,
		price:   price,
		state:   state,
		metrics: metrics,
		log:     log,
		now:     time.Now,
	}
}

// Refresh runs one pool refresh. Network stats and pool stats are required:
// a failure skips the steps that depend on them and is returned. Config,
// price and boost are best effort and leave the previous values in place.
func (p *PoolSync) Refresh(ctx context.Context) error {
	var net NetworkStats
	var pool PoolStats
	var cfg PoolConfig
	var netErr, poolErr, cfgErr error

	var g errgroup.Group
	g.Go(func() error {
		net, netErr = p.api.NetworkStats(ctx)
		return nil
	})
	g.Go(func() error {
		pool, poolErr = p.api.PoolStats(ctx)
		return nil
	})
	g.Go(func() error {
		cfg, cfgErr = p.api.Config(ctx)
		return nil
	})
	g.Wait()

	var errs []error

	if cfgErr != nil {
		p.bestEffortFailed("config", cfgErr)
	} else {
		p.state.update(func(s *Snapshot) {
			s.Pool.MinPayout = Coins(cfg.MinWalletPayout)
		})
	}

	if netErr != nil {
		errs = append(errs, p.requiredFailed("network stats", netErr))
	} else {
		p.state.update(func(s *Snapshot) {
			s.Network.Stats = net
			s.Network.UpdatedAt = p.now()
		})
		p.metrics.observeNetwork(net)
		p.refreshPrice(ctx)
	}

	if poolErr != nil {
		errs = append(errs, p.requiredFailed("pool stats", poolErr))
		return errors.Join(errs...)
	}

	boost, err := p.api.BoostHashrate(ctx)
	if err != nil {
		p.bestEffortFailed("boost", err)
		boost = 0
	}
	p.state.update(func(s *Snapshot) {
		s.Pool.Stats = pool
		s.Pool.Boost = boost
		s.Pool.UpdatedAt = p.now()
	})
	p.metrics.observePool(pool, boost)

	if err := p.refreshActivity(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (p *PoolSync) refreshPrice(ctx context.Context) {
	if p.price == nil {
		return
	}
	price, err := p.price.Price(ctx)
	if err != nil {
		p.bestEffortFailed("price", err)
		return
	}
	p.state.update(func(s *Snapshot) {
		s.Network.Price = price
		s.Network.PriceAt = p.price.LastUpdate()
	})
	p.metrics.observePrice(price)
}

// refreshActivity loads the block list first since the chart places the
// blocks on the hashrate line, then the chart and the payments in parallel
func (p *PoolSync) refreshActivity(ctx context.Context) error {
	blocks, err := p.api.PoolBlocks(ctx)
	if err != nil {
		return p.requiredFailed("pool blocks", err)
	}
	p.state.update(func(s *Snapshot) {
		s.Pool.Blocks = blocks
	})

	var chartErr, paymentsErr error
	var g errgroup.Group
	g.Go(func() error {
		samples, err := p.api.PoolChart(ctx)
		if err != nil {
			chartErr = p.requiredFailed("pool chart", err)
			return nil
		}
		spec := BuildPoolChart(samples, BlockEventsFromPool(blocks), p.now())
		p.state.update(func(s *Snapshot) {
			s.Pool.Chart = spec
		})
		return nil
	})
	g.Go(func() error {
		payments, err := p.api.PoolPayments(ctx)
		if err != nil {
			paymentsErr = p.requiredFailed("pool payments", err)
			return nil
		}
		p.state.update(func(s *Snapshot) {
			s.Pool.Payments = payments
		})
		return nil
	})
	g.Wait()
	return errors.Join(chartErr, paymentsErr)
}

func (p *PoolSync) requiredFailed(source string, err error) error {
	p.metrics.fetchFailed(source, fetchRequired)
	p.log.Warn("fetch failed", zap.String("source", source), zap.Error(err))
	return fmt.Errorf("%s: %w", source, err)
}

func (p *PoolSync) bestEffortFailed(source string, err error) {
	p.metrics.fetchFailed(source, fetchBestEffort)
	p.log.Debug("best effort fetch failed", zap.String("source", source), zap.Error(err))
}
