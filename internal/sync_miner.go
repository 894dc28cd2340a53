package pooltop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/remeh/sizedwaitgroup"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoAddress is returned when miner data is requested without a wallet address
var ErrNoAddress = errors.New("no wallet address set")

// MinerSync refreshes the data of one wallet address and rebuilds the miner chart
type MinerSync struct {
	api     MinerAPI
	state   *State
	metrics *Metrics
	log     *zap.Logger
	now     func() time.Time
}

func NewMinerSync(api MinerAPI, state *State, metrics *Metrics, log *zap.Logger) *MinerSync {
	return &MinerSync{
		api:     api,
		state:   state,
		metrics: metrics,
		log:     log,
		now:     time.Now,
	}
}

// Refresh fetches stats, settings and worker identifiers, which are all
// required. The chart, the worker table, the payments and the block rewards
// are independent branches; a failure in one does not stop the others.
func (m *MinerSync) Refresh(ctx context.Context, addr string) error {
	if addr == "" {
		return ErrNoAddress
	}

	var (
		stats    MinerStats
		settings UserSettings
		ids      []string
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		if stats, err = m.api.MinerStats(ctx, addr); err != nil {
			return m.failed("miner stats", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if settings, err = m.api.UserSettings(ctx, addr); err != nil {
			return m.failed("user settings", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if ids, err = m.api.Identifiers(ctx, addr); err != nil {
			return m.failed("identifiers", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if !m.update(addr, func(s *Snapshot) {
		s.Miner.Stats = stats
		s.Miner.Settings = settings
		s.Miner.Identifiers = ids
		s.Miner.UpdatedAt = m.now()
	}) {
		return nil
	}
	m.metrics.observeMiner(stats, len(ids))

	var chartErr, workersErr, paymentsErr, blocksErr error
	var branches errgroup.Group
	branches.Go(func() error {
		data, err := m.api.MinerChart(ctx, addr)
		if err != nil {
			chartErr = m.failed("miner chart", err)
			return nil
		}
		spec := BuildMinerChart(data, m.now())
		m.update(addr, func(s *Snapshot) {
			s.Miner.Chart = spec
		})
		return nil
	})
	branches.Go(func() error {
		workers, err := m.fetchWorkers(ctx, addr, ids)
		if err != nil {
			workersErr = m.failed("worker stats", err)
			return nil
		}
		m.update(addr, func(s *Snapshot) {
			s.Miner.Workers = workers
		})
		return nil
	})
	branches.Go(func() error {
		payments, err := m.api.MinerPayments(ctx, addr)
		if err != nil {
			paymentsErr = m.failed("miner payments", err)
			return nil
		}
		m.update(addr, func(s *Snapshot) {
			s.Miner.Payments = payments
		})
		return nil
	})
	branches.Go(func() error {
		blocks, err := m.api.BlockPayments(ctx, addr)
		if err != nil {
			blocksErr = m.failed("block payments", err)
			return nil
		}
		m.update(addr, func(s *Snapshot) {
			s.Miner.BlockPayments = blocks
		})
		return nil
	})
	branches.Wait()

	return errors.Join(chartErr, workersErr, paymentsErr, blocksErr)
}

// fetchWorkers loads the stats of the first MAX_WORKER_FETCHES workers in
// parallel. Any failure fails the whole table.
func (m *MinerSync) fetchWorkers(ctx context.Context, addr string, ids []string) ([]WorkerStats, error) {
	subset := ids[:min(len(ids), MAX_WORKER_FETCHES)]
	workers := make([]WorkerStats, len(subset))
	errs := make([]error, len(subset))

	swg := sizedwaitgroup.New(MAX_WORKER_FETCHES)
	for i, id := range subset {
		swg.Add()
		go func(i int, id string) {
			defer swg.Done()
			stats, err := m.api.WorkerStats(ctx, addr, id)
			if err != nil {
				errs[i] = fmt.Errorf("worker %s: %w", id, err)
				return
			}
			workers[i] = WorkerStats{ID: id, Stats: stats}
		}(i, id)
	}
	swg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return workers, nil
}

// update applies fn unless the tracked address changed while fetching
func (m *MinerSync) update(addr string, fn func(*Snapshot)) bool {
	applied := false
	m.state.update(func(s *Snapshot) {
		if s.Address != addr {
			return
		}
		fn(s)
		applied = true
	})
	if !applied {
		m.log.Debug("address changed during refresh, dropping miner data")
	}
	return applied
}

func (m *MinerSync) failed(source string, err error) error {
	m.metrics.fetchFailed(source, fetchRequired)
	m.log.Warn("fetch failed", zap.String("source", source), zap.Error(err))
	return fmt.Errorf("%s: %w", source, err)
}
