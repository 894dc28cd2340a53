package pooltop

import (
	"sync"
	"time"
)

type NetworkState struct {
	Stats     NetworkStats
	Price     float64
	PriceAt   time.Time
	UpdatedAt time.Time
}

type PoolState struct {
	Stats     PoolStats
	Boost     float64
	MinPayout float64
	Blocks    []PoolBlock
	Payments  []PoolPayment
	Chart     ChartSpec
	UpdatedAt time.Time
}

type MinerState struct {
	Stats         MinerStats
	Settings      UserSettings
	Identifiers   []string
	Workers       []WorkerStats
	Payments      []MinerPayment
	BlockPayments []BlockPayment
	Chart         ChartSpec
	UpdatedAt     time.Time
}

// Snapshot is a copy of the last known dashboard data. Slices are replaced on
// every refresh, never mutated, so sharing them between snapshots is safe.
type Snapshot struct {
	Address     string
	Network     NetworkState
	Pool        PoolState
	Miner       MinerState
	LastRefresh time.Time
}

// State is the single owner of everything the sync components fetch
type State struct {
	mu  sync.RWMutex
	cur Snapshot
}

func NewState(address string) *State {
	return &State{cur: Snapshot{Address: address}}
}

func (s *State) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Address
}

// SetAddress switches the tracked wallet and forgets the previous miner data
func (s *State) SetAddress(addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur.Address != addr {
		s.cur.Miner = MinerState{}
	}
	s.cur.Address = addr
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *State) update(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.cur)
}
