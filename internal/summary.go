package pooltop

import (
	"fmt"
	"slices"
	"time"

	"github.com/hako/durafmt"
)

// PoolSummary holds the derived network and pool figures
type PoolSummary struct {
	NetworkHashrate   float64
	NetworkDifficulty float64
	Height            int64
	Reward            int64
	LastBlock         int64
	Price             float64
	PriceAt           time.Time

	PoolHashrate  float64
	Miners        int64
	BlocksFound   int64
	Effort        float64
	EffortOK      bool
	Share         float64
	ShareOK       bool
	PPLNSHours    float64
	Payments      int64
	MinersPaid    int64
	BoostHashrate float64
	MinPayout     float64
}

func SummarizePool(s Snapshot) PoolSummary {
	net := s.Network.Stats
	pool := s.Pool.Stats
	sum := PoolSummary{
		NetworkHashrate:   NetworkHashrate(net.Difficulty),
		NetworkDifficulty: net.Difficulty,
		Height:            net.Height,
		Reward:            net.Value,
		LastBlock:         net.Ts,
		Price:             s.Network.Price,
		PriceAt:           s.Network.PriceAt,
		PoolHashrate:      pool.HashRate,
		Miners:            pool.Miners,
		BlocksFound:       pool.TotalBlocksFound,
		PPLNSHours:        pool.PPLNSWindowTime / 3600,
		Payments:          pool.TotalPayments,
		MinersPaid:        pool.TotalMinersPaid,
		BoostHashrate:     s.Pool.Boost,
		MinPayout:         s.Pool.MinPayout,
	}
	if net.Difficulty > 0 {
		sum.Effort = pool.RoundHashes / net.Difficulty * 100
		sum.EffortOK = true
	}
	if sum.NetworkHashrate > 0 {
		sum.Share = pool.HashRate / sum.NetworkHashrate * 100
		sum.ShareOK = true
	}
	return sum
}

// NetworkRows returns the label/value rows of the network pane
func (p PoolSummary) NetworkRows(now time.Time) [][]string {
	price := Unavailable
	if p.Price > 0 {
		price = FormatFiat(p.Price)
		if !p.PriceAt.IsZero() {
			price += " (" + TimeAgo(p.PriceAt.UnixMilli(), now) + ")"
		}
	}
	return [][]string{
		{"Hashrate", FormatHashrate(p.NetworkHashrate)},
		{"Difficulty", FormatCount(int64(p.NetworkDifficulty))},
		{"Height", FormatCount(p.Height)},
		{"Reward", FormatXMR(p.Reward) + " XMR"},
		{"Last Block", TimeAgo(p.LastBlock, now)},
		{"Price", price},
	}
}

// PoolRows returns the label/value rows of the pool pane
func (p PoolSummary) PoolRows() [][]string {
	effort := Unavailable
	if p.EffortOK {
		effort = FormatPercent(p.Effort, 2)
	}
	share := Unavailable
	if p.ShareOK {
		share = FormatPercent(p.Share, 3)
	}
	minPayout := Unavailable
	if p.MinPayout > 0 {
		minPayout = fmt.Sprintf("%.3f XMR", p.MinPayout)
	}
	return [][]string{
		{"Hashrate", FormatHashrate(p.PoolHashrate)},
		{"Boost", FormatHashrate(p.BoostHashrate)},
		{"Miners", FormatCount(p.Miners)},
		{"Blocks Found", FormatCount(p.BlocksFound)},
		{"Effort", effort},
		{"Network Share", share},
		{"PPLNS Window", pplnsWindow(p.PPLNSHours)},
		{"Payments", fmt.Sprintf("%d / %d", p.Payments, p.MinersPaid)},
		{"Min Payout", minPayout},
	}
}

func pplnsWindow(hours float64) string {
	if hours <= 0 {
		return Unavailable
	}
	return durafmt.Parse(time.Duration(hours * float64(time.Hour))).LimitFirstN(2).String()
}

// MinerSummary holds the derived figures of the tracked wallet
type MinerSummary struct {
	Pending       float64
	Paid          float64
	Threshold     float64
	Hashrate      float64
	ValidShares   int64
	InvalidShares int64
	Progress      float64
	Boosting      bool
	Estimate      float64
	EstimateOK    bool
	FiatPaid      float64
	FiatOK        bool
}

func SummarizeMiner(s Snapshot) MinerSummary {
	st := s.Miner.Stats
	sum := MinerSummary{
		Pending:       Coins(st.AmtDue),
		Paid:          Coins(st.AmtPaid),
		Threshold:     Coins(s.Miner.Settings.PayoutThreshold),
		Hashrate:      st.Hash,
		ValidShares:   st.ValidShares,
		InvalidShares: st.InvalidShares,
		Boosting:      slices.Contains(s.Miner.Identifiers, BOOST_WORKER),
	}
	sum.Progress = PayoutProgress(sum.Pending, sum.Threshold)
	sum.Estimate, sum.EstimateOK = EstimateEarnings(st.Hash, s.Network.Stats.Difficulty, s.Network.Stats.Value, s.Pool.Stats.PPLNSWindowTime)
	if s.Network.Price > 0 {
		sum.FiatPaid = sum.Paid * s.Network.Price
		sum.FiatOK = true
	}
	return sum
}

// Rows returns the label/value rows of the miner pane
func (m MinerSummary) Rows() [][]string {
	estimate := Unavailable
	if m.EstimateOK {
		estimate = fmt.Sprintf("~%.6f XMR", m.Estimate)
	}
	paid := fmt.Sprintf("%.6f XMR", m.Paid)
	if m.FiatOK {
		paid += fmt.Sprintf(" (≈ %s USD)", FormatFiat(m.FiatPaid))
	}
	boost := "off"
	if m.Boosting {
		boost = "active"
	}
	return [][]string{
		{"Hashrate", FormatHashrate(m.Hashrate)},
		{"Pending", fmt.Sprintf("%.6f XMR", m.Pending)},
		{"Paid", paid},
		{"Threshold", fmt.Sprintf("%.3f XMR", m.Threshold)},
		{"Payout", FormatPercent(m.Progress, 1)},
		{"Est. per Window", estimate},
		{"Shares", fmt.Sprintf("%d / %d", m.ValidShares, m.InvalidShares)},
		{"Boost", boost},
	}
}
