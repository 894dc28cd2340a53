package pooltop

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const BOOST_LABEL = "⚡ Boost"

var (
	WorkerHeaders       = []string{"Worker", "Hashrate", "Total Hashes", "Valid", "Invalid", "Last Share"}
	MinerPaymentHeaders = []string{"Date", "Amount", "Fee", "Transaction"}
	BlockPaymentHeaders = []string{"Found", "Paid", "Height", "Share", "Reward"}
	PoolBlockHeaders    = []string{"Date", "Height", "Status", "Effort", "Reward", "Hash"}
	PoolPaymentHeaders  = []string{"Date", "Payees", "Amount", "Fee", "Transaction"}

	effortHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	effortLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func WorkerRows(workers []WorkerStats, now time.Time) [][]string {
	rows := make([][]string, 0, len(workers))
	for _, w := range workers {
		name := w.ID
		if name == BOOST_WORKER {
			name = BOOST_LABEL
		}
		rows = append(rows, []string{
			name,
			FormatHashrate(w.Stats.Hash),
			FormatCount(int64(w.Stats.TotalHash)),
			FormatCount(w.Stats.ValidShares),
			FormatCount(w.Stats.InvalidShares),
			TimeAgo(w.Stats.Lts, now),
		})
	}
	return rows
}

func MinerPaymentRows(payments []MinerPayment) [][]string {
	payments = firstN(payments, MINER_TABLE_ROWS)
	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{
			FormatDate(EpochMillis(p.Ts)),
			FormatXMR(p.Amount),
			FormatXMR(p.Fee),
			shortHash(p.TxnHash),
		})
	}
	return rows
}

func BlockPaymentRows(payments []BlockPayment) [][]string {
	payments = firstN(payments, MINER_TABLE_ROWS)
	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{
			FormatDate(EpochMillis(p.TsFound)),
			FormatDate(EpochMillis(p.Ts)),
			FormatCount(p.Height),
			fmt.Sprintf("%.6f%%", p.ValuePercent),
			FormatXMR(p.Value),
		})
	}
	return rows
}

// BlockStatus reports whether a pool block is confirmed, still maturing or
// orphaned
func BlockStatus(b PoolBlock) string {
	switch {
	case !b.Valid:
		return "Orphaned"
	case b.Unlocked:
		return "Confirmed"
	default:
		return "Confirming"
	}
}

// PoolBlockRows renders the most recent pool blocks. Effort above 100% is
// shown in red.
func PoolBlockRows(blocks []PoolBlock) [][]string {
	blocks = firstN(blocks, POOL_TABLE_ROWS)
	rows := make([][]string, 0, len(blocks))
	for _, b := range blocks {
		effort := BlockEffort(b.Shares, b.Diff)
		style := effortLowStyle
		if effort > 100 {
			style = effortHighStyle
		}
		rows = append(rows, []string{
			FormatDate(EpochMillis(b.Ts)),
			FormatCount(b.Height),
			BlockStatus(b),
			style.Render(FormatPercent(effort, 2)),
			FormatXMR(b.Value),
			shortHash(b.Hash),
		})
	}
	return rows
}

func PoolPaymentRows(payments []PoolPayment) [][]string {
	payments = firstN(payments, POOL_TABLE_ROWS)
	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{
			FormatDate(EpochMillis(p.Ts)),
			FormatCount(p.Payees),
			FormatXMR(p.Value),
			FormatXMR(p.Fee),
			shortHash(p.Hash),
		})
	}
	return rows
}

func firstN[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func shortHash(h string) string {
	if len(h) <= 16 {
		return h
	}
	return h[:8] + "…" + h[len(h)-8:]
}
