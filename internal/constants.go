package pooltop

import (
	"time"
)

const (
	// REFRESH_INTERVAL is the time between full refresh cycles in seconds
	REFRESH_INTERVAL = 60

	// CHART_WINDOW_HOURS is the trailing span shown by both charts
	CHART_WINDOW_HOURS = 24

	// BLOCK_TARGET_SECONDS is the network block target time
	BLOCK_TARGET_SECONDS = 120

	// DEFAULT_PPLNS_WINDOW_SECONDS is assumed when the pool reports no PPLNS window
	DEFAULT_PPLNS_WINDOW_SECONDS = 21600

	// ATOMIC_UNIT_EXPONENT is the number of decimal places in one whole coin
	ATOMIC_UNIT_EXPONENT = 12

	// MIN_ADDRESS_LENGTH is the length a wallet address has to exceed to be accepted
	MIN_ADDRESS_LENGTH = 90

	// MAX_WORKER_FETCHES caps the per-worker stats fan-out
	MAX_WORKER_FETCHES = 10

	MINER_TABLE_ROWS = 10
	POOL_TABLE_ROWS  = 15

	// BOOST_WORKER is the identifier the pool uses for bonus hashrate
	BOOST_WORKER = "MonerodBoost"

	// GLOBAL_SERIES is the key of the aggregate series in the all-workers chart data
	GLOBAL_SERIES = "global"
)

// RefreshDuration returns the refresh interval as a time.Duration
func RefreshDuration() time.Duration {
	return time.Duration(REFRESH_INTERVAL) * time.Second
}

// ChartWindow returns the chart span as a time.Duration
func ChartWindow() time.Duration {
	return time.Duration(CHART_WINDOW_HOURS) * time.Hour
}

// NetworkHashrate derives the network hashrate from the difficulty and block target
func NetworkHashrate(difficulty float64) float64 {
	return difficulty / BLOCK_TARGET_SECONDS
}
