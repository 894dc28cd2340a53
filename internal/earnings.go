package pooltop

import "math"

// EstimateEarnings projects the coins earned over one PPLNS window from the
// miner's share of the network hashrate. It reports false when the miner
// hashrate, network difficulty or block reward is missing.
func EstimateEarnings(minerHash, difficulty float64, rewardAtomic int64, windowSeconds float64) (float64, bool) {
	if minerHash <= 0 || difficulty <= 0 || rewardAtomic <= 0 {
		return 0, false
	}
	if windowSeconds <= 0 {
		windowSeconds = DEFAULT_PPLNS_WINDOW_SECONDS
	}
	blocksInWindow := windowSeconds / BLOCK_TARGET_SECONDS
	return minerHash / NetworkHashrate(difficulty) * blocksInWindow * Coins(rewardAtomic), true
}

// PayoutProgress returns pending/threshold as a percentage capped at 100
func PayoutProgress(pending, threshold float64) float64 {
	if threshold <= 0 || pending <= 0 {
		return 0
	}
	return math.Min(pending/threshold*100, 100)
}
