package pooltop

// Response bodies of the pool API. Amounts are atomic units, timestamps are
// raw epoch values and must go through EpochMillis before use.

type PoolConfig struct {
	MinWalletPayout int64 `json:"min_wallet_payout"`
}

type NetworkStats struct {
	Difficulty float64 `json:"difficulty"`
	Height     int64   `json:"height"`
	Value      int64   `json:"value"`
	Ts         int64   `json:"ts"`
	Hash       string  `json:"hash"`
}

type PoolStats struct {
	HashRate         float64 `json:"hashRate"`
	Miners           int64   `json:"miners"`
	TotalBlocksFound int64   `json:"totalBlocksFound"`
	RoundHashes      float64 `json:"roundHashes"`
	TotalPayments    int64   `json:"totalPayments"`
	TotalMinersPaid  int64   `json:"totalMinersPaid"`
	PPLNSWindowTime  float64 `json:"pplnsWindowTime"`
}

type poolStatsResponse struct {
	PoolStatistics PoolStats `json:"pool_statistics"`
}

// HashrateSample is one point of a chart endpoint.
type HashrateSample struct {
	Ts int64   `json:"ts"`
	Hs float64 `json:"hs"`
}

// NamedSamples is one series of the all-workers chart endpoint.
type NamedSamples struct {
	Name    string
	Samples []HashrateSample
}

type PoolBlock struct {
	Height   int64   `json:"height"`
	Hash     string  `json:"hash"`
	Value    int64   `json:"value"`
	Shares   float64 `json:"shares"`
	Diff     float64 `json:"diff"`
	Valid    bool    `json:"valid"`
	Unlocked bool    `json:"unlocked"`
	Ts       int64   `json:"ts"`
}

type PoolPayment struct {
	Payees int64  `json:"payees"`
	Value  int64  `json:"value"`
	Fee    int64  `json:"fee"`
	Hash   string `json:"hash"`
	Ts     int64  `json:"ts"`
}

// MinerStats is returned both for a whole address and for a single worker.
type MinerStats struct {
	AmtDue        int64   `json:"amtDue"`
	AmtPaid       int64   `json:"amtPaid"`
	Hash          float64 `json:"hash"`
	TotalHash     float64 `json:"totalHash"`
	ValidShares   int64   `json:"validShares"`
	InvalidShares int64   `json:"invalidShares"`
	Lts           int64   `json:"lts"`
}

type UserSettings struct {
	PayoutThreshold int64 `json:"payout_threshold"`
	EmailEnabled    int   `json:"email_enabled"`
}

type MinerPayment struct {
	Amount  int64  `json:"amount"`
	Fee     int64  `json:"fee"`
	TxnHash string `json:"txnHash"`
	Ts      int64  `json:"ts"`
}

type BlockPayment struct {
	Height       int64   `json:"height"`
	Value        int64   `json:"value"`
	ValuePercent float64 `json:"value_percent"`
	Ts           int64   `json:"ts"`
	TsFound      int64   `json:"ts_found"`
}

// WorkerStats pairs a worker identifier with its stats.
type WorkerStats struct {
	ID    string
	Stats MinerStats
}

type coinMarket struct {
	CurrentPrice float64 `json:"current_price"`
}

type bonusSummary struct {
	Hashrate struct {
		Total []float64 `json:"total"`
	} `json:"hashrate"`
}

type actionResponse struct {
	Msg   string `json:"msg"`
	Error string `json:"error"`
}
