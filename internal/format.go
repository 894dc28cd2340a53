package pooltop

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/common/model"
	"github.com/shopspring/decimal"
)

// epochSecondsLimit separates second and millisecond epoch values. Anything
// below it is read as seconds.
const epochSecondsLimit = 10_000_000_000

// NoTimestamp is shown by TimeAgo when the source carries no timestamp.
const NoTimestamp = "∅"

// Unavailable is shown for derived values that cannot be computed yet.
const Unavailable = "---"

var hashrateUnits = []string{"H/s", "KH/s", "MH/s", "GH/s"}

// FormatHashrate scales a raw hashrate through H/s, KH/s, MH/s and GH/s.
// Zero, negative and NaN inputs render as "0 H/s".
func FormatHashrate(h float64) string {
	if h <= 0 || math.IsNaN(h) {
		return "0 H/s"
	}
	i := 0
	for h >= 1000 && i < len(hashrateUnits)-1 {
		h /= 1000
		i++
	}
	return fmt.Sprintf("%.2f %s", h, hashrateUnits[i])
}

// AtomicToDecimal converts an atomic amount into whole coins without loss.
func AtomicToDecimal(atomic int64) decimal.Decimal {
	return decimal.New(atomic, -ATOMIC_UNIT_EXPONENT)
}

// Coins converts an atomic amount into whole coins.
func Coins(atomic int64) float64 {
	return AtomicToDecimal(atomic).InexactFloat64()
}

// FormatXMR renders an atomic amount with five fraction digits.
func FormatXMR(atomic int64) string {
	return AtomicToDecimal(atomic).StringFixed(5)
}

// EpochMillis normalizes an API timestamp to milliseconds. The pool API mixes
// seconds and milliseconds between endpoints, so every timestamp goes through
// here on ingestion.
func EpochMillis(ts int64) model.Time {
	if ts != 0 && ts < epochSecondsLimit && ts > -epochSecondsLimit {
		return model.Time(ts * 1000)
	}
	return model.Time(ts)
}

// FormatDate renders a timestamp in local time.
func FormatDate(ts model.Time) string {
	if ts == 0 {
		return NoTimestamp
	}
	return ts.Time().Local().Format("2006-01-02 15:04:05")
}

// TimeAgo renders a coarse relative time for a second or millisecond epoch.
func TimeAgo(ts int64, now time.Time) string {
	if ts == 0 {
		return NoTimestamp
	}
	diff := now.Sub(EpochMillis(ts).Time()).Seconds()
	if diff < 0 {
		diff = 0
	}
	switch {
	case diff < 60:
		return fmt.Sprintf("%ds ago", int64(diff))
	case diff < 3600:
		return fmt.Sprintf("%dm ago", int64(diff/60))
	default:
		return fmt.Sprintf("%dh ago", int64(diff/3600))
	}
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent renders a percentage with the given number of decimals.
func FormatPercent(pct float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, pct)
}

// FormatFiat renders a USD amount.
func FormatFiat(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
