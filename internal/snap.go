package pooltop

import (
	"math"

	"github.com/bytedance/sonic"
	"github.com/prometheus/common/model"
)

// BlockEvent is a block found by the pool.
type BlockEvent struct {
	Timestamp       model.Time
	Height          int64
	SharesSubmitted float64
	BlockDifficulty float64
	Unlocked        bool
	Valid           bool
}

// SnappedEvent is a block event placed on the hashrate line. Like Point it
// encodes X as integer milliseconds.
type SnappedEvent struct {
	X             model.Time
	Y             float64
	Height        int64
	EffortPercent float64
}

type snappedEventJSON struct {
	X             int64   `json:"x"`
	Y             float64 `json:"y"`
	Height        int64   `json:"height"`
	EffortPercent float64 `json:"effort"`
}

func (e SnappedEvent) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(snappedEventJSON{X: int64(e.X), Y: e.Y, Height: e.Height, EffortPercent: e.EffortPercent})
}

func (e *SnappedEvent) UnmarshalJSON(data []byte) error {
	var v snappedEventJSON
	if err := sonic.Unmarshal(data, &v); err != nil {
		return err
	}
	*e = SnappedEvent{X: model.Time(v.X), Y: v.Y, Height: v.Height, EffortPercent: v.EffortPercent}
	return nil
}

// BlockEventsFromPool converts /pool/blocks records into events.
func BlockEventsFromPool(blocks []PoolBlock) []BlockEvent {
	events := make([]BlockEvent, 0, len(blocks))
	for _, b := range blocks {
		events = append(events, BlockEvent{
			Timestamp:       EpochMillis(b.Ts),
			Height:          b.Height,
			SharesSubmitted: b.Shares,
			BlockDifficulty: b.Diff,
			Unlocked:        b.Unlocked,
			Valid:           b.Valid,
		})
	}
	return events
}

// BlockEffort returns shares/difficulty as a percentage, 0 when the
// difficulty is unknown.
func BlockEffort(shares, difficulty float64) float64 {
	if difficulty <= 0 {
		return 0
	}
	return shares / difficulty * 100
}

// Snap places every event inside the window on the line point closest in time.
// On equal distance the earlier point wins. An empty line puts events at 0.
// Only the window start is checked; events after the window end are kept.
func Snap(events []BlockEvent, line []Point, w Window) []SnappedEvent {
	snapped := make([]SnappedEvent, 0, len(events))
	for _, e := range events {
		if e.Timestamp.Before(w.Start) {
			continue
		}
		snapped = append(snapped, SnappedEvent{
			X:             e.Timestamp,
			Y:             nearestY(line, e.Timestamp),
			Height:        e.Height,
			EffortPercent: math.Round(BlockEffort(e.SharesSubmitted, e.BlockDifficulty)),
		})
	}
	return snapped
}

func nearestY(line []Point, x model.Time) float64 {
	if len(line) == 0 {
		return 0
	}
	best := line[0]
	bestDist := distance(best.X, x)
	for _, p := range line[1:] {
		if d := distance(p.X, x); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best.Y
}

func distance(a, b model.Time) int64 {
	d := int64(a) - int64(b)
	if d < 0 {
		return -d
	}
	return d
}
