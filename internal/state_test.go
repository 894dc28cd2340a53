package pooltop

import (
	"testing"
)

func TestStateSetAddress(t *testing.T) {
	t.Parallel()
	s := NewState("a")
	s.update(func(snap *Snapshot) {
		snap.Miner.Stats.Hash = 10
		snap.Pool.Stats.Miners = 3
	})

	s.SetAddress("a")
	if s.Snapshot().Miner.Stats.Hash != 10 {
		t.Fatalf("miner data dropped without an address change")
	}

	s.SetAddress("b")
	snap := s.Snapshot()
	if snap.Address != "b" || snap.Miner.Stats.Hash != 0 {
		t.Fatalf("unexpected snapshot after address change: %+v", snap)
	}
	if snap.Pool.Stats.Miners != 3 {
		t.Fatalf("pool data dropped on address change")
	}
}
