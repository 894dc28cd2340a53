package pooltop

import (
	"errors"
	"sort"
	"sync"
)

// ErrEmptyChart is returned by renderers that cannot draw a chart without points
var ErrEmptyChart = errors.New("chart has no points")

// Handle is a rendered chart that holds on to rendering resources until released
type Handle interface {
	Release()
}

// Renderer turns a ChartSpec into a Handle
type Renderer interface {
	Render(spec ChartSpec) (Handle, error)
}

// ChartSlot owns the handle of one on-screen chart. Every rebuild releases the
// previous handle before the next one is acquired.
type ChartSlot struct {
	mu     sync.Mutex
	handle Handle
}

// Replace releases the current handle, renders spec with r and keeps the result
func (s *ChartSlot) Replace(r Renderer, spec ChartSpec) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != nil {
		s.handle.Release()
		s.handle = nil
	}

	h, err := r.Render(spec)
	if err != nil {
		return nil, err
	}
	s.handle = h
	return h, nil
}

// Current returns the live handle, nil if none
func (s *ChartSlot) Current() Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle
}

// Release drops the live handle
func (s *ChartSlot) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != nil {
		s.handle.Release()
		s.handle = nil
	}
}

// drawOrder returns the series bottom layer first: higher Order values are
// drawn earlier so lower ones end up on top
func drawOrder(series []Series) []Series {
	ordered := append([]Series(nil), series...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order > ordered[j].Order
	})
	return ordered
}
