package pooltop

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
)

const (
	POOL_CHART_FILE  = "pool.png"
	MINER_CHART_FILE = "miner.png"
	CHART_DATA_FILE  = "charts.json"
)

// ChartExport is the JSON document written next to the PNG charts
type ChartExport struct {
	Address string     `json:"address,omitempty"`
	Pool    ChartSpec  `json:"pool"`
	Miner   *ChartSpec `json:"miner,omitempty"`
}

// Exporter writes charts into one directory, one export at a time
type Exporter struct {
	Dir      string
	Renderer Renderer

	mu sync.Mutex
}

func (e *Exporter) Export(s Snapshot) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ExportCharts(e.Dir, s, e.Renderer)
}

type chartFile struct {
	file string
	spec ChartSpec
}

// ExportCharts writes the charts of s into dir as PNG files plus their data
// as JSON. Empty charts are skipped. It returns the paths written.
func ExportCharts(dir string, s Snapshot, r Renderer) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	doc := ChartExport{Address: s.Address, Pool: s.Pool.Chart}
	charts := []chartFile{{POOL_CHART_FILE, s.Pool.Chart}}
	if s.Address != "" {
		doc.Miner = &s.Miner.Chart
		charts = append(charts, chartFile{MINER_CHART_FILE, s.Miner.Chart})
	}

	var written []string
	var slot ChartSlot
	defer slot.Release()
	for _, c := range charts {
		h, err := slot.Replace(r, c.spec)
		if errors.Is(err, ErrEmptyChart) {
			continue
		}
		if err != nil {
			return written, fmt.Errorf("render %s: %w", c.file, err)
		}
		png, ok := h.(*PNGChart)
		if !ok {
			return written, fmt.Errorf("render %s: unexpected handle %T", c.file, h)
		}
		path := filepath.Join(dir, c.file)
		if err := os.WriteFile(path, png.Bytes(), 0o644); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return written, err
	}
	path := filepath.Join(dir, CHART_DATA_FILE)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return written, err
	}
	return append(written, path), nil
}
