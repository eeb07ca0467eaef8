package main

import (
	"slices"
	"sync"

	"github.com/pterm/pterm"

	"github.com/wbrown/typefont"
)

// progress shows a progress bar while fonts are compared. A nil *progress
// ignores all updates.
type progress struct {
	mu      sync.Mutex
	bar     *pterm.ProgressbarPrinter
	percent int
}

func newProgress() *progress {
	return &progress{}
}

func (p *progress) update(name string, scores map[string]typefont.SymbolScore, fraction float64) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar == nil {
		bar, err := pterm.DefaultProgressbar.WithTotal(100).WithTitle("Comparing fonts").Start()
		if err != nil {
			tracer().Errorf("progress bar: %v", err)
			return
		}
		p.bar = bar
	}
	percent := int(fraction * 100)
	if percent > p.percent {
		p.bar.UpdateTitle(name)
		p.bar.Add(percent - p.percent)
		p.percent = percent
	}
}

func (p *progress) stop() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		p.bar.Stop()
		p.bar = nil
	}
}

func symbolKeys(r typefont.FontResult) []string {
	keys := make([]string, 0, len(r.Symbols))
	for k := range r.Symbols {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
