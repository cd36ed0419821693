// Package visibility reports when a section of a scrolled document first
// comes into view.
package visibility

import (
	"math"
	"sync"
)

// Gate fires its callbacks once, the first time the visible share of a
// section reaches the threshold. Scrolling away and back never fires again.
type Gate struct {
	threshold float64

	mu        sync.Mutex
	fired     bool
	callbacks []func()
}

// New returns a gate for the given threshold. Thresholds outside (0, 1]
// are clamped; NaN counts as below the range.
func New(threshold float64) *Gate {
	switch {
	case math.IsNaN(threshold) || threshold <= 0:
		threshold = 0.01
	case threshold > 1:
		threshold = 1
	}
	return &Gate{threshold: threshold}
}

// Threshold returns the visible share that opens the gate.
func (g *Gate) Threshold() float64 { return g.threshold }

// OnVisible registers fn. If the gate has already fired, fn is not called.
func (g *Gate) OnVisible(fn func()) {
	if fn == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fired {
		return
	}
	g.callbacks = append(g.callbacks, fn)
}

// Update reports the currently visible share of the section. It returns
// true only for the update that opened the gate.
func (g *Gate) Update(fraction float64) bool {
	g.mu.Lock()
	if g.fired || fraction < g.threshold {
		g.mu.Unlock()
		return false
	}
	g.fired = true
	callbacks := g.callbacks
	g.callbacks = nil
	g.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	return true
}

// Visible reports whether the gate has fired.
func (g *Gate) Visible() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fired
}

// Fraction returns the share of a section spanning [top, top+height) that
// is inside the viewport [viewTop, viewTop+viewHeight). Sections taller
// than the viewport count as fully visible when they fill it.
func Fraction(top, height, viewTop, viewHeight int) float64 {
	if height <= 0 || viewHeight <= 0 {
		return 0
	}
	start := max(top, viewTop)
	end := min(top+height, viewTop+viewHeight)
	if end <= start {
		return 0
	}
	visible := float64(end - start)
	denominator := float64(min(height, viewHeight))
	return visible / denominator
}
