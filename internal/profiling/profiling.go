package profiling

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Profiler accumulates wall time per named phase within one frame.
// Not safe for concurrent use; it belongs to the loop that drives it.
type Profiler struct {
	now    func() time.Time
	totals map[string]time.Duration
}

// New returns an empty profiler using the wall clock
func New() *Profiler {
	return &Profiler{
		now:    time.Now,
		totals: make(map[string]time.Duration),
	}
}

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer p.Track("renderer.Render")()
func (p *Profiler) Track(name string) func() {
	start := p.now()
	return func() {
		p.totals[name] += p.now().Sub(start)
	}
}

// ResetFrame clears current per-frame totals. Call at the start of each frame.
func (p *Profiler) ResetFrame() {
	clear(p.totals)
}

// Get returns the total recorded under name this frame
func (p *Profiler) Get(name string) time.Duration {
	return p.totals[name]
}

// SumWithPrefix returns the total of every phase whose name starts with prefix
func (p *Profiler) SumWithPrefix(prefix string) time.Duration {
	var sum time.Duration
	for k, v := range p.totals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// TopN formats the n longest phases of the current frame, longest first.
// Example: "loop.Render:4.2ms, loop.Input:0.1ms"
func (p *Profiler) TopN(n int) string {
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(p.totals))
	for k, v := range p.totals {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ms := float64(list[i].dur.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms", list[i].name, ms))
	}
	return strings.Join(parts, ", ")
}
