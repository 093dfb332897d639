package input

// MouseTracker turns absolute cursor positions into per-event offsets. The first
// position after a reset only primes the tracker, so capturing the cursor does
// not produce a jump.
type MouseTracker struct {
	lastX, lastY float64
	first        bool
}

// NewMouseTracker returns a tracker waiting for its first position
func NewMouseTracker() *MouseTracker {
	return &MouseTracker{first: true}
}

// Offset returns the movement since the previous position. Y is inverted so that
// moving the cursor up yields a positive offset. ok is false for the priming event.
func (t *MouseTracker) Offset(x, y float64) (dx, dy float32, ok bool) {
	if t.first {
		t.lastX, t.lastY = x, y
		t.first = false
		return 0, 0, false
	}

	dx = float32(x - t.lastX)
	dy = float32(t.lastY - y)
	t.lastX, t.lastY = x, y
	return dx, dy, true
}

// Reset makes the next position prime the tracker again
func (t *MouseTracker) Reset() {
	t.first = true
}
