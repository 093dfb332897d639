package scene

import "github.com/go-gl/mathgl/mgl32"

// World owns an ordered list of drawables. Order is draw order.
type World struct {
	drawables []*Drawable
}

// New returns the starting world: one cube at the origin
func New() *World {
	return &World{
		drawables: []*Drawable{NewCube(mgl32.Vec3{0, 0, 0})},
	}
}

// NewEmpty returns a world with no drawables
func NewEmpty() *World {
	return &World{}
}

// Add appends a drawable
func (w *World) Add(d *Drawable) {
	if d == nil {
		return
	}
	w.drawables = append(w.drawables, d)
}

// Drawables returns the drawables in draw order
func (w *World) Drawables() []*Drawable {
	return w.drawables
}

// Len returns the number of drawables
func (w *World) Len() int {
	return len(w.drawables)
}

// Take hands ownership of every drawable to the caller and leaves the world empty
func (w *World) Take() []*Drawable {
	ds := w.drawables
	w.drawables = nil
	return ds
}
