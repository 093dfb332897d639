package scene

import (
	"cube-demo/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// CubeVertexCount is the number of vertices in the cube mesh (12 triangles)
const CubeVertexCount = 36

// cubeVertices is a unit cube centred on the origin: position (3) then texture
// coordinate (2) per vertex, two triangles per face.
var cubeVertices = [CubeVertexCount * 5]float32{
	// back
	-0.5, -0.5, -0.5, 0.0, 0.0,
	0.5, -0.5, -0.5, 1.0, 0.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	-0.5, 0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 0.0,
	// front
	-0.5, -0.5, 0.5, 0.0, 0.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 1.0,
	0.5, 0.5, 0.5, 1.0, 1.0,
	-0.5, 0.5, 0.5, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,
	// left
	-0.5, 0.5, 0.5, 1.0, 0.0,
	-0.5, 0.5, -0.5, 1.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,
	-0.5, 0.5, 0.5, 1.0, 0.0,
	// right
	0.5, 0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, 0.5, 0.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0,
	// bottom
	-0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, -0.5, 1.0, 1.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,
	// top
	-0.5, 0.5, -0.5, 0.0, 1.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, 0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0,
	-0.5, 0.5, 0.5, 0.0, 0.0,
	-0.5, 0.5, -0.5, 0.0, 1.0,
}

// Drawable is one mesh instance: interleaved vertex data in a fixed layout and the
// model transform placing it in the world.
type Drawable struct {
	vertices []float32
	layout   graphics.VertexLayout

	anchor mgl32.Vec3
	angle  float32 // degrees
	axis   mgl32.Vec3
	model  mgl32.Mat4
}

// CubeOption configures a cube at construction
type CubeOption func(*cubeConfig)

type cubeConfig struct {
	angle  float32
	axis   mgl32.Vec3
	colour *mgl32.Vec3
}

// WithRotation gives the cube a fixed orientation: angle degrees about axis
func WithRotation(angle float32, axis mgl32.Vec3) CubeOption {
	return func(c *cubeConfig) {
		c.angle = angle
		c.axis = axis
	}
}

// WithColour adds a per-vertex colour attribute, switching the mesh to
// LayoutPositionColourTexture.
func WithColour(r, g, b float32) CubeOption {
	return func(c *cubeConfig) {
		c.colour = &mgl32.Vec3{r, g, b}
	}
}

// NewCube builds the 36-vertex cube mesh anchored at anchor
func NewCube(anchor mgl32.Vec3, opts ...CubeOption) *Drawable {
	cfg := cubeConfig{axis: mgl32.Vec3{0, 1, 0}}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Drawable{
		anchor: anchor,
		angle:  cfg.angle,
		axis:   cfg.axis,
	}

	if cfg.colour == nil {
		d.layout = graphics.LayoutPositionTexture
		d.vertices = append([]float32(nil), cubeVertices[:]...)
	} else {
		d.layout = graphics.LayoutPositionColourTexture
		d.vertices = make([]float32, 0, CubeVertexCount*8)
		col := *cfg.colour
		for i := 0; i < CubeVertexCount; i++ {
			v := cubeVertices[i*5 : i*5+5]
			d.vertices = append(d.vertices, v[0], v[1], v[2], col[0], col[1], col[2], v[3], v[4])
		}
	}

	d.updateModel()
	return d
}

// Vertices returns the interleaved vertex data. Callers must not modify it.
func (d *Drawable) Vertices() []float32 { return d.vertices }

// Layout returns the vertex layout of Vertices
func (d *Drawable) Layout() graphics.VertexLayout { return d.layout }

// VertexCount returns the number of vertices to draw
func (d *Drawable) VertexCount() int32 {
	per := d.layout.FloatsPerVertex()
	if per == 0 {
		return 0
	}
	return int32(len(d.vertices) / per)
}

// Anchor returns the world-space position of the mesh origin
func (d *Drawable) Anchor() mgl32.Vec3 { return d.anchor }

// SetAnchor moves the drawable and recomputes its model matrix
func (d *Drawable) SetAnchor(anchor mgl32.Vec3) {
	d.anchor = anchor
	d.updateModel()
}

// Model returns the cached model matrix: translation to the anchor, then rotation
func (d *Drawable) Model() mgl32.Mat4 { return d.model }

func (d *Drawable) updateModel() {
	model := mgl32.Translate3D(d.anchor.X(), d.anchor.Y(), d.anchor.Z())
	if d.angle != 0 && d.axis.Len() > 0 {
		model = model.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(d.angle), d.axis.Normalize()))
	}
	d.model = model
}
