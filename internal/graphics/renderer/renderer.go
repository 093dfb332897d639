package renderer

import (
	"errors"
	"fmt"

	"cube-demo/internal/graphics"
	"cube-demo/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNotReady is returned by operations that need a successful Init first
var ErrNotReady = errors.New("renderer not initialized")

// State is the renderer lifecycle state
type State int

const (
	StateUninitialized State = iota
	StateReady
)

func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "uninitialized"
}

// Resources names the program and textures a scene is drawn with
type Resources struct {
	VertexShader   string
	FragmentShader string
	Layout         graphics.VertexLayout
	// Textures are bound to units 0, 1, ... in order
	Textures []graphics.TextureSpec
}

// Options holds fixed-function state applied at Init
type Options struct {
	ClearColour mgl32.Vec4
	PolygonMode graphics.PolygonMode
	Width       int
	Height      int
}

// DefaultOptions returns a black clear colour, filled polygons and an 800x600 viewport
func DefaultOptions() Options {
	return Options{
		ClearColour: mgl32.Vec4{0, 0, 0, 1},
		PolygonMode: graphics.PolygonFill,
		Width:       800,
		Height:      600,
	}
}

// mesh is the device-side copy of one drawable
type mesh struct {
	drawable *scene.Drawable
	vao      uint32
	vbo      uint32
	count    int32
}

// Renderer owns every device object built from a scene and submits the draw
// calls for it each frame.
type Renderer struct {
	device graphics.Device
	opts   Options
	state  State

	program  *graphics.Program
	textures *graphics.TextureCache
	units    []*graphics.Texture
	meshes   []mesh
}

// New returns an uninitialized renderer drawing through device
func New(device graphics.Device, opts Options) *Renderer {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultOptions().Width, DefaultOptions().Height
	}
	return &Renderer{
		device: device,
		opts:   opts,
	}
}

// State returns the lifecycle state
func (r *Renderer) State() State {
	return r.state
}

// Init consumes the world's drawables, builds the program and uploads vertex
// data and textures. On error every object created so far is released and the
// renderer stays uninitialized.
func (r *Renderer) Init(w *scene.World, res Resources) error {
	if r.state == StateReady {
		return errors.New("renderer already initialized")
	}
	if w == nil {
		return errors.New("renderer needs a world to draw")
	}
	// the world keeps its drawables when they cannot be drawn
	for i, d := range w.Drawables() {
		if d.Layout() != res.Layout {
			return fmt.Errorf("%w: drawable %d has layout %s, program expects %s", graphics.ErrBinding, i, d.Layout(), res.Layout)
		}
	}

	if err := r.init(w.Take(), res); err != nil {
		r.release()
		return err
	}

	r.device.EnableDepthTest()
	r.device.PolygonMode(r.opts.PolygonMode)
	r.device.Viewport(r.opts.Width, r.opts.Height)
	r.device.ClearColor(r.opts.ClearColour[0], r.opts.ClearColour[1], r.opts.ClearColour[2], r.opts.ClearColour[3])

	r.state = StateReady
	return nil
}

func (r *Renderer) init(drawables []*scene.Drawable, res Resources) error {
	samplers := make([]string, len(res.Textures))
	for i, t := range res.Textures {
		samplers[i] = t.Sampler
	}

	program, err := graphics.LoadProgram(r.device, res.VertexShader, res.FragmentShader, res.Layout, samplers...)
	if err != nil {
		return fmt.Errorf("build shader program: %w", err)
	}
	r.program = program

	for _, d := range drawables {
		r.meshes = append(r.meshes, r.upload(d))
	}
	r.device.BindVertexArray(0)

	r.textures = graphics.NewTextureCache(r.device)
	r.program.Use()
	for unit, spec := range res.Textures {
		tex, err := r.textures.Get(spec)
		if err != nil {
			return fmt.Errorf("load texture %d: %w", unit, err)
		}
		r.units = append(r.units, tex)
		r.program.SetSampler(unit, int32(unit))
	}
	return nil
}

func (r *Renderer) upload(d *scene.Drawable) mesh {
	m := mesh{
		drawable: d,
		vao:      r.device.CreateVertexArray(),
		count:    d.VertexCount(),
	}
	r.device.BindVertexArray(m.vao)

	m.vbo = r.device.CreateBuffer()
	r.device.BufferVertices(m.vbo, d.Vertices())

	layout := r.program.Layout()
	for _, a := range layout.Attributes() {
		loc, _ := r.program.AttributeLocation(a)
		offset, _ := layout.Offset(a)
		r.device.VertexAttribPointer(loc, a.Components(), layout.Stride(), offset)
	}
	return m
}

// Render clears the frame and draws every mesh with the given projection and view.
// Each mesh is drawn with its drawable's model matrix.
func (r *Renderer) Render(projection, view mgl32.Mat4) error {
	if r.state != StateReady {
		return ErrNotReady
	}

	r.device.Clear()
	r.program.Use()

	for unit, tex := range r.units {
		tex.Bind(uint32(unit))
	}

	r.program.SetMatrix4(graphics.UniformView, view)
	r.program.SetMatrix4(graphics.UniformProjection, projection)

	for _, m := range r.meshes {
		r.program.SetMatrix4(graphics.UniformModel, m.drawable.Model())
		r.device.BindVertexArray(m.vao)
		r.device.DrawArrays(0, m.count)
	}
	r.device.BindVertexArray(0)
	return nil
}

// PolygonMode returns the current rasterisation mode
func (r *Renderer) PolygonMode() graphics.PolygonMode {
	return r.opts.PolygonMode
}

// SetPolygonMode changes the rasterisation mode
func (r *Renderer) SetPolygonMode(mode graphics.PolygonMode) {
	r.opts.PolygonMode = mode
	if r.state == StateReady {
		r.device.PolygonMode(mode)
	}
}

// TogglePolygonMode cycles fill, line and point modes
func (r *Renderer) TogglePolygonMode() graphics.PolygonMode {
	r.SetPolygonMode(r.opts.PolygonMode.Next())
	return r.opts.PolygonMode
}

// SetViewport updates the viewport dimensions
func (r *Renderer) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.opts.Width, r.opts.Height = width, height
	if r.state == StateReady {
		r.device.Viewport(width, height)
	}
}

// AspectRatio returns viewport width over height
func (r *Renderer) AspectRatio() float32 {
	return float32(r.opts.Width) / float32(r.opts.Height)
}

// Meshes returns the number of meshes uploaded at Init
func (r *Renderer) Meshes() int {
	return len(r.meshes)
}

// Shutdown releases every device object and returns the renderer to the
// uninitialized state. It is safe to call more than once.
func (r *Renderer) Shutdown() {
	r.release()
	r.state = StateUninitialized
}

func (r *Renderer) release() {
	// Dispose in reverse order of creation
	if r.textures != nil {
		r.textures.Release()
		r.textures = nil
	}
	r.units = nil

	for i := len(r.meshes) - 1; i >= 0; i-- {
		r.device.DeleteBuffer(r.meshes[i].vbo)
		r.device.DeleteVertexArray(r.meshes[i].vao)
	}
	r.meshes = nil

	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
}
