// Package graphicstest provides an in-memory graphics.Device that records the calls
// made against it, for tests that run without a GL context.
package graphicstest

import (
	"fmt"
	"strings"

	"cube-demo/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// Call is one recorded device call
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Device records calls and hands out increasing object names starting at 1.
// Attribute and uniform names resolve to locations when they appear in the
// Attributes or Uniforms maps; anything else resolves to -1 like a real driver.
type Device struct {
	Calls []Call

	Attributes map[string]int32
	Uniforms   map[string]int32

	// CompileErr and LinkErr, when set, are returned by the matching call
	CompileErr map[graphics.ShaderStage]error
	LinkErr    error

	// Live tracks objects created and not yet deleted, keyed by kind
	Live map[string]map[uint32]bool

	// UniformValues holds the last matrix pushed per location
	UniformValues map[int32]mgl32.Mat4
	// Buffers holds the last data uploaded per buffer
	Buffers map[uint32][]float32

	next uint32
}

var _ graphics.Device = (*Device)(nil)

// NewDevice returns a fake that resolves the standard uniforms, the given samplers
// and the attributes of layout.
func NewDevice(layout graphics.VertexLayout, samplers ...string) *Device {
	d := &Device{
		Attributes:    map[string]int32{},
		Uniforms:      map[string]int32{"view": 0, "projection": 1, "model": 2},
		CompileErr:    map[graphics.ShaderStage]error{},
		Live:          map[string]map[uint32]bool{},
		UniformValues: map[int32]mgl32.Mat4{},
		Buffers:       map[uint32][]float32{},
	}
	for i, s := range samplers {
		d.Uniforms[s] = int32(3 + i)
	}
	for i, a := range layout.Attributes() {
		d.Attributes[a.Name()] = int32(i)
	}
	return d
}

func (d *Device) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Device) create(kind string) uint32 {
	d.next++
	if d.Live[kind] == nil {
		d.Live[kind] = map[uint32]bool{}
	}
	d.Live[kind][d.next] = true
	return d.next
}

func (d *Device) release(kind string, id uint32) {
	delete(d.Live[kind], id)
}

// LiveCount returns the number of undeleted objects of a kind
func (d *Device) LiveCount(kind string) int {
	return len(d.Live[kind])
}

// Count returns how many times the named call was recorded
func (d *Device) Count(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Names returns the recorded call names in order
func (d *Device) Names() []string {
	names := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		names[i] = c.Name
	}
	return names
}

// Reset forgets recorded calls but keeps object state
func (d *Device) Reset() {
	d.Calls = nil
}

func (d *Device) CompileShader(stage graphics.ShaderStage, source string) (uint32, error) {
	d.record("CompileShader", stage)
	if err := d.CompileErr[stage]; err != nil {
		return 0, err
	}
	return d.create("shader"), nil
}

func (d *Device) LinkProgram(shaders ...uint32) (uint32, error) {
	d.record("LinkProgram", len(shaders))
	if d.LinkErr != nil {
		return 0, d.LinkErr
	}
	return d.create("program"), nil
}

func (d *Device) DeleteShader(shader uint32) {
	d.record("DeleteShader", shader)
	d.release("shader", shader)
}

func (d *Device) DeleteProgram(program uint32) {
	d.record("DeleteProgram", program)
	d.release("program", program)
}

func (d *Device) UseProgram(program uint32) { d.record("UseProgram", program) }

func (d *Device) AttribLocation(program uint32, name string) int32 {
	d.record("AttribLocation", name)
	if loc, ok := d.Attributes[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.record("UniformLocation", name)
	if loc, ok := d.Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) UniformMatrix4(location int32, m mgl32.Mat4) {
	d.record("UniformMatrix4", location)
	d.UniformValues[location] = m
}

func (d *Device) Uniform1i(location int32, v int32) { d.record("Uniform1i", location, v) }

func (d *Device) CreateVertexArray() uint32 {
	d.record("CreateVertexArray")
	return d.create("vao")
}

func (d *Device) BindVertexArray(vao uint32) { d.record("BindVertexArray", vao) }

func (d *Device) DeleteVertexArray(vao uint32) {
	d.record("DeleteVertexArray", vao)
	d.release("vao", vao)
}

func (d *Device) CreateBuffer() uint32 {
	d.record("CreateBuffer")
	return d.create("buffer")
}

func (d *Device) BufferVertices(vbo uint32, data []float32) {
	d.record("BufferVertices", vbo, len(data))
	d.Buffers[vbo] = append([]float32(nil), data...)
}

func (d *Device) DeleteBuffer(vbo uint32) {
	d.record("DeleteBuffer", vbo)
	d.release("buffer", vbo)
}

func (d *Device) VertexAttribPointer(index uint32, components int32, stride int32, offset int) {
	d.record("VertexAttribPointer", index, components, stride, offset)
}

func (d *Device) CreateTexture(format graphics.TextureFormat, width, height int, pixels []uint8) uint32 {
	d.record("CreateTexture", format, width, height)
	return d.create("texture")
}

func (d *Device) BindTexture(unit uint32, texture uint32) { d.record("BindTexture", unit, texture) }

func (d *Device) DeleteTexture(texture uint32) {
	d.record("DeleteTexture", texture)
	d.release("texture", texture)
}

func (d *Device) ClearColor(r, g, b, a float32) { d.record("ClearColor", r, g, b, a) }
func (d *Device) Clear()                        { d.record("Clear") }
func (d *Device) EnableDepthTest()              { d.record("EnableDepthTest") }
func (d *Device) PolygonMode(mode graphics.PolygonMode) {
	d.record("PolygonMode", mode)
}
func (d *Device) Viewport(width, height int)    { d.record("Viewport", width, height) }
func (d *Device) DrawArrays(first, count int32) { d.record("DrawArrays", first, count) }
