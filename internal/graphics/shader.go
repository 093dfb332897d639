package graphics

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniform is one of the fixed matrix uniforms every program must declare
type Uniform int

const (
	UniformView Uniform = iota
	UniformProjection
	UniformModel
	uniformCount
)

var uniformNames = [uniformCount]string{
	UniformView:       "view",
	UniformProjection: "projection",
	UniformModel:      "model",
}

// Name returns the shader variable name of the uniform
func (u Uniform) Name() string {
	if u < 0 || u >= uniformCount {
		return ""
	}
	return uniformNames[u]
}

// Program is a linked shader program with every location it needs resolved once
// after link.
type Program struct {
	ID uint32

	device     Device
	layout     VertexLayout
	uniforms   [uniformCount]int32
	attributes [attributeCount]int32
	samplers   []int32
}

// LoadProgram reads vertex and fragment sources from disk and builds a program
func LoadProgram(device Device, vertexPath, fragmentPath string, layout VertexLayout, samplers ...string) (*Program, error) {
	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read vertex shader file: %v", ErrResourceLoad, err)
	}

	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read fragment shader file: %v", ErrResourceLoad, err)
	}

	return NewProgram(device, string(vertexSource), string(fragmentSource), layout, samplers...)
}

// NewProgram compiles and links the two stages and resolves the locations of the
// matrix uniforms, the named samplers and every attribute of layout. A name that
// does not resolve is an error: the program is deleted and ErrBinding returned.
func NewProgram(device Device, vertexSrc, fragmentSrc string, layout VertexLayout, samplers ...string) (*Program, error) {
	vs, err := device.CompileShader(StageVertex, vertexSrc)
	if err != nil {
		return nil, err
	}
	fs, err := device.CompileShader(StageFragment, fragmentSrc)
	if err != nil {
		device.DeleteShader(vs)
		return nil, err
	}

	id, err := device.LinkProgram(vs, fs)
	device.DeleteShader(vs)
	device.DeleteShader(fs)
	if err != nil {
		return nil, err
	}

	p := &Program{
		ID:       id,
		device:   device,
		layout:   layout,
		samplers: make([]int32, len(samplers)),
	}
	for i := range p.attributes {
		p.attributes[i] = -1
	}

	if err := p.resolve(samplers); err != nil {
		device.DeleteProgram(id)
		return nil, err
	}
	return p, nil
}

func (p *Program) resolve(samplers []string) error {
	for u := Uniform(0); u < uniformCount; u++ {
		loc := p.device.UniformLocation(p.ID, u.Name())
		if loc < 0 {
			return fmt.Errorf("%w: uniform %q not found in program", ErrBinding, u.Name())
		}
		p.uniforms[u] = loc
	}

	for i, name := range samplers {
		loc := p.device.UniformLocation(p.ID, name)
		if loc < 0 {
			return fmt.Errorf("%w: sampler %q not found in program", ErrBinding, name)
		}
		p.samplers[i] = loc
	}

	for _, a := range p.layout.Attributes() {
		loc := p.device.AttribLocation(p.ID, a.Name())
		if loc < 0 {
			return fmt.Errorf("%w: attribute %q not found in program (layout %s)", ErrBinding, a.Name(), p.layout)
		}
		p.attributes[a] = loc
	}
	return nil
}

// Use activates the shader program
func (p *Program) Use() {
	p.device.UseProgram(p.ID)
}

// Layout returns the vertex layout the program was linked against
func (p *Program) Layout() VertexLayout {
	return p.layout
}

// SetMatrix4 sets one of the fixed matrix uniforms
func (p *Program) SetMatrix4(u Uniform, m mgl32.Mat4) {
	p.device.UniformMatrix4(p.uniforms[u], m)
}

// SetSampler points the i-th named sampler at a texture unit
func (p *Program) SetSampler(i int, unit int32) {
	p.device.Uniform1i(p.samplers[i], unit)
}

// Samplers returns the number of samplers resolved at link time
func (p *Program) Samplers() int {
	return len(p.samplers)
}

// AttributeLocation returns the cached location of an attribute in the layout
func (p *Program) AttributeLocation(a Attribute) (uint32, bool) {
	if !p.layout.Has(a) || p.attributes[a] < 0 {
		return 0, false
	}
	return uint32(p.attributes[a]), true
}

// Delete releases the program
func (p *Program) Delete() {
	if p.ID == 0 {
		return
	}
	p.device.DeleteProgram(p.ID)
	p.ID = 0
}
