package graphics

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ShaderStage identifies a programmable pipeline stage
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return fmt.Sprintf("ShaderStage(%d)", int(s))
}

// TextureFormat is the channel layout of uploaded pixel data
type TextureFormat int

const (
	FormatRGBA TextureFormat = iota
	FormatRGB
)

// Channels returns the number of bytes per pixel
func (f TextureFormat) Channels() int {
	if f == FormatRGB {
		return 3
	}
	return 4
}

func (f TextureFormat) String() string {
	if f == FormatRGB {
		return "rgb"
	}
	return "rgba"
}

// ParseTextureFormat parses "rgb" or "rgba" (case-insensitive)
func ParseTextureFormat(s string) (TextureFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rgb":
		return FormatRGB, nil
	case "rgba", "":
		return FormatRGBA, nil
	}
	return FormatRGBA, fmt.Errorf("unknown texture format %q", s)
}

// PolygonMode selects how triangles are rasterised
type PolygonMode int

const (
	PolygonFill PolygonMode = iota
	PolygonLine
	PolygonPoint
)

func (m PolygonMode) String() string {
	switch m {
	case PolygonLine:
		return "line"
	case PolygonPoint:
		return "point"
	}
	return "fill"
}

// Next cycles fill -> line -> point -> fill
func (m PolygonMode) Next() PolygonMode {
	return (m + 1) % 3
}

// ParsePolygonMode parses "fill", "line" or "point"
func ParsePolygonMode(s string) (PolygonMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fill", "":
		return PolygonFill, nil
	case "line":
		return PolygonLine, nil
	case "point":
		return PolygonPoint, nil
	}
	return PolygonFill, fmt.Errorf("unknown polygon mode %q", s)
}

// Device is the subset of the graphics API the renderer drives. Every method must be
// called from the goroutine that owns the current context.
type Device interface {
	// CompileShader compiles one stage. Failures wrap ErrCompile and carry the info log.
	CompileShader(stage ShaderStage, source string) (uint32, error)
	// LinkProgram links compiled stages. Failures wrap ErrLink and carry the info log.
	LinkProgram(shaders ...uint32) (uint32, error)
	DeleteShader(shader uint32)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	// AttribLocation and UniformLocation return -1 when the name is not active.
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32
	UniformMatrix4(location int32, m mgl32.Mat4)
	Uniform1i(location int32, v int32)

	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	CreateBuffer() uint32
	// BufferVertices binds vbo as the array buffer and uploads data into it.
	BufferVertices(vbo uint32, data []float32)
	DeleteBuffer(vbo uint32)
	// VertexAttribPointer enables the attribute and points it at the bound array
	// buffer. Stride and offset are in bytes.
	VertexAttribPointer(index uint32, components int32, stride int32, offset int)

	CreateTexture(format TextureFormat, width, height int, pixels []uint8) uint32
	// BindTexture activates the texture unit and binds a 2D texture to it.
	BindTexture(unit uint32, texture uint32)
	DeleteTexture(texture uint32)

	ClearColor(r, g, b, a float32)
	Clear()
	EnableDepthTest()
	PolygonMode(mode PolygonMode)
	Viewport(width, height int)
	DrawArrays(first, count int32)
}
