package graphics

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GLDevice implements Device on top of the OpenGL 4.1 core bindings.
// gl.Init must have been called with a current context before use.
type GLDevice struct{}

var _ Device = GLDevice{}

// NewGLDevice returns a device bound to the current OpenGL context
func NewGLDevice() GLDevice {
	return GLDevice{}
}

func (GLDevice) CompileShader(stage ShaderStage, source string) (uint32, error) {
	var shaderType uint32
	switch stage {
	case StageVertex:
		shaderType = gl.VERTEX_SHADER
	case StageFragment:
		shaderType = gl.FRAGMENT_SHADER
	default:
		return 0, fmt.Errorf("%w: unsupported stage %v", ErrCompile, stage)
	}

	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("%w: %s stage: %s", ErrCompile, stage, strings.TrimRight(log, "\x00\n"))
	}
	return shader, nil
}

func (GLDevice) LinkProgram(shaders ...uint32) (uint32, error) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("%w: %s", ErrLink, strings.TrimRight(log, "\x00\n"))
	}
	for _, s := range shaders {
		gl.DetachShader(program, s)
	}
	return program, nil
}

func (GLDevice) DeleteShader(shader uint32)   { gl.DeleteShader(shader) }
func (GLDevice) DeleteProgram(program uint32) { gl.DeleteProgram(program) }
func (GLDevice) UseProgram(program uint32)    { gl.UseProgram(program) }

func (GLDevice) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (GLDevice) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (GLDevice) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (GLDevice) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (GLDevice) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (GLDevice) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (GLDevice) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (GLDevice) CreateBuffer() uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return vbo
}

func (GLDevice) BufferVertices(vbo uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (GLDevice) DeleteBuffer(vbo uint32) { gl.DeleteBuffers(1, &vbo) }

func (GLDevice) VertexAttribPointer(index uint32, components int32, stride int32, offset int) {
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointer(index, components, gl.FLOAT, false, stride, gl.PtrOffset(offset))
}

func (GLDevice) CreateTexture(format TextureFormat, width, height int, pixels []uint8) uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	glFormat := int32(gl.RGBA)
	if format == FormatRGB {
		glFormat = gl.RGB
		// rows of 3-byte pixels are not 4-byte aligned in general
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	}

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		glFormat,
		int32(width),
		int32(height),
		0,
		uint32(glFormat),
		gl.UNSIGNED_BYTE,
		gl.Ptr(pixels),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	if format == FormatRGB {
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return texture
}

func (GLDevice) BindTexture(unit uint32, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (GLDevice) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

func (GLDevice) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (GLDevice) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (GLDevice) EnableDepthTest() { gl.Enable(gl.DEPTH_TEST) }

func (GLDevice) PolygonMode(mode PolygonMode) {
	switch mode {
	case PolygonLine:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	case PolygonPoint:
		gl.PointSize(4)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.POINT)
	default:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (GLDevice) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (GLDevice) DrawArrays(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}
