package renderer_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"cube-demo/internal/graphics"
	"cube-demo/internal/graphics/graphicstest"
	"cube-demo/internal/graphics/renderer"
	"cube-demo/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertexSrc = `#version 330 core
in vec3 position;
in vec2 texture;
out vec2 uv;
uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;
void main() {
	gl_Position = projection * view * model * vec4(position, 1.0);
	uv = texture;
}
`

const fragmentSrc = `#version 330 core
in vec2 uv;
out vec4 FragColor;
uniform sampler2D texture1;
void main() {
	FragColor = texture(texture1, uv);
}
`

func writeAssets(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	vs := filepath.Join(dir, "cube.vert")
	fs := filepath.Join(dir, "cube.frag")
	tex := filepath.Join(dir, "container.png")
	require.NoError(t, os.WriteFile(vs, []byte(vertexSrc), 0o644))
	require.NoError(t, os.WriteFile(fs, []byte(fragmentSrc), 0o644))

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(tex, buf.Bytes(), 0o644))
	return vs, fs, tex
}

func resources(t *testing.T) renderer.Resources {
	vs, fs, tex := writeAssets(t)
	return renderer.Resources{
		VertexShader:   vs,
		FragmentShader: fs,
		Layout:         graphics.LayoutPositionTexture,
		Textures: []graphics.TextureSpec{
			{Path: tex, Sampler: "texture1", Format: graphics.FormatRGB, FlipVertically: true},
		},
	}
}

func TestInitTransitionsToReady(t *testing.T) {
	dev := graphicstest.NewDevice(graphics.LayoutPositionTexture, "texture1")
	r := renderer.New(dev, renderer.DefaultOptions())
	assert.Equal(t, renderer.StateUninitialized, r.State())

	w := scene.New()
	require.NoError(t, r.Init(w, resources(t)))

	assert.Equal(t, renderer.StateReady, r.State())
	assert.Equal(t, 1, r.Meshes())
	assert.Equal(t, 0, w.Len(), "Init consumes the world")

	assert.Equal(t, 1, dev.LiveCount("vao"))
	assert.Equal(t, 1, dev.LiveCount("buffer"))
	assert.Equal(t, 1, dev.LiveCount("texture"))
	assert.Equal(t, 1, dev.LiveCount("program"))
	assert.Equal(t, 1, dev.Count("EnableDepthTest"))

	// one vertex buffer holding the 36 interleaved cube vertices
	for _, data := range dev.Buffers {
		assert.Len(t, data, 36*5)
	}
}

func TestInitConfiguresAttributes(t *testing.T) {
	dev := graphicstest.NewDevice(graphics.LayoutPositionTexture, "texture1")
	r := renderer.New(dev, renderer.DefaultOptions())
	require.NoError(t, r.Init(scene.New(), resources(t)))

	var ptrs []graphicstest.Call
	for _, c := range dev.Calls {
		if c.Name == "VertexAttribPointer" {
			ptrs = append(ptrs, c)
		}
	}
	require.Len(t, ptrs, 2)
	// position: location 0, 3 floats, stride 20, offset 0
	assert.Equal(t, []any{uint32(0), int32(3), int32(20), 0}, ptrs[0].Args)
	// texture: location 1, 2 floats, stride 20, offset 12
	assert.Equal(t, []any{uint32(1), int32(2), int32(20), 12}, ptrs[1].Args)

	// sampler texture1 (location 3) bound to unit 0
	var samplerSet bool
	for _, c := range dev.Calls {
		if c.Name == "Uniform1i" {
			assert.Equal(t, []any{int32(3), int32(0)}, c.Args)
			samplerSet = true
		}
	}
	assert.True(t, samplerSet)
}

func TestRenderBeforeInit(t *testing.T) {
	dev := graphicstest.NewDevice(graphics.LayoutPositionTexture)
	r := renderer.New(dev, renderer.DefaultOptions())

	err := r.Render(mgl32.Ident4(), mgl32.Ident4())
	assert.ErrorIs(t, err, renderer.ErrNotReady)
	assert.Empty(t, dev.Calls)
}

func TestRenderSequence(t *testing.T) {
	dev := graphicstest.NewDevice(graphics.LayoutPositionTexture, "texture1")
	r := renderer.New(dev, renderer.DefaultOptions())

	w := scene.New()
	w.Add(scene.NewCube(mgl32.Vec3{2, 0, -1}))
	require.NoError(t, r.Init(w, resources(t)))
	dev.Reset()

	proj := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	require.NoError(t, r.Render(proj, view))

	assert.Equal(t, []string{
		"Clear",
		"UseProgram",
		"BindTexture",
		"UniformMatrix4", // view
		"UniformMatrix4", // projection
		"UniformMatrix4", // model, cube 1
		"BindVertexArray",
		"DrawArrays",
		"UniformMatrix4", // model, cube 2
		"BindVertexArray",
		"DrawArrays",
		"BindVertexArray",
	}, dev.Names())

	for _, c := range dev.Calls {
		if c.Name == "DrawArrays" {
			assert.Equal(t, []any{int32(0), int32(36)}, c.Args)
		}
	}

	assert.Equal(t, view, dev.UniformValues[0])
	assert.Equal(t, proj, dev.UniformValues[1])
	// the last model pushed is the second cube's translation
	assert.Equal(t, mgl32.Translate3D(2, 0, -1), dev.UniformValues[2])
}

func TestRenderSeesAnchorChanges(t *testing.T) {
	dev := graphicstest.NewDevice(graphics.LayoutPositionTexture, "texture1")
	r := renderer.New(dev, renderer.DefaultOptions())

	w := scene.New()
	cube := w.Drawables()[0]
	require.NoError(t, r.Init(w, resources(t)))

	cube.SetAnchor(mgl32.Vec3{0, 1, 0})
	require.NoError(t, r.Render(mgl32.Ident4(), mgl32.Ident4()))
	assert.Equal(t, mgl32.Translate3D(0, 1, 0), dev.UniformValues[2])
}

func TestInitMissingShaderFile(t *testing.T) {
	dev := graphicstest.NewDevice(graphics.LayoutPositionTexture, "texture1")
	r := renderer.New(dev, renderer.DefaultOptions())

	res := resources(t)
	res.FragmentShader = filepath.Join(t.TempDir(), "missing.frag")

	err := r.Init(scene.New(), res)
	assert.ErrorIs(t, err, graphics.ErrResourceLoad)
	assert.Equal(t, renderer.StateUninitialized, r.State())
}

func TestInitMissingTextureReleasesEverything(t *testing.T) {
	dev := graphicstest.NewDevice(graphics.LayoutPositionTexture, "texture1")
	r := renderer.New(dev, renderer.DefaultOptions())

	res := resources(t)
	res.Textures[0].Path = filepath.Join(t.TempDir(), "missing.png")

	err := r.Init(scene.New(), res)
	assert.ErrorIs(t, err, graphics.ErrResourceLoad)
	assert.Equal(t, renderer.StateUninitialized, r.State())
	assert.Equal(t, 0, dev.LiveCount("vao"))
	assert.Equal(t, 0, dev.LiveCount("buffer"))
	assert.Equal(t, 0, dev.LiveCount("program"))
}

func TestInitLayoutMismatch(t *testing.T) {
	dev := graphicstest.NewDevice(graphics.LayoutPositionTexture, "texture1")
	r := renderer.New(dev, renderer.DefaultOptions())

	w := scene.NewEmpty()
	w.Add(scene.NewCube(mgl32.Vec3{}, scene.WithColour(1, 0, 0)))

	err := r.Init(w, resources(t))
	assert.ErrorIs(t, err, graphics.ErrBinding)
	assert.Equal(t, 0, dev.Count("CompileShader"))
	assert.Equal(t, 1, w.Len(), "a rejected world keeps its drawables")
}

func TestInitNilWorld(t *testing.T) {
	dev := graphicstest.NewDevice(graphics.LayoutPositionTexture, "texture1")
	r := renderer.New(dev, renderer.DefaultOptions())

	assert.Error(t, r.Init(nil, resources(t)))
	assert.Equal(t, renderer.StateUninitialized, r.State())
	assert.Empty(t, dev.Calls)
}

func TestInitMissingSampler(t *testing.T) {
	// the device knows no sampler names at all
	dev := graphicstest.NewDevice(graphics.LayoutPositionTexture)
	r := renderer.New(dev, renderer.DefaultOptions())

	err := r.Init(scene.New(), resources(t))
	assert.ErrorIs(t, err, graphics.ErrBinding)
	assert.Equal(t, renderer.StateUninitialized, r.State())
}

func TestShutdown(t *testing.T) {
	dev := graphicstest.NewDevice(graphics.LayoutPositionTexture, "texture1")
	r := renderer.New(dev, renderer.DefaultOptions())
	require.NoError(t, r.Init(scene.New(), resources(t)))

	r.Shutdown()
	assert.Equal(t, renderer.StateUninitialized, r.State())
	for _, kind := range []string{"vao", "buffer", "texture", "program"} {
		assert.Equal(t, 0, dev.LiveCount(kind), kind)
	}

	deletes := dev.Count("DeleteProgram")
	r.Shutdown()
	assert.Equal(t, deletes, dev.Count("DeleteProgram"))
	assert.ErrorIs(t, r.Render(mgl32.Ident4(), mgl32.Ident4()), renderer.ErrNotReady)
}

func TestPolygonModeAndViewport(t *testing.T) {
	dev := graphicstest.NewDevice(graphics.LayoutPositionTexture, "texture1")
	opts := renderer.DefaultOptions()
	opts.PolygonMode = graphics.PolygonLine
	r := renderer.New(dev, opts)

	// not applied before Init
	r.SetViewport(1024, 512)
	assert.Equal(t, 0, dev.Count("Viewport"))
	assert.InDelta(t, 2.0, r.AspectRatio(), 1e-6)

	require.NoError(t, r.Init(scene.New(), resources(t)))
	assert.Contains(t, dev.Calls, graphicstest.Call{Name: "PolygonMode", Args: []any{graphics.PolygonLine}})
	assert.Contains(t, dev.Calls, graphicstest.Call{Name: "Viewport", Args: []any{1024, 512}})

	assert.Equal(t, graphics.PolygonPoint, r.TogglePolygonMode())
	assert.Equal(t, graphics.PolygonFill, r.TogglePolygonMode())
	assert.Equal(t, graphics.PolygonFill, r.PolygonMode())

	r.SetViewport(0, 10)
	assert.InDelta(t, 2.0, r.AspectRatio(), 1e-6)
}
