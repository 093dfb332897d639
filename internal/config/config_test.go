package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"cube-demo/internal/config"
	"cube-demo/internal/graphics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	s := config.Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, graphics.LayoutPositionTexture, s.VertexLayout())
	assert.Equal(t, graphics.PolygonLine, s.PolygonMode())
	assert.Equal(t, [4]float32{0, 0, 0, 1}, s.Render.ClearColour)
	assert.Equal(t, [3]float32{0, 1, 0}, s.Camera.WorldUp)

	specs := s.TextureSpecs()
	require.Len(t, specs, 2)
	assert.Equal(t, graphics.FormatRGB, specs[0].Format)
	assert.Equal(t, "texture2", specs[1].Sampler)
	assert.True(t, specs[1].FlipVertically)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	s, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), s)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "debug"

[window]
title = "cubes"
fps_limit = 144

[camera]
position = [1.0, 2.0, 5.0]
movement_speed = 4.0

[render]
polygon_mode = "fill"

[[render.textures]]
path = "assets/textures/wall.jpg"
sampler = "texture1"
format = "rgb"
`), 0o644))

	s, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "cubes", s.Window.Title)
	assert.Equal(t, 144, s.Window.FPSLimit)
	assert.Equal(t, 800, s.Window.Width, "unset keys keep defaults")
	assert.Equal(t, [3]float32{1, 2, 5}, s.Camera.Position)
	assert.Equal(t, float32(4), s.Camera.MovementSpeed)
	assert.Equal(t, float32(0.1), s.Camera.MouseSensitivity)
	assert.Equal(t, graphics.PolygonFill, s.PolygonMode())

	require.Len(t, s.Render.Textures, 1)
	assert.Equal(t, "assets/textures/wall.jpg", s.Render.Textures[0].Path)
	assert.False(t, s.Render.Textures[0].Flip)

	level, err := config.ParseLogLevel(s.LogLevel)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"size":     "[window]\nwidth = 0\n",
		"planes":   "[camera]\nnear = 10.0\nfar = 1.0\n",
		"zoom":     "[camera]\nzoom = 90.0\n",
		"world_up": "[camera]\nworld_up = [0.0, 0.0, 0.0]\n",
		"layout":   "[render]\nlayout = \"normals\"\n",
		"mode":     "[render]\npolygon_mode = \"wire\"\n",
		"level":    "log_level = \"chatty\"\n",
		"texture":  "[[render.textures]]\npath = \"a.png\"\n",
		"syntax":   "[window\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := config.Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "none.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExampleSettingsFile(t *testing.T) {
	s, err := config.Load(filepath.Join("..", "..", "assets", "demo.toml"))
	require.NoError(t, err)

	assert.Equal(t, "Cube Demo", s.Window.Title)
	assert.Equal(t, 144, s.Window.FPSLimit)
	assert.Equal(t, [3]float32{0, 0.5, 4}, s.Camera.Position)
	// unset camera fields keep their defaults
	assert.Equal(t, float32(-90), s.Camera.Yaw)
	assert.Len(t, s.TextureSpecs(), 2)

	level, err := config.ParseLogLevel(s.LogLevel)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	// the shipped assets exist relative to the module root
	for _, p := range []string{s.Render.VertexShader, s.Render.FragmentShader, s.Render.Textures[0].Path, s.Render.Textures[1].Path} {
		_, err := os.Stat(filepath.Join("..", "..", p))
		assert.NoError(t, err, p)
	}
}
