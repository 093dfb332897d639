package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cube-demo/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// Settings is the full demo configuration. Zero-valued fields in a settings file
// keep their defaults.
type Settings struct {
	LogLevel string         `toml:"log_level"`
	Window   WindowSettings `toml:"window"`
	Camera   CameraSettings `toml:"camera"`
	Render   RenderSettings `toml:"render"`
}

// WindowSettings holds window and frame pacing configuration
type WindowSettings struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
	// FPSLimit caps the frame rate; 0 means uncapped
	FPSLimit int `toml:"fps_limit"`
}

// CameraSettings holds the initial camera state and clip planes
type CameraSettings struct {
	Position         [3]float32 `toml:"position"`
	WorldUp          [3]float32 `toml:"world_up"`
	Yaw              float32    `toml:"yaw"`
	Pitch            float32    `toml:"pitch"`
	Zoom             float32    `toml:"zoom"`
	MovementSpeed    float32    `toml:"movement_speed"`
	MouseSensitivity float32    `toml:"mouse_sensitivity"`
	Near             float32    `toml:"near"`
	Far              float32    `toml:"far"`
}

// RenderSettings names the shader pair, its vertex layout and the textures
type RenderSettings struct {
	VertexShader   string            `toml:"vertex_shader"`
	FragmentShader string            `toml:"fragment_shader"`
	Layout         string            `toml:"layout"`
	PolygonMode    string            `toml:"polygon_mode"`
	ClearColour    [4]float32        `toml:"clear_colour"`
	Textures       []TextureSettings `toml:"textures"`
}

// TextureSettings describes one texture asset
type TextureSettings struct {
	Path    string `toml:"path"`
	Sampler string `toml:"sampler"`
	Format  string `toml:"format"`
	Flip    bool   `toml:"flip"`
}

// Default returns the built-in configuration
func Default() Settings {
	return Settings{
		LogLevel: "info",
		Window: WindowSettings{
			Title:    "OpenGL Demo",
			Width:    800,
			Height:   600,
			VSync:    true,
			FPSLimit: 0,
		},
		Camera: CameraSettings{
			Position:         [3]float32{0, 0, 3},
			WorldUp:          [3]float32{0, 1, 0},
			Yaw:              -90,
			Pitch:            0,
			Zoom:             45,
			MovementSpeed:    2.5,
			MouseSensitivity: 0.1,
			Near:             0.1,
			Far:              100,
		},
		Render: RenderSettings{
			VertexShader:   "assets/shaders/cube.vert",
			FragmentShader: "assets/shaders/cube.frag",
			Layout:         graphics.LayoutPositionTexture.String(),
			PolygonMode:    graphics.PolygonLine.String(),
			ClearColour:    [4]float32{0, 0, 0, 1},
			Textures: []TextureSettings{
				{Path: "assets/textures/container.png", Sampler: "texture1", Format: "rgb", Flip: true},
				{Path: "assets/textures/face.png", Sampler: "texture2", Format: "rgba", Flip: true},
			},
		},
	}
}

// Load reads a TOML settings file over the defaults. An empty path returns the
// defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := Parse(data, &s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes TOML data into s and validates the result
func Parse(data []byte, s *Settings) error {
	// a texture list in the file replaces the current one rather than merging
	// into it element by element
	textures := s.Render.Textures
	s.Render.Textures = nil

	if err := toml.Unmarshal(data, s); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("parse settings at %d:%d: %w", row, col, err)
		}
		return fmt.Errorf("parse settings: %w", err)
	}
	if s.Render.Textures == nil {
		s.Render.Textures = textures
	}
	return s.Validate()
}

// Validate checks ranges and enumerated values
func (s Settings) Validate() error {
	var errs []error
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", s.Window.Width, s.Window.Height))
	}
	if s.Window.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("fps_limit %d must not be negative", s.Window.FPSLimit))
	}
	if s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near {
		errs = append(errs, fmt.Errorf("clip planes near=%v far=%v must satisfy 0 < near < far", s.Camera.Near, s.Camera.Far))
	}
	if mgl32.Vec3(s.Camera.WorldUp).Len() == 0 {
		errs = append(errs, errors.New("camera world_up must not be the zero vector"))
	}
	if s.Camera.Zoom < 1 || s.Camera.Zoom > 45 {
		errs = append(errs, fmt.Errorf("camera zoom %v outside [1, 45]", s.Camera.Zoom))
	}
	if s.Render.VertexShader == "" || s.Render.FragmentShader == "" {
		errs = append(errs, errors.New("both vertex_shader and fragment_shader are required"))
	}
	if _, err := graphics.ParseVertexLayout(s.Render.Layout); err != nil {
		errs = append(errs, err)
	}
	if _, err := graphics.ParsePolygonMode(s.Render.PolygonMode); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseLogLevel(s.LogLevel); err != nil {
		errs = append(errs, err)
	}
	for i, t := range s.Render.Textures {
		if t.Path == "" || t.Sampler == "" {
			errs = append(errs, fmt.Errorf("texture %d needs both path and sampler", i))
		}
		if _, err := graphics.ParseTextureFormat(t.Format); err != nil {
			errs = append(errs, fmt.Errorf("texture %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// VertexLayout returns the parsed render layout. Validate must have passed.
func (s Settings) VertexLayout() graphics.VertexLayout {
	l, _ := graphics.ParseVertexLayout(s.Render.Layout)
	return l
}

// PolygonMode returns the parsed polygon mode. Validate must have passed.
func (s Settings) PolygonMode() graphics.PolygonMode {
	m, _ := graphics.ParsePolygonMode(s.Render.PolygonMode)
	return m
}

// TextureSpecs converts the texture list for the renderer
func (s Settings) TextureSpecs() []graphics.TextureSpec {
	specs := make([]graphics.TextureSpec, 0, len(s.Render.Textures))
	for _, t := range s.Render.Textures {
		format, _ := graphics.ParseTextureFormat(t.Format)
		specs = append(specs, graphics.TextureSpec{
			Path:           t.Path,
			Sampler:        t.Sampler,
			Format:         format,
			FlipVertically: t.Flip,
		})
	}
	return specs
}

// ParseLogLevel maps debug/info/warn/error onto slog levels
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
