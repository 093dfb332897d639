package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"

	"cube-demo/internal/app"
	"cube-demo/internal/camera"
	"cube-demo/internal/config"
	"cube-demo/internal/graphics"
	"cube-demo/internal/graphics/renderer"
	"cube-demo/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a TOML settings file")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load settings", "err", err)
		os.Exit(1)
	}
	level, _ := config.ParseLogLevel(settings.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	d := &demo{settings: settings, logger: logger, stopped: make(chan struct{})}

	// closer runs this on its own goroutine; GL teardown stays on the main thread
	closer.Bind(d.requestStop)

	err = d.run()
	d.teardown()
	if err != nil {
		logger.Error("demo failed", "err", err)
		closer.Exit(closer.ExitCodeErr)
	}
	closer.Close()
}

type demo struct {
	settings config.Settings
	logger   *slog.Logger

	window   *glfw.Window
	renderer *renderer.Renderer
	loop     atomic.Pointer[app.Loop]

	interrupted atomic.Bool
	stopped     chan struct{}
	glfwReady   bool
}

func (d *demo) requestStop() {
	d.interrupted.Store(true)
	if l := d.loop.Load(); l != nil {
		l.Stop()
	}
	<-d.stopped
}

func (d *demo) run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	d.glfwReady = true

	window, err := d.setupWindow()
	if err != nil {
		return err
	}
	d.window = window

	r, err := d.setupRenderer()
	if err != nil {
		return err
	}
	d.renderer = r

	state := app.NewState(d.newCamera())
	d.setupInputHandlers(state)

	cs := d.settings.Camera
	loop := app.NewLoop(glfwPlatform{window: window}, r, state, app.LoopOptions{
		Near:     cs.Near,
		Far:      cs.Far,
		FPSLimit: d.settings.Window.FPSLimit,
		Logger:   d.logger,
	})
	d.loop.Store(loop)
	if d.interrupted.Load() {
		return nil
	}
	return loop.Run()
}

func (d *demo) setupWindow() (*glfw.Window, error) {
	ws := d.settings.Window
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(ws.Width, ws.Height, ws.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	d.logger.Info("opengl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	if ws.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	return window, nil
}

func (d *demo) setupRenderer() (*renderer.Renderer, error) {
	rs := d.settings.Render
	fbw, fbh := d.window.GetFramebufferSize()

	r := renderer.New(graphics.NewGLDevice(), renderer.Options{
		ClearColour: mgl32.Vec4(rs.ClearColour),
		PolygonMode: d.settings.PolygonMode(),
		Width:       fbw,
		Height:      fbh,
	})
	err := r.Init(scene.New(), renderer.Resources{
		VertexShader:   rs.VertexShader,
		FragmentShader: rs.FragmentShader,
		Layout:         d.settings.VertexLayout(),
		Textures:       d.settings.TextureSpecs(),
	})
	if err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}
	d.logger.Info("renderer ready", "meshes", r.Meshes(), "layout", d.settings.VertexLayout())
	return r, nil
}

func (d *demo) newCamera() *camera.Camera {
	cs := d.settings.Camera
	return camera.New(mgl32.Vec3(cs.Position),
		camera.WithWorldUp(mgl32.Vec3(cs.WorldUp)),
		camera.WithAngles(cs.Yaw, cs.Pitch),
		camera.WithZoom(cs.Zoom),
		camera.WithSpeed(cs.MovementSpeed),
		camera.WithSensitivity(cs.MouseSensitivity),
	)
}

func (d *demo) setupInputHandlers(state *app.State) {
	state.Input.Attach(d.window)

	d.window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		state.HandleCursor(xpos, ypos)
	})
	d.window.SetCursorEnterCallback(func(w *glfw.Window, entered bool) {
		state.HandleCursorCapture(entered)
	})
	d.window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		state.HandleCursorCapture(focused)
	})
	d.window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		state.HandleScroll(yoff)
	})
	d.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		d.renderer.SetViewport(width, height)
	})
}

// teardown releases GPU resources, the window and GLFW in that order, then lets
// a pending requestStop return.
func (d *demo) teardown() {
	defer close(d.stopped)

	if d.renderer != nil {
		d.renderer.Shutdown()
	}
	if d.window != nil {
		d.window.Destroy()
	}
	if d.glfwReady {
		glfw.Terminate()
	}
	d.logger.Info("shutdown complete")
}
