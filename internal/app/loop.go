package app

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"cube-demo/internal/graphics"
	"cube-demo/internal/input"
	"cube-demo/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Platform is the window system seen by the loop
type Platform interface {
	ShouldClose() bool
	RequestClose()
	// PollEvents dispatches pending input callbacks
	PollEvents()
	SwapBuffers()
	// Time returns seconds since an arbitrary origin
	Time() float64
}

// FrameRenderer draws one frame
type FrameRenderer interface {
	Render(projection, view mgl32.Mat4) error
	AspectRatio() float32
	TogglePolygonMode() graphics.PolygonMode
}

// LoopOptions configures the loop
type LoopOptions struct {
	Near     float32
	Far      float32
	FPSLimit int
	Logger   *slog.Logger
}

// Loop drives input, render and present phases in strict order, one frame per Tick
type Loop struct {
	platform Platform
	renderer FrameRenderer
	state    *State
	opts     LoopOptions

	limiter  *FPSLimiter
	profiler *profiling.Profiler
	logger   *slog.Logger

	// stop is the only field touched from outside the loop goroutine
	stop atomic.Bool

	frames     int
	lastReport float64
}

// NewLoop wires a loop together
func NewLoop(p Platform, r FrameRenderer, s *State, opts LoopOptions) *Loop {
	if opts.Near <= 0 {
		opts.Near = 0.1
	}
	if opts.Far <= opts.Near {
		opts.Far = 100
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		platform: p,
		renderer: r,
		state:    s,
		opts:     opts,
		limiter:  NewFPSLimiter(opts.FPSLimit),
		profiler: profiling.New(),
		logger:   logger,
	}
}

// State returns the loop's application state
func (l *Loop) State() *State {
	return l.state
}

// Stop asks the loop to end after the current frame. Safe from any goroutine.
func (l *Loop) Stop() {
	l.stop.Store(true)
}

// Run ticks until the platform requests close or Stop is called
func (l *Loop) Run() error {
	l.logger.Info("render loop started")
	for !l.stop.Load() && !l.platform.ShouldClose() {
		if err := l.Tick(); err != nil {
			return err
		}
	}
	l.logger.Info("render loop finished")
	return nil
}

// Tick runs one frame: poll and apply input, render, present
func (l *Loop) Tick() error {
	l.profiler.ResetFrame()
	now := l.platform.Time()
	l.state.BeginFrame(now)

	func() {
		defer l.profiler.Track("loop.Input")()
		l.platform.PollEvents()
		l.applyInput()
	}()

	var err error
	func() {
		defer l.profiler.Track("loop.Render")()
		cam := l.state.Camera
		projection := cam.ProjectionMatrix(l.renderer.AspectRatio(), l.opts.Near, l.opts.Far)
		err = l.renderer.Render(projection, cam.ViewMatrix())
	}()
	if err != nil {
		return fmt.Errorf("render frame: %w", err)
	}

	func() { defer l.profiler.Track("loop.Swap")(); l.platform.SwapBuffers() }()

	l.state.Input.PostUpdate()
	l.report(now)
	l.limiter.Wait()
	return nil
}

func (l *Loop) applyInput() {
	in := l.state.Input
	if in.JustPressed(input.ActionQuit) {
		l.platform.RequestClose()
	}
	if in.JustPressed(input.ActionTogglePolygonMode) {
		mode := l.renderer.TogglePolygonMode()
		l.logger.Info("polygon mode changed", "mode", mode)
	}
	l.state.ApplyMovement()
}

func (l *Loop) report(now float64) {
	l.frames++
	if l.lastReport == 0 {
		l.lastReport = now
		return
	}
	if now-l.lastReport < 1 {
		return
	}
	cam := l.state.Camera
	l.logger.Debug("frame stats",
		"fps", l.frames,
		"phases", l.profiler.TopN(3),
		"position", cam.Position(),
		"yaw", cam.Yaw(),
		"pitch", cam.Pitch(),
		"zoom", cam.Zoom(),
	)
	l.frames = 0
	l.lastReport = now
}
