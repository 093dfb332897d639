package app

import (
	"cube-demo/internal/camera"
	"cube-demo/internal/input"
)

// State is everything the loop mutates between frames. It is owned by the loop
// and handed by pointer to the input callbacks, which run inside PollEvents.
type State struct {
	Camera *camera.Camera
	Input  *input.Manager
	Mouse  *input.MouseTracker

	// LastFrame is the platform time of the previous frame in seconds
	LastFrame float64
	// DeltaTime is the time between the last two frames in seconds
	DeltaTime float32

	started bool
}

// NewState wraps a camera with default key bindings and a fresh mouse tracker
func NewState(cam *camera.Camera) *State {
	return &State{
		Camera: cam,
		Input:  input.NewManager(),
		Mouse:  input.NewMouseTracker(),
	}
}

// BeginFrame records the frame time and returns the delta since the previous
// frame. The first frame has a zero delta.
func (s *State) BeginFrame(now float64) float32 {
	if !s.started {
		s.started = true
		s.LastFrame = now
	}
	s.DeltaTime = float32(now - s.LastFrame)
	s.LastFrame = now
	return s.DeltaTime
}

// HandleCursor turns an absolute cursor position into camera yaw/pitch
func (s *State) HandleCursor(x, y float64) {
	dx, dy, ok := s.Mouse.Offset(x, y)
	if !ok {
		return
	}
	s.Camera.ProcessMouseMovement(dx, dy, true)
}

// HandleCursorCapture re-primes the mouse tracker whenever the window regains
// the cursor, so the first position after that does not turn the camera.
func (s *State) HandleCursorCapture(captured bool) {
	if captured {
		s.Mouse.Reset()
	}
}

// HandleScroll zooms the camera
func (s *State) HandleScroll(yOffset float64) {
	s.Camera.ProcessMouseScroll(float32(yOffset))
}

// ApplyMovement moves the camera for every held movement action
func (s *State) ApplyMovement() {
	moves := [...]struct {
		action    input.Action
		direction camera.Direction
	}{
		{input.ActionMoveForward, camera.Forward},
		{input.ActionMoveBackward, camera.Backward},
		{input.ActionMoveLeft, camera.Left},
		{input.ActionMoveRight, camera.Right},
	}
	for _, m := range moves {
		if s.Input.IsActive(m.action) {
			s.Camera.ProcessKeyboard(m.direction, s.DeltaTime)
		}
	}
}
