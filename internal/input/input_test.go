package input_test

import (
	"testing"

	"cube-demo/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestDefaultBindings(t *testing.T) {
	m := input.NewManager()

	m.HandleKeyEvent(glfw.KeyW, glfw.Press)
	assert.True(t, m.IsActive(input.ActionMoveForward))
	assert.True(t, m.JustPressed(input.ActionMoveForward))

	m.HandleKeyEvent(glfw.KeyLeft, glfw.Press)
	assert.True(t, m.IsActive(input.ActionMoveLeft))

	m.HandleKeyEvent(glfw.KeyW, glfw.Repeat)
	assert.True(t, m.IsActive(input.ActionMoveForward))

	m.PostUpdate()
	assert.True(t, m.IsActive(input.ActionMoveForward))
	assert.False(t, m.JustPressed(input.ActionMoveForward))

	m.HandleKeyEvent(glfw.KeyW, glfw.Release)
	assert.False(t, m.IsActive(input.ActionMoveForward))
	assert.True(t, m.JustReleased(input.ActionMoveForward))
}

func TestUnboundKeyIgnored(t *testing.T) {
	m := input.NewManager()
	m.HandleKeyEvent(glfw.KeyZ, glfw.Press)
	for a := input.Action(0); a < input.ActionCount; a++ {
		assert.False(t, m.IsActive(a))
	}
	assert.False(t, m.IsActive(input.ActionCount))
	assert.False(t, m.JustPressed(-1))
}

func TestRebind(t *testing.T) {
	m := input.NewManager()
	m.UnbindKey(glfw.KeyF)
	m.BindKey(glfw.KeyTab, input.ActionTogglePolygonMode)
	m.BindKey(glfw.KeyTab, input.ActionCount)

	m.HandleKeyEvent(glfw.KeyF, glfw.Press)
	assert.False(t, m.JustPressed(input.ActionTogglePolygonMode))

	m.HandleKeyEvent(glfw.KeyTab, glfw.Press)
	assert.True(t, m.JustPressed(input.ActionTogglePolygonMode))
}

func TestMouseTrackerFirstEvent(t *testing.T) {
	tr := input.NewMouseTracker()

	_, _, ok := tr.Offset(400, 300)
	assert.False(t, ok, "first position only primes")

	dx, dy, ok := tr.Offset(410, 280)
	assert.True(t, ok)
	assert.Equal(t, float32(10), dx)
	assert.Equal(t, float32(20), dy, "moving up is positive")

	tr.Reset()
	_, _, ok = tr.Offset(0, 0)
	assert.False(t, ok)
	dx, _, _ = tr.Offset(-5, 0)
	assert.Equal(t, float32(-5), dx)
}
