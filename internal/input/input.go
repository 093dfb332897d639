package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical demo action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionQuit
	ActionTogglePolygonMode
	ActionCount // Sentinel value for array sizing
)

// Manager maps physical keys to logical actions and tracks their state between
// frames. It is driven from GLFW callbacks on the main thread and holds no lock.
type Manager struct {
	// Key to action mapping (one key can map to multiple actions)
	keyToActions map[glfw.Key][]Action

	currentState [ActionCount]bool

	// Just pressed/released flags (reset each frame)
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
}

// NewManager creates a Manager with WASD, arrow keys, Escape and F bound
func NewManager() *Manager {
	m := &Manager{
		keyToActions: make(map[glfw.Key][]Action),
	}

	m.BindKey(glfw.KeyW, ActionMoveForward)
	m.BindKey(glfw.KeyS, ActionMoveBackward)
	m.BindKey(glfw.KeyA, ActionMoveLeft)
	m.BindKey(glfw.KeyD, ActionMoveRight)
	m.BindKey(glfw.KeyUp, ActionMoveForward)
	m.BindKey(glfw.KeyDown, ActionMoveBackward)
	m.BindKey(glfw.KeyLeft, ActionMoveLeft)
	m.BindKey(glfw.KeyRight, ActionMoveRight)
	m.BindKey(glfw.KeyEscape, ActionQuit)
	m.BindKey(glfw.KeyF, ActionTogglePolygonMode)

	return m
}

// BindKey binds a physical key to a logical action.
// Multiple keys can be bound to the same action.
func (m *Manager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (m *Manager) UnbindKey(key glfw.Key) {
	delete(m.keyToActions, key)
}

// HandleKeyEvent processes a key event and updates internal state
func (m *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	actions, exists := m.keyToActions[key]
	if !exists {
		return
	}

	isPressed := action == glfw.Press || action == glfw.Repeat

	for _, act := range actions {
		if isPressed && !m.currentState[act] {
			m.justPressed[act] = true
		}
		if !isPressed && m.currentState[act] {
			m.justReleased[act] = true
		}
		m.currentState[act] = isPressed
	}
}

// Attach installs the GLFW key callback for this manager
func (m *Manager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		m.HandleKeyEvent(key, action)
	})
}

// PostUpdate must be called at the end of each frame to reset edge flags
func (m *Manager) PostUpdate() {
	for i := range ActionCount {
		m.justPressed[i] = false
		m.justReleased[i] = false
	}
}

// IsActive returns true if the action is currently being held down
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	return m.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	return m.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (m *Manager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	return m.justReleased[action]
}
