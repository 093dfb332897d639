package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a first-person movement direction
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// Default camera values
const (
	DefaultYaw         float32 = -90.0
	DefaultPitch       float32 = 0.0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45.0

	MaxPitch float32 = 89.0
	MinZoom  float32 = 1.0
	MaxZoom  float32 = 45.0
)

// Camera is a free-look camera parameterised by yaw and pitch in degrees.
// Front, Right and Up are recomputed from the angles every time they change,
// so they always form an orthonormal basis.
type Camera struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3
	worldUp  mgl32.Vec3

	yaw   float32
	pitch float32

	MovementSpeed    float32
	MouseSensitivity float32
	zoom             float32
}

// Option configures a Camera at construction
type Option func(*Camera)

// WithAngles sets the initial yaw and pitch in degrees. Pitch is clamped.
func WithAngles(yaw, pitch float32) Option {
	return func(c *Camera) {
		c.yaw = yaw
		c.pitch = clamp(pitch, -MaxPitch, MaxPitch)
	}
}

// WithWorldUp sets the world up axis (normalised)
func WithWorldUp(up mgl32.Vec3) Option {
	return func(c *Camera) {
		if up.Len() > 0 {
			c.worldUp = up.Normalize()
		}
	}
}

// WithSpeed sets the movement speed in units per second
func WithSpeed(speed float32) Option {
	return func(c *Camera) { c.MovementSpeed = speed }
}

// WithSensitivity sets degrees of rotation per unit of cursor movement
func WithSensitivity(s float32) Option {
	return func(c *Camera) { c.MouseSensitivity = s }
}

// WithZoom sets the initial field of view in degrees. It is clamped.
func WithZoom(zoom float32) Option {
	return func(c *Camera) { c.zoom = clamp(zoom, MinZoom, MaxZoom) }
}

// New creates a camera at position looking down -Z by default
func New(position mgl32.Vec3, opts ...Option) *Camera {
	c := &Camera{
		position:         position,
		worldUp:          mgl32.Vec3{0, 1, 0},
		yaw:              DefaultYaw,
		pitch:            DefaultPitch,
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
		zoom:             DefaultZoom,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.updateVectors()
	return c
}

func (c *Camera) Position() mgl32.Vec3 { return c.position }
func (c *Camera) Front() mgl32.Vec3    { return c.front }
func (c *Camera) Right() mgl32.Vec3    { return c.right }
func (c *Camera) Up() mgl32.Vec3       { return c.up }
func (c *Camera) WorldUp() mgl32.Vec3  { return c.worldUp }
func (c *Camera) Yaw() float32         { return c.yaw }
func (c *Camera) Pitch() float32       { return c.pitch }

// Zoom returns the field of view in degrees
func (c *Camera) Zoom() float32 { return c.zoom }

// ProcessKeyboard moves along front or right by MovementSpeed*deltaTime
func (c *Camera) ProcessKeyboard(direction Direction, deltaTime float32) {
	velocity := c.MovementSpeed * deltaTime
	switch direction {
	case Forward:
		c.position = c.position.Add(c.front.Mul(velocity))
	case Backward:
		c.position = c.position.Sub(c.front.Mul(velocity))
	case Left:
		c.position = c.position.Sub(c.right.Mul(velocity))
	case Right:
		c.position = c.position.Add(c.right.Mul(velocity))
	}
}

// ProcessMouseMovement turns the camera by the cursor offsets scaled by
// MouseSensitivity. With constrainPitch the pitch stays within ±89 degrees.
func (c *Camera) ProcessMouseMovement(xOffset, yOffset float32, constrainPitch bool) {
	c.yaw += xOffset * c.MouseSensitivity
	c.pitch += yOffset * c.MouseSensitivity

	if constrainPitch {
		c.pitch = clamp(c.pitch, -MaxPitch, MaxPitch)
	}

	c.updateVectors()
}

// ProcessMouseScroll narrows or widens the field of view
func (c *Camera) ProcessMouseScroll(yOffset float32) {
	c.zoom = clamp(c.zoom-yOffset, MinZoom, MaxZoom)
}

// ViewMatrix returns the look-at transform for the current state
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// ProjectionMatrix returns a perspective projection using Zoom as the vertical
// field of view.
func (c *Camera) ProjectionMatrix(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.zoom), aspect, near, far)
}

func (c *Camera) updateVectors() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)

	front := mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
	c.front = front.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
