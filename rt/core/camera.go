package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// clipCorrection maps GL clip depth [-w,w] to WebGPU's [0,w].
var clipCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

const polarEpsilon = 1e-3

// CameraState is an orbit camera around Target, Y-up. Drag input feeds a
// rotation delta that decays by (1-Damping) each Update.
type CameraState struct {
	Target      mgl32.Vec3
	Distance    float32
	Azimuth     float32
	Polar       float32
	FovY        float32 // degrees
	Near        float32
	Far         float32
	RotateSpeed float32
	ZoomSpeed   float32
	Damping     float32
	MinDistance float32
	MaxDistance float32

	deltaAzimuth float32
	deltaPolar   float32
	dragging     bool
	lastX, lastY float64
}

func NewCameraState() *CameraState {
	return &CameraState{
		Target:      mgl32.Vec3{0, 0, 0},
		Distance:    5,
		Azimuth:     0,
		Polar:       math.Pi / 2,
		FovY:        50,
		Near:        0.1,
		Far:         2000,
		RotateSpeed: 0.5,
		ZoomSpeed:   1,
		Damping:     0.05,
		MinDistance: 0.5,
		MaxDistance: 50,
	}
}

func (c *CameraState) GetPosition() mgl32.Vec3 {
	sinPolar := float32(math.Sin(float64(c.Polar)))
	offset := mgl32.Vec3{
		c.Distance * sinPolar * float32(math.Sin(float64(c.Azimuth))),
		c.Distance * float32(math.Cos(float64(c.Polar))),
		c.Distance * sinPolar * float32(math.Cos(float64(c.Azimuth))),
	}
	return c.Target.Add(offset)
}

func (c *CameraState) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.GetPosition(), c.Target, mgl32.Vec3{0, 1, 0})
}

// GetProjectionMatrix returns a perspective projection in WebGPU clip space.
func (c *CameraState) GetProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return clipCorrection.Mul4(mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far))
}

func (c *CameraState) BeginDrag(x, y float64) {
	c.dragging = true
	c.lastX, c.lastY = x, y
}

func (c *CameraState) EndDrag() {
	c.dragging = false
}

func (c *CameraState) Dragging() bool {
	return c.dragging
}

// Drag turns cursor motion into orbit rotation. A drag across the full
// viewport height is one full turn at RotateSpeed 1.
func (c *CameraState) Drag(x, y float64, viewportHeight int) {
	if !c.dragging || viewportHeight <= 0 {
		return
	}
	dx := float32(x - c.lastX)
	dy := float32(y - c.lastY)
	c.lastX, c.lastY = x, y

	h := float32(viewportHeight)
	c.deltaAzimuth -= 2 * math.Pi * dx / h * c.RotateSpeed
	c.deltaPolar -= 2 * math.Pi * dy / h * c.RotateSpeed
}

// Zoom dollies toward the target for positive steps (wheel up).
func (c *CameraState) Zoom(steps float64) {
	scale := float32(math.Pow(0.95, float64(c.ZoomSpeed)*math.Abs(steps)))
	if steps > 0 {
		c.Distance *= scale
	} else if steps < 0 {
		c.Distance /= scale
	}
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// Update applies the pending rotation. Call once per frame.
func (c *CameraState) Update() {
	if c.Damping > 0 {
		c.Azimuth += c.deltaAzimuth * c.Damping
		c.Polar += c.deltaPolar * c.Damping
		c.deltaAzimuth *= 1 - c.Damping
		c.deltaPolar *= 1 - c.Damping
	} else {
		c.Azimuth += c.deltaAzimuth
		c.Polar += c.deltaPolar
		c.deltaAzimuth, c.deltaPolar = 0, 0
	}
	c.Polar = mgl32.Clamp(c.Polar, polarEpsilon, math.Pi-polarEpsilon)
}
