package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraState_Defaults(t *testing.T) {
	cam := NewCameraState()

	pos := cam.GetPosition()
	assert.InDelta(t, 0, pos.X(), 1e-6)
	assert.InDelta(t, 0, pos.Y(), 1e-6)
	assert.InDelta(t, 5, pos.Z(), 1e-6)

	origin := cam.GetViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -5, origin.Z(), 1e-5)
}

func TestCameraState_ProjectionDepthRange(t *testing.T) {
	cam := NewCameraState()
	proj := cam.GetProjectionMatrix(16.0 / 9.0)

	near := proj.Mul4x1(mgl32.Vec4{0, 0, -cam.Near, 1})
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -cam.Far, 1})

	assert.InDelta(t, 0, near.Z()/near.W(), 1e-4)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-4)
}

func TestCameraState_ProjectionKeepsNDCxy(t *testing.T) {
	cam := NewCameraState()
	gl := mgl32.Perspective(mgl32.DegToRad(cam.FovY), 1.5, cam.Near, cam.Far)
	p := mgl32.Vec4{0.7, -0.3, -4, 1}

	a := gl.Mul4x1(p)
	b := cam.GetProjectionMatrix(1.5).Mul4x1(p)
	assert.InDelta(t, a.X()/a.W(), b.X()/b.W(), 1e-6)
	assert.InDelta(t, a.Y()/a.W(), b.Y()/b.W(), 1e-6)
}

func TestCameraState_DragWithDamping(t *testing.T) {
	cam := NewCameraState()

	// not dragging: ignored
	cam.Drag(100, 0, 720)
	cam.Update()
	assert.Equal(t, float32(0), cam.Azimuth)

	cam.BeginDrag(0, 0)
	cam.Drag(72, 0, 720)
	cam.EndDrag()
	assert.False(t, cam.Dragging())

	total := float32(-2 * math.Pi * 0.1 * 0.5)
	cam.Update()
	assert.InDelta(t, total*0.05, cam.Azimuth, 1e-6)

	for i := 0; i < 400; i++ {
		cam.Update()
	}
	assert.InDelta(t, total, cam.Azimuth, 1e-4)
}

func TestCameraState_NoDamping(t *testing.T) {
	cam := NewCameraState()
	cam.Damping = 0

	cam.BeginDrag(0, 0)
	cam.Drag(0, 72, 720)
	cam.Update()
	assert.InDelta(t, math.Pi/2-2*math.Pi*0.1*0.5, cam.Polar, 1e-6)

	cam.Update()
	assert.InDelta(t, math.Pi/2-2*math.Pi*0.1*0.5, cam.Polar, 1e-6)
}

func TestCameraState_PolarClamped(t *testing.T) {
	cam := NewCameraState()
	cam.Damping = 0

	cam.BeginDrag(0, 0)
	cam.Drag(0, 10000, 720)
	cam.Update()
	assert.InDelta(t, polarEpsilon, cam.Polar, 1e-6)
}

func TestCameraState_Zoom(t *testing.T) {
	cam := NewCameraState()

	cam.Zoom(1)
	assert.InDelta(t, 4.75, cam.Distance, 1e-5)
	cam.Zoom(-1)
	assert.InDelta(t, 5, cam.Distance, 1e-5)

	cam.Zoom(500)
	assert.Equal(t, cam.MinDistance, cam.Distance)
	cam.Zoom(-500)
	assert.Equal(t, cam.MaxDistance, cam.Distance)
}
