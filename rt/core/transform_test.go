package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTransform_RoundTrip(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{0.3, -0.2, 0.1}
	tr.Rotation = mgl32.Vec3{0.4, 1.1, -0.7}

	p := mgl32.Vec4{1.5, -0.5, 0.25, 1}
	back := tr.WorldToObject().Mul4x1(tr.ObjectToWorld().Mul4x1(p))

	for i := 0; i < 4; i++ {
		assert.InDelta(t, p[i], back[i], 1e-5)
	}
}

func TestTransform_EulerOrderXYZ(t *testing.T) {
	tr := NewTransform()
	tr.Rotation = mgl32.Vec3{math.Pi / 2, math.Pi / 2, 0}

	// Y is applied first: +X goes to -Z, then X turns -Z into +Y
	p := tr.ObjectToWorld().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 0, p.X(), 1e-6)
	assert.InDelta(t, 1, p.Y(), 1e-6)
	assert.InDelta(t, 0, p.Z(), 1e-6)
}

func TestTransform_LerpPosition(t *testing.T) {
	tr := NewTransform()
	tr.LerpPosition(mgl32.Vec3{1, 2, -4}, 0.25)
	assert.Equal(t, mgl32.Vec3{0.25, 0.5, -1}, tr.Position)

	tr.LerpPosition(mgl32.Vec3{1, 2, -4}, 1)
	assert.Equal(t, mgl32.Vec3{1, 2, -4}, tr.Position)
}
