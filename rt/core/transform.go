package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a position plus Euler rotation (radians, XYZ order) for the
// whole point cloud or one of its parents.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
}

func NewTransform() *Transform {
	return &Transform{}
}

func (t *Transform) ObjectToWorld() mgl32.Mat4 {
	// M = T * Rx * Ry * Rz
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := mgl32.HomogRotate3DX(t.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(t.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))

	return translate.Mul4(rotate)
}

func (t *Transform) WorldToObject() mgl32.Mat4 {
	// inv(M) = inv(R) * inv(T); rotation inverse is its transpose
	invRotate := mgl32.HomogRotate3DX(t.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(t.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z())).
		Transpose()
	invTranslate := mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z())

	return invRotate.Mul4(invTranslate)
}

// LerpPosition moves Position toward target by factor. Never overshoots for
// factor in [0,1].
func (t *Transform) LerpPosition(target mgl32.Vec3, factor float32) {
	t.Position = t.Position.Add(target.Sub(t.Position).Mul(factor))
}
