package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	AutoRotateYaw   float32 = 0.0015
	AutoRotatePitch float32 = 0.0008

	parallaxScale float32 = 0.2
	parallaxDepth float32 = 0.15
	parallaxLerp  float32 = 0.025
	tiltScale     float32 = 0.1
	tiltLerp      float32 = 0.05
)

var (
	parallaxMin = mgl32.Vec3{-0.4, -0.4, -0.2}
	parallaxMax = mgl32.Vec3{0.4, 0.4, 0.2}
)

// FrameUpdater owns the per-frame state: the uniforms, the group transform
// that follows the pointer and the mesh transform that autorotates. The
// group is the parent, so tilt composes with autorotation instead of
// replacing it.
type FrameUpdater struct {
	Uniforms FrameUniforms
	Group    Transform
	Mesh     Transform
}

func NewFrameUpdater(pointScale float32) *FrameUpdater {
	return &FrameUpdater{
		Uniforms: FrameUniforms{
			PointScale:      pointScale,
			Pointer:         PointerInactive,
			RepulsionRadius: RepulsionRadius,
		},
	}
}

// Tick advances one displayed frame. Autorotation steps are per frame, not
// per second, so the visible speed follows the display refresh rate.
func (f *FrameUpdater) Tick(elapsed float32, pointer mgl32.Vec2, pointScale float32, autoRotate bool) {
	f.Uniforms.ElapsedTime = elapsed
	f.Uniforms.PointScale = pointScale
	f.Uniforms.Pointer = pointer

	if autoRotate {
		f.Mesh.Rotation[1] += AutoRotateYaw
		f.Mesh.Rotation[0] += AutoRotatePitch
	}

	// without a pointer the group settles back to the origin
	follow := pointer
	if !PointerActive(pointer) {
		follow = mgl32.Vec2{}
	}

	f.Group.LerpPosition(ParallaxTarget(follow), parallaxLerp)

	tilt := mgl32.Vec2{follow.Y() * tiltScale, follow.X() * tiltScale}
	f.Group.Rotation[0] += (tilt.X() - f.Group.Rotation[0]) * tiltLerp
	f.Group.Rotation[1] += (tilt.Y() - f.Group.Rotation[1]) * tiltLerp
}

// ParallaxTarget is where the group drifts for a given pointer, clamped per
// component.
func ParallaxTarget(pointer mgl32.Vec2) mgl32.Vec3 {
	target := mgl32.Vec3{
		pointer.X() * parallaxScale,
		pointer.Y() * parallaxScale,
		float32(math.Sin(float64(pointer.X())*math.Pi)) * parallaxDepth,
	}
	for i := range target {
		target[i] = mgl32.Clamp(target[i], parallaxMin[i], parallaxMax[i])
	}
	return target
}

// ModelMatrix places the points in world space: group * mesh.
func (f *FrameUpdater) ModelMatrix() mgl32.Mat4 {
	return f.Group.ObjectToWorld().Mul4(f.Mesh.ObjectToWorld())
}
