package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CPU mirror of points.wgsl. The GPU is the renderer; these functions exist
// so the per-point math can be checked without a device. Keep both in sync.

const (
	MinPointSize float32 = 1
	MaxPointSize float32 = 64

	// pointSizeReference is the projected-size numerator: a point of scale 1
	// at view depth 300 covers one pixel.
	pointSizeReference float32 = 300
	alphaCutoff        float32 = 0.02
)

var (
	shellColor = mgl32.Vec3{1, 1, 1}
	coreColor  = mgl32.Vec3{1.3, 0.8, 0.2}
)

type VertexInput struct {
	Position mgl32.Vec3
	Size     float32
	Core     float32
}

type VertexOutput struct {
	Clip            mgl32.Vec4
	ViewPosition    mgl32.Vec3
	Displacement    mgl32.Vec3
	PointSize       float32
	Color           mgl32.Vec3
	PointerDistance float32
}

func Smoothstep(edge0, edge1, x float32) float32 {
	t := mgl32.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Falloff is 1 at the pointer and 0 at radius and beyond. Equal to
// smoothstep(radius, 0, d), written with ordered edges.
func Falloff(radius, pointerDistance float32) float32 {
	return 1 - Smoothstep(0, radius, pointerDistance)
}

// RepelDecay pulses slowly; the radial phase shift makes the pulse travel
// outward.
func RepelDecay(elapsed, distanceFromCenter float32) float32 {
	return 0.5 + 0.5*float32(math.Sin(float64(elapsed*1.1+distanceFromCenter*2.3)))
}

// Repulsion is the view-space displacement of one point. Core points and an
// inactive pointer yield exactly zero.
func Repulsion(position mgl32.Vec3, core float32, pointer mgl32.Vec2, pointerDistance, elapsed, radius float32) mgl32.Vec3 {
	if core >= 0.5 || !PointerActive(pointer) {
		return mgl32.Vec3{}
	}
	dist := position.Len()
	if dist == 0 {
		return mgl32.Vec3{}
	}
	amount := Falloff(radius, pointerDistance) * RepulsionStrength * RepelDecay(elapsed, dist)
	return position.Mul(amount / dist)
}

// PointSize is the perspective-scaled footprint in pixels. viewZ is negative
// in front of the camera.
func PointSize(size, pointScale, viewZ float32) float32 {
	return mgl32.Clamp(size*pointScale*(pointSizeReference/-viewZ), MinPointSize, MaxPointSize)
}

func PointColor(core float32) mgl32.Vec3 {
	return shellColor.Mul(1 - core).Add(coreColor.Mul(core))
}

func VertexStage(in VertexInput, u GPUUniforms) VertexOutput {
	view := u.ModelView.Mul4x1(in.Position.Vec4(1))
	projected := u.Projection.Mul4x1(view)
	ndc := mgl32.Vec2{projected.X() / projected.W(), projected.Y() / projected.W()}
	pointer := mgl32.Vec2{u.Pointer[0], u.Pointer[1]}
	pointerDistance := ndc.Sub(pointer).Len()

	disp := Repulsion(in.Position, in.Core, pointer, pointerDistance, u.Time, u.RepulsionRadius)
	viewPos := view.Vec3().Add(disp)

	return VertexOutput{
		Clip:            u.Projection.Mul4x1(viewPos.Vec4(1)),
		ViewPosition:    viewPos,
		Displacement:    disp,
		PointSize:       PointSize(in.Size, u.PointScale, viewPos.Z()),
		Color:           PointColor(in.Core),
		PointerDistance: pointerDistance,
	}
}

// FragmentStage shades one fragment at coord, the position inside the
// point's square footprint in [0,1]². It reports false when the fragment is
// discarded.
func FragmentStage(coord mgl32.Vec2, color mgl32.Vec3, pointerDistance, radius float32) (mgl32.Vec4, bool) {
	dist := coord.Sub(mgl32.Vec2{0.5, 0.5}).Len()
	if dist > 0.5 {
		return mgl32.Vec4{}, false
	}

	glow := mgl32.Clamp(float32(math.Pow(float64(1-dist*2), 4)), 0, 1)
	hoverBoost := Falloff(radius, pointerDistance)
	alpha := glow * (0.6 + 0.4*hoverBoost) * 0.95
	if alpha < alphaCutoff {
		return mgl32.Vec4{}, false
	}

	rgb := color.Mul(0.7 + glow*2 + hoverBoost*1.2)
	return rgb.Vec4(alpha), true
}

// BlendAdditive composites one fragment over dst the way the point pipeline
// blends: dst + src.rgb * src.a.
func BlendAdditive(dst mgl32.Vec3, src mgl32.Vec4) mgl32.Vec3 {
	return dst.Add(src.Vec3().Mul(src.W()))
}
