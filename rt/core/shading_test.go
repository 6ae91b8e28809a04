package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmoothstep(t *testing.T) {
	assert.Equal(t, float32(0), Smoothstep(0, 1, -1))
	assert.Equal(t, float32(0.5), Smoothstep(0, 1, 0.5))
	assert.Equal(t, float32(1), Smoothstep(0, 1, 2))
}

func TestFalloff_MatchesReversedSmoothstep(t *testing.T) {
	for _, d := range []float32{0, 0.05, 0.1, 0.2, 0.3, 0.39, 0.4, 0.8} {
		assert.InDelta(t, Smoothstep(RepulsionRadius, 0, d), Falloff(RepulsionRadius, d), 1e-6, "d=%v", d)
	}
	assert.Equal(t, float32(1), Falloff(RepulsionRadius, 0))
	assert.Equal(t, float32(0), Falloff(RepulsionRadius, RepulsionRadius))
	assert.Equal(t, float32(0), Falloff(RepulsionRadius, 1))
}

func TestRepelDecay_Range(t *testing.T) {
	for elapsed := float32(0); elapsed < 20; elapsed += 0.37 {
		d := RepelDecay(elapsed, 1.2)
		assert.GreaterOrEqual(t, d, float32(0))
		assert.LessOrEqual(t, d, float32(1))
	}
	assert.InDelta(t, 0.5, RepelDecay(0, 0), 1e-6)
}

func TestRepulsion_ZeroForSentinel(t *testing.T) {
	buf := GenerateSphere(testParams(300, 0), newTestRand())
	for _, elapsed := range []float32{0, 0.5, 3, 100} {
		for i := 0; i < buf.Len(); i++ {
			s := buf.At(i)
			d := Repulsion(s.Position, 0, PointerInactive, 0, elapsed, RepulsionRadius)
			assert.Equal(t, mgl32.Vec3{}, d, "point %d at t=%v", i, elapsed)
		}
	}
}

func TestRepulsion_ZeroForCore(t *testing.T) {
	d := Repulsion(mgl32.Vec3{0.1, 0, 0}, 1, mgl32.Vec2{0, 0}, 0, 1, RepulsionRadius)
	assert.Equal(t, mgl32.Vec3{}, d)
}

func TestRepulsion_PushesOutward(t *testing.T) {
	pos := mgl32.Vec3{0, 1.2, 0}
	elapsed := float32(2)

	d := Repulsion(pos, 0, mgl32.Vec2{0, 0}, 0, elapsed, RepulsionRadius)

	expected := RepulsionStrength * RepelDecay(elapsed, pos.Len())
	assert.InDelta(t, expected, d.Len(), 1e-6)
	assert.InDelta(t, 1, d.Normalize().Dot(pos.Normalize()), 1e-6)

	far := Repulsion(pos, 0, mgl32.Vec2{0, 0}, RepulsionRadius*2, elapsed, RepulsionRadius)
	assert.Equal(t, mgl32.Vec3{}, far)
}

func TestPointSize(t *testing.T) {
	assert.Equal(t, float32(15), PointSize(1, 0.5, -10))
	assert.Equal(t, MaxPointSize, PointSize(1, 0.5, -1))
	assert.Equal(t, MinPointSize, PointSize(1, 0.001, -10))
}

func TestPointColor(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, PointColor(0))
	assert.Equal(t, mgl32.Vec3{1.3, 0.8, 0.2}, PointColor(1))
}

func testVertexUniforms(pointer mgl32.Vec2) GPUUniforms {
	frame := FrameUniforms{
		PointScale:      0.5,
		Pointer:         pointer,
		RepulsionRadius: RepulsionRadius,
		ElapsedTime:     0,
	}
	proj := NewCameraState().GetProjectionMatrix(1)
	return frame.Pack(mgl32.Translate3D(0, 0, -10), proj, 800, 800)
}

func TestVertexStage_SizeAndColor(t *testing.T) {
	out := VertexStage(VertexInput{Position: mgl32.Vec3{0, 0, 0}, Size: 1, Core: 1}, testVertexUniforms(mgl32.Vec2{0, 0}))

	assert.InDelta(t, 15, out.PointSize, 1e-5)
	assert.Equal(t, mgl32.Vec3{}, out.Displacement)
	assert.Equal(t, PointColor(1), out.Color)
	assert.InDelta(t, 0, out.PointerDistance, 1e-6)
}

func TestVertexStage_RepelsShellUnderPointer(t *testing.T) {
	in := VertexInput{Position: mgl32.Vec3{0, 0, 1.5}, Size: 1, Core: 0}

	idle := VertexStage(in, testVertexUniforms(PointerInactive))
	assert.Equal(t, mgl32.Vec3{}, idle.Displacement)
	assert.InDelta(t, -8.5, idle.ViewPosition.Z(), 1e-5)

	hovered := VertexStage(in, testVertexUniforms(mgl32.Vec2{0, 0}))
	assert.Greater(t, hovered.Displacement.Z(), float32(0))
	assert.Greater(t, hovered.ViewPosition.Z(), idle.ViewPosition.Z())
	assert.Greater(t, hovered.PointSize, idle.PointSize)
}

func TestFragmentStage(t *testing.T) {
	white := PointColor(0)

	rgba, keep := FragmentStage(mgl32.Vec2{0.5, 0.5}, white, 1, RepulsionRadius)
	assert.True(t, keep)
	assert.InDelta(t, 0.6*0.95, rgba.W(), 1e-6)
	assert.InDelta(t, 2.7, rgba.X(), 1e-5)

	hover, keep := FragmentStage(mgl32.Vec2{0.5, 0.5}, white, 0, RepulsionRadius)
	assert.True(t, keep)
	assert.InDelta(t, 0.95, hover.W(), 1e-6)
	assert.InDelta(t, 3.9, hover.X(), 1e-5)

	_, keep = FragmentStage(mgl32.Vec2{0, 0}, white, 0, RepulsionRadius)
	assert.False(t, keep, "outside the circular footprint")

	_, keep = FragmentStage(mgl32.Vec2{0.5, 0.95}, white, 1, RepulsionRadius)
	assert.False(t, keep, "glow below alpha cutoff")
}

func TestBlendAdditive_WeightsByAlpha(t *testing.T) {
	dst := mgl32.Vec3{0.1, 0.2, 0.3}

	got := BlendAdditive(dst, mgl32.Vec4{1, 1, 1, 0.5})
	assert.InDelta(t, 0.6, got.X(), 1e-6)
	assert.InDelta(t, 0.7, got.Y(), 1e-6)
	assert.InDelta(t, 0.8, got.Z(), 1e-6)

	assert.Equal(t, dst, BlendAdditive(dst, mgl32.Vec4{5, 5, 5, 0}))
}

func TestBlendAdditive_GlowFalloffDims(t *testing.T) {
	white := PointColor(0)
	far := RepulsionRadius * 2

	center, ok := FragmentStage(mgl32.Vec2{0.5, 0.5}, white, far, RepulsionRadius)
	require.True(t, ok)
	rim, ok := FragmentStage(mgl32.Vec2{0.5, 0.7}, white, far, RepulsionRadius)
	require.True(t, ok)

	// the rim adds less light than the center once alpha weighs the color
	assert.Less(t, BlendAdditive(mgl32.Vec3{}, rim).X(), BlendAdditive(mgl32.Vec3{}, center).X())
	assert.Less(t, BlendAdditive(mgl32.Vec3{}, rim).X(), rim.X(), "alpha below one scales the color down")

	// hovering raises the contribution of the same fragment
	hovered, ok := FragmentStage(mgl32.Vec2{0.5, 0.7}, white, 0, RepulsionRadius)
	require.True(t, ok)
	assert.Greater(t, BlendAdditive(mgl32.Vec3{}, hovered).X(), BlendAdditive(mgl32.Vec3{}, rim).X())
}
