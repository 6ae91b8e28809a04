package core

import (
	"math"
	"math/rand"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultOuterCount                 = 22000
	DefaultInnerCount                 = 8000
	DefaultRadius             float32 = 1.5
	DefaultInnerDensityFactor float32 = 0.15
)

// SphereParams describes the dual-shell distribution.
type SphereParams struct {
	OuterCount         int
	InnerCount         int
	Radius             float32
	InnerDensityFactor float32
}

func DefaultSphereParams() SphereParams {
	return SphereParams{
		OuterCount:         DefaultOuterCount,
		InnerCount:         DefaultInnerCount,
		Radius:             DefaultRadius,
		InnerDensityFactor: DefaultInnerDensityFactor,
	}
}

// PointSample is one point as seen by the vertex stage.
type PointSample struct {
	Position mgl32.Vec3
	Size     float32
	IsCore   bool
}

// PointBuffer holds the geometry as three parallel arrays, laid out exactly
// as the vertex buffers: Positions has 3 floats per point, Sizes and Core
// one each. Outer points come first, then the core. Never mutated after
// generation.
type PointBuffer struct {
	Positions []float32
	Sizes     []float32
	Core      []float32

	OuterCount int
	InnerCount int
}

func (b *PointBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Sizes)
}

func (b *PointBuffer) At(i int) PointSample {
	return PointSample{
		Position: mgl32.Vec3{b.Positions[i*3], b.Positions[i*3+1], b.Positions[i*3+2]},
		Size:     b.Sizes[i],
		IsCore:   b.Core[i] >= 0.5,
	}
}

// GenerateSphere samples OuterCount points in the shell [0.8R, R] and
// InnerCount points in the core ball of radius R*InnerDensityFactor.
// Directions are uniform on the sphere (phi = acos(2U-1)); the core radius
// uses U^0.8 so samples bunch toward the center.
func GenerateSphere(p SphereParams, rng *rand.Rand) *PointBuffer {
	outer, inner := max(p.OuterCount, 0), max(p.InnerCount, 0)
	total := outer + inner

	buf := &PointBuffer{
		Positions:  make([]float32, total*3),
		Sizes:      make([]float32, total),
		Core:       make([]float32, total),
		OuterCount: outer,
		InnerCount: inner,
	}

	for i := 0; i < outer; i++ {
		r := p.Radius * (0.8 + 0.2*rng.Float32())
		buf.set(i, sampleDirection(rng).Mul(r), lerp(1.0, 1.4, rng.Float32()), 0)
	}

	coreRadius := p.Radius * p.InnerDensityFactor
	for i := 0; i < inner; i++ {
		r := coreRadius * float32(math.Pow(rng.Float64(), 0.8))
		buf.set(outer+i, sampleDirection(rng).Mul(r), lerp(0.8, 1.1, rng.Float32()), 1)
	}

	return buf
}

func (b *PointBuffer) set(i int, pos mgl32.Vec3, size, core float32) {
	b.Positions[i*3] = pos.X()
	b.Positions[i*3+1] = pos.Y()
	b.Positions[i*3+2] = pos.Z()
	b.Sizes[i] = size
	b.Core[i] = core
}

// sampleDirection returns a unit vector uniformly distributed on the sphere.
func sampleDirection(rng *rand.Rand) mgl32.Vec3 {
	theta := 2 * math.Pi * rng.Float64()
	phi := math.Acos(2*rng.Float64() - 1)
	sinPhi := math.Sin(phi)
	return mgl32.Vec3{
		float32(sinPhi * math.Cos(theta)),
		float32(sinPhi * math.Sin(theta)),
		float32(math.Cos(phi)),
	}
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

// SphereCache generates its geometry once, on the first Get. The result is
// shared read-only for the lifetime of every scene that uses it.
type SphereCache struct {
	Params SphereParams
	Seed   int64

	once sync.Once
	buf  *PointBuffer
}

func NewSphereCache(params SphereParams, seed int64) *SphereCache {
	return &SphereCache{Params: params, Seed: seed}
}

func (c *SphereCache) Get() *PointBuffer {
	c.once.Do(func() {
		c.buf = GenerateSphere(c.Params, rand.New(rand.NewSource(c.Seed)))
	})
	return c.buf
}

var defaultSphere = NewSphereCache(DefaultSphereParams(), 1)

// DefaultSphere returns the process-wide geometry for the default params.
// Call it at startup for eager generation; otherwise the first scene pays.
func DefaultSphere() *PointBuffer {
	return defaultSphere.Get()
}
