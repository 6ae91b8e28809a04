package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SegmentStats summarizes one population of a PointBuffer.
type SegmentStats struct {
	Count         int
	RadiusMean    float64
	RadiusStdDev  float64
	RadiusMin     float64
	RadiusMax     float64
	SizeMean      float64
	MeanDirection mgl32.Vec3
}

type BufferStats struct {
	Outer SegmentStats
	Inner SegmentStats
}

// Summarize computes radial and directional statistics per segment. The mean
// direction of a uniform sample tends to the zero vector.
func Summarize(b *PointBuffer) BufferStats {
	if b == nil {
		return BufferStats{}
	}
	return BufferStats{
		Outer: summarizeRange(b, 0, b.OuterCount),
		Inner: summarizeRange(b, b.OuterCount, b.OuterCount+b.InnerCount),
	}
}

func summarizeRange(b *PointBuffer, from, to int) SegmentStats {
	n := to - from
	if n <= 0 {
		return SegmentStats{}
	}

	radii := make([]float64, n)
	sizes := make([]float64, n)
	dx := make([]float64, 0, n)
	dy := make([]float64, 0, n)
	dz := make([]float64, 0, n)

	for i := 0; i < n; i++ {
		s := b.At(from + i)
		r := float64(s.Position.Len())
		radii[i] = r
		sizes[i] = float64(s.Size)
		// a point at the origin has no direction
		if r > 0 {
			d := s.Position.Mul(float32(1 / r))
			dx = append(dx, float64(d.X()))
			dy = append(dy, float64(d.Y()))
			dz = append(dz, float64(d.Z()))
		}
	}

	mean, std := stat.MeanStdDev(radii, nil)
	out := SegmentStats{
		Count:        n,
		RadiusMean:   mean,
		RadiusStdDev: std,
		RadiusMin:    floats.Min(radii),
		RadiusMax:    floats.Max(radii),
		SizeMean:     stat.Mean(sizes, nil),
	}
	if len(dx) > 0 {
		out.MeanDirection = mgl32.Vec3{
			float32(stat.Mean(dx, nil)),
			float32(stat.Mean(dy, nil)),
			float32(stat.Mean(dz, nil)),
		}
	}
	// sample stddev is undefined for a single point
	if math.IsNaN(out.RadiusStdDev) {
		out.RadiusStdDev = 0
	}
	return out
}
