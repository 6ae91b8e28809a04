package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestSummarize_HandBuilt(t *testing.T) {
	buf := &PointBuffer{OuterCount: 2, InnerCount: 1}
	buf.Positions = make([]float32, 9)
	buf.Sizes = make([]float32, 3)
	buf.Core = make([]float32, 3)
	buf.set(0, mgl32.Vec3{1, 0, 0}, 1.0, 0)
	buf.set(1, mgl32.Vec3{-3, 0, 0}, 1.2, 0)
	buf.set(2, mgl32.Vec3{0, 0, 0}, 0.9, 1)

	stats := Summarize(buf)

	assert.Equal(t, 2, stats.Outer.Count)
	assert.InDelta(t, 2.0, stats.Outer.RadiusMean, 1e-9)
	assert.InDelta(t, 1.0, stats.Outer.RadiusMin, 1e-9)
	assert.InDelta(t, 3.0, stats.Outer.RadiusMax, 1e-9)
	assert.InDelta(t, 1.1, stats.Outer.SizeMean, 1e-6)
	assert.InDelta(t, 0, stats.Outer.MeanDirection.Len(), 1e-6)

	// a single point at the origin: no stddev, no direction
	assert.Equal(t, 1, stats.Inner.Count)
	assert.Zero(t, stats.Inner.RadiusStdDev)
	assert.Equal(t, mgl32.Vec3{}, stats.Inner.MeanDirection)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, BufferStats{}, Summarize(nil))
	assert.Equal(t, BufferStats{}, Summarize(&PointBuffer{}))
}
