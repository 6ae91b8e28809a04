package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestProfiler() (*Profiler, *time.Time) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewProfiler()
	p.now = func() time.Time { return clock }
	return p, &clock
}

func TestProfiler_Scopes(t *testing.T) {
	p, clock := newTestProfiler()

	p.BeginScope("update")
	*clock = clock.Add(1500 * time.Microsecond)
	p.EndScope("update")

	p.BeginScope("render")
	*clock = clock.Add(3 * time.Millisecond)
	p.EndScope("render")

	assert.Equal(t, 1500*time.Microsecond, p.Scopes["update"])
	assert.Equal(t, 3*time.Millisecond, p.Scopes["render"])
	assert.Equal(t, []string{"update", "render"}, p.Order)

	// second frame keeps the order
	p.BeginScope("update")
	p.EndScope("update")
	assert.Equal(t, []string{"update", "render"}, p.Order)
	assert.Zero(t, p.Scopes["update"])
}

func TestProfiler_EndWithoutBegin(t *testing.T) {
	p, _ := newTestProfiler()
	p.EndScope("nothing")
	assert.Empty(t, p.Scopes)
}

func TestProfiler_Measure(t *testing.T) {
	p, clock := newTestProfiler()
	p.Measure("tick", func() { *clock = clock.Add(time.Millisecond) })
	assert.Equal(t, time.Millisecond, p.Scopes["tick"])
}

func TestProfiler_GetStatsString(t *testing.T) {
	p, clock := newTestProfiler()
	p.BeginScope("render")
	*clock = clock.Add(2 * time.Millisecond)
	p.EndScope("render")
	p.SetCount("points", 30000)
	p.SetCount("glyphs", 12)

	s := p.GetStatsString()
	assert.Contains(t, s, "render  : 2.00 ms")
	assert.Contains(t, s, "points  : 30000")
	assert.Less(t, strings.Index(s, "glyphs"), strings.Index(s, "points"))

	p.Reset()
	assert.Contains(t, p.GetStatsString(), "render  : 0.00 ms")
}
