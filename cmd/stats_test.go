package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gekko3d/nucleus/rt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCmd(t *testing.T) {
	path := writeConfig(t, quietConfig)

	out, err := runCmd(t, "--config", path, "stats")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "radius 1.500, core radius 0.225", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "segment"))
	assert.Regexp(t, `^shell\s+200\s+1\.`, lines[3])
	assert.Regexp(t, `^core\s+50\s+0\.`, lines[4])
}

func TestStatsCmd_Deterministic(t *testing.T) {
	path := writeConfig(t, quietConfig)

	first, err := runCmd(t, "--config", path, "stats")
	require.NoError(t, err)
	second, err := runCmd(t, "--config", path, "stats")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWriteStats_EmptyCloud(t *testing.T) {
	params := core.SphereParams{Radius: 2, InnerDensityFactor: 0.5}
	var out bytes.Buffer
	require.NoError(t, writeStats(&out, params, core.Summarize(&core.PointBuffer{})))
	assert.Contains(t, out.String(), "radius 2.000, core radius 1.000")
	assert.Regexp(t, `shell\s+0\s`, out.String())
}

func TestWriteStats_CountColumn(t *testing.T) {
	stats := core.BufferStats{
		Outer: core.SegmentStats{Count: 200, RadiusMean: 1.35},
		Inner: core.SegmentStats{Count: 50, RadiusMean: 0.125},
	}
	var out bytes.Buffer
	require.NoError(t, writeStats(&out, core.DefaultSphereParams(), stats))

	assert.NotContains(t, out.String(), "%!")
	assert.Regexp(t, `(?m)^shell\s+200\s+1\.3500\s`, out.String())
	assert.Regexp(t, `(?m)^core\s+50\s+0\.1250\s`, out.String())
}
