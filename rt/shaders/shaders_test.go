package shaders

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShaders_EntryPoints(t *testing.T) {
	for name, src := range map[string]string{"points": PointsWGSL, "text": TextWGSL} {
		assert.Contains(t, src, "fn vs_main(", name)
		assert.Contains(t, src, "fn fs_main(", name)
		assert.Contains(t, src, "@vertex", name)
		assert.Contains(t, src, "@fragment", name)
	}
}

func TestPointsWGSL_UniformLayout(t *testing.T) {
	fields := regexp.MustCompile(`(?s)struct Uniforms \{(.*?)\};`).FindStringSubmatch(PointsWGSL)
	if assert.Len(t, fields, 2) {
		names := regexp.MustCompile(`(\w+):`).FindAllStringSubmatch(fields[1], -1)
		var got []string
		for _, n := range names {
			got = append(got, n[1])
		}
		assert.Equal(t, []string{
			"model_view", "projection", "pointer", "viewport",
			"point_scale", "repulsion_radius", "time", "_pad",
		}, got)
	}
	assert.Contains(t, PointsWGSL, "@group(0) @binding(0) var<uniform> u: Uniforms;")
}

func TestPointsWGSL_InstanceAttributes(t *testing.T) {
	for _, attr := range []string{
		"@location(0) position: vec3<f32>",
		"@location(1) size: f32",
		"@location(2) is_core: f32",
	} {
		assert.Contains(t, PointsWGSL, attr)
	}
}
