package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// unit cube corners plus its center
const cubeXYZ = `0 0 0
1 0 0
0 1 0
0 0 1
1 1 0
1 0 1
0 1 1
1 1 1
0.5 0.5 0.5
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAABBText(t *testing.T) {
	file := writeTemp(t, "cube.xyz", cubeXYZ)

	out, err := run(t, "aabb", file)
	require.NoError(t, err)

	assert.Contains(t, out, "Axis-Aligned Bounding Box")
	assert.Contains(t, out, "Points: 9")
	assert.Contains(t, out, "Min: (0.000000, 0.000000, 0.000000)")
	assert.Contains(t, out, "Max: (1.000000, 1.000000, 1.000000)")
	assert.Contains(t, out, "Volume: 1.000000 cubic units")
}

func TestAABBJSON(t *testing.T) {
	file := writeTemp(t, "cube.xyz", cubeXYZ)

	out, err := run(t, "--format", "json", "aabb", file)
	require.NoError(t, err)

	var report aabbReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 9, report.Points)
	assert.Equal(t, vec{1, 1, 1}, report.Max)
	assert.Equal(t, vec{0.5, 0.5, 0.5}, report.Center)
	assert.InDelta(t, 1.0, report.Volume, 1e-12)
}

func TestOBBYAML(t *testing.T) {
	file := writeTemp(t, "cube.xyz", cubeXYZ)

	out, err := run(t, "--format", "yaml", "obb", file)
	require.NoError(t, err)

	var report obbReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, 9, report.Points)
	assert.False(t, report.Empty)
	assert.InDelta(t, 1.0, report.Volume, 1e-9)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0.5, report.Center[i], 1e-9)
	}
}

func TestInfoText(t *testing.T) {
	file := writeTemp(t, "cube.xyz", cubeXYZ)

	out, err := run(t, "info", file)
	require.NoError(t, err)

	assert.Contains(t, out, "Bounds Information")
	assert.Contains(t, out, "Oriented Bounding Box:")
	assert.Contains(t, out, "OBB/AABB volume ratio: 1.000000")
}

func TestCropCorners(t *testing.T) {
	file := writeTemp(t, "cube.xyz", cubeXYZ)

	for _, extra := range [][]string{nil, {"--parallel", "--block-size", "2", "--workers", "3"}} {
		args := append([]string{"--format", "json", "crop", file, "--min", "0,0,0", "--max", "1,1,0.5"}, extra...)
		out, err := run(t, args...)
		require.NoError(t, err)

		var report cropReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, []int{0, 1, 2, 4, 8}, report.Indices)
		assert.Equal(t, 5, report.Count)
		assert.Equal(t, len(extra) > 0, report.Parallel)
	}
}

func TestCropOBBOfOtherFile(t *testing.T) {
	points := writeTemp(t, "points.xyz", "0.5 0.5 0.5\n2 2 2\n0.9 0.1 0.2\n")
	cube := writeTemp(t, "cube.xyz", cubeXYZ)

	out, err := run(t, "crop", points, "--obb-of", cube)
	require.NoError(t, err)

	assert.Contains(t, out, "Contained: 2")
	assert.Contains(t, out, "Indices: [0 2]")
}

func TestCropRequiresBox(t *testing.T) {
	file := writeTemp(t, "cube.xyz", cubeXYZ)

	_, err := run(t, "crop", file)
	assert.Error(t, err)

	_, err = run(t, "crop", file, "--min", "0,0", "--max", "1,1,1")
	assert.ErrorContains(t, err, "3 comma separated values")

	_, err = run(t, "crop", file, "--min", "2,0,0", "--max", "1,1,1")
	assert.ErrorContains(t, err, "must not exceed")
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	file := writeTemp(t, "cube.xyz", cubeXYZ)
	cfg := writeTemp(t, "gobounds.toml", "format = \"json\"\n")

	out, err := run(t, "--config", cfg, "aabb", file)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"))

	out, err = run(t, "--config", cfg, "--format", "text", "aabb", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Axis-Aligned Bounding Box")
}

func TestUnsupportedFile(t *testing.T) {
	file := writeTemp(t, "mesh.obj", "v 0 0 0\n")

	_, err := run(t, "aabb", file)
	assert.ErrorContains(t, err, "unsupported point file format")
}
