package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/lookupcurve"
	"honnef.co/go/lookupcurve/curvefile"
)

const testDocument = `
knots:
  - position: {x: 0, y: 0}
    id: 0
  - position: {x: 1, y: 1}
    interpolation: constant
    id: 1
  - position: {x: 2, y: 3}
    id: 2
`

func writeTestCurve(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "curve.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testDocument), 0600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewLookupCurveCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func knotIDs(t *testing.T, path string) []int {
	t.Helper()
	c, err := curvefile.Load(path)
	require.NoError(t, err)
	var ids []int
	for _, k := range c.Knots() {
		ids = append(ids, k.ID)
	}
	return ids
}

func TestSample(t *testing.T) {
	path := writeTestCurve(t)
	out, err := run(t, "sample", path, "0.5", "1", "1.5", "--", "-1", "5")
	require.NoError(t, err)
	assert.Equal(t, "0.5\t0.5\n1\t1\n1.5\t1\n-1\t0\n5\t3\n", out)

	_, err = run(t, "sample", path, "half")
	assert.Error(t, err)

	_, err = run(t, "sample", path)
	assert.Error(t, err)
}

func TestTable(t *testing.T) {
	path := writeTestCurve(t)
	out, err := run(t, "table", path, "--steps", "4")
	require.NoError(t, err)
	for _, row := range []string{"| 0 ", "| 0.5 ", "| 1.5 ", "| 2 ", "| 3 "} {
		assert.Contains(t, out, row)
	}

	_, err = run(t, "table", path, "--steps", "0")
	assert.Error(t, err)
	_, err = run(t, "table", path, "--from", "2", "--to", "1")
	assert.Error(t, err)
}

func TestKnots(t *testing.T) {
	path := writeTestCurve(t)
	out, err := run(t, "knots", path)
	require.NoError(t, err)
	assert.Contains(t, out, "constant")
	assert.Contains(t, out, "(2, 3)")
}

func TestSVGCommand(t *testing.T) {
	path := writeTestCurve(t)
	out, err := run(t, "svg", path, "--width", "210", "--height", "110", "--margin", "5")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<svg "), out)
	assert.Contains(t, out, `d="M5,105 L105,71.667 L205,71.667 L205,5"`)
	assert.Equal(t, 3, strings.Count(out, "<circle "))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"), out)

	dst := filepath.Join(t.TempDir(), "preview.svg")
	out, err = run(t, "svg", path, "-o", dst)
	require.NoError(t, err)
	assert.Empty(t, out)
	d, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(d), "<path ")

	_, err = run(t, "svg", path, "--width", "10", "--margin", "5")
	assert.Error(t, err)
}

func TestMove(t *testing.T) {
	path := writeTestCurve(t)
	_, err := run(t, "move", path, "--id", "0", "--x", "1.5")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 2}, knotIDs(t, path))

	c, err := curvefile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, lookupcurve.Pt(1.5, 0), c.Knot(1).Position)

	_, err = run(t, "move", path, "--id", "9", "--x", "1")
	assert.Error(t, err)
	_, err = run(t, "move", path, "--x", "1")
	assert.Error(t, err)
}

func TestMoveOutput(t *testing.T) {
	path := writeTestCurve(t)
	dst := filepath.Join(t.TempDir(), "moved.yaml")
	_, err := run(t, "move", path, "--id", "2", "--x", "-1", "-o", dst)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, knotIDs(t, path))
	assert.Equal(t, []int{2, 0, 1}, knotIDs(t, dst))
}

func TestAddDelete(t *testing.T) {
	path := writeTestCurve(t)
	out, err := run(t, "add", path, "--x", "0.5", "--y", "2", "--interpolation", "bezier")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
	assert.Equal(t, []int{0, 3, 1, 2}, knotIDs(t, path))

	c, err := curvefile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, lookupcurve.Bezier, c.Knot(1).Interpolation)

	_, err = run(t, "add", path, "--interpolation", "smooth")
	assert.Error(t, err)

	_, err = run(t, "delete", path, "--id", "1")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3, 2}, knotIDs(t, path))

	_, err = run(t, "delete", path, "--id", "1")
	assert.Error(t, err)
}

func TestNonFinitePositions(t *testing.T) {
	path := writeTestCurve(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, args := range [][]string{
		{"move", path, "--id", "0", "--x", "NaN"},
		{"move", path, "--id", "1", "--y", "Inf"},
		{"move", path, "--id", "2", "--x", "-Inf"},
		{"add", path, "--x", "NaN", "--y", "1"},
		{"add", path, "--x", "1", "--y", "+Inf"},
	} {
		_, err := run(t, args...)
		assert.ErrorContains(t, err, "must be finite", "%v", args)
	}

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	assert.Equal(t, []int{0, 1, 2}, knotIDs(t, path))
}

func TestMissingFile(t *testing.T) {
	_, err := run(t, "knots", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
