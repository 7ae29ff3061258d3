package curvefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/lookupcurve"
)

func testCurve() *lookupcurve.LookupCurve {
	return lookupcurve.MustNew(
		lookupcurve.Knot{
			Position:      lookupcurve.Pt(0, 1),
			Interpolation: lookupcurve.Constant,
			ID:            3,
		},
		lookupcurve.Knot{
			Position:      lookupcurve.Pt(1, 0.5),
			Interpolation: lookupcurve.Bezier,
			ID:            1,
			LeftTangent:   lookupcurve.Vec(-0.25, 0.1),
			RightTangent:  lookupcurve.Vec(0.4, -0.2),
		},
		lookupcurve.Knot{
			Position:     lookupcurve.Pt(2.5, -3),
			ID:           7,
			LeftTangent:  lookupcurve.Vec(-1, 0),
			RightTangent: lookupcurve.Vec(1, 0),
		},
	)
}

func TestRoundTrip(t *testing.T) {
	c := testCurve()
	d, err := Marshal(c)
	require.NoError(t, err)

	got, err := Unmarshal(d)
	require.NoError(t, err)
	assert.Equal(t, c.Knots(), got.Knots())
}

func TestDecodeSorts(t *testing.T) {
	const doc = `
knots:
  - position: {x: 2, y: 0}
    id: 0
  - position: {x: -1, y: 4}
    id: 1
  - position: {x: 2, y: 1}
    id: 2
`
	c, err := Unmarshal([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	var ids []int
	for _, k := range c.Knots() {
		ids = append(ids, k.ID)
	}
	assert.Equal(t, []int{1, 0, 2}, ids)
}

func TestDecodeDefaults(t *testing.T) {
	const doc = `
knots:
  - position: {x: 1, y: 2}
    id: 5
  - position: {x: 3, y: 4}
    interpolation: bezier
    right_tangent: {x: 0.5, y: 0.5}
`
	c, err := Unmarshal([]byte(doc))
	require.NoError(t, err)

	want := lookupcurve.DefaultKnot()
	want.Position = lookupcurve.Pt(1, 2)
	want.ID = 5
	assert.Equal(t, want, c.Knot(0))

	k := c.Knot(1)
	assert.Equal(t, lookupcurve.Bezier, k.Interpolation)
	assert.Equal(t, 0, k.ID)
	assert.Equal(t, lookupcurve.DefaultKnot().LeftTangent, k.LeftTangent)
	assert.Equal(t, lookupcurve.Vec(0.5, 0.5), k.RightTangent)
}

func TestDecodeEmpty(t *testing.T) {
	for _, doc := range []string{"", "knots: []\n", "knots:\n"} {
		c, err := Unmarshal([]byte(doc))
		require.NoError(t, err, "document %q", doc)
		assert.Equal(t, 0, c.Len(), "document %q", doc)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		invalid bool
	}{
		{
			name:    "unknown interpolation",
			doc:     "knots:\n  - position: {x: 0, y: 0}\n    interpolation: cubic\n",
			invalid: true,
		},
		{
			name:    "nan position",
			doc:     "knots:\n  - position: {x: .nan, y: 0}\n",
			invalid: true,
		},
		{
			name:    "infinite position",
			doc:     "knots:\n  - position: {x: 0, y: -.inf}\n",
			invalid: true,
		},
		{
			name:    "nan tangent",
			doc:     "knots:\n  - position: {x: 0, y: 0}\n    left_tangent: {x: -1, y: .nan}\n",
			invalid: true,
		},
		{
			name: "unknown field",
			doc:  "knots:\n  - position: {x: 0, y: 0}\n    weight: 2\n",
		},
		{
			name: "not a number",
			doc:  "knots:\n  - position: {x: zero, y: 0}\n",
		},
		{
			name: "not a document",
			doc:  "- 1\n- 2\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.doc))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidKnot), "error: %v", err)
		})
	}
}

func TestEncodeFormat(t *testing.T) {
	c := lookupcurve.MustNew(lookupcurve.Knot{Position: lookupcurve.Pt(1, 2), Interpolation: lookupcurve.Bezier, ID: 4})
	d, err := Marshal(c)
	require.NoError(t, err)

	s := string(d)
	assert.True(t, strings.HasPrefix(s, "knots:\n"), s)
	assert.Contains(t, s, "interpolation: bezier")
	assert.Contains(t, s, "id: 4")
	assert.Contains(t, s, "left_tangent:")
	assert.Contains(t, s, "right_tangent:")
}

func TestEncodeInvalidInterpolation(t *testing.T) {
	c := lookupcurve.MustNew(lookupcurve.Knot{Interpolation: lookupcurve.Interpolation(9)})
	_, err := Marshal(c)
	assert.True(t, errors.Is(err, ErrInvalidKnot), "error: %v", err)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curves", "gain.yaml")
	c := testCurve()
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c.Knots(), got.Knots())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "error: %v", err)
}
