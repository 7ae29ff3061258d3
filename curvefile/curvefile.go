// Package curvefile reads and writes lookup curves as YAML documents.
//
// A document lists the curve's knots:
//
//	knots:
//	  - position: {x: 0, y: 0}
//	    interpolation: bezier
//	    id: 0
//	    left_tangent: {x: -0.1, y: 0}
//	    right_tangent: {x: 0.1, y: 0}
//
// The order of knots in a document doesn't matter. Positions and tangents
// must be finite.
// Omitted interpolations default to linear and omitted tangents to those of
// [lookupcurve.DefaultKnot].
package curvefile

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"honnef.co/go/lookupcurve"
)

// ErrInvalidKnot is wrapped by errors for knots that can't be decoded.
var ErrInvalidKnot = errors.New("invalid knot")

type document struct {
	Knots []knotRecord `yaml:"knots"`
}

type point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type knotRecord struct {
	Position      point  `yaml:"position"`
	Interpolation string `yaml:"interpolation,omitempty"`
	ID            int    `yaml:"id"`
	LeftTangent   *point `yaml:"left_tangent,omitempty"`
	RightTangent  *point `yaml:"right_tangent,omitempty"`
}

func recordFromKnot(k lookupcurve.Knot) (knotRecord, error) {
	ip, err := k.Interpolation.MarshalText()
	if err != nil {
		return knotRecord{}, errors.Wrapf(ErrInvalidKnot, "knot %d: %s", k.ID, err)
	}
	return knotRecord{
		Position:      point(k.Position),
		Interpolation: string(ip),
		ID:            k.ID,
		LeftTangent:   &point{k.LeftTangent.X, k.LeftTangent.Y},
		RightTangent:  &point{k.RightTangent.X, k.RightTangent.Y},
	}, nil
}

func finite(v lookupcurve.Vec2) bool {
	return !v.IsNaN() && !v.IsInf()
}

func (r knotRecord) knot() (lookupcurve.Knot, error) {
	k := lookupcurve.DefaultKnot()
	k.Position = lookupcurve.Point(r.Position)
	if k.Position.IsNaN() || k.Position.IsInf() {
		return lookupcurve.Knot{}, errors.Wrapf(ErrInvalidKnot, "position %s is not finite", k.Position)
	}
	k.ID = r.ID
	if r.Interpolation != "" {
		if err := k.Interpolation.UnmarshalText([]byte(r.Interpolation)); err != nil {
			return lookupcurve.Knot{}, errors.Wrap(ErrInvalidKnot, err.Error())
		}
	}
	if r.LeftTangent != nil {
		k.LeftTangent = lookupcurve.Vec(r.LeftTangent.X, r.LeftTangent.Y)
	}
	if r.RightTangent != nil {
		k.RightTangent = lookupcurve.Vec(r.RightTangent.X, r.RightTangent.Y)
	}
	if !finite(k.LeftTangent) || !finite(k.RightTangent) {
		return lookupcurve.Knot{}, errors.Wrapf(ErrInvalidKnot, "tangents %s and %s must be finite", k.LeftTangent, k.RightTangent)
	}
	return k, nil
}

// Decode reads a curve document from r. An empty document is an empty curve.
func Decode(r io.Reader) (*lookupcurve.LookupCurve, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decode curve document")
	}

	knots := make([]lookupcurve.Knot, 0, len(doc.Knots))
	for i, rec := range doc.Knots {
		k, err := rec.knot()
		if err != nil {
			return nil, errors.Wrapf(err, "knot %d", i)
		}
		knots = append(knots, k)
	}

	c, err := lookupcurve.New(knots)
	if err != nil {
		return nil, errors.Wrap(err, "build curve")
	}
	return c, nil
}

// Encode writes c to w as a curve document, with knots in sorted order.
func Encode(w io.Writer, c *lookupcurve.LookupCurve) error {
	doc := document{Knots: make([]knotRecord, 0, c.Len())}
	for _, k := range c.Knots() {
		rec, err := recordFromKnot(k)
		if err != nil {
			return err
		}
		doc.Knots = append(doc.Knots, rec)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return errors.Wrap(err, "encode curve document")
	}
	return errors.Wrap(enc.Close(), "encode curve document")
}

// Unmarshal is like [Decode] but reads from a byte slice.
func Unmarshal(d []byte) (*lookupcurve.LookupCurve, error) {
	return Decode(bytes.NewReader(d))
}

// Marshal is like [Encode] but returns the document.
func Marshal(c *lookupcurve.LookupCurve) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load reads the curve document at path.
func Load(path string) (*lookupcurve.LookupCurve, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load curve")
	}
	c, err := Unmarshal(d)
	if err != nil {
		return nil, errors.Wrapf(err, "load curve %s", path)
	}
	return c, nil
}

// Save writes c to path, creating missing parent directories.
func Save(path string, c *lookupcurve.LookupCurve) error {
	d, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrap(err, "save curve")
	}
	return errors.Wrap(os.WriteFile(path, d, 0600), "save curve")
}
