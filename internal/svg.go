package internal

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/JoshVarga/svgparser"
	"github.com/pkg/errors"
)

// This is not a full (or even correct) svg reader. It collects the vertices of
// every <polygon> and <polyline>, and the center of every <circle>, in
// document order. Repeated coordinates are only reported once, since shapes
// commonly share vertices and the triangulation rejects duplicates.
func ReadSVGPoints(r io.Reader) ([]*Point, error) {
	rootEl, err := svgparser.Parse(r, true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse svg")
	}

	var points []*Point
	seen := make(PointSet)
	add := func(p *Point) {
		if seen.Contains(p) {
			return
		}
		seen.Add(p)
		points = append(points, p)
	}

	var shapes []*svgparser.Element
	shapes = append(shapes, rootEl.FindAll("polygon")...)
	shapes = append(shapes, rootEl.FindAll("polyline")...)
	for _, el := range shapes {
		shapePoints, err := ParsePointList(el.Attributes["points"])
		if err != nil {
			return nil, errors.Wrapf(err, "invalid <%s>", el.Name)
		}
		for _, p := range shapePoints {
			add(p)
		}
	}

	for _, el := range rootEl.FindAll("circle") {
		x, err := strconv.ParseFloat(el.Attributes["cx"], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid circle cx %q", el.Attributes["cx"])
		}
		y, err := strconv.ParseFloat(el.Attributes["cy"], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid circle cy %q", el.Attributes["cy"])
		}
		add(&Point{X: x, Y: y})
	}
	return points, nil
}

// Parse an svg points attribute ("x1,y1 x2,y2 ..."). Commas and whitespace
// are interchangeable separators.
func ParsePointList(s string) ([]*Point, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates in %q", s)
	}
	points := make([]*Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid x value %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid y value %q", fields[i+1])
		}
		points = append(points, &Point{X: x, Y: y})
	}
	return points, nil
}
