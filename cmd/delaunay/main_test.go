package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/osuushi/delaunay"
	"github.com/osuushi/delaunay/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReadPoints(t *testing.T) {
	points, err := readPoints(strings.NewReader("0 0\n\n1 0\n  0.5 2.5  \n"))
	require.NoError(t, err)
	assert.Equal(t, []*internal.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 2.5}}, points)

	_, err = readPoints(strings.NewReader("0 0\n1\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = readPoints(strings.NewReader("0 zero\n"))
	assert.Error(t, err)
}

func TestWriteResult(t *testing.T) {
	result, err := delaunay.TriangulateWithOptions([]*internal.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, delaunay.Options{})
	require.NoError(t, err)

	*format = "text"
	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, result))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))

	*format = "yaml"
	buf.Reset()
	require.NoError(t, writeResult(&buf, result))
	var decoded output
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Triangles, 1)
	assert.Equal(t, 3, decoded.Stats.Points)
}

// Bad input comes back from the library as an error, never as a panic.
func TestTriangulate_Error(t *testing.T) {
	points, err := readPoints(strings.NewReader("0 0\n"))
	require.NoError(t, err)
	_, err = delaunay.TriangulateWithOptions(points, delaunay.Options{})
	assert.ErrorIs(t, err, delaunay.ErrTooFewPoints)

	points, err = readPoints(strings.NewReader("0 0\n1 1\n2 2\n"))
	require.NoError(t, err)
	_, err = delaunay.TriangulateWithOptions(points, delaunay.Options{})
	assert.ErrorIs(t, err, delaunay.ErrCollinear)
}
