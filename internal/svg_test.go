package internal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSVGPoints(t *testing.T) {
	points := LoadFixture("shapes")
	// The shared corner is only reported once
	assert.Equal(t, []*Point{
		{10, 10}, {40, 10}, {40, 40}, {10, 40},
		{70, 55}, {90, 20},
		{25, 80}, {60.5, 90.25},
	}, points)

	assert.Len(t, LoadFixture("hexagon"), 6)
	assert.Len(t, LoadFixture("scatter"), 60)
}

func TestReadSVGPoints_Invalid(t *testing.T) {
	_, err := ReadSVGPoints(strings.NewReader(`<svg><polygon points="1,2 3"/></svg>`))
	assert.Error(t, err)

	_, err = ReadSVGPoints(strings.NewReader(`<svg><circle cx="a" cy="1"/></svg>`))
	assert.Error(t, err)
}

func TestParsePointList(t *testing.T) {
	points, err := ParsePointList(" 1,2 3 4,\n5.5,-6 ")
	require.NoError(t, err)
	assert.Equal(t, []*Point{{1, 2}, {3, 4}, {5.5, -6}}, points)

	points, err = ParsePointList("")
	require.NoError(t, err)
	assert.Empty(t, points)

	_, err = ParsePointList("1,x")
	assert.Error(t, err)
}
