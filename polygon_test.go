package geodesy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planimeter(points [][2]float64) (perimeter, area float64) {
	p := WGS84.NewPolygon(false)
	for _, pt := range points {
		p.AddPoint(pt[0], pt[1])
	}
	_, perimeter, area = p.Compute(false, true)
	return perimeter, area
}

func polyLength(points [][2]float64) float64 {
	p := WGS84.NewPolygon(true)
	for _, pt := range points {
		p.AddPoint(pt[0], pt[1])
	}
	_, perimeter, _ := p.Compute(false, true)
	return perimeter
}

func TestPolygonAroundPole(t *testing.T) {
	points := [][2]float64{{89, 0}, {89, 90}, {89, 180}, {89, 270}}
	perimeter, area := planimeter(points)
	assert.InDelta(t, 631819.8745, perimeter, 1e-4)
	assert.InDelta(t, 24952305678.0, area, 1)

	points = [][2]float64{{-89, 0}, {-89, 90}, {-89, 180}, {-89, 270}}
	perimeter, area = planimeter(points)
	assert.InDelta(t, 631819.8745, perimeter, 1e-4)
	assert.InDelta(t, -24952305678.0, area, 1)
}

func TestPolygonDiamond(t *testing.T) {
	points := [][2]float64{{0, -1}, {-1, 0}, {0, 1}, {1, 0}}
	perimeter, area := planimeter(points)
	assert.InDelta(t, 627598.2731, perimeter, 1e-4)
	assert.InDelta(t, 24619419146.0, area, 1)
}

func TestPolygonOctant(t *testing.T) {
	points := [][2]float64{{90, 0}, {0, 0}, {0, 90}}
	perimeter, area := planimeter(points)
	assert.InDelta(t, 30022685, perimeter, 1)
	assert.InDelta(t, 63758202715511.0, area, 1)

	assert.InDelta(t, 20020719, polyLength(points), 1)
}

func TestPolygonSenseAndRange(t *testing.T) {
	p := WGS84.NewPolygon(false)
	for _, pt := range [][2]float64{{89, 0}, {89, 90}, {89, 180}, {89, 270}} {
		p.AddPoint(pt[0], pt[1])
	}
	num, _, area := p.Compute(true, true)
	assert.Equal(t, 4, num)
	assert.InDelta(t, -24952305678.0, area, 1)

	// Unsigned clockwise area is the complement on the ellipsoid.
	_, _, area = p.Compute(true, false)
	assert.InDelta(t, WGS84.EllipsoidArea()-24952305678.0, area, 2)
}

func TestPolygonDegenerate(t *testing.T) {
	p := WGS84.NewPolygon(false)
	num, perimeter, area := p.Compute(false, true)
	assert.Equal(t, 0, num)
	assert.Equal(t, 0.0, perimeter)
	assert.Equal(t, 0.0, area)

	p.AddPoint(10, 20)
	num, perimeter, area = p.Compute(false, true)
	assert.Equal(t, 1, num)
	assert.Equal(t, 0.0, perimeter)
	assert.Equal(t, 0.0, area)

	p.AddPoint(10, 21)
	num, perimeter, area = p.Compute(false, true)
	assert.Equal(t, 2, num)
	d := WGS84.Inverse(10, 20, 10, 21, Distance).Distance
	assert.InDelta(t, 2*d, perimeter, 1e-6)
	assert.InDelta(t, 0, area, 1e-3)

	line := WGS84.NewPolygon(true)
	line.AddPoint(10, 20)
	_, _, area = line.Compute(false, true)
	assert.True(t, math.IsNaN(area))
}

func TestPolygonClear(t *testing.T) {
	p := WGS84.NewPolygon(false)
	p.AddPoint(0, 0)
	p.AddPoint(0, 1)
	p.AddPoint(1, 1)
	p.Clear()
	num, perimeter, area := p.Compute(false, true)
	assert.Equal(t, 0, num)
	assert.Equal(t, 0.0, perimeter)
	assert.Equal(t, 0.0, area)

	for _, pt := range [][2]float64{{0, -1}, {-1, 0}, {0, 1}, {1, 0}} {
		p.AddPoint(pt[0], pt[1])
	}
	_, perimeter, area = p.Compute(false, true)
	assert.InDelta(t, 627598.2731, perimeter, 1e-4)
	assert.InDelta(t, 24619419146.0, area, 1)
}

func TestPolygonAntimeridian(t *testing.T) {
	// The same square described with longitudes on either side of the
	// antimeridian.
	a := [][2]float64{{0, 179}, {0, -179}, {2, -179}, {2, 179}}
	b := [][2]float64{{0, 179}, {0, 181}, {2, 181}, {2, 179}}
	pa, aa := planimeter(a)
	pb, ab := planimeter(b)
	require.Greater(t, aa, 0.0)
	assert.InDelta(t, pa, pb, 1e-6)
	assert.InDelta(t, aa, ab, 1e-2)
}

func TestTransit(t *testing.T) {
	assert.Equal(t, 1, transit(-10, 10))
	assert.Equal(t, -1, transit(10, -10))
	assert.Equal(t, 0, transit(10, 20))
	assert.Equal(t, 0, transit(170, -170))
	assert.Equal(t, 1, transit(0, 10))
	assert.Equal(t, -1, transit(10, 0))
}

func TestAccumulator(t *testing.T) {
	var a accumulator
	a.Add(1)
	for i := 0; i < 10; i++ {
		a.Add(1e-20)
	}
	assert.Equal(t, 1.0, a.Sum(0))
	assert.InDelta(t, 1e-19, a.t, 1e-30)

	a.Negate()
	assert.Equal(t, -1.0, a.Sum(0))

	var b accumulator
	b.Add(350)
	b.Remainder(360)
	assert.Equal(t, -10.0, b.Sum(0))
}
