package geodesy

import "math"

// accumulator sums a sequence of float64 at twice the normal precision.
type accumulator struct {
	s, t float64
}

// Add y to the sum.
func (a *accumulator) Add(y float64) {
	var u float64
	y, u = sum(y, a.t)
	a.s, a.t = sum(y, a.s)
	// a.s + a.t is now the sum rounded to twice the precision.  If a.s == 0
	// then the small correction u is the whole sum.
	if a.s == 0 {
		a.s = u
	} else {
		a.t += u
	}
}

// Sum returns the sum plus y without changing the accumulator.
func (a accumulator) Sum(y float64) float64 {
	if y == 0 {
		return a.s
	}
	a.Add(y)
	return a.s
}

func (a *accumulator) Negate() {
	a.s = -a.s
	a.t = -a.t
}

// Remainder reduces the sum to [-y/2, y/2].
func (a *accumulator) Remainder(y float64) {
	a.s = math.Remainder(a.s, y)
	a.Add(0)
}

// Polygon accumulates the perimeter and area of a geodesic polygon, or the
// length of a geodesic polyline, one vertex at a time.  It is not safe for
// concurrent use.
type Polygon struct {
	e        *Ellipsoid
	polyline bool
	mask     Mask
	area0    float64

	num        int
	lat0, lon0 float64
	lat1, lon1 float64
	crossings  int
	areasum    accumulator
	perimeter  accumulator
}

// NewPolygon starts an empty polygon on e.  If polyline is set the vertices
// describe an open polyline and only its length is computed.
func (e *Ellipsoid) NewPolygon(polyline bool) *Polygon {
	p := &Polygon{
		e:        e,
		polyline: polyline,
		area0:    e.EllipsoidArea(),
		mask:     Latitude | Longitude | Distance,
	}
	if !polyline {
		p.mask |= Area | LongUnroll
	}
	p.Clear()
	return p
}

// Clear resets the polygon so that a new one can be started.
func (p *Polygon) Clear() {
	p.num = 0
	p.crossings = 0
	p.areasum = accumulator{}
	p.perimeter = accumulator{}
	p.lat0, p.lon0 = math.NaN(), math.NaN()
	p.lat1, p.lon1 = math.NaN(), math.NaN()
}

// AddPoint adds a vertex given in degrees.
func (p *Polygon) AddPoint(lat, lon float64) {
	if p.num == 0 {
		p.lat0, p.lat1 = lat, lat
		p.lon0, p.lon1 = lon, lon
	} else {
		r := p.e.Inverse(p.lat1, p.lon1, lat, lon, p.mask)
		p.perimeter.Add(r.Distance)
		if !p.polyline {
			p.areasum.Add(r.Area)
			p.crossings += transit(p.lon1, lon)
		}
		p.lat1, p.lon1 = lat, lon
	}
	p.num++
}

// Compute returns the number of vertices, the perimeter in meters and the
// area in square meters.  The closing edge back to the first vertex is
// included for polygons.  Counter-clockwise traversal counts as a positive
// area unless reverse is set.  If sign is set the area is signed and lies in
// (-A/2, A/2] where A is the area of the ellipsoid; otherwise it lies in
// [0, A).  The area of a polyline is NaN.  Vertices may still be added
// afterwards.
func (p *Polygon) Compute(reverse, sign bool) (num int, perimeter, area float64) {
	if p.polyline {
		area = math.NaN()
	}
	if p.num < 2 {
		if !p.polyline {
			area = 0
		}
		return p.num, 0, area
	}
	if p.polyline {
		return p.num, p.perimeter.Sum(0), area
	}
	r := p.e.Inverse(p.lat1, p.lon1, p.lat0, p.lon0, p.mask)
	perimeter = p.perimeter.Sum(r.Distance)
	tempsum := p.areasum
	tempsum.Add(r.Area)
	crossings := p.crossings + transit(p.lon1, p.lon0)
	area = reduceArea(tempsum, p.area0, crossings, reverse, sign)
	return p.num, perimeter, area
}

// transit counts the crossings of the prime meridian when going from lon1
// to lon2: +1 eastwards, -1 westwards, 0 otherwise.
func transit(lon1, lon2 float64) int {
	lon1 = angNormalize(lon1)
	lon2 = angNormalize(lon2)
	// Compute lon12 the same way as Inverse.
	lon12, _ := angDiff(lon1, lon2)
	switch {
	case lon1 <= 0 && lon2 > 0 && lon12 > 0:
		return 1
	case lon2 <= 0 && lon1 > 0 && lon12 < 0:
		return -1
	}
	return 0
}

func reduceArea(area accumulator, area0 float64, crossings int, reverse, sign bool) float64 {
	area.Remainder(area0)
	if crossings&1 != 0 {
		if area.Sum(0) < 0 {
			area.Add(area0 / 2)
		} else {
			area.Add(-area0 / 2)
		}
	}
	// area is with the clockwise sense.  If !reverse convert to
	// counter-clockwise convention.
	if !reverse {
		area.Negate()
	}
	// If sign put area in (-area0/2, area0/2], else put area in [0, area0)
	if sign {
		if area.Sum(0) > area0/2 {
			area.Add(-area0)
		} else if area.Sum(0) <= -area0/2 {
			area.Add(area0)
		}
	} else {
		if area.Sum(0) >= area0 {
			area.Add(-area0)
		} else if area.Sum(0) < 0 {
			area.Add(area0)
		}
	}
	return 0.0 + area.Sum(0)
}
