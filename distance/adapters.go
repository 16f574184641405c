package distance

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"

	"github.com/lazylynx/geodesy"
)

// FromLatLng converts an s2 latitude/longitude pair.
func FromLatLng(ll s2.LatLng) Point {
	return Point{Lat: ll.Lat.Degrees(), Lon: ll.Lng.Degrees()}
}

// KmLatLng returns the WGS-84 distance between two s2 positions in
// kilometers.
func KmLatLng(a, b s2.LatLng) float64 {
	return Km(FromLatLng(a), FromLatLng(b))
}

// FromOrb converts an orb point, which stores longitude first.
func FromOrb(p orb.Point) Point {
	return Point{Lat: p.Lat(), Lon: p.Lon()}
}

// LineStringLength returns the geodesic length of ls on e.
func LineStringLength(e *geodesy.Ellipsoid, ls orb.LineString) Distance {
	pts := make([]Point, len(ls))
	for i, p := range ls {
		pts[i] = FromOrb(p)
	}
	return Path(e, pts...)
}

// RingArea returns the signed area of r on e in square meters, positive
// for counter-clockwise rings.  A closing point equal to the first is
// optional.
func RingArea(e *geodesy.Ellipsoid, r orb.Ring) float64 {
	n := len(r)
	if n > 1 && r[0].Equal(r[n-1]) {
		n--
	}
	poly := e.NewPolygon(false)
	for _, p := range r[:n] {
		poly.AddPoint(p.Lat(), p.Lon())
	}
	_, _, area := poly.Compute(false, true)
	return area
}
