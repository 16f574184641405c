// Package distance answers the common question "how far apart are these
// points" on top of the geodesy inverse solver, and composes leg lengths
// into route lengths.
package distance

import (
	"github.com/lazylynx/geodesy"
)

// Point is a geographic position in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Distance is a length along the ellipsoid in meters.
type Distance float64

// Add returns d + o.
func (d Distance) Add(o Distance) Distance {
	return d + o
}

// Scale returns d multiplied by k.
func (d Distance) Scale(k float64) Distance {
	return Distance(float64(d) * k)
}

// Meters returns d in meters.
func (d Distance) Meters() float64 {
	return float64(d)
}

// Kilometers returns d in kilometers.
func (d Distance) Kilometers() float64 {
	return float64(d) / 1000
}

// Between returns the geodesic distance from a to b on e.
func Between(e *geodesy.Ellipsoid, a, b Point) Distance {
	r := e.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, geodesy.Distance)
	return Distance(r.Distance)
}

// Km returns the WGS-84 geodesic distance between a and b in kilometers.
func Km(a, b Point) float64 {
	return KmOn(geodesy.WGS84, a, b)
}

// KmOn is like Km on the ellipsoid e.
func KmOn(e *geodesy.Ellipsoid, a, b Point) float64 {
	return Between(e, a, b).Kilometers()
}

// Path returns the summed length of the legs joining pts in order.  Fewer
// than two points give zero.
func Path(e *geodesy.Ellipsoid, pts ...Point) Distance {
	var total Distance
	for i := 1; i < len(pts); i++ {
		total = total.Add(Between(e, pts[i-1], pts[i]))
	}
	return total
}
