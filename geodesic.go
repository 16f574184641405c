// Package geodesy solves the inverse geodesic problem on an ellipsoid of
// revolution: given two points, find the shortest path between them together
// with its azimuths, length, reduced length, geodesic scales and area.
//
// An Ellipsoid precomputes its series coefficients once and is never mutated
// afterwards, so a single value may be shared by any number of goroutines.
package geodesy

import (
	"math"
)

const (
	maxIt1 = 20
	maxIt2 = maxIt1 + digits + 10
)

// WGS84 is the World Geodetic System 1984 ellipsoid.
var WGS84 = MustNew(6378137, 1/298.257223563)

// Ellipsoid is an ellipsoid of revolution together with the quantities the
// geodesic solver derives from it.
type Ellipsoid struct {
	a, f, f1, e2, ep2, n, b, c2, etol2 float64
	tol0, tol1, tol2, tolb, xthresh, tiny float64

	a3x [nA3x]float64
	c3x [nC3x]float64
	c4x [nC4x]float64
}

// New constructs an Ellipsoid with equatorial radius a (meters) and
// flattening f.  Negative f gives a prolate ellipsoid.  An error matching
// ErrInvalidEllipsoid is returned if a or the polar semi-axis b = a (1 - f)
// is not a finite positive quantity.
func New(a, f float64) (*Ellipsoid, error) {
	b := a * (1 - f)
	if !(!math.IsInf(a, 0) && a > 0) {
		return nil, &InvalidEllipsoidError{Param: "equatorial radius", Value: a}
	}
	if !(!math.IsInf(b, 0) && b > 0) {
		return nil, &InvalidEllipsoidError{Param: "polar semi-axis", Value: b}
	}

	tol0 := epsilon
	tol2 := math.Sqrt(tol0)
	e2 := f * (2 - f)

	// authalic radius squared
	c2 := sq(b)
	switch {
	case e2 > 0:
		c2 *= math.Atanh(math.Sqrt(e2)) / math.Sqrt(e2)
	case e2 < 0:
		c2 *= math.Atan(math.Sqrt(-e2)) / math.Sqrt(-e2)
	}
	c2 = (sq(a) + c2) / 2

	e := &Ellipsoid{
		a:   a,
		f:   f,
		f1:  1 - f,
		e2:  e2,
		ep2: e2 / sq(1-f),
		n:   f / (2 - f),
		b:   b,
		c2:  c2,
		// The sig12 threshold for "really short".  Using the auxiliary sphere
		// solution with dnm computed at (bet1 + bet2) / 2, the relative error in
		// the azimuth consistency check is sig12^2 * abs(f) * min(1, 1-f/2) / 2.
		// (Error measured for 1/100 < b/a < 100 and abs(f) >= 1/1000.  For a given
		// f and sig12, the max error occurs for lines near the pole.  If the old
		// rule for computing dnm = (dn1 + dn2)/2 is used, then the error increases
		// by a factor of 2.)  Setting this equal to epsilon gives sig12 = etol2.
		// Here 0.1 is a safety factor (error decreased by 100) and max(0.001,
		// abs(f)) stops etol2 getting too large in the nearly spherical case.
		etol2: 0.1 * tol2 / math.Sqrt(math.Max(0.001, math.Abs(f))*
			math.Min(1.0, 1-f/2)/2),
		tol0:    tol0,
		tol1:    200 * tol0,
		tol2:    tol2,
		tolb:    tol0 * tol2,
		xthresh: 1000 * tol2,
		tiny:    math.Sqrt(0x1p-1022),
	}
	a3Coeff(e.n, &e.a3x)
	c3Coeff(e.n, &e.c3x)
	c4Coeff(e.n, &e.c4x)
	return e, nil
}

// MustNew is like New but panics on an invalid ellipsoid.  It is meant for
// package-level ellipsoids with constant parameters.
func MustNew(a, f float64) *Ellipsoid {
	e, err := New(a, f)
	if err != nil {
		panic(err)
	}
	return e
}

// EquatorialRadius returns a in meters.
func (e *Ellipsoid) EquatorialRadius() float64 {
	return e.a
}

// Flattening returns f.
func (e *Ellipsoid) Flattening() float64 {
	return e.f
}

// PolarRadius returns b = a (1 - f) in meters.
func (e *Ellipsoid) PolarRadius() float64 {
	return e.b
}

// EllipsoidArea returns the total area of the ellipsoid in square meters.
func (e *Ellipsoid) EllipsoidArea() float64 {
	return 4 * math.Pi * e.c2
}

// Inverse solves the inverse geodesic problem between (lat1, lon1) and
// (lat2, lon2), all in degrees.
//
// Latitudes should lie in [-90, 90]; outside that range they are reported
// as NaN and so is everything derived from them.  Longitudes are
// unrestricted.  mask selects the returned quantities; Standard gives the
// azimuths and the distance.  Lat1, Lon1, Lat2, Lon2 and ArcLength are
// always filled in.  With LongUnroll, Lon1 is returned as given and Lon2 is
// Lon1 plus the longitude difference travelled along the geodesic;
// otherwise both are reduced to (-180, 180].
//
// The returned azimuths are in (-180, 180].  The solution is found with
// Newton's method, falling back on bisection for very eccentric ellipsoids;
// failure to converge is not reported, the last iterate is used.
func (e *Ellipsoid) Inverse(lat1, lon1, lat2, lon2 float64, mask Mask) GeodesicResult {
	a12, s12, salp1, calp1, salp2, calp2, m12, M12, M21, S12 := e.genInverse(
		lat1, lon1, lat2, lon2, mask)
	mask &= outMask

	r := newResult()
	r.Lat1 = latFix(lat1)
	r.Lat2 = latFix(lat2)
	if mask&LongUnroll != 0 {
		lon12, lon12e := angDiff(lon1, lon2)
		r.Lon1 = lon1
		r.Lon2 = (lon1 + lon12) + lon12e
	} else {
		r.Lon1 = angNormalize(lon1)
		r.Lon2 = angNormalize(lon2)
	}
	r.ArcLength = a12
	if mask&Distance != 0 {
		r.Distance = s12
	}
	if mask&Azimuth != 0 {
		r.Azimuth1 = atan2d(salp1, calp1)
		r.Azimuth2 = atan2d(salp2, calp2)
	}
	if mask&ReducedLength != 0 {
		r.ReducedLength = m12
	}
	if mask&GeodesicScale != 0 {
		r.Scale12 = M12
		r.Scale21 = M21
	}
	if mask&Area != 0 {
		r.Area = S12
	}
	return r
}
