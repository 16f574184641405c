package geodesy

import "math"

// GeodesicResult is the solution of an inverse problem.  Angles are in
// degrees, lengths in meters and the area in square meters.  Quantities
// that were not requested by the mask are NaN.
type GeodesicResult struct {
	Lat1, Lon1 float64
	Lat2, Lon2 float64
	// Azimuth1 and Azimuth2 are the forward azimuths at the two points.
	Azimuth1, Azimuth2 float64
	// ArcLength is the arc length on the auxiliary sphere (a12).
	ArcLength float64
	// Distance is the length of the geodesic (s12).
	Distance float64
	// ReducedLength is m12.
	ReducedLength float64
	// Scale12 and Scale21 are the geodesic scales M12 and M21.
	Scale12, Scale21 float64
	// Area is the area between the geodesic and the equator (S12).
	Area float64
}

func newResult() GeodesicResult {
	nan := math.NaN()
	return GeodesicResult{
		Lat1: nan, Lon1: nan, Lat2: nan, Lon2: nan,
		Azimuth1: nan, Azimuth2: nan,
		ArcLength: nan, Distance: nan, ReducedLength: nan,
		Scale12: nan, Scale21: nan, Area: nan,
	}
}
