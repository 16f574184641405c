package geodesy

import "math"

const (
	// digits is the number of bits in the mantissa of a float64.
	digits  = 53
	epsilon = 1.0 / (1 << (digits - 1))
)

func sq(x float64) float64 {
	return x * x
}

func polyval(N int, p []float64, s int, x float64) float64 {
	// Evaluate a polynomial of order N with coefficients p[s:s+N+1],
	// highest power first.
	var y float64
	if N < 0 {
		y = 0
	} else {
		y = p[s]
	}
	for N > 0 {
		N--
		s++
		y = y*x + p[s]
	}
	return y
}

func sum(u, v float64) (float64, float64) {
	// Error free transformation of a sum.
	// u + v =       s      + t
	//       = round(u + v) + t
	s := u + v
	up := s - v
	vpp := s - up
	up -= u
	vpp -= v
	// t = 0 when s = 0 so that the sign of t follows s.
	if s == 0 {
		return s, s
	}
	return s, 0.0 - (up + vpp)
}

func angNormalize(x float64) float64 {
	// reduce angle to (-180,180]
	y := math.Remainder(x, 360)
	if math.Abs(y) == 180 {
		return 180
	}
	return y
}

func angDiff(x, y float64) (float64, float64) {
	// compute y - x and reduce to [-180,180] accurately; the second
	// return value is the rounding error of the first.
	d, t := sum(math.Remainder(-x, 360), math.Remainder(y, 360))
	d, t = sum(math.Remainder(d, 360), t)
	if d == 0 || math.Abs(d) == 180 {
		// The sign of a zero or half-turn difference follows y - x.
		s := -t
		if t == 0 {
			s = y - x
		}
		d = math.Copysign(d, s)
	}
	return d, t
}

func angRound(x float64) float64 {
	// Round an angle so that small values underflow to zero.
	// The makes the smallest gap in x = 1/16 - nextafter(1/16, 0) = 1/2^57
	// for reals = 0.7 pm on the earth if x is an angle in degrees.  (This
	// is about 1000 times more resolution than we get with angles around 90
	// degrees.)  We use this to avoid having to deal with near singular
	// cases when x is non-zero but tiny (e.g., 1.0e-200).
	const z = 1 / 16.0
	y := math.Abs(x)
	w := z - y
	// The compiler mustn't "simplify" z - (z - y) to y
	if w > 0 {
		y = z - w
	}
	return math.Copysign(y, x)
}

func radians(deg float64) float64 {
	return math.Pi * deg / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func atan2d(y, x float64) float64 {
	// compute atan2(y, x) with the result in degrees
	var q int
	if math.Abs(y) > math.Abs(x) {
		q = 2
		x, y = y, x
	}
	if math.Signbit(x) {
		q++
		x = -x
	}
	ang := degrees(math.Atan2(y, x))
	switch q {
	case 1:
		ang = math.Copysign(180, y) - ang
	case 2:
		ang = 90 - ang
	case 3:
		ang = -90 + ang
	}
	return ang
}

func norm(x, y float64) (float64, float64) {
	// Normalize a two-vector.  Hypot avoids the overflow and accuracy
	// problems of sqrt(x*x + y*y).
	r := math.Hypot(x, y)
	return x / r, y / r
}

func latFix(x float64) float64 {
	// replace angles outside [-90,90] by NaN
	if math.Abs(x) > 90 {
		return math.NaN()
	}
	return x
}

// quadrant applies a rotation by q quarter turns to (s, c).
func quadrant(q int, s, c float64) (float64, float64) {
	// q & 3 is the non-negative residue, also for negative q.
	switch q & 3 {
	case 1:
		s, c = c, -s
	case 2:
		s, c = -s, -c
	case 3:
		s, c = -c, s
	}
	return s, c
}

func sincosd(x float64) (float64, float64) {
	// Compute sine and cosine of x in degrees.
	r := math.NaN()
	if !math.IsInf(x, 0) {
		r = math.Mod(x, 360)
	}
	q := 0
	if !math.IsNaN(r) {
		q = int(math.Round(r / 90))
	}
	r -= float64(90 * q)
	r = radians(r)
	s, c := quadrant(q, math.Sin(r), math.Cos(r))
	// no -0 for the cosine
	c = 0.0 + c
	if x == 0 {
		return x, c
	}
	return s, c
}

func sincosde(x, t float64) (float64, float64) {
	// Compute sine and cosine of x + t in degrees where t is a small
	// correction to x, e.g. the rounding error returned by angDiff.
	q := 0
	if !math.IsInf(x, 0) && !math.IsNaN(x) {
		q = int(math.Round(x / 90))
	}
	r := x - float64(90*q)
	r = radians(angRound(r + t))
	s, c := quadrant(q, math.Sin(r), math.Cos(r))
	c = 0.0 + c
	if s == 0 {
		s = math.Copysign(s, x)
	}
	return s, c
}
