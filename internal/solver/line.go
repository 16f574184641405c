package solver

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lazylynx/geodesy"
)

// ErrMalformedLine is returned for input lines that are not four numbers
// "lat1 lon1 lat2 lon2" with latitudes in [-90, 90].
var ErrMalformedLine = errors.New("malformed line")

// Problem is one inverse problem in degrees.
type Problem struct {
	Lat1, Lon1, Lat2, Lon2 float64
}

// ParseLine parses "lat1 lon1 lat2 lon2". Fields are separated by blanks
// or commas.
func ParseLine(line string) (Problem, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 4 {
		return Problem{}, fmt.Errorf("%w: want 4 fields, got %d", ErrMalformedLine, len(fields))
	}

	var v [4]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Problem{}, fmt.Errorf("%w: bad number %q", ErrMalformedLine, f)
		}
		v[i] = x
	}
	for _, lat := range []float64{v[0], v[2]} {
		if math.Abs(lat) > 90 {
			return Problem{}, fmt.Errorf("%w: latitude %v not in [-90, 90]", ErrMalformedLine, lat)
		}
	}
	return Problem{Lat1: v[0], Lon1: v[1], Lat2: v[2], Lon2: v[3]}, nil
}

// Options control what is computed and how it is printed.
type Options struct {
	Precision  int  // decimals for lengths in meters
	Full       bool // print the full geodesic record
	LongUnroll bool
}

// Mask returns the quantities Inverse has to compute for o.
func (o Options) Mask() geodesy.Mask {
	if !o.Full {
		return geodesy.Standard
	}
	m := geodesy.All
	if o.LongUnroll {
		m |= geodesy.LongUnroll
	}
	return m
}

// Format renders r as "azi1 azi2 s12", or with Full as
// "lat1 lon1 azi1 lat2 lon2 azi2 s12 a12 m12 M12 M21 S12".
// Angles get five more decimals than lengths, scales seven more.
func Format(r geodesy.GeodesicResult, o Options) string {
	prec := max(o.Precision, 0)
	angle := func(x float64) string { return strconv.FormatFloat(x, 'f', prec+5, 64) }
	length := func(x float64) string { return strconv.FormatFloat(x, 'f', prec, 64) }
	scale := func(x float64) string { return strconv.FormatFloat(x, 'f', prec+7, 64) }

	if !o.Full {
		return angle(r.Azimuth1) + " " + angle(r.Azimuth2) + " " + length(r.Distance)
	}
	return strings.Join([]string{
		angle(r.Lat1), angle(r.Lon1), angle(r.Azimuth1),
		angle(r.Lat2), angle(r.Lon2), angle(r.Azimuth2),
		length(r.Distance), angle(r.ArcLength), length(r.ReducedLength),
		scale(r.Scale12), scale(r.Scale21), length(r.Area),
	}, " ")
}
