package geodesy

// Mask selects the quantities computed by Inverse.  The low bits name the
// series a quantity depends on and the high bits name the output fields.
// Masks are combined with bitwise OR.
type Mask uint

// Capability bits shared by the inverse solver and any future geodesic line.
const (
	capNone Mask = 0
	capC1   Mask = 1 << 0
	capC1p  Mask = 1 << 1
	capC2   Mask = 1 << 2
	capC3   Mask = 1 << 3
	capC4   Mask = 1 << 4
	capAll  Mask = 0x1F
	outAll  Mask = 0x7F80
	outMask Mask = 0xFF80 // Includes LongUnroll
)

// Output bits.
const (
	Empty         Mask = 0
	Latitude           = 1<<7 | capNone
	Longitude          = 1<<8 | capC3
	Azimuth            = 1<<9 | capNone
	Distance           = 1<<10 | capC1
	Standard           = Latitude | Longitude | Azimuth | Distance
	DistanceIn         = 1<<11 | capC1 | capC1p
	ReducedLength      = 1<<12 | capC1 | capC2
	GeodesicScale      = 1<<13 | capC1 | capC2
	Area               = 1<<14 | capC4
	// LongUnroll reports the second longitude as lon1 plus the signed
	// longitude difference instead of reducing both to (-180, 180].
	LongUnroll Mask = 1 << 15
	All             = outAll | capAll // Does not include LongUnroll
)

// Has reports whether every output bit of o is set in m.
func (m Mask) Has(o Mask) bool {
	o &= outMask
	return m&o == o
}
