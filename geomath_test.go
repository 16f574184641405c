package geodesy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSincosd(t *testing.T) {
	tests := []struct {
		x, s, c float64
	}{
		{0, 0, 1},
		{90, 1, 0},
		{-90, -1, 0},
		{180, 0, -1},
		{-180, 0, -1},
		{270, -1, 0},
		{-270, 1, 0},
		{360, 0, 1},
		{-360, 0, 1},
		{450, 1, 0},
		{-450, -1, 0},
	}
	for _, tt := range tests {
		s, c := sincosd(tt.x)
		assert.Equal(t, tt.s, s+0, "sin(%v)", tt.x)
		assert.Equal(t, tt.c, c, "cos(%v)", tt.x)
		assert.False(t, math.Signbit(c) && c == 0, "cos(%v) is -0", tt.x)
	}

	negZero := math.Copysign(0, -1)
	s, c := sincosd(negZero)
	assert.True(t, math.Signbit(s))
	assert.Equal(t, 1.0, c)

	s, c = sincosd(30)
	assert.InDelta(t, 0.5, s, 1e-16)
	assert.InDelta(t, math.Sqrt(3)/2, c, 4e-16)

	s, c = sincosd(-30)
	assert.InDelta(t, -0.5, s, 1e-16)
	assert.InDelta(t, math.Sqrt(3)/2, c, 4e-16)

	s, c = sincosd(math.Inf(1))
	assert.True(t, math.IsNaN(s))
	assert.True(t, math.IsNaN(c))

	s, c = sincosd(math.NaN())
	assert.True(t, math.IsNaN(s))
	assert.True(t, math.IsNaN(c))
}

func TestSincosdSymmetry(t *testing.T) {
	for x := -720.0; x <= 720; x += 7.5 {
		s1, c1 := sincosd(x)
		s2, c2 := sincosd(-x)
		assert.Equal(t, -s1+0, s2+0, "x = %v", x)
		assert.Equal(t, c1, c2, "x = %v", x)
	}
}

func TestSincosde(t *testing.T) {
	s, c := sincosde(90, 0)
	assert.Equal(t, 1.0, s)
	assert.Equal(t, 0.0, c)

	// The correction term is folded in before the reduction.
	s, c = sincosde(30, 1e-15)
	s0, c0 := sincosd(30)
	assert.InDelta(t, s0, s, 1e-15)
	assert.InDelta(t, c0, c, 1e-15)

	s, _ = sincosde(math.Copysign(0, -1), 0)
	assert.True(t, math.Signbit(s))
}

func TestAngNormalize(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{540, 180},
		{-540, 180},
		{190, -170},
		{-190, 170},
		{360, 0},
		{721, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, angNormalize(tt.x), "x = %v", tt.x)
	}
}

func TestAngDiff(t *testing.T) {
	tests := []struct {
		x, y, want float64
	}{
		{10, 20, 10},
		{20, 10, -10},
		{170, -170, 20},
		{-170, 170, -20},
		{0, 180, 180},
		{0, -180, -180},
		{539, 181, 2},
	}
	for _, tt := range tests {
		d, e := angDiff(tt.x, tt.y)
		assert.Equal(t, tt.want, d, "angDiff(%v, %v)", tt.x, tt.y)
		assert.Equal(t, 0.0, e, "angDiff(%v, %v)", tt.x, tt.y)
	}

	d, e := angDiff(-1e-20, 1e-20)
	assert.Equal(t, 2e-20, d+e)
}

func TestAngRound(t *testing.T) {
	assert.Equal(t, 0.0, angRound(1e-20))
	assert.True(t, math.Signbit(angRound(-1e-20)))
	assert.Equal(t, 0.0, angRound(-1e-20)+0)
	assert.Equal(t, 45.0, angRound(45))
	assert.Equal(t, -45.0, angRound(-45))
	assert.NotEqual(t, 0.0, angRound(1e-3))
}

func TestSum(t *testing.T) {
	s, e := sum(1, 1e-20)
	assert.Equal(t, 1.0, s)
	assert.Equal(t, 1e-20, e)

	s, e = sum(1, -1)
	assert.Equal(t, 0.0, s)
	assert.Equal(t, 0.0, e)

	a, b := 0.1, 0.2
	s, e = sum(a, b)
	assert.Equal(t, a+b, s)
	assert.NotEqual(t, 0.0, e)
}

func TestAtan2d(t *testing.T) {
	assert.Equal(t, 0.0, atan2d(0, 1))
	assert.Equal(t, 90.0, atan2d(1, 0))
	assert.Equal(t, 180.0, atan2d(0, -1))
	assert.Equal(t, -180.0, atan2d(math.Copysign(0, -1), -1))
	assert.Equal(t, 180.0, atan2d(0, math.Copysign(0, -1)))
	assert.Equal(t, -180.0, atan2d(math.Copysign(0, -1), math.Copysign(0, -1)))
	assert.Equal(t, 0.0, atan2d(0, 0))
	assert.Equal(t, -90.0, atan2d(-1, 0))
	assert.InDelta(t, 45.0, atan2d(1, 1), 1e-14)
	assert.InDelta(t, -135.0, atan2d(-1, -1), 1e-14)
}

func TestPolyval(t *testing.T) {
	p := []float64{9, 1, 2, 3}
	assert.Equal(t, 11.0, polyval(2, p, 1, 2))
	assert.Equal(t, 3.0, polyval(0, p, 3, 2))
	assert.Equal(t, 0.0, polyval(-1, p, 0, 2))
}

func TestSinCosSeries(t *testing.T) {
	x := 0.7
	c := []float64{0, 0.1, 0.02, 0.003, 0.0004}
	var want float64
	for i := 1; i < len(c); i++ {
		want += c[i] * math.Sin(2*float64(i)*x)
	}
	assert.InDelta(t, want, sinCosSeries(true, math.Sin(x), math.Cos(x), c), 1e-15)

	c = []float64{0.1, 0.02, 0.003}
	want = 0
	for i := range c {
		want += c[i] * math.Cos(float64(2*i+1)*x)
	}
	assert.InDelta(t, want, sinCosSeries(false, math.Sin(x), math.Cos(x), c), 1e-15)
}

func TestAstroid(t *testing.T) {
	for _, xy := range [][2]float64{{-0.5, 0.3}, {-1.2, 0.1}, {0.3, 2}, {-0.9, -0.05}} {
		x, y := xy[0], xy[1]
		k := astroid(x, y)
		assert.Greater(t, k, 0.0)
		res := k*k*k*k + 2*k*k*k - (x*x+y*y-1)*k*k - 2*y*y*k - y*y
		assert.InDelta(t, 0, res, 1e-10, "x = %v y = %v", x, y)
	}
	assert.Equal(t, 0.0, astroid(-0.5, 0))
}
