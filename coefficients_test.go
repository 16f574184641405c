package geodesy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestC1pfLeadingTerms(t *testing.T) {
	eps := 0.01
	var c [nC1p + 1]float64
	c1pf(eps, c[:])
	assert.InDelta(t, eps/2-9*math.Pow(eps, 3)/32+205*math.Pow(eps, 5)/1536, c[1], 1e-17)
	assert.InDelta(t, 5*sq(eps)/16-37*math.Pow(eps, 4)/96+1335*math.Pow(eps, 6)/4096, c[2], 1e-17)
	assert.InDelta(t, 38081*math.Pow(eps, 6)/61440, c[6], 1e-24)
}

func TestC1pfRevertsC1(t *testing.T) {
	for _, eps := range []float64{1e-4, 1e-3, 0.01, 0.05} {
		var c1, c1p [nC1 + 1]float64
		c1f(eps, c1[:])
		c1pf(eps, c1p[:])
		tol := 100*math.Pow(eps, 7) + 1e-14
		for _, sigma := range []float64{-2.5, -1, 0.1, 0.7, 1.5, 3} {
			tau := sigma + sinCosSeries(true, math.Sin(sigma), math.Cos(sigma), c1[:])
			got := tau + sinCosSeries(true, math.Sin(tau), math.Cos(tau), c1p[:])
			assert.InDelta(t, sigma, got, tol, "eps %v sigma %v", eps, sigma)
		}
	}
}
