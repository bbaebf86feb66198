package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feederwatch/fw-pipeline/internal/geo"
)

func TestHaversineNM_OneDegreeOfLongitudeAtEquator(t *testing.T) {
	// One degree of longitude at the equator is about 60 nautical miles
	d := geo.HaversineNM(0, 0, 0, 1)
	assert.InDelta(t, 60.04, d, 0.05)
}

func TestHaversineNM_ZeroDistance(t *testing.T) {
	assert.Equal(t, 0.0, geo.HaversineNM(-31.95, 115.86, -31.95, 115.86))
}

func TestHaversineNM_Symmetry(t *testing.T) {
	a := geo.HaversineNM(-31.95, 115.86, -33.94, 151.18)
	b := geo.HaversineNM(-33.94, 151.18, -31.95, 115.86)
	assert.InDelta(t, a, b, 1e-9)
}

func TestHaversineNM_KnownRoute(t *testing.T) {
	// Perth (YPPH) to Sydney (YSSY) is roughly 1785 NM great-circle
	d := geo.HaversineNM(-31.9403, 115.9672, -33.9461, 151.1772)
	assert.InDelta(t, 1785, d, 15)
}
