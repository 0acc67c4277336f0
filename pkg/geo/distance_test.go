package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKmIdenticalPoints(t *testing.T) {
	assert.Equal(t, 0.0, DistanceKm(45.4451, 9.2767, 45.4451, 9.2767))
	assert.Equal(t, 0.0, DistanceKm(0, 0, 0, 0))
}

func TestDistanceKmSymmetry(t *testing.T) {
	ab := DistanceKm(45.4451, 9.2767, 48.9694, 2.4414)
	ba := DistanceKm(48.9694, 2.4414, 45.4451, 9.2767)
	assert.Equal(t, ab, ba)
}

func TestDistanceKmMilanToParis(t *testing.T) {
	// Milan Linate to Paris Le Bourget.
	km := DistanceKm(45.4451, 9.2767, 48.9694, 2.4414)
	assert.InDelta(t, 625, km, 5)
}

func TestDistanceKmEquatorDegree(t *testing.T) {
	// One degree of longitude at the equator is roughly 111 km.
	km := DistanceKm(0, 0, 0, 1)
	assert.InDelta(t, 111.2, km, 0.5)
}
