package usecase

import (
	"charterquote-service/internal/domain/entity"
	"charterquote-service/pkg/geo"
)

// DefaultSearchRadiusKm bounds how far from the departure airport an
// aircraft's home base may be for the aircraft to be offered.
const DefaultSearchRadiusKm = 500.0

// Coordinates is a bare lat/lon pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Nearby returns the aircraft whose home base lies within radiusKm of the
// departure point. Aircraft whose home base is missing from the index are
// dropped without error: no positioning cost can be computed for them, so no
// offer is made. Output order is not significant.
func Nearby(fleet []entity.Aircraft, departure Coordinates, airportIndex map[string]Coordinates, radiusKm float64) []entity.Aircraft {
	if radiusKm <= 0 {
		radiusKm = DefaultSearchRadiusKm
	}

	nearby := make([]entity.Aircraft, 0, len(fleet))
	for _, aircraft := range fleet {
		base, ok := airportIndex[aircraft.HomeBaseCode]
		if !ok {
			continue
		}
		distance := geo.DistanceKm(departure.Latitude, departure.Longitude, base.Latitude, base.Longitude)
		if distance <= radiusKm {
			nearby = append(nearby, aircraft)
		}
	}
	return nearby
}
