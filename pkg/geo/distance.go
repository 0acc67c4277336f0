package geo

import "github.com/umahmood/haversine"

// DistanceKm computes the great-circle distance in kilometers between two
// coordinates. Symmetric and zero for identical points. NaN coordinates
// propagate to the result; callers validate inputs upstream.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	from := haversine.Coord{Lat: lat1, Lon: lon1}
	to := haversine.Coord{Lat: lat2, Lon: lon2}
	_, km := haversine.Distance(from, to)
	return km
}
