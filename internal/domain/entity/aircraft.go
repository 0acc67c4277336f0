package entity

// Defaults applied when the fleet record leaves the field empty.
const (
	DefaultRangeKm       = 3000.0
	DefaultParkingPerDay = 500.0
	knotsToKmhFactor     = 1.852
)

// Aircraft represents one aircraft of the charter fleet.
type Aircraft struct {
	ID                uint
	DisplayName       string
	Category          string
	SeatCount         int
	OperatorName      string
	HomeBaseCode      string
	CruiseSpeedKnots  float64
	// LegacySpeedKnots is the older speed column still populated for part of
	// the fleet. Used only when CruiseSpeedKnots is absent.
	LegacySpeedKnots  float64
	HourlyRate        float64
	RangeKm           float64
	ParkingCostPerDay float64
}

// EffectiveKnots returns the cruise speed to price with, preferring the
// current column over the legacy one. Zero means the aircraft cannot be
// priced.
func (a Aircraft) EffectiveKnots() float64 {
	if a.CruiseSpeedKnots > 0 {
		return a.CruiseSpeedKnots
	}
	if a.LegacySpeedKnots > 0 {
		return a.LegacySpeedKnots
	}
	return 0
}

// CruiseSpeedKmh converts the effective speed to km/h. Zero when no speed is
// known.
func (a Aircraft) CruiseSpeedKmh() float64 {
	return a.EffectiveKnots() * knotsToKmhFactor
}

// OperationalRangeKm returns the aircraft range, falling back to the fleet
// default when the record has none.
func (a Aircraft) OperationalRangeKm() float64 {
	if a.RangeKm > 0 {
		return a.RangeKm
	}
	return DefaultRangeKm
}

// ParkingPerDay returns the daily parking cost with the fleet default
// fallback.
func (a Aircraft) ParkingPerDay() float64 {
	if a.ParkingCostPerDay > 0 {
		return a.ParkingCostPerDay
	}
	return DefaultParkingPerDay
}
