package usecase

import (
	"fmt"
	"math"
	"time"

	"charterquote-service/internal/domain/entity"
	"charterquote-service/pkg/utils"
)

const (
	// sameDayPremiumFactor is charged on same-day and next-day round trips
	// for holding the aircraft at destination instead of flying it home
	// empty.
	sameDayPremiumFactor = 0.20

	// waitingRateFactor prices ground time between multi-leg segments as a
	// fraction of the hourly rate.
	waitingRateFactor = 0.3

	// waitingFreeHours is the gap between legs that incurs no waiting cost.
	waitingFreeHours = 2.0

	// returnBufferHours pads the auto-estimated same-day return departure.
	returnBufferHours = 1.0

	warningNoSpeed = "no cruise speed on file, quote unavailable"
)

// PricingSchedule carries the normalized date/time inputs relevant to
// pricing. All dates are canonical YYYY-MM-DD, times HH:MM; empty means not
// supplied.
type PricingSchedule struct {
	Date       string
	Time       string
	ReturnDate string
	ReturnTime string
}

// Pricer derives flight time, schedule estimates and cost for one aircraft
// at a time. All intermediates stay unrounded; only the displayed price and
// flight time are rounded.
type Pricer struct {
	overnightFee   float64
	parkingEnabled bool
	currency       string
}

// NewPricer creates a new pricer. overnightFee is the fixed charge for crew
// and aircraft overnighting away from base on next-day round trips.
// parkingSurcharge enables the optional multi-day parking charge.
func NewPricer(overnightFee float64, parkingSurcharge bool, currency string) *Pricer {
	return &Pricer{
		overnightFee:   overnightFee,
		parkingEnabled: parkingSurcharge,
		currency:       currency,
	}
}

// Price quotes a one-way or round-trip itinerary for a single aircraft.
// Aircraft without speed data come back listed but unpriced, with a warning.
func (p *Pricer) Price(aircraft entity.Aircraft, distanceKm float64, tripType entity.TripType, sched PricingSchedule) entity.Quote {
	quote := p.baseQuote(aircraft, distanceKm)

	speedKmh := aircraft.CruiseSpeedKmh()
	if speedKmh <= 0 {
		quote.Warning = warningNoSpeed
		return quote
	}

	hours := distanceKm / speedKmh
	p.applyFlightTime(&quote, hours)
	p.applySchedule(&quote, hours, tripType, sched)

	// The customer pays the operational round trip: one-way charters still
	// fly the empty leg back to base.
	outbound := aircraft.HourlyRate * hours * 2

	switch tripType {
	case entity.TripRoundTrip:
		p.priceRoundTrip(&quote, aircraft, outbound, sched)
	default:
		quote.Pricing.FlightCost = outbound
		p.setTotal(&quote, outbound)
	}

	return quote
}

func (p *Pricer) priceRoundTrip(quote *entity.Quote, aircraft entity.Aircraft, outbound float64, sched PricingSchedule) {
	days := 0
	if sched.Date != "" && sched.ReturnDate != "" {
		if d, err := utils.DaysBetween(sched.Date, sched.ReturnDate); err == nil {
			days = d
		}
	}

	switch {
	case days <= 0:
		// Same-day turnaround holds the aircraft on the ground at
		// destination.
		premium := outbound * sameDayPremiumFactor
		quote.Pricing.FlightCost = outbound
		quote.Pricing.SameDayPremium = premium
		p.setTotal(quote, outbound+premium)
	case days == 1:
		premium := outbound * sameDayPremiumFactor
		quote.Pricing.FlightCost = outbound
		quote.Pricing.SameDayPremium = premium
		quote.Pricing.OvernightFee = p.overnightFee
		p.setTotal(quote, outbound+premium+p.overnightFee)
	default:
		// Two independent one-way movements, no empty-leg sharing assumed.
		total := outbound * 2
		quote.Pricing.FlightCost = total
		if p.parkingEnabled {
			waitHours := float64(days) * 24
			parking := aircraft.ParkingPerDay() * math.Ceil(waitHours/24)
			quote.Pricing.ParkingSurcharge = parking
			total += parking
		}
		p.setTotal(quote, total)
	}
}

// PriceMultiLeg quotes a multi-stop itinerary. Legs must carry their
// distances; repositioningKm is the final empty leg from the last destination
// back to the aircraft's home base. The second return value is false when any
// single leg exceeds the aircraft's range, which excludes it from the offer
// list entirely.
func (p *Pricer) PriceMultiLeg(aircraft entity.Aircraft, legs []entity.Leg, repositioningKm float64) (entity.Quote, bool) {
	for _, leg := range legs {
		if leg.DistanceKm > aircraft.OperationalRangeKm() {
			return entity.Quote{}, false
		}
	}

	totalKm := 0.0
	for _, leg := range legs {
		totalKm += leg.DistanceKm
	}

	quote := p.baseQuote(aircraft, totalKm)
	quote.Legs = legs

	speedKmh := aircraft.CruiseSpeedKmh()
	if speedKmh <= 0 {
		quote.Warning = warningNoSpeed
		return quote, true
	}

	flightHours := 0.0
	flightCost := 0.0
	waitingCost := 0.0
	var prevArrival *time.Time

	for _, leg := range legs {
		legHours := leg.DistanceKm / speedKmh
		flightHours += legHours
		// Each leg is flown one-way: the aircraft proceeds to the next stop
		// instead of returning to base.
		flightCost += aircraft.HourlyRate * legHours

		if departure, ok := legDeparture(leg); ok {
			if prevArrival != nil {
				gap := departure.Sub(*prevArrival).Hours()
				if gap > waitingFreeHours {
					waitingCost += aircraft.HourlyRate * waitingRateFactor * gap
				}
			}
			arrival := departure.Add(time.Duration(legHours * float64(time.Hour)))
			prevArrival = &arrival
		} else {
			prevArrival = nil
		}
	}

	repositioningHours := repositioningKm / speedKmh
	repositioningCost := aircraft.HourlyRate * repositioningHours

	p.applyFlightTime(&quote, flightHours)
	quote.Pricing.FlightCost = flightCost
	quote.Pricing.WaitingCost = waitingCost
	quote.Pricing.RepositioningCost = repositioningCost
	p.setTotal(&quote, flightCost+waitingCost+repositioningCost)

	return quote, true
}

func (p *Pricer) baseQuote(aircraft entity.Aircraft, distanceKm float64) entity.Quote {
	return entity.Quote{
		AircraftID:   aircraft.ID,
		DisplayName:  aircraft.DisplayName,
		Category:     aircraft.Category,
		SeatCount:    aircraft.SeatCount,
		OperatorName: aircraft.OperatorName,
		HomeBaseCode: aircraft.HomeBaseCode,
		DistanceKm:   roundTo2(distanceKm),
		Pricing:      entity.PriceBreakdown{Currency: p.currency},
	}
}

func (p *Pricer) applyFlightTime(quote *entity.Quote, hours float64) {
	rounded := roundTo2(hours)
	quote.FlightTimeHours = &rounded
	quote.FormattedFlightTime = FormatFlightTime(hours)
}

// applySchedule fills the estimated arrival and, for same-day round trips
// without an explicit return time, an auto-estimated return departure.
func (p *Pricer) applySchedule(quote *entity.Quote, hours float64, tripType entity.TripType, sched PricingSchedule) {
	if sched.Time == "" {
		return
	}

	quote.DepartureTime = sched.Time
	arrival, err := utils.AddHoursToClock(sched.Time, hours)
	if err != nil {
		return
	}
	quote.ArrivalTime = arrival

	if tripType != entity.TripRoundTrip {
		return
	}
	if sched.ReturnTime != "" {
		quote.ReturnDepartureTime = sched.ReturnTime
		return
	}

	sameDay := sched.ReturnDate == "" || sched.ReturnDate == sched.Date
	if sameDay {
		if returnDep, err := utils.AddHoursToClock(arrival, returnBufferHours); err == nil {
			quote.ReturnDepartureTime = returnDep
		}
	}
}

func (p *Pricer) setTotal(quote *entity.Quote, total float64) {
	rounded := math.Round(total)
	quote.Pricing.Total = &rounded
}

// FormatFlightTime renders fractional hours as "{H}h {MM}min", dropping the
// hour part when it is zero.
func FormatFlightTime(hours float64) string {
	totalMinutes := int(math.Round(hours * 60))
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	h := totalMinutes / 60
	m := totalMinutes % 60
	if h == 0 {
		return fmt.Sprintf("%dmin", m)
	}
	return fmt.Sprintf("%dh %02dmin", h, m)
}

func legDeparture(leg entity.Leg) (time.Time, bool) {
	if leg.Date == "" {
		return time.Time{}, false
	}
	day, err := utils.ParseDay(leg.Date)
	if err != nil {
		return time.Time{}, false
	}
	if leg.Time == "" {
		return day, true
	}
	h, m, err := utils.ParseClock(leg.Time)
	if err != nil {
		return day, true
	}
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute), true
}

func roundTo2(value float64) float64 {
	return math.Round(value*100) / 100
}
