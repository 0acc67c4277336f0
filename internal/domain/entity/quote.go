package entity

// TripType identifies the itinerary shape of a quote request.
type TripType string

const (
	TripOneWay    TripType = "oneway"
	TripRoundTrip TripType = "roundtrip"
	TripMultiLeg  TripType = "multileg"
)

// ResolvedLocation is the outcome of mapping a free-text location to an
// airport. Built per request, never persisted.
type ResolvedLocation struct {
	Code            string  `json:"code"`
	DisplayName     string  `json:"displayName,omitempty"`
	ConfidenceScore int     `json:"confidenceScore"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
}

// Leg is one point-to-point segment of a multi-stop itinerary.
type Leg struct {
	SequenceNumber int     `json:"sequenceNumber"`
	FromCode       string  `json:"from"`
	ToCode         string  `json:"to"`
	DistanceKm     float64 `json:"distanceKm"`
	Date           string  `json:"date,omitempty"`
	Time           string  `json:"time,omitempty"`
}

// PriceBreakdown itemizes the quoted total. Total is nil when the aircraft
// cannot be priced.
type PriceBreakdown struct {
	Total             *float64 `json:"total"`
	Currency          string   `json:"currency"`
	FlightCost        float64  `json:"flightCost,omitempty"`
	SameDayPremium    float64  `json:"sameDayPremium,omitempty"`
	OvernightFee      float64  `json:"overnightFee,omitempty"`
	ParkingSurcharge  float64  `json:"parkingSurcharge,omitempty"`
	WaitingCost       float64  `json:"waitingCost,omitempty"`
	RepositioningCost float64  `json:"repositioningCost,omitempty"`
}

// Quote is one priced offer for a single aircraft.
type Quote struct {
	AircraftID          uint           `json:"aircraftId"`
	DisplayName         string         `json:"displayName"`
	Category            string         `json:"category,omitempty"`
	SeatCount           int            `json:"seatCount"`
	OperatorName        string         `json:"operator,omitempty"`
	HomeBaseCode        string         `json:"homeBase"`
	DistanceKm          float64        `json:"distanceKm"`
	FlightTimeHours     *float64       `json:"flightTimeHours"`
	FormattedFlightTime string         `json:"flightTime,omitempty"`
	DepartureTime       string         `json:"departureTime,omitempty"`
	ArrivalTime         string         `json:"arrivalTime,omitempty"`
	ReturnDepartureTime string         `json:"returnDepartureTime,omitempty"`
	Legs                []Leg          `json:"legs,omitempty"`
	Pricing             PriceBreakdown `json:"pricing"`
	Warning             string         `json:"warning,omitempty"`
}
