package usecase

import (
	"fmt"
	"time"

	"charterquote-service/internal/domain/entity"
	"charterquote-service/pkg/utils"
)

const (
	defaultPax = 4
	maxPax     = 50

	minLegs = 2
	maxLegs = 10
)

// LegRequest is one segment of a multi-leg quote request.
type LegRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Date string `json:"date,omitempty"`
	Time string `json:"time,omitempty"`
}

// QuoteRequest is the inbound quote request. Departure/From and Arrival/To
// are accepted as synonyms; the first non-empty one wins.
type QuoteRequest struct {
	Departure   string       `json:"departure,omitempty"`
	From        string       `json:"from,omitempty"`
	Arrival     string       `json:"arrival,omitempty"`
	To          string       `json:"to,omitempty"`
	Pax         int          `json:"pax,omitempty"`
	Date        string       `json:"date,omitempty"`
	Time        string       `json:"time,omitempty"`
	TripType    string       `json:"tripType,omitempty"`
	ReturnDate  string       `json:"returnDate,omitempty"`
	ReturnTime  string       `json:"returnTime,omitempty"`
	CountryHint string       `json:"country,omitempty"`
	Legs        []LegRequest `json:"legs,omitempty"`
}

// normalizedRequest is the validated form the pipeline works with.
type normalizedRequest struct {
	departure   string
	arrival     string
	pax         int
	date        string
	clock       string
	tripType    entity.TripType
	returnDate  string
	returnTime  string
	countryHint string
	legs        []LegRequest
}

// validateQuoteRequest checks and normalizes the request. It returns the
// itemized messages for every violation found; an empty slice means the
// request is good to quote.
func validateQuoteRequest(req QuoteRequest, today time.Time) (normalizedRequest, []string) {
	var problems []string
	norm := normalizedRequest{
		pax:         req.Pax,
		countryHint: req.CountryHint,
		returnTime:  req.ReturnTime,
	}

	norm.departure = firstNonEmpty(req.Departure, req.From)
	if norm.departure == "" {
		problems = append(problems, "departure location is required")
	}

	norm.arrival = firstNonEmpty(req.Arrival, req.To)
	if norm.arrival == "" {
		problems = append(problems, "arrival location is required")
	}

	if norm.pax == 0 {
		norm.pax = defaultPax
	}
	if norm.pax < 1 || norm.pax > maxPax {
		problems = append(problems, fmt.Sprintf("pax must be between 1 and %d", maxPax))
	}

	if req.Date != "" {
		date, err := utils.NormalizeDate(req.Date)
		if err != nil {
			problems = append(problems, fmt.Sprintf("unrecognized date %q", req.Date))
		} else {
			norm.date = date
		}
	}

	if req.Time != "" {
		if _, _, err := utils.ParseClock(req.Time); err != nil {
			problems = append(problems, fmt.Sprintf("time %q must be HH:MM", req.Time))
		} else {
			norm.clock = req.Time
		}
	}

	switch entity.TripType(req.TripType) {
	case "":
		norm.tripType = entity.TripOneWay
	case entity.TripOneWay, entity.TripRoundTrip, entity.TripMultiLeg:
		norm.tripType = entity.TripType(req.TripType)
	default:
		problems = append(problems, fmt.Sprintf("unknown trip type %q", req.TripType))
	}

	if norm.tripType == entity.TripRoundTrip {
		problems = append(problems, validateReturn(req, &norm)...)
	}

	if norm.tripType == entity.TripMultiLeg {
		problems = append(problems, validateLegs(req.Legs, &norm, today)...)
	}

	return norm, problems
}

func validateReturn(req QuoteRequest, norm *normalizedRequest) []string {
	if req.ReturnDate == "" {
		return []string{"returnDate is required for round trips"}
	}

	returnDate, err := utils.NormalizeDate(req.ReturnDate)
	if err != nil {
		return []string{fmt.Sprintf("unrecognized return date %q", req.ReturnDate)}
	}
	norm.returnDate = returnDate

	if norm.date != "" {
		if days, err := utils.DaysBetween(norm.date, returnDate); err == nil && days < 0 {
			return []string{"returnDate must not precede the departure date"}
		}
	}
	return nil
}

func validateLegs(legs []LegRequest, norm *normalizedRequest, today time.Time) []string {
	if len(legs) < minLegs || len(legs) > maxLegs {
		return []string{fmt.Sprintf("multi-leg trips need between %d and %d legs", minLegs, maxLegs)}
	}

	var problems []string
	todayStr := today.Format(utils.CanonicalDateLayout)
	prevDate := ""
	normalized := make([]LegRequest, 0, len(legs))

	for i, leg := range legs {
		n := leg
		if leg.From == "" || leg.To == "" {
			problems = append(problems, fmt.Sprintf("leg %d needs both from and to", i+1))
		}

		if leg.Date != "" {
			date, err := utils.NormalizeDate(leg.Date)
			if err != nil {
				problems = append(problems, fmt.Sprintf("leg %d has unrecognized date %q", i+1, leg.Date))
			} else {
				n.Date = date
				if date < todayStr {
					problems = append(problems, fmt.Sprintf("leg %d date must not be in the past", i+1))
				}
				if prevDate != "" && date <= prevDate {
					problems = append(problems, fmt.Sprintf("leg %d date must be later than the previous leg", i+1))
				}
				prevDate = date
			}
		}

		if leg.Time != "" {
			if _, _, err := utils.ParseClock(leg.Time); err != nil {
				problems = append(problems, fmt.Sprintf("leg %d time %q must be HH:MM", i+1, leg.Time))
			}
		}

		normalized = append(normalized, n)
	}

	norm.legs = normalized
	return problems
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
