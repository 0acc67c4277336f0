package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charterquote-service/internal/domain/entity"
	"charterquote-service/internal/domain/repository"
	"charterquote-service/pkg/geo"
	"charterquote-service/pkg/logger"
	"charterquote-service/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

// ResponseInput echoes the normalized request back to the caller, with both
// locations resolved.
type ResponseInput struct {
	Departure  entity.ResolvedLocation `json:"departure"`
	Arrival    entity.ResolvedLocation `json:"arrival"`
	TripType   entity.TripType         `json:"tripType"`
	Pax        int                     `json:"pax"`
	Date       string                  `json:"date,omitempty"`
	Time       string                  `json:"time,omitempty"`
	ReturnDate string                  `json:"returnDate,omitempty"`
	DistanceKm float64                 `json:"distanceKm"`
	Legs       []entity.Leg            `json:"legs,omitempty"`
}

// QuoteResponse is the full payload for one quote request.
type QuoteResponse struct {
	Input ResponseInput  `json:"input"`
	Jets  []entity.Quote `json:"jets"`
}

// QuoteService runs the quoting pipeline: validate, resolve both endpoints,
// hydrate coordinates, filter the fleet by reach, price each aircraft and
// rank the offers.
type QuoteService struct {
	airportRepo  repository.AirportRepository
	aircraftRepo repository.AircraftRepository
	quoteRecords repository.QuoteRecordRepository
	resolver     *LocationResolver
	pricer       *Pricer
	metrics      *metrics.Metrics
	logger       logger.Logger
	radiusKm     float64
	queryTimeout time.Duration
	now          func() time.Time
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	airportRepo repository.AirportRepository,
	aircraftRepo repository.AircraftRepository,
	quoteRecords repository.QuoteRecordRepository,
	resolver *LocationResolver,
	pricer *Pricer,
	m *metrics.Metrics,
	logger logger.Logger,
	radiusKm float64,
	queryTimeout time.Duration,
) *QuoteService {
	if radiusKm <= 0 {
		radiusKm = DefaultSearchRadiusKm
	}
	return &QuoteService{
		airportRepo:  airportRepo,
		aircraftRepo: aircraftRepo,
		quoteRecords: quoteRecords,
		resolver:     resolver,
		pricer:       pricer,
		metrics:      m,
		logger:       logger,
		radiusKm:     radiusKm,
		queryTimeout: queryTimeout,
		now:          time.Now,
	}
}

// QuoteFlights serves one quote request end to end. Validation problems and
// resolution misses come back as typed errors for the transport layer to map;
// a single unpriceable aircraft never fails the request.
func (s *QuoteService) QuoteFlights(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	started := s.now()

	norm, problems := validateQuoteRequest(req, started)
	if len(problems) > 0 {
		if s.metrics != nil {
			s.metrics.ErrorsCount.WithLabelValues("validation").Inc()
		}
		return nil, &entity.ValidationError{Messages: problems}
	}

	departure, arrival, legLocations, err := s.resolveEndpoints(ctx, norm)
	if err != nil {
		return nil, err
	}

	fleet, err := s.fetchFleet(ctx)
	if err != nil {
		return nil, err
	}

	index, err := s.hydrateAirports(ctx, collectCodes(departure, arrival, legLocations, fleet))
	if err != nil {
		return nil, err
	}

	if err := fillCoordinates(&departure, index, "departure", norm.departure); err != nil {
		s.countResolutionFailure("departure")
		return nil, err
	}
	if err := fillCoordinates(&arrival, index, "arrival", norm.arrival); err != nil {
		s.countResolutionFailure("arrival")
		return nil, err
	}
	for i := range legLocations {
		side := fmt.Sprintf("leg %d", i/2+1)
		if err := fillCoordinates(&legLocations[i], index, side, legLocations[i].Code); err != nil {
			s.countResolutionFailure(side)
			return nil, err
		}
	}

	distanceKm := geo.DistanceKm(departure.Latitude, departure.Longitude, arrival.Latitude, arrival.Longitude)

	departureCoord := Coordinates{Latitude: departure.Latitude, Longitude: departure.Longitude}
	airportIndex := make(map[string]Coordinates, len(index))
	for code, airport := range index {
		airportIndex[code] = Coordinates{Latitude: airport.Latitude, Longitude: airport.Longitude}
	}

	nearby := Nearby(fleet, departureCoord, airportIndex, s.radiusKm)

	legs := buildLegs(norm, legLocations)

	quotes := make([]entity.Quote, 0, len(nearby))
	for _, aircraft := range nearby {
		quote, ok := s.priceOne(aircraft, distanceKm, norm, legs, airportIndex)
		if !ok {
			continue
		}
		quotes = append(quotes, quote)
	}
	quotes = RankQuotes(quotes)

	response := &QuoteResponse{
		Input: ResponseInput{
			Departure:  departure,
			Arrival:    arrival,
			TripType:   norm.tripType,
			Pax:        norm.pax,
			Date:       norm.date,
			Time:       norm.clock,
			ReturnDate: norm.returnDate,
			DistanceKm: roundTo2(distanceKm),
			Legs:       legs,
		},
		Jets: quotes,
	}

	s.recordQuote(norm, departure, arrival, distanceKm, len(quotes), time.Since(started))
	if s.metrics != nil {
		s.metrics.QuotesServed.Inc()
		s.metrics.QuoteDuration.Observe(time.Since(started).Seconds())
	}

	return response, nil
}

// resolveEndpoints resolves the departure and arrival concurrently; for
// multi-leg trips every leg endpoint is resolved as well. Either main
// endpoint failing aborts the request.
func (s *QuoteService) resolveEndpoints(ctx context.Context, norm normalizedRequest) (entity.ResolvedLocation, entity.ResolvedLocation, []entity.ResolvedLocation, error) {
	var departure, arrival entity.ResolvedLocation
	legLocations := make([]entity.ResolvedLocation, len(norm.legs)*2)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		departure, err = s.resolveSide(gctx, norm.departure, norm.countryHint, "departure")
		return err
	})
	g.Go(func() error {
		var err error
		arrival, err = s.resolveSide(gctx, norm.arrival, norm.countryHint, "arrival")
		return err
	})

	for i, leg := range norm.legs {
		g.Go(func() error {
			var err error
			legLocations[i*2], err = s.resolveSide(gctx, leg.From, norm.countryHint, fmt.Sprintf("leg %d departure", i+1))
			return err
		})
		g.Go(func() error {
			var err error
			legLocations[i*2+1], err = s.resolveSide(gctx, leg.To, norm.countryHint, fmt.Sprintf("leg %d arrival", i+1))
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return entity.ResolvedLocation{}, entity.ResolvedLocation{}, nil, err
	}
	return departure, arrival, legLocations, nil
}

func (s *QuoteService) resolveSide(ctx context.Context, input, countryHint, side string) (entity.ResolvedLocation, error) {
	resolved, err := s.resolver.Resolve(ctx, input, countryHint)
	if err != nil {
		if errors.Is(err, entity.ErrLocationNotFound) {
			s.countResolutionFailure(side)
			return entity.ResolvedLocation{}, &entity.ResolutionError{Side: side, Input: input}
		}
		return entity.ResolvedLocation{}, err
	}
	return resolved, nil
}

func (s *QuoteService) fetchFleet(ctx context.Context) ([]entity.Aircraft, error) {
	queryCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	fleet, err := s.aircraftRepo.FetchAll(queryCtx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ErrorsCount.WithLabelValues("fleet_fetch").Inc()
		}
		return nil, &entity.DataUnavailableError{Store: "fleet", Err: err}
	}
	return fleet, nil
}

// hydrateAirports loads every airport the request touches, resolved endpoints
// and fleet home bases alike, in a single batch query.
func (s *QuoteService) hydrateAirports(ctx context.Context, codes []string) (map[string]entity.Airport, error) {
	queryCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	airports, err := s.airportRepo.FindByCodes(queryCtx, codes)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ErrorsCount.WithLabelValues("airport_hydrate").Inc()
		}
		return nil, &entity.DataUnavailableError{Store: "airport directory", Err: err}
	}

	index := make(map[string]entity.Airport, len(airports))
	for _, airport := range airports {
		index[airport.Code] = airport
	}
	return index, nil
}

func (s *QuoteService) priceOne(aircraft entity.Aircraft, distanceKm float64, norm normalizedRequest, legs []entity.Leg, airportIndex map[string]Coordinates) (quote entity.Quote, ok bool) {
	// One bad fleet row must not take the whole offer list down.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Pricing panicked, skipping aircraft", "aircraftId", aircraft.ID, "panic", r)
			if s.metrics != nil {
				s.metrics.ErrorsCount.WithLabelValues("pricing").Inc()
			}
			ok = false
		}
	}()

	if norm.tripType == entity.TripMultiLeg {
		repositioningKm := 0.0
		if len(legs) > 0 {
			if dest, okDest := airportIndex[legs[len(legs)-1].ToCode]; okDest {
				if base, okBase := airportIndex[aircraft.HomeBaseCode]; okBase {
					repositioningKm = geo.DistanceKm(dest.Latitude, dest.Longitude, base.Latitude, base.Longitude)
				}
			}
		}
		return s.pricer.PriceMultiLeg(aircraft, legs, repositioningKm)
	}

	sched := PricingSchedule{
		Date:       norm.date,
		Time:       norm.clock,
		ReturnDate: norm.returnDate,
		ReturnTime: norm.returnTime,
	}
	return s.pricer.Price(aircraft, distanceKm, norm.tripType, sched), true
}

// recordQuote persists the audit entry. Failures are logged and swallowed; a
// dead audit store must not block quoting.
func (s *QuoteService) recordQuote(norm normalizedRequest, departure, arrival entity.ResolvedLocation, distanceKm float64, offerCount int, elapsed time.Duration) {
	if s.quoteRecords == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	record := &entity.QuoteRecord{
		Departure:    norm.departure,
		Arrival:      norm.arrival,
		ResolvedFrom: departure.Code,
		ResolvedTo:   arrival.Code,
		TripType:     string(norm.tripType),
		Pax:          norm.pax,
		DistanceKm:   roundTo2(distanceKm),
		OfferCount:   offerCount,
		DurationMs:   elapsed.Milliseconds(),
		CreatedAt:    s.now(),
	}
	if err := s.quoteRecords.Save(ctx, record); err != nil {
		s.logger.Error("Failed to save quote record", "error", err)
	}
}

func (s *QuoteService) countResolutionFailure(side string) {
	if s.metrics != nil {
		s.metrics.ResolutionFailures.WithLabelValues(side).Inc()
	}
}

func collectCodes(departure, arrival entity.ResolvedLocation, legLocations []entity.ResolvedLocation, fleet []entity.Aircraft) []string {
	seen := make(map[string]struct{})
	codes := make([]string, 0, len(fleet)+2+len(legLocations))

	add := func(code string) {
		if code == "" {
			return
		}
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	add(departure.Code)
	add(arrival.Code)
	for _, loc := range legLocations {
		add(loc.Code)
	}
	for _, aircraft := range fleet {
		add(aircraft.HomeBaseCode)
	}
	return codes
}

// fillCoordinates completes a resolved location from the hydrated directory
// rows. Locations that skipped the directory (raw codes) must exist there.
func fillCoordinates(loc *entity.ResolvedLocation, index map[string]entity.Airport, side, input string) error {
	airport, ok := index[loc.Code]
	if !ok {
		return &entity.ResolutionError{Side: side, Input: input}
	}
	loc.Latitude = airport.Latitude
	loc.Longitude = airport.Longitude
	if loc.DisplayName == "" {
		loc.DisplayName = airport.DisplayName
	}
	return nil
}

func buildLegs(norm normalizedRequest, legLocations []entity.ResolvedLocation) []entity.Leg {
	if norm.tripType != entity.TripMultiLeg {
		return nil
	}

	legs := make([]entity.Leg, 0, len(norm.legs))
	for i, req := range norm.legs {
		from := legLocations[i*2]
		to := legLocations[i*2+1]
		distance := geo.DistanceKm(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
		legs = append(legs, entity.Leg{
			SequenceNumber: i + 1,
			FromCode:       from.Code,
			ToCode:         to.Code,
			DistanceKm:     roundTo2(distance),
			Date:           req.Date,
			Time:           req.Time,
		})
	}
	return legs
}
