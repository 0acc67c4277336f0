package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"charterquote-service/internal/domain/entity"
	"charterquote-service/pkg/cache"
	"charterquote-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAircraftRepo struct {
	fleet    []entity.Aircraft
	calls    int
	failWith error
}

func (f *fakeAircraftRepo) FetchAll(ctx context.Context) ([]entity.Aircraft, error) {
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.fleet, nil
}

type fakeQuoteRecords struct {
	saved []*entity.QuoteRecord
}

func (f *fakeQuoteRecords) Save(ctx context.Context, record *entity.QuoteRecord) error {
	f.saved = append(f.saved, record)
	return nil
}

func testFleet() []entity.Aircraft {
	return []entity.Aircraft{
		{ID: 1, DisplayName: "Citation XLS", SeatCount: 8, HomeBaseCode: "LIML", CruiseSpeedKnots: 450, HourlyRate: 3000},
		{ID: 2, DisplayName: "Learjet 45", SeatCount: 9, HomeBaseCode: "LSGG", HourlyRate: 2800},
		{ID: 3, DisplayName: "Global 6000", SeatCount: 13, HomeBaseCode: "EGGW", CruiseSpeedKnots: 488, HourlyRate: 9000},
	}
}

func quoteTestDirectory() []entity.Airport {
	directory := testDirectory()
	return append(directory, entity.Airport{
		Code: "EGGW", DisplayName: "London Luton Airport", Municipality: "London",
		Region: "England", CountryCode: "GB", Classification: entity.ClassificationLarge,
		Latitude: 51.8747, Longitude: -0.368333,
	})
}

func newTestQuoteService(airports *fakeAirportRepo, aircraft *fakeAircraftRepo, records *fakeQuoteRecords) *QuoteService {
	resolutionCache := cache.New[entity.ResolvedLocation](time.Hour)
	resolver := NewLocationResolver(airports, resolutionCache, nil, logger.NewNop(), time.Second)
	pricer := NewPricer(1000, false, "EUR")
	svc := NewQuoteService(airports, aircraft, records, resolver, pricer, nil, logger.NewNop(), 500, time.Second)
	svc.now = func() time.Time { return testToday }
	return svc
}

func TestQuoteFlightsValidationShortCircuits(t *testing.T) {
	airports := &fakeAirportRepo{airports: quoteTestDirectory()}
	aircraft := &fakeAircraftRepo{fleet: testFleet()}
	svc := newTestQuoteService(airports, aircraft, &fakeQuoteRecords{})

	_, err := svc.QuoteFlights(context.Background(), QuoteRequest{})

	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Messages)

	// No store is touched for an invalid request.
	assert.Zero(t, airports.searchCalls)
	assert.Zero(t, airports.anyCalls)
	assert.Zero(t, airports.batchCalls)
	assert.Zero(t, aircraft.calls)
}

func TestQuoteFlightsOneWay(t *testing.T) {
	airports := &fakeAirportRepo{airports: quoteTestDirectory()}
	aircraft := &fakeAircraftRepo{fleet: testFleet()}
	records := &fakeQuoteRecords{}
	svc := newTestQuoteService(airports, aircraft, records)

	response, err := svc.QuoteFlights(context.Background(), QuoteRequest{From: "Milano", To: "Paris"})
	require.NoError(t, err)

	assert.Equal(t, "LIML", response.Input.Departure.Code)
	assert.Equal(t, "LFPB", response.Input.Arrival.Code)
	assert.Equal(t, entity.TripOneWay, response.Input.TripType)
	assert.Equal(t, 4, response.Input.Pax)
	assert.InDelta(t, 625, response.Input.DistanceKm, 5)

	// London-based jet is beyond the 500 km radius; the speedless Geneva jet
	// is listed last, unpriced.
	require.Len(t, response.Jets, 2)
	assert.Equal(t, uint(1), response.Jets[0].AircraftID)
	require.NotNil(t, response.Jets[0].Pricing.Total)
	assert.InDelta(t, 4500, *response.Jets[0].Pricing.Total, 40)

	assert.Equal(t, uint(2), response.Jets[1].AircraftID)
	assert.Nil(t, response.Jets[1].Pricing.Total)
	assert.NotEmpty(t, response.Jets[1].Warning)

	// Home bases are hydrated in one batch call.
	assert.Equal(t, 1, airports.batchCalls)

	require.Len(t, records.saved, 1)
	assert.Equal(t, "LIML", records.saved[0].ResolvedFrom)
	assert.Equal(t, 2, records.saved[0].OfferCount)
}

func TestQuoteFlightsRawCodes(t *testing.T) {
	airports := &fakeAirportRepo{airports: quoteTestDirectory()}
	svc := newTestQuoteService(airports, &fakeAircraftRepo{fleet: testFleet()}, &fakeQuoteRecords{})

	response, err := svc.QuoteFlights(context.Background(), QuoteRequest{Departure: "LIML", Arrival: "LFPB"})
	require.NoError(t, err)

	// Codes skip the directory search entirely but still get coordinates.
	assert.Zero(t, airports.searchCalls)
	assert.Equal(t, 100, response.Input.Departure.ConfidenceScore)
	assert.InDelta(t, 45.4451, response.Input.Departure.Latitude, 0.0001)
	assert.InDelta(t, 625, response.Input.DistanceKm, 5)
}

func TestQuoteFlightsArrivalResolutionFailure(t *testing.T) {
	airports := &fakeAirportRepo{airports: quoteTestDirectory()}
	svc := newTestQuoteService(airports, &fakeAircraftRepo{fleet: testFleet()}, &fakeQuoteRecords{})

	_, err := svc.QuoteFlights(context.Background(), QuoteRequest{From: "Milano", To: "Atlantis"})

	var resolutionErr *entity.ResolutionError
	require.ErrorAs(t, err, &resolutionErr)
	assert.Equal(t, "arrival", resolutionErr.Side)
	assert.Equal(t, "Atlantis", resolutionErr.Input)
}

func TestQuoteFlightsUnknownRawCode(t *testing.T) {
	airports := &fakeAirportRepo{airports: quoteTestDirectory()}
	svc := newTestQuoteService(airports, &fakeAircraftRepo{fleet: testFleet()}, &fakeQuoteRecords{})

	_, err := svc.QuoteFlights(context.Background(), QuoteRequest{Departure: "ZZZZ", Arrival: "LFPB"})

	var resolutionErr *entity.ResolutionError
	require.ErrorAs(t, err, &resolutionErr)
	assert.Equal(t, "departure", resolutionErr.Side)
}

func TestQuoteFlightsFleetOutage(t *testing.T) {
	airports := &fakeAirportRepo{airports: quoteTestDirectory()}
	aircraft := &fakeAircraftRepo{failWith: errors.New("connection refused")}
	svc := newTestQuoteService(airports, aircraft, &fakeQuoteRecords{})

	_, err := svc.QuoteFlights(context.Background(), QuoteRequest{From: "Milano", To: "Paris"})

	var unavailable *entity.DataUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "fleet", unavailable.Store)
}

func TestQuoteFlightsRoundTrip(t *testing.T) {
	airports := &fakeAirportRepo{airports: quoteTestDirectory()}
	svc := newTestQuoteService(airports, &fakeAircraftRepo{fleet: testFleet()}, &fakeQuoteRecords{})

	oneWay, err := svc.QuoteFlights(context.Background(), QuoteRequest{From: "Milano", To: "Paris"})
	require.NoError(t, err)
	sameDay, err := svc.QuoteFlights(context.Background(), QuoteRequest{
		From: "Milano", To: "Paris", TripType: "roundtrip",
		Date: "2026-09-15", ReturnDate: "2026-09-15",
	})
	require.NoError(t, err)

	require.NotEmpty(t, sameDay.Jets)
	require.NotNil(t, sameDay.Jets[0].Pricing.Total)
	assert.InDelta(t, *oneWay.Jets[0].Pricing.Total*1.20, *sameDay.Jets[0].Pricing.Total, 1)
}

func TestQuoteFlightsMultiLeg(t *testing.T) {
	airports := &fakeAirportRepo{airports: quoteTestDirectory()}
	fleet := append(testFleet(), entity.Aircraft{
		ID: 4, DisplayName: "Short Hopper", SeatCount: 4, HomeBaseCode: "LIML",
		CruiseSpeedKnots: 300, HourlyRate: 1500, RangeKm: 300,
	})
	svc := newTestQuoteService(airports, &fakeAircraftRepo{fleet: fleet}, &fakeQuoteRecords{})

	response, err := svc.QuoteFlights(context.Background(), QuoteRequest{
		From: "Milano", To: "Geneva", TripType: "multileg",
		Legs: []LegRequest{
			{From: "LIML", To: "LFPB", Date: "2026-09-15", Time: "08:00"},
			{From: "LFPB", To: "LSGG", Date: "2026-09-16", Time: "09:00"},
		},
	})
	require.NoError(t, err)

	require.Len(t, response.Input.Legs, 2)
	assert.Equal(t, "LIML", response.Input.Legs[0].FromCode)
	assert.Equal(t, "LFPB", response.Input.Legs[0].ToCode)
	assert.InDelta(t, 625, response.Input.Legs[0].DistanceKm, 5)

	// The 300 km range hopper cannot fly a 625 km leg and is excluded; the
	// Citation is offered with per-leg pricing.
	ids := make([]uint, 0, len(response.Jets))
	for _, jet := range response.Jets {
		ids = append(ids, jet.AircraftID)
	}
	assert.NotContains(t, ids, uint(4))
	assert.Contains(t, ids, uint(1))

	for _, jet := range response.Jets {
		if jet.AircraftID == 1 {
			require.Len(t, jet.Legs, 2)
			require.NotNil(t, jet.Pricing.Total)
			assert.Greater(t, jet.Pricing.RepositioningCost, 0.0)
		}
	}
}
