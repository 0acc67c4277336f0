package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"charterquote-service/internal/domain/entity"
	"charterquote-service/internal/usecase"
	"charterquote-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuotes struct {
	response *usecase.QuoteResponse
	err      error
	lastReq  usecase.QuoteRequest
}

func (s *stubQuotes) QuoteFlights(ctx context.Context, req usecase.QuoteRequest) (*usecase.QuoteResponse, error) {
	s.lastReq = req
	return s.response, s.err
}

func newTestServer(stub *stubQuotes) *httptest.Server {
	mux := http.NewServeMux()
	NewHandler(stub, logger.NewNop()).Register(mux)
	return httptest.NewServer(mux)
}

func TestHandleQuoteSuccess(t *testing.T) {
	total := 4500.0
	stub := &stubQuotes{response: &usecase.QuoteResponse{
		Input: usecase.ResponseInput{
			Departure: entity.ResolvedLocation{Code: "LIML"},
			Arrival:   entity.ResolvedLocation{Code: "LFPB"},
			TripType:  entity.TripOneWay,
			Pax:       4,
		},
		Jets: []entity.Quote{{AircraftID: 1, Pricing: entity.PriceBreakdown{Total: &total, Currency: "EUR"}}},
	}}
	server := newTestServer(stub)
	defer server.Close()

	res, err := http.Post(server.URL+"/api/v1/quotes", "application/json",
		strings.NewReader(`{"from":"Milano","to":"Paris"}`))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Milano", stub.lastReq.From)

	var payload struct {
		Input struct {
			Departure struct {
				Code string `json:"code"`
			} `json:"departure"`
		} `json:"input"`
		Jets []json.RawMessage `json:"jets"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	assert.Equal(t, "LIML", payload.Input.Departure.Code)
	assert.Len(t, payload.Jets, 1)
}

func TestHandleQuoteViaQueryParams(t *testing.T) {
	stub := &stubQuotes{response: &usecase.QuoteResponse{}}
	server := newTestServer(stub)
	defer server.Close()

	res, err := http.Get(server.URL + "/api/v1/quotes?departure=Milano&arrival=Paris&pax=6&tripType=oneway")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Milano", stub.lastReq.Departure)
	assert.Equal(t, 6, stub.lastReq.Pax)
}

func TestHandleQuoteValidationError(t *testing.T) {
	stub := &stubQuotes{err: &entity.ValidationError{Messages: []string{"departure location is required"}}}
	server := newTestServer(stub)
	defer server.Close()

	res, err := http.Post(server.URL+"/api/v1/quotes", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var payload struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	assert.Contains(t, payload.Errors, "departure location is required")
}

func TestHandleQuoteResolutionFailure(t *testing.T) {
	stub := &stubQuotes{err: &entity.ResolutionError{Side: "arrival", Input: "Atlantis"}}
	server := newTestServer(stub)
	defer server.Close()

	res, err := http.Post(server.URL+"/api/v1/quotes", "application/json",
		strings.NewReader(`{"from":"Milano","to":"Atlantis"}`))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var payload struct {
		Side  string `json:"side"`
		Input string `json:"input"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	assert.Equal(t, "arrival", payload.Side)
	assert.Equal(t, "Atlantis", payload.Input)
}

func TestHandleQuoteStoreOutage(t *testing.T) {
	stub := &stubQuotes{err: &entity.DataUnavailableError{Store: "fleet", Err: context.DeadlineExceeded}}
	server := newTestServer(stub)
	defer server.Close()

	res, err := http.Post(server.URL+"/api/v1/quotes", "application/json",
		strings.NewReader(`{"from":"Milano","to":"Paris"}`))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestHandleQuoteMalformedBody(t *testing.T) {
	stub := &stubQuotes{}
	server := newTestServer(stub)
	defer server.Close()

	res, err := http.Post(server.URL+"/api/v1/quotes", "application/json", strings.NewReader(`{not json`))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestHealthz(t *testing.T) {
	server := newTestServer(&stubQuotes{})
	defer server.Close()

	res, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
