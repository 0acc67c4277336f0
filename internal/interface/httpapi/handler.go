package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"charterquote-service/internal/domain/entity"
	"charterquote-service/internal/usecase"
	"charterquote-service/pkg/logger"
)

// QuoteUsecase is the part of the quote service the transport needs.
type QuoteUsecase interface {
	QuoteFlights(ctx context.Context, req usecase.QuoteRequest) (*usecase.QuoteResponse, error)
}

// Handler exposes the quoting pipeline over HTTP.
type Handler struct {
	quotes QuoteUsecase
	logger logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(quotes QuoteUsecase, logger logger.Logger) *Handler {
	return &Handler{
		quotes: quotes,
		logger: logger,
	}
}

// Register attaches all routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/quotes", h.handleQuote)
	mux.HandleFunc("GET /api/v1/quotes", h.handleQuote)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
}

func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req usecase.QuoteRequest

	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"errors": []string{"request body must be valid JSON"},
			})
			return
		}
	} else {
		req = requestFromQuery(r)
	}

	response, err := h.quotes.QuoteFlights(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var validationErr *entity.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"errors": validationErr.Messages,
		})
		return
	}

	var resolutionErr *entity.ResolutionError
	if errors.As(err, &resolutionErr) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error": "unknown airport",
			"side":  resolutionErr.Side,
			"input": resolutionErr.Input,
		})
		return
	}

	h.logger.Error("Quote request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"error": "internal server error",
	})
}

// requestFromQuery maps the GET query parameters onto the request. Multi-leg
// itineraries need the JSON body and are POST only.
func requestFromQuery(r *http.Request) usecase.QuoteRequest {
	q := r.URL.Query()
	pax := 0
	if raw := q.Get("pax"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			pax = parsed
		} else {
			pax = -1 // force the range validation message
		}
	}

	return usecase.QuoteRequest{
		Departure:   q.Get("departure"),
		From:        q.Get("from"),
		Arrival:     q.Get("arrival"),
		To:          q.Get("to"),
		Pax:         pax,
		Date:        q.Get("date"),
		Time:        q.Get("time"),
		TripType:    q.Get("tripType"),
		ReturnDate:  q.Get("returnDate"),
		ReturnTime:  q.Get("returnTime"),
		CountryHint: q.Get("country"),
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
