package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode"

	"charterquote-service/internal/domain/entity"
	"charterquote-service/internal/domain/repository"
	"charterquote-service/pkg/cache"
	"charterquote-service/pkg/logger"
	"charterquote-service/pkg/metrics"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Confidence levels for the resolution tiers. Tier weight is the base score;
// match bonuses are added on top.
const (
	confidenceExactCode = 100
	confidenceFallback  = 40
	confidenceAlias     = 35

	bonusExactMunicipality = 20
	bonusNameContains      = 15
	bonusCountryHint       = 10

	candidatesPerTier = 5
)

var icaoCodePattern = regexp.MustCompile(`^[A-Z]{4}$`)

// searchTiers orders directory queries from large airports down. Each tier's
// weight doubles as the base confidence of its candidates.
var searchTiers = []struct {
	classification string
	weight         int
}{
	{entity.ClassificationLarge, 100},
	{entity.ClassificationMedium, 80},
	{entity.ClassificationSmall, 60},
}

// LocationResolver maps free-text locations to airports through a tiered,
// confidence-scored directory search with a TTL cache in front.
type LocationResolver struct {
	airportRepo  repository.AirportRepository
	cache        *cache.Cache[entity.ResolvedLocation]
	metrics      *metrics.Metrics
	logger       logger.Logger
	queryTimeout time.Duration
}

// NewLocationResolver creates a new location resolver
func NewLocationResolver(
	airportRepo repository.AirportRepository,
	resolutionCache *cache.Cache[entity.ResolvedLocation],
	m *metrics.Metrics,
	logger logger.Logger,
	queryTimeout time.Duration,
) *LocationResolver {
	return &LocationResolver{
		airportRepo:  airportRepo,
		cache:        resolutionCache,
		metrics:      m,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

// Resolve turns input into a canonical airport. countryHint is an optional
// ISO country code that bumps candidates from that country. Directory
// failures inside a tier are logged and the remaining tiers proceed; only a
// total miss returns entity.ErrLocationNotFound.
func (r *LocationResolver) Resolve(ctx context.Context, input, countryHint string) (entity.ResolvedLocation, error) {
	trimmed := strings.TrimSpace(input)

	// A valid code needs no directory round trip. Coordinates are hydrated
	// later together with the fleet home bases.
	if icaoCodePattern.MatchString(trimmed) {
		return entity.ResolvedLocation{
			Code:            trimmed,
			ConfidenceScore: confidenceExactCode,
		}, nil
	}

	normalized := normalizeLocationText(trimmed)
	if normalized == "" {
		return entity.ResolvedLocation{}, entity.ErrLocationNotFound
	}

	cacheKey := normalized + "|" + strings.ToLower(countryHint)
	if cached, ok := r.cache.Get(cacheKey); ok {
		if r.metrics != nil {
			r.metrics.ResolutionCacheHit.Inc()
		}
		return cached, nil
	}

	resolved, err := r.resolveUncached(ctx, normalized, countryHint)
	if err != nil {
		return entity.ResolvedLocation{}, err
	}

	r.cache.Put(cacheKey, resolved)
	return resolved, nil
}

func (r *LocationResolver) resolveUncached(ctx context.Context, normalized, countryHint string) (entity.ResolvedLocation, error) {
	var best *entity.ResolvedLocation

	for _, tier := range searchTiers {
		candidates, err := r.searchTier(ctx, normalized, tier.classification)
		if err != nil {
			r.logger.Warn("Directory tier query failed, skipping tier",
				"classification", tier.classification, "error", err)
			continue
		}

		for _, airport := range candidates {
			score := scoreCandidate(airport, normalized, countryHint, tier.weight)
			if best == nil || score > best.ConfidenceScore {
				best = &entity.ResolvedLocation{
					Code:            airport.Code,
					DisplayName:     airport.DisplayName,
					ConfidenceScore: score,
					Latitude:        airport.Latitude,
					Longitude:       airport.Longitude,
				}
			}
		}
	}

	if best != nil {
		return *best, nil
	}

	if resolved, ok := r.searchAnyField(ctx, normalized); ok {
		return resolved, nil
	}

	if resolved, ok := r.resolveAlias(ctx, normalized); ok {
		return resolved, nil
	}

	return entity.ResolvedLocation{}, entity.ErrLocationNotFound
}

func (r *LocationResolver) searchTier(ctx context.Context, needle, classification string) ([]entity.Airport, error) {
	queryCtx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()
	return r.airportRepo.SearchByClassification(queryCtx, needle, classification, candidatesPerTier)
}

// searchAnyField is the loose fallback across every searchable column.
func (r *LocationResolver) searchAnyField(ctx context.Context, needle string) (entity.ResolvedLocation, bool) {
	queryCtx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	candidates, err := r.airportRepo.SearchAny(queryCtx, needle, 1)
	if err != nil {
		r.logger.Warn("Fallback directory query failed", "error", err)
		return entity.ResolvedLocation{}, false
	}
	if len(candidates) == 0 {
		return entity.ResolvedLocation{}, false
	}

	airport := candidates[0]
	return entity.ResolvedLocation{
		Code:            airport.Code,
		DisplayName:     airport.DisplayName,
		ConfidenceScore: confidenceFallback,
		Latitude:        airport.Latitude,
		Longitude:       airport.Longitude,
	}, true
}

// resolveAlias consults the static city alias table. Best effort only; the
// aliased code must still exist in the directory.
func (r *LocationResolver) resolveAlias(ctx context.Context, normalized string) (entity.ResolvedLocation, bool) {
	code, ok := cityAliases[normalized]
	if !ok {
		return entity.ResolvedLocation{}, false
	}

	queryCtx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	airport, err := r.airportRepo.GetByCode(queryCtx, code)
	if err != nil {
		r.logger.Warn("Alias lookup failed", "alias", normalized, "code", code, "error", err)
		return entity.ResolvedLocation{}, false
	}

	return entity.ResolvedLocation{
		Code:            airport.Code,
		DisplayName:     airport.DisplayName,
		ConfidenceScore: confidenceAlias,
		Latitude:        airport.Latitude,
		Longitude:       airport.Longitude,
	}, true
}

func scoreCandidate(airport entity.Airport, normalized, countryHint string, tierWeight int) int {
	score := tierWeight
	if normalizeLocationText(airport.Municipality) == normalized {
		score += bonusExactMunicipality
	}
	if strings.Contains(normalizeLocationText(airport.DisplayName), normalized) {
		score += bonusNameContains
	}
	if countryHint != "" && strings.EqualFold(countryHint, airport.CountryCode) {
		score += bonusCountryHint
	}
	return score
}

var diacriticsStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeLocationText case-folds, strips diacritics and trims, so that
// "Zürich" and "zurich" key the same cache entry and match the same rows.
func normalizeLocationText(input string) string {
	stripped, _, err := transform.String(diacriticsStripper, input)
	if err != nil {
		stripped = input
	}
	return strings.ToLower(strings.TrimSpace(stripped))
}
