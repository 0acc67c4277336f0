package repository

import (
	"context"

	"charterquote-service/internal/domain/entity"
)

// AirportRepository defines the interface for airport directory lookups
type AirportRepository interface {
	// GetByCode finds the airport with the exact 4-letter code.
	GetByCode(ctx context.Context, code string) (*entity.Airport, error)

	// SearchByClassification matches needle as a substring of municipality or
	// display name within one classification tier.
	SearchByClassification(ctx context.Context, needle, classification string, limit int) ([]entity.Airport, error)

	// SearchAny matches needle against name, municipality, code and region
	// across all classifications, larger airports first.
	SearchAny(ctx context.Context, needle string, limit int) ([]entity.Airport, error)

	// FindByCodes hydrates a set of airports in a single query.
	FindByCodes(ctx context.Context, codes []string) ([]entity.Airport, error)
}
