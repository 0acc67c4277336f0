package repository

import (
	"context"

	"charterquote-service/internal/domain/entity"
)

// AircraftRepository defines the interface for fleet operations
type AircraftRepository interface {
	// FetchAll returns the whole fleet. Fleets are small enough for a full
	// scan per request.
	FetchAll(ctx context.Context) ([]entity.Aircraft, error)
}
