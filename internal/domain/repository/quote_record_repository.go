package repository

import (
	"context"

	"charterquote-service/internal/domain/entity"
)

// QuoteRecordRepository defines the interface for the quote audit trail
type QuoteRecordRepository interface {
	Save(ctx context.Context, record *entity.QuoteRecord) error
}
