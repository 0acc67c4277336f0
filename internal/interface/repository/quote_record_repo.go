package repository

import (
	"context"
	"time"

	"charterquote-service/internal/domain/entity"
	"charterquote-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoQuoteRecordRepository implements the QuoteRecordRepository interface
type MongoQuoteRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoQuoteRecordRepository creates a new MongoDB quote record repository
func NewMongoQuoteRecordRepository(db *mongo.Database) repository.QuoteRecordRepository {
	collection := db.Collection("quoteRecords")

	// Create indexes for better performance
	ctx := context.Background()

	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}

	tripTypeIndex := mongo.IndexModel{
		Keys: bson.M{"tripType": 1},
	}

	routeIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "resolvedFrom", Value: 1},
			{Key: "resolvedTo", Value: 1},
		},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		createdAtIndex,
		tripTypeIndex,
		routeIndex,
	})

	return &MongoQuoteRecordRepository{
		collection: collection,
	}
}

// Save stores one quote record
func (r *MongoQuoteRecordRepository) Save(ctx context.Context, record *entity.QuoteRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, record)
	return err
}
