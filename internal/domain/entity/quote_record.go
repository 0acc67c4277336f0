package entity

import "time"

// QuoteRecord is the audit trail entry persisted for every served quote
// request.
type QuoteRecord struct {
	ID           string    `bson:"_id,omitempty"`
	Departure    string    `bson:"departure"`
	Arrival      string    `bson:"arrival"`
	ResolvedFrom string    `bson:"resolvedFrom"`
	ResolvedTo   string    `bson:"resolvedTo"`
	TripType     string    `bson:"tripType"`
	Pax          int       `bson:"pax"`
	DistanceKm   float64   `bson:"distanceKm"`
	OfferCount   int       `bson:"offerCount"`
	DurationMs   int64     `bson:"durationMs"`
	CreatedAt    time.Time `bson:"createdAt"`
}
