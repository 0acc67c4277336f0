package repository

import (
	"context"

	"charterquote-service/internal/domain/entity"
	"charterquote-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Airports GORM model for database mapping
type Airports struct {
	ID             uint    `gorm:"primaryKey"`
	Code           string  `gorm:"column:code;unique"`
	DisplayName    string  `gorm:"column:display_name"`
	Municipality   string  `gorm:"column:municipality;index"`
	Region         string  `gorm:"column:region"`
	CountryCode    string  `gorm:"column:country_code"`
	Classification string  `gorm:"column:classification;index"`
	Latitude       float64 `gorm:"column:latitude"`
	Longitude      float64 `gorm:"column:longitude"`
}

// TableName overrides the default table name
func (Airports) TableName() string {
	return "m_airports"
}

// classificationRank orders results so larger airports come first.
const classificationRank = "CASE classification WHEN 'large' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END"

// GetByCode finds the airport with the exact code
func (r *GormAirportRepository) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	var airport Airports
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&airport)

	if result.Error != nil {
		return nil, result.Error
	}

	return toAirportEntity(airport), nil
}

// SearchByClassification matches needle against municipality or display name
// within a single classification tier
func (r *GormAirportRepository) SearchByClassification(ctx context.Context, needle, classification string, limit int) ([]entity.Airport, error) {
	var airports []Airports
	pattern := "%" + needle + "%"
	result := r.db.WithContext(ctx).
		Where("classification = ?", classification).
		Where("municipality ILIKE ? OR display_name ILIKE ?", pattern, pattern).
		Limit(limit).
		Find(&airports)

	if result.Error != nil {
		return nil, result.Error
	}

	return toAirportEntities(airports), nil
}

// SearchAny matches needle against every searchable column, larger airports
// first
func (r *GormAirportRepository) SearchAny(ctx context.Context, needle string, limit int) ([]entity.Airport, error) {
	var airports []Airports
	pattern := "%" + needle + "%"
	result := r.db.WithContext(ctx).
		Where("display_name ILIKE ? OR municipality ILIKE ? OR code ILIKE ? OR region ILIKE ? OR country_code ILIKE ?",
			pattern, pattern, pattern, pattern, pattern).
		Order(classificationRank).
		Limit(limit).
		Find(&airports)

	if result.Error != nil {
		return nil, result.Error
	}

	return toAirportEntities(airports), nil
}

// FindByCodes hydrates a set of airports in one query
func (r *GormAirportRepository) FindByCodes(ctx context.Context, codes []string) ([]entity.Airport, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	var airports []Airports
	result := r.db.WithContext(ctx).Where("code IN ?", codes).Find(&airports)

	if result.Error != nil {
		return nil, result.Error
	}

	return toAirportEntities(airports), nil
}

// toAirportEntity converts a GORM model to a domain entity
func toAirportEntity(a Airports) *entity.Airport {
	return &entity.Airport{
		Code:           a.Code,
		DisplayName:    a.DisplayName,
		Municipality:   a.Municipality,
		Region:         a.Region,
		CountryCode:    a.CountryCode,
		Classification: a.Classification,
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
	}
}

func toAirportEntities(models []Airports) []entity.Airport {
	airports := make([]entity.Airport, 0, len(models))
	for _, m := range models {
		airports = append(airports, *toAirportEntity(m))
	}
	return airports
}
