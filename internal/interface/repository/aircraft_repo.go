package repository

import (
	"context"

	"charterquote-service/internal/domain/entity"
	"charterquote-service/internal/domain/repository"
	"charterquote-service/pkg/logger"

	"gorm.io/gorm"
)

// GormAircraftRepository implements the AircraftRepository interface
type GormAircraftRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAircraftRepository creates a new GORM aircraft repository
func NewGormAircraftRepository(db *gorm.DB, logger logger.Logger) repository.AircraftRepository {
	return &GormAircraftRepository{
		db:     db,
		logger: logger,
	}
}

// Aircrafts GORM model for database mapping
type Aircrafts struct {
	ID                uint    `gorm:"primaryKey"`
	DisplayName       string  `gorm:"column:display_name"`
	Category          string  `gorm:"column:category"`
	SeatCount         int     `gorm:"column:seat_count"`
	OperatorName      string  `gorm:"column:operator_name"`
	HomeBaseCode      string  `gorm:"column:home_base_code;index"`
	CruiseSpeedKnots  float64 `gorm:"column:cruise_speed_knots"`
	SpeedKnots        float64 `gorm:"column:speed_knots"`
	HourlyRate        float64 `gorm:"column:hourly_rate"`
	RangeKm           float64 `gorm:"column:range_km"`
	ParkingCostPerDay float64 `gorm:"column:parking_cost_per_day"`
}

// TableName overrides the default table name
func (Aircrafts) TableName() string {
	return "m_aircraft"
}

// FetchAll returns the whole fleet. One retry at the store boundary covers
// transient connection drops; anything beyond that is a real outage.
func (r *GormAircraftRepository) FetchAll(ctx context.Context) ([]entity.Aircraft, error) {
	fleet, err := r.fetchAllOnce(ctx)
	if err == nil {
		return fleet, nil
	}

	r.logger.Warn("Fleet fetch failed, retrying once", "error", err)
	return r.fetchAllOnce(ctx)
}

func (r *GormAircraftRepository) fetchAllOnce(ctx context.Context) ([]entity.Aircraft, error) {
	var models []Aircrafts
	result := r.db.WithContext(ctx).Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	fleet := make([]entity.Aircraft, 0, len(models))
	for _, m := range models {
		fleet = append(fleet, entity.Aircraft{
			ID:                m.ID,
			DisplayName:       m.DisplayName,
			Category:          m.Category,
			SeatCount:         m.SeatCount,
			OperatorName:      m.OperatorName,
			HomeBaseCode:      m.HomeBaseCode,
			CruiseSpeedKnots:  m.CruiseSpeedKnots,
			LegacySpeedKnots:  m.SpeedKnots,
			HourlyRate:        m.HourlyRate,
			RangeKm:           m.RangeKm,
			ParkingCostPerDay: m.ParkingCostPerDay,
		})
	}
	return fleet, nil
}
