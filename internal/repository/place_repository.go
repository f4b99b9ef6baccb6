package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/coworkly/booking-core/internal/model"
)

type PlaceRepository interface {
	// Активные места зоны в стабильном порядке (по имени).
	ListActiveByZone(ctx context.Context, zoneID string) ([]model.Place, error)
	// Вместимость зоны = количество её активных мест.
	CountActiveByZone(ctx context.Context, zoneID string) (int64, error)
	// Создать место.
	Create(ctx context.Context, place *model.Place) error
}

type GormPlaceRepository struct {
	db *gorm.DB
}

func NewGormPlaceRepository(db *gorm.DB) *GormPlaceRepository {
	return &GormPlaceRepository{db: db}
}

func (r *GormPlaceRepository) ListActiveByZone(ctx context.Context, zoneID string) ([]model.Place, error) {
	var places []model.Place
	err := r.db.WithContext(ctx).
		Where("zone_id = ?", zoneID).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *GormPlaceRepository) CountActiveByZone(ctx context.Context, zoneID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Place{}).
		Where("zone_id = ?", zoneID).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *GormPlaceRepository) Create(ctx context.Context, place *model.Place) error {
	return r.db.WithContext(ctx).Create(place).Error
}
