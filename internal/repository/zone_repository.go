package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/coworkly/booking-core/internal/model"
)

type ZoneRepository interface {
	// Найти зону по ID; nil без ошибки, если зоны нет.
	GetByID(ctx context.Context, id string) (*model.Zone, error)
	// Список зон по имени; includeInactive = false — только активные.
	List(ctx context.Context, includeInactive bool) ([]model.Zone, error)
	// Зоны, у которых срок закрытия уже прошёл и которые пора реактивировать.
	ListClosureExpired(ctx context.Context, now time.Time) ([]model.Zone, error)
	// Создать зону.
	Create(ctx context.Context, zone *model.Zone) error
	// Частичное обновление полей зоны.
	Update(ctx context.Context, id string, fields map[string]any) error
	// Удалить зону.
	Delete(ctx context.Context, id string) error
}

type GormZoneRepository struct {
	db *gorm.DB
}

func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

func (r *GormZoneRepository) GetByID(ctx context.Context, id string) (*model.Zone, error) {
	var zone model.Zone
	if err := r.db.WithContext(ctx).First(&zone, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &zone, nil
}

func (r *GormZoneRepository) List(ctx context.Context, includeInactive bool) ([]model.Zone, error) {
	var zones []model.Zone
	q := r.db.WithContext(ctx).Model(&model.Zone{})
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("name ASC").Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

func (r *GormZoneRepository) ListClosureExpired(ctx context.Context, now time.Time) ([]model.Zone, error) {
	var zones []model.Zone
	err := r.db.WithContext(ctx).
		Where("is_active = ?", false).
		Where("closed_until IS NOT NULL AND closed_until <= ?", now).
		Find(&zones).Error
	if err != nil {
		return nil, err
	}
	return zones, nil
}

func (r *GormZoneRepository) Create(ctx context.Context, zone *model.Zone) error {
	return r.db.WithContext(ctx).Create(zone).Error
}

func (r *GormZoneRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&model.Zone{}).
		Where("id = ?", id).
		Updates(fields).
		Error
}

func (r *GormZoneRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Zone{}, "id = ?", id).Error
}
