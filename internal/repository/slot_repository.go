package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/coworkly/booking-core/internal/model"
)

type SlotRepository interface {
	// Найти слот по ID; nil без ошибки, если слота нет.
	GetByID(ctx context.Context, id string) (*model.Slot, error)
	// Слоты места, начинающиеся в пределах суток [dayStart, dayEnd).
	ListByPlaceAndDay(ctx context.Context, placeID string, dayStart, dayEnd time.Time) ([]model.Slot, error)
	// Создать слот.
	Create(ctx context.Context, slot *model.Slot) error
	// Переключить доступность слота.
	SetAvailability(ctx context.Context, id string, available bool) error
}

type GormSlotRepository struct {
	db *gorm.DB
}

func NewGormSlotRepository(db *gorm.DB) *GormSlotRepository {
	return &GormSlotRepository{db: db}
}

func (r *GormSlotRepository) GetByID(ctx context.Context, id string) (*model.Slot, error) {
	var slot model.Slot
	if err := r.db.WithContext(ctx).First(&slot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *GormSlotRepository) ListByPlaceAndDay(
	ctx context.Context,
	placeID string,
	dayStart, dayEnd time.Time,
) ([]model.Slot, error) {
	var slots []model.Slot
	err := r.db.WithContext(ctx).
		Where("place_id = ?", placeID).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *GormSlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *GormSlotRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Slot{}).
		Where("id = ?", id).
		Update("is_available", available).
		Error
}
