package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coworkly/booking-core/internal/model"
)

// HistoryFilters — необязательные фильтры истории бронирований.
type HistoryFilters struct {
	Status   model.BookingStatus
	ZoneID   *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
}

type BookingRepository interface {
	// Найти бронь по ID; nil без ошибки, если брони нет.
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	// История бронирований пользователя, новые сверху. Фильтры по
	// статусу, зоне и дате начала. Брони с обнулённым слотом (зона
	// удалена) остаются в выдаче.
	ListByUser(ctx context.Context, userID string, filters HistoryFilters) ([]model.Booking, error)
	// Активные брони зоны, пересекающие интервал [start, end).
	ListActiveOverlappingByZone(ctx context.Context, zoneID string, start, end time.Time) ([]model.Booking, error)
}

type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var b model.Booking
	err := r.db.WithContext(ctx).
		Preload("Slot").
		Preload("Slot.Place").
		First(&b, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) ListByUser(
	ctx context.Context,
	userID string,
	filters HistoryFilters,
) ([]model.Booking, error) {
	// LEFT JOIN: осиротевшие брони (slot_id IS NULL после удаления зоны)
	// не выпадают из истории. Даты фильтруются по денормализованным
	// меткам самой брони по той же причине.
	q := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Joins("LEFT JOIN slots ON slots.id = bookings.slot_id").
		Joins("LEFT JOIN places ON places.id = slots.place_id").
		Where("bookings.user_id = ?", userID).
		Preload("Slot").
		Preload("Slot.Place").
		Order("bookings.created_at DESC")

	if filters.Status != "" {
		q = q.Where("bookings.status = ?", filters.Status)
	}
	if filters.ZoneID != nil {
		q = q.Where("places.zone_id = ?", filters.ZoneID.String())
	}
	if filters.DateFrom != nil {
		q = q.Where("bookings.start_time >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		q = q.Where("bookings.start_time <= ?", *filters.DateTo)
	}

	var bookings []model.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingRepository) ListActiveOverlappingByZone(
	ctx context.Context,
	zoneID string,
	start, end time.Time,
) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Joins("JOIN slots ON slots.id = bookings.slot_id").
		Joins("JOIN places ON places.id = slots.place_id").
		Where("places.zone_id = ?", zoneID).
		Where("bookings.status = ?", model.BookingStatusActive).
		Where("bookings.start_time < ? AND bookings.end_time > ?", end, start).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
