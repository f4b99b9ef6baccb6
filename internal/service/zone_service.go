package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coworkly/booking-core/internal/clock"
	"github.com/coworkly/booking-core/internal/model"
	"github.com/coworkly/booking-core/internal/notify"
	"github.com/coworkly/booking-core/internal/repository"
)

// ZoneSummary — зона вместе со счётчиками для списка зон.
type ZoneSummary struct {
	Zone              model.Zone
	ActiveBookings    int
	CancelledBookings int
	CurrentOccupancy  int
}

// ZoneStatistics — статистика одной зоны.
type ZoneStatistics struct {
	ZoneID            uuid.UUID
	ZoneName          string
	IsActive          bool
	ClosureReason     *string
	ClosedUntil       *time.Time
	ActiveBookings    int
	CancelledBookings int
	CurrentOccupancy  int
}

// GlobalStatistics — сводка по всем зонам.
type GlobalStatistics struct {
	TotalActiveBookings    int
	TotalCancelledBookings int
	UsersPresentNow        int
}

// ZoneCreateInput — заявка на создание зоны с автосозданием мест.
type ZoneCreateInput struct {
	Name        string
	Address     string
	IsActive    bool
	PlacesCount int
}

// ZoneUpdateInput — частичное обновление зоны; nil-поля не трогаются.
// nil означает «не менять», поэтому обнулить причину и срок закрытия
// через указатели нельзя — для этого есть явный флаг ClearClosure.
type ZoneUpdateInput struct {
	Name          *string
	Address       *string
	IsActive      *bool
	ClosureReason *string
	ClosedUntil   *time.Time

	// Сбросить closure_reason и closed_until в NULL (ручное открытие
	// зоны до истечения срока закрытия).
	ClearClosure bool
}

// ZoneService — зоны и места: листинги, админские операции, закрытие
// зоны с массовой отменой броней, статистика. Чтения идут без
// эксклюзивных блокировок — снимок корректируется ближайшим ленивым
// завершением.
type ZoneService struct {
	db       *gorm.DB
	clock    clock.Clock
	notifier notify.Notifier

	zoneRepo  repository.ZoneRepository
	placeRepo repository.PlaceRepository
	slotRepo  repository.SlotRepository
}

func NewZoneService(
	db *gorm.DB,
	clk clock.Clock,
	notifier notify.Notifier,
	zoneRepo repository.ZoneRepository,
	placeRepo repository.PlaceRepository,
	slotRepo repository.SlotRepository,
) *ZoneService {
	return &ZoneService{
		db:        db,
		clock:     clk,
		notifier:  notifier,
		zoneRepo:  zoneRepo,
		placeRepo: placeRepo,
		slotRepo:  slotRepo,
	}
}

// ListZones возвращает зоны со счётчиками броней и текущей загрузкой.
// Сначала выполняются две ленивые развёртки: завершение истёкших броней
// и реактивация зон с прошедшим сроком закрытия.
func (s *ZoneService) ListZones(ctx context.Context, includeInactive bool) ([]ZoneSummary, error) {
	now := s.clock.Now()

	if err := autoCompleteExpired(ctx, s.db, now); err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	if err := s.reactivateExpiredClosures(ctx, now); err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}

	zones, err := s.zoneRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}

	stats, err := s.zoneStatsMap(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}

	result := make([]ZoneSummary, 0, len(zones))
	for _, zone := range zones {
		row := stats[zone.ID]
		result = append(result, ZoneSummary{
			Zone:              zone,
			ActiveBookings:    row.ActiveBookings,
			CancelledBookings: row.CancelledBookings,
			CurrentOccupancy:  row.CurrentOccupancy,
		})
	}
	return result, nil
}

// ListPlaces — активные места зоны.
func (s *ZoneService) ListPlaces(ctx context.Context, zoneID uuid.UUID) ([]model.Place, error) {
	return s.placeRepo.ListActiveByZone(ctx, zoneID.String())
}

// ListSlots — слоты места, начинающиеся в указанную дату.
func (s *ZoneService) ListSlots(ctx context.Context, placeID uuid.UUID, date time.Time) ([]model.Slot, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return s.slotRepo.ListByPlaceAndDay(ctx, placeID.String(), dayStart, dayStart.Add(24*time.Hour))
}

// CreateZone создаёт зону и нумерованные места в ней.
func (s *ZoneService) CreateZone(ctx context.Context, in ZoneCreateInput) (*model.Zone, error) {
	zone := &model.Zone{
		ID:       uuid.New(),
		Name:     in.Name,
		Address:  in.Address,
		IsActive: in.IsActive,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(zone).Error; err != nil {
			return err
		}
		for i := 1; i <= in.PlacesCount; i++ {
			place := &model.Place{
				ID:       uuid.New(),
				ZoneID:   zone.ID,
				Name:     fmt.Sprintf("Место %d", i),
				IsActive: true,
			}
			if err := tx.Create(place).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create zone: %w", err)
	}
	return zone, nil
}

// UpdateZone частично обновляет зону; nil, если зоны нет.
func (s *ZoneService) UpdateZone(ctx context.Context, zoneID uuid.UUID, in ZoneUpdateInput) (*model.Zone, error) {
	zone, err := s.zoneRepo.GetByID(ctx, zoneID.String())
	if err != nil {
		return nil, fmt.Errorf("update zone: %w", err)
	}
	if zone == nil {
		return nil, nil
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Address != nil {
		fields["address"] = *in.Address
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if in.ClosureReason != nil {
		fields["closure_reason"] = *in.ClosureReason
	}
	if in.ClosedUntil != nil {
		fields["closed_until"] = *in.ClosedUntil
	}
	if in.ClearClosure {
		fields["closure_reason"] = nil
		fields["closed_until"] = nil
	}
	if len(fields) == 0 {
		return zone, nil
	}

	if err := s.zoneRepo.Update(ctx, zoneID.String(), fields); err != nil {
		return nil, fmt.Errorf("update zone: %w", err)
	}
	return s.zoneRepo.GetByID(ctx, zoneID.String())
}

// DeleteZone удаляет зону; false, если зоны не было.
func (s *ZoneService) DeleteZone(ctx context.Context, zoneID uuid.UUID) (bool, error) {
	zone, err := s.zoneRepo.GetByID(ctx, zoneID.String())
	if err != nil {
		return false, fmt.Errorf("delete zone: %w", err)
	}
	if zone == nil {
		return false, nil
	}
	if err := s.zoneRepo.Delete(ctx, zoneID.String()); err != nil {
		return false, fmt.Errorf("delete zone: %w", err)
	}
	return true, nil
}

// CloseZone закрывает зону на окно [from, to): зона деактивируется с
// причиной и сроком, каждая активная бронь, пересекающая окно,
// отменяется с освобождением слота. Возвращает отменённые брони.
func (s *ZoneService) CloseZone(
	ctx context.Context,
	zoneID uuid.UUID,
	reason string,
	from, to time.Time,
) ([]model.Booking, error) {
	var (
		affected []model.Booking
		events   []notify.BookingEvent
		zoneName string
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var zone model.Zone
		if err := tx.First(&zone, "id = ?", zoneID.String()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // нет зоны — нет затронутых броней
			}
			return err
		}
		zoneName = zone.Name

		err := tx.Model(&model.Zone{}).
			Where("id = ?", zone.ID.String()).
			Updates(map[string]any{
				"is_active":      false,
				"closure_reason": reason,
				"closed_until":   to,
			}).Error
		if err != nil {
			return err
		}

		var bookings []model.Booking
		err = tx.Model(&model.Booking{}).
			Joins("JOIN slots ON slots.id = bookings.slot_id").
			Joins("JOIN places ON places.id = slots.place_id").
			Where("places.zone_id = ?", zone.ID.String()).
			Where("bookings.status = ?", model.BookingStatusActive).
			Where("slots.start_time < ? AND slots.end_time > ?", to, from).
			Find(&bookings).Error
		if err != nil {
			return err
		}

		cancellationReason := fmt.Sprintf("Зона закрыта: %s", reason)
		for i := range bookings {
			b := &bookings[i]
			err := tx.Model(&model.Booking{}).
				Where("id = ?", b.ID.String()).
				Updates(map[string]any{
					"status":              model.BookingStatusCancelled,
					"cancellation_reason": cancellationReason,
				}).Error
			if err != nil {
				return err
			}
			if b.SlotID != nil {
				err = tx.Model(&model.Slot{}).
					Where("id = ?", b.SlotID.String()).
					Update("is_available", true).Error
				if err != nil {
					return err
				}
			}
			b.Status = model.BookingStatusCancelled
			b.CancellationReason = &cancellationReason

			evt := notify.BookingEvent{
				Type:      notify.TypeZoneClosed,
				BookingID: b.ID.String(),
				UserID:    b.UserID.String(),
				ZoneName:  zone.Name,
				Reason:    reason,
				StartTime: notify.FormatTime(b.StartTime),
				EndTime:   notify.FormatTime(b.EndTime),
				EmittedAt: notify.FormatTime(s.clock.Now()),
			}
			if err := recordEvent(tx, model.EventTypeZoneClosed, b.UserID, &b.ID, evt); err != nil {
				return err
			}
			events = append(events, evt)
		}

		affected = bookings
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("close zone: %w", err)
	}

	// Публикация после коммита, по событию на затронутую бронь.
	for _, evt := range events {
		if err := s.notifier.Publish(ctx, evt); err != nil {
			log.Printf("notify: publish %s (zone %s) failed: %v", evt.Type, zoneName, err)
		}
	}
	return affected, nil
}

// GlobalStatistics — сводные счётчики и число пользователей в коворкинге
// прямо сейчас.
func (s *ZoneService) GlobalStatistics(ctx context.Context) (GlobalStatistics, error) {
	now := s.clock.Now()

	if err := autoCompleteExpired(ctx, s.db, now); err != nil {
		return GlobalStatistics{}, fmt.Errorf("global statistics: %w", err)
	}

	var active, cancelled int64
	err := s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("status = ?", model.BookingStatusActive).
		Count(&active).Error
	if err != nil {
		return GlobalStatistics{}, fmt.Errorf("global statistics: %w", err)
	}
	err = s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("status = ?", model.BookingStatusCancelled).
		Count(&cancelled).Error
	if err != nil {
		return GlobalStatistics{}, fmt.Errorf("global statistics: %w", err)
	}

	var usersNow int64
	err = s.db.WithContext(ctx).Model(&model.Booking{}).
		Distinct("user_id").
		Where("status = ?", model.BookingStatusActive).
		Where("start_time <= ? AND end_time > ?", now, now).
		Count(&usersNow).Error
	if err != nil {
		return GlobalStatistics{}, fmt.Errorf("global statistics: %w", err)
	}

	return GlobalStatistics{
		TotalActiveBookings:    int(active),
		TotalCancelledBookings: int(cancelled),
		UsersPresentNow:        int(usersNow),
	}, nil
}

// ZoneStatisticsAll — статистика по каждой зоне, включая неактивные.
func (s *ZoneService) ZoneStatisticsAll(ctx context.Context) ([]ZoneStatistics, error) {
	now := s.clock.Now()

	if err := autoCompleteExpired(ctx, s.db, now); err != nil {
		return nil, fmt.Errorf("zone statistics: %w", err)
	}

	zones, err := s.zoneRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("zone statistics: %w", err)
	}

	stats, err := s.zoneStatsMap(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("zone statistics: %w", err)
	}

	result := make([]ZoneStatistics, 0, len(zones))
	for _, zone := range zones {
		row := stats[zone.ID]
		result = append(result, ZoneStatistics{
			ZoneID:            zone.ID,
			ZoneName:          zone.Name,
			IsActive:          zone.IsActive,
			ClosureReason:     zone.ClosureReason,
			ClosedUntil:       zone.ClosedUntil,
			ActiveBookings:    row.ActiveBookings,
			CancelledBookings: row.CancelledBookings,
			CurrentOccupancy:  row.CurrentOccupancy,
		})
	}
	return result, nil
}

// reactivateExpiredClosures возвращает к жизни зоны, у которых срок
// закрытия прошёл: is_active = true, причина и срок очищаются.
func (s *ZoneService) reactivateExpiredClosures(ctx context.Context, now time.Time) error {
	expired, err := s.zoneRepo.ListClosureExpired(ctx, now)
	if err != nil {
		return err
	}
	for _, zone := range expired {
		err := s.zoneRepo.Update(ctx, zone.ID.String(), map[string]any{
			"is_active":      true,
			"closure_reason": nil,
			"closed_until":   nil,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

type zoneStatsRow struct {
	ZoneID            uuid.UUID
	ActiveBookings    int
	CancelledBookings int
	CurrentOccupancy  int
}

// zoneStatsMap — счётчики по зонам одним агрегирующим запросом через
// outer join zone → place → slot → booking.
func (s *ZoneService) zoneStatsMap(ctx context.Context, now time.Time) (map[uuid.UUID]zoneStatsRow, error) {
	var rows []zoneStatsRow
	err := s.db.WithContext(ctx).
		Table("zones").
		Select(`zones.id AS zone_id,
			count(CASE WHEN bookings.status = 'active' THEN 1 END) AS active_bookings,
			count(CASE WHEN bookings.status = 'cancelled' THEN 1 END) AS cancelled_bookings,
			count(CASE WHEN bookings.status = 'active'
				AND bookings.start_time <= ?
				AND bookings.end_time > ? THEN 1 END) AS current_occupancy`, now, now).
		Joins("LEFT JOIN places ON places.zone_id = zones.id").
		Joins("LEFT JOIN slots ON slots.place_id = places.id").
		Joins("LEFT JOIN bookings ON bookings.slot_id = slots.id").
		Group("zones.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[uuid.UUID]zoneStatsRow, len(rows))
	for _, row := range rows {
		stats[row.ZoneID] = row
	}
	return stats, nil
}
