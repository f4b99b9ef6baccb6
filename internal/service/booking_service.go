package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/coworkly/booking-core/internal/capacity"
	"github.com/coworkly/booking-core/internal/clock"
	"github.com/coworkly/booking-core/internal/config"
	"github.com/coworkly/booking-core/internal/model"
	"github.com/coworkly/booking-core/internal/notify"
	"github.com/coworkly/booking-core/internal/pagination"
	"github.com/coworkly/booking-core/internal/repository"
)

// errUnavailable — внутренний маркер «тихого» отказа. Операции с тихим
// контрактом (бронь фиксированного слота, отмена) не отдают кодов наружу:
// любое нарушение правил превращается в пустой результат.
var errUnavailable = errors.New("booking unavailable")

// BookingService — жизненный цикл бронирований: создание, отмена,
// продление, ленивое завершение истёкших. Все мутации выполняются одной
// транзакцией с блокировкой ровно одной строки (Slot или Booking, без
// JOIN); события публикуются только после коммита.
type BookingService struct {
	db       *gorm.DB
	cfg      *config.AppConfig
	clock    clock.Clock
	notifier notify.Notifier

	bookingRepo repository.BookingRepository
}

func NewBookingService(
	db *gorm.DB,
	cfg *config.AppConfig,
	clk clock.Clock,
	notifier notify.Notifier,
	bookingRepo repository.BookingRepository,
) *BookingService {
	return &BookingService{
		db:          db,
		cfg:         cfg,
		clock:       clk,
		notifier:    notifier,
		bookingRepo: bookingRepo,
	}
}

// CreateByTimeRangeInput — заявка на бронь по интервалу внутри одной даты.
type CreateByTimeRangeInput struct {
	ZoneID      uuid.UUID
	Date        string // YYYY-MM-DD
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// AutoCompleteExpired переводит все активные брони с прошедшим end_time в
// completed. Вызывается перед любым чтением живого статуса (список зон,
// история, статистика, продление) — ленивое завершение вместо таймера.
func (s *BookingService) AutoCompleteExpired(ctx context.Context) error {
	return autoCompleteExpired(ctx, s.db, s.clock.Now())
}

func autoCompleteExpired(ctx context.Context, db *gorm.DB, now time.Time) error {
	return db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("status = ?", model.BookingStatusActive).
		Where("end_time <= ?", now).
		Update("status", model.BookingStatusCompleted).
		Error
}

// CreateBooking бронирует конкретный слот. Тихий контракт: (nil, nil) при
// любом нарушении правил — слот отсутствует/занят, дубль брони,
// пересечение с другой бронью пользователя, переполнение зоны, проигрыш
// конкурентной гонки за слот. Ошибка возвращается только при фатальном
// сбое хранилища.
func (s *BookingService) CreateBooking(ctx context.Context, userID, slotID uuid.UUID) (*model.Booking, error) {
	var (
		booking *model.Booking
		evt     notify.BookingEvent
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Блокируем ровно одну строку слота, без JOIN.
		var slot model.Slot
		if err := repository.ForUpdate(tx).First(&slot, "id = ?", slotID.String()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUnavailable
			}
			return err
		}
		if !slot.IsAvailable {
			return errUnavailable
		}

		// Место и зона читаются после блокировки слота и не блокируются:
		// они нужны только для бизнес-правил и денормализации.
		var zone *model.Zone
		var place model.Place
		if err := tx.First(&place, "id = ?", slot.PlaceID.String()).Error; err == nil {
			var z model.Zone
			if err := tx.First(&z, "id = ?", place.ZoneID.String()).Error; err == nil {
				zone = &z
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var existing int64
		err := tx.Model(&model.Booking{}).
			Where("user_id = ?", userID.String()).
			Where("slot_id = ?", slot.ID.String()).
			Where("status = ?", model.BookingStatusActive).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return errUnavailable
		}

		conflict, err := userHasConflict(ctx, tx, userID, slot.StartTime, slot.EndTime, nil)
		if err != nil {
			return err
		}
		if conflict {
			return errUnavailable
		}

		if zone != nil {
			fits, err := zoneCapacityFits(ctx, tx, zone.ID, slot.StartTime, slot.EndTime)
			if err != nil {
				return err
			}
			if !fits {
				return errUnavailable
			}
		}

		b := &model.Booking{
			ID:        uuid.New(),
			UserID:    userID,
			SlotID:    &slot.ID,
			Status:    model.BookingStatusActive,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		}
		if zone != nil {
			b.ZoneName = zone.Name
			b.ZoneAddress = zone.Address
		}
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Slot{}).
			Where("id = ?", slot.ID.String()).
			Update("is_available", false).Error; err != nil {
			return err
		}

		evt = notify.BookingEvent{
			Type:      notify.TypeBookingCreated,
			BookingID: b.ID.String(),
			UserID:    userID.String(),
			ZoneName:  b.ZoneName,
			StartTime: notify.FormatTime(b.StartTime),
			EndTime:   notify.FormatTime(b.EndTime),
			EmittedAt: notify.FormatTime(s.clock.Now()),
		}
		if err := recordEvent(tx, model.EventTypeBookingCreated, userID, &b.ID, evt); err != nil {
			return err
		}

		booking = b
		return nil
	})
	if err != nil {
		// Проигрыш гонки за слот выглядит как нарушение уникальности
		// на коммите — для вызывающего это обычное «занято».
		if errors.Is(err, errUnavailable) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.emit(ctx, evt)
	return booking, nil
}

// CreateBookingByTimeRange создаёт бронь на интервал, подбирая или создавая
// слот на первом подошедшем активном месте зоны. Контракт с кодами: каждая
// проваленная проверка — свой *BookingError, порядок проверок фиксирован.
func (s *BookingService) CreateBookingByTimeRange(
	ctx context.Context,
	userID uuid.UUID,
	in CreateByTimeRangeInput,
) (*model.Booking, error) {
	day, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, newBookingError(CodeInvalidDate, "Некорректная дата")
	}

	// Наивные часы-минуты трактуются в канонических часах движка (UTC).
	start := time.Date(day.Year(), day.Month(), day.Day(), in.StartHour, in.StartMinute, 0, 0, time.UTC)
	end := time.Date(day.Year(), day.Month(), day.Day(), in.EndHour, in.EndMinute, 0, 0, time.UTC)

	if !end.After(start) {
		return nil, newBookingError(CodeInvalidTimeRange,
			"Некорректный временной интервал: время окончания должно быть позже времени начала")
	}
	if end.Sub(start) > time.Duration(s.cfg.MaxBookingHours)*time.Hour {
		return nil, newBookingError(CodeTimeLimitExceeded,
			fmt.Sprintf("Превышен лимит времени бронирования: максимум %d часов", s.cfg.MaxBookingHours))
	}

	var (
		booking *model.Booking
		evt     notify.BookingEvent
	)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var zone model.Zone
		if err := tx.First(&zone, "id = ?", in.ZoneID.String()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newBookingError(CodeZoneInactive, "Зона недоступна или неактивна")
			}
			return err
		}
		if !zone.IsActive {
			return newBookingError(CodeZoneInactive, "Зона недоступна или неактивна")
		}

		conflict, err := userHasConflict(ctx, tx, userID, start, end, nil)
		if err != nil {
			return err
		}
		if conflict {
			return newBookingError(CodeUserConflict, "У вас уже есть активное бронирование на это время")
		}

		fits, err := zoneCapacityFits(ctx, tx, zone.ID, start, end)
		if err != nil {
			return err
		}
		if !fits {
			return newBookingError(CodeZoneCapacityExceeded,
				"Зона переполнена: достигнута максимальная вместимость")
		}

		places, err := repository.NewGormPlaceRepository(tx).ListActiveByZone(ctx, zone.ID.String())
		if err != nil {
			return err
		}
		if len(places) == 0 {
			return newBookingError(CodeNoAvailablePlaces, "Нет доступных мест в данной зоне")
		}

		// Обход мест последовательный и идемпотентный: выигрывает первое
		// место, на котором нашёлся или создался слот; занятые и
		// конфликтующие места просто пропускаются.
		for _, place := range places {
			slot, resolution, err := resolveSlot(ctx, tx, place.ID, start, end)
			if err != nil {
				return err
			}
			if resolution != slotReserved && resolution != slotCreated {
				continue
			}

			b := &model.Booking{
				ID:          uuid.New(),
				UserID:      userID,
				SlotID:      &slot.ID,
				Status:      model.BookingStatusActive,
				ZoneName:    zone.Name,
				ZoneAddress: zone.Address,
				StartTime:   start,
				EndTime:     end,
			}
			if err := tx.Create(b).Error; err != nil {
				return err
			}

			evt = notify.BookingEvent{
				Type:      notify.TypeBookingCreated,
				BookingID: b.ID.String(),
				UserID:    userID.String(),
				ZoneName:  zone.Name,
				StartTime: notify.FormatTime(start),
				EndTime:   notify.FormatTime(end),
				EmittedAt: notify.FormatTime(s.clock.Now()),
			}
			if err := recordEvent(tx, model.EventTypeBookingCreated, userID, &b.ID, evt); err != nil {
				return err
			}

			booking = b
			return nil
		}

		return newBookingError(CodeNoAvailablePlaces, "Нет свободных мест на указанное время")
	})
	if err != nil {
		var be *BookingError
		if errors.As(err, &be) {
			return nil, be
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Конкурент успел создать тот же слот: не ретраим, отдаём отказ.
			return nil, newBookingError(CodeNoAvailablePlaces,
				"Нет свободных мест на указанное время (конфликт при создании)")
		}
		return nil, fmt.Errorf("create booking by time range: %w", err)
	}

	s.emit(ctx, evt)
	return booking, nil
}

// CancelBooking отменяет бронь владельца (или любую — для админа) и
// освобождает слот. Тихий контракт: (nil, nil), если брони нет или прав
// недостаточно; уже не-активная бронь возвращается без изменений.
func (s *BookingService) CancelBooking(
	ctx context.Context,
	userID, bookingID uuid.UUID,
	isAdmin bool,
) (*model.Booking, error) {
	var (
		booking   *model.Booking
		cancelled bool
		evt       notify.BookingEvent
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b model.Booking
		if err := repository.ForUpdate(tx).First(&b, "id = ?", bookingID.String()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUnavailable
			}
			return err
		}
		if !isAdmin && b.UserID != userID {
			return errUnavailable
		}
		if b.Status != model.BookingStatusActive {
			// Идемпотентность: повторная отмена ничего не пишет.
			booking = &b
			return nil
		}

		if b.SlotID != nil {
			if err := tx.Model(&model.Slot{}).
				Where("id = ?", b.SlotID.String()).
				Update("is_available", true).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&model.Booking{}).
			Where("id = ?", b.ID.String()).
			Update("status", model.BookingStatusCancelled).Error; err != nil {
			return err
		}
		b.Status = model.BookingStatusCancelled

		// Событие адресовано владельцу брони, даже если отменял админ.
		evt = notify.BookingEvent{
			Type:      notify.TypeBookingCancelled,
			BookingID: b.ID.String(),
			UserID:    b.UserID.String(),
			ZoneName:  b.ZoneName,
			StartTime: notify.FormatTime(b.StartTime),
			EndTime:   notify.FormatTime(b.EndTime),
			EmittedAt: notify.FormatTime(s.clock.Now()),
		}
		if err := recordEvent(tx, model.EventTypeBookingCancelled, b.UserID, &b.ID, evt); err != nil {
			return err
		}

		booking = &b
		cancelled = true
		return nil
	})
	if err != nil {
		if errors.Is(err, errUnavailable) {
			return nil, nil
		}
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	if cancelled {
		s.emit(ctx, evt)
	}
	return booking, nil
}

// ExtendBooking продлевает активную бронь на extendHours/extendMinutes,
// создавая новую бронь на интервал продолжения [end, end+delta). Исходная
// запись не изменяется. Контракт с кодами, порядок проверок фиксирован.
func (s *BookingService) ExtendBooking(
	ctx context.Context,
	userID, bookingID uuid.UUID,
	extendHours, extendMinutes int,
) (*model.Booking, error) {
	now := s.clock.Now()

	// Ленивое завершение до основной транзакции: истёкшая бронь сперва
	// переводится в completed (это коммитится), и только потом наружу
	// уходит booking_expired.
	current, err := s.bookingRepo.GetByID(ctx, bookingID.String())
	if err != nil {
		return nil, fmt.Errorf("extend booking: %w", err)
	}
	if current == nil {
		return nil, newBookingError(CodeBookingNotFound, "Бронирование не найдено")
	}
	if !current.EndTime.IsZero() && !current.EndTime.After(now) {
		if current.Status == model.BookingStatusActive {
			err := s.db.WithContext(ctx).
				Model(&model.Booking{}).
				Where("id = ?", current.ID.String()).
				Where("status = ?", model.BookingStatusActive).
				Update("status", model.BookingStatusCompleted).Error
			if err != nil {
				return nil, fmt.Errorf("extend booking: auto-complete: %w", err)
			}
		}
		return nil, newBookingError(CodeBookingExpired,
			"Бронирование уже завершено: слот истёк. Создайте новое бронирование.")
	}

	var (
		extension *model.Booking
		evt       notify.BookingEvent
	)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b model.Booking
		if err := repository.ForUpdate(tx).First(&b, "id = ?", bookingID.String()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newBookingError(CodeBookingNotFound, "Бронирование не найдено")
			}
			return err
		}
		if b.UserID != userID {
			return newBookingError(CodePermissionDenied, "Нет прав на продление этого бронирования")
		}
		if b.Status != model.BookingStatusActive {
			return newBookingError(CodeInvalidStatus, "Можно продлить только активное бронирование")
		}
		if b.StartTime.IsZero() || b.EndTime.IsZero() {
			return newBookingError(CodeInvalidData, "Некорректные данные бронирования")
		}
		if b.SlotID == nil {
			return newBookingError(CodeSlotNotFound, "Слот бронирования не найден")
		}

		var slot model.Slot
		if err := tx.First(&slot, "id = ?", b.SlotID.String()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newBookingError(CodeSlotNotFound, "Слот бронирования не найден")
			}
			return err
		}

		newEnd := b.EndTime.Add(
			time.Duration(extendHours)*time.Hour + time.Duration(extendMinutes)*time.Minute)
		maxDuration := time.Duration(s.cfg.MaxBookingHours) * time.Hour
		if newEnd.Sub(b.StartTime) > maxDuration {
			return newBookingError(CodeMaxDurationExceeded,
				fmt.Sprintf("Превышен максимальный лимит бронирования (%d часов)", s.cfg.MaxBookingHours))
		}

		conflict, err := userHasConflict(ctx, tx, userID, b.EndTime, newEnd, &b.ID)
		if err != nil {
			return err
		}
		if conflict {
			return newBookingError(CodeUserTimeConflict, "У вас уже есть другое бронирование на это время")
		}

		var zone model.Zone
		var place model.Place
		if err := tx.First(&place, "id = ?", slot.PlaceID.String()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newBookingError(CodeExtendZoneNotFound, "Зона не найдена")
			}
			return err
		}
		if err := tx.First(&zone, "id = ?", place.ZoneID.String()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newBookingError(CodeExtendZoneNotFound, "Зона не найдена")
			}
			return err
		}

		fits, err := zoneCapacityFits(ctx, tx, zone.ID, b.EndTime, newEnd)
		if err != nil {
			return err
		}
		if !fits {
			return newBookingError(CodeExtendCapacityExceeded,
				"Зона переполнена на выбранное время. Попробуйте продлить на меньшее время")
		}

		extSlot, resolution, err := resolveSlot(ctx, tx, slot.PlaceID, b.EndTime, newEnd)
		if err != nil {
			return err
		}
		switch resolution {
		case slotOccupied:
			return newBookingError(CodeSlotUnavailable,
				"Выбранное время уже занято. Попробуйте продлить на меньшее время")
		case slotConflict:
			return newBookingError(CodeSlotPartiallyOccupied,
				"Выбранное время частично занято. Попробуйте продлить на меньшее время")
		}

		nb := &model.Booking{
			ID:          uuid.New(),
			UserID:      userID,
			SlotID:      &extSlot.ID,
			Status:      model.BookingStatusActive,
			ZoneName:    zone.Name,
			ZoneAddress: zone.Address,
			StartTime:   b.EndTime,
			EndTime:     newEnd,
		}
		if err := tx.Create(nb).Error; err != nil {
			return err
		}

		evt = notify.BookingEvent{
			Type:      notify.TypeBookingExtended,
			BookingID: nb.ID.String(),
			UserID:    userID.String(),
			ZoneName:  zone.Name,
			StartTime: notify.FormatTime(nb.StartTime),
			EndTime:   notify.FormatTime(nb.EndTime),
			EmittedAt: notify.FormatTime(s.clock.Now()),
		}
		if err := recordEvent(tx, model.EventTypeBookingExtended, userID, &nb.ID, evt); err != nil {
			return err
		}

		extension = nb
		return nil
	})
	if err != nil {
		var be *BookingError
		if errors.As(err, &be) {
			return nil, be
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newBookingError(CodeIntegrityError,
				"Не удалось продлить бронирование - возможно, слот уже занят")
		}
		return nil, fmt.Errorf("extend booking: %w", err)
	}

	s.emit(ctx, evt)
	return extension, nil
}

// BookingHistory — история бронирований пользователя с фильтрами и
// постраничной выдачей. Перед чтением выполняется ленивое завершение.
func (s *BookingService) BookingHistory(
	ctx context.Context,
	userID uuid.UUID,
	filters repository.HistoryFilters,
	page, pageSize int,
) (pagination.Page[model.Booking], error) {
	if err := s.AutoCompleteExpired(ctx); err != nil {
		return pagination.Page[model.Booking]{}, fmt.Errorf("booking history: %w", err)
	}

	bookings, err := s.bookingRepo.ListByUser(ctx, userID.String(), filters)
	if err != nil {
		return pagination.Page[model.Booking]{}, fmt.Errorf("booking history: %w", err)
	}

	return pagination.Paginate(bookings, page, pageSize), nil
}

// ===== внутренние помощники =====

// userHasConflict — есть ли у пользователя другая активная бронь,
// пересекающая [start, end).
func userHasConflict(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	start, end time.Time,
	excludeBookingID *uuid.UUID,
) (bool, error) {
	q := tx.WithContext(ctx).
		Model(&model.Booking{}).
		Where("user_id = ?", userID.String()).
		Where("status = ?", model.BookingStatusActive).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeBookingID != nil {
		q = q.Where("id <> ?", excludeBookingID.String())
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// zoneCapacityFits — проверка вместимости зоны на интервале через
// sweep-line по активным броням. Зона без активных мест эквивалентна
// переполненной.
func zoneCapacityFits(
	ctx context.Context,
	tx *gorm.DB,
	zoneID uuid.UUID,
	start, end time.Time,
) (bool, error) {
	maxCapacity, err := repository.NewGormPlaceRepository(tx).CountActiveByZone(ctx, zoneID.String())
	if err != nil {
		return false, err
	}
	if maxCapacity == 0 {
		return false, nil
	}

	overlapping, err := repository.NewGormBookingRepository(tx).
		ListActiveOverlappingByZone(ctx, zoneID.String(), start, end)
	if err != nil {
		return false, err
	}

	occupied := make([]capacity.TimeRange, 0, len(overlapping))
	for _, b := range overlapping {
		occupied = append(occupied, capacity.TimeRange{Start: b.StartTime, End: b.EndTime})
	}

	candidate := capacity.TimeRange{Start: start, End: end}
	return capacity.Fits(int(maxCapacity), candidate, occupied), nil
}

type slotResolution int

const (
	slotReserved slotResolution = iota // существующий свободный слот занят нами
	slotCreated                        // создан новый слот под интервал
	slotOccupied                       // точный слот существует, но занят
	slotConflict                       // интервал пересекает чужой занятый слот
)

// resolveSlot находит или создаёт слот места под интервал [start, end).
// Двухфазная проверка: точное совпадение под блокировкой, затем скан
// пересечений. Уникальный индекс (place_id, start_time, end_time) —
// последняя защита от конкурентного создания того же слота; нарушение
// всплывает как gorm.ErrDuplicatedKey и разбирается вызывающим.
func resolveSlot(
	ctx context.Context,
	tx *gorm.DB,
	placeID uuid.UUID,
	start, end time.Time,
) (*model.Slot, slotResolution, error) {
	var exact model.Slot
	err := repository.ForUpdate(tx.WithContext(ctx)).
		Where("place_id = ?", placeID.String()).
		Where("start_time = ?", start).
		Where("end_time = ?", end).
		First(&exact).Error
	switch {
	case err == nil:
		if !exact.IsAvailable {
			return nil, slotOccupied, nil
		}
		if err := tx.Model(&model.Slot{}).
			Where("id = ?", exact.ID.String()).
			Update("is_available", false).Error; err != nil {
			return nil, 0, err
		}
		exact.IsAvailable = false
		return &exact, slotReserved, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, 0, err
	}

	var overlapping []model.Slot
	err = tx.WithContext(ctx).
		Where("place_id = ?", placeID.String()).
		Where("start_time < ? AND end_time > ?", end, start).
		Find(&overlapping).Error
	if err != nil {
		return nil, 0, err
	}
	for _, s := range overlapping {
		if !s.IsAvailable {
			return nil, slotConflict, nil
		}
	}

	slot := &model.Slot{
		ID:          uuid.New(),
		PlaceID:     placeID,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: false,
	}
	if err := tx.Create(slot).Error; err != nil {
		return nil, 0, err
	}
	return slot, slotCreated, nil
}

// recordEvent пишет строку outbox в той же транзакции, что и изменение.
func recordEvent(
	tx *gorm.DB,
	evtType model.EventType,
	userID uuid.UUID,
	bookingID *uuid.UUID,
	payload notify.BookingEvent,
) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	uid := userID
	return tx.Create(&model.Event{
		ID:        uuid.New(),
		EventType: evtType,
		UserID:    &uid,
		BookingID: bookingID,
		Payload:   datatypes.JSON(body),
	}).Error
}

// emit публикует событие после коммита. Ошибка доставки не влияет на
// исход операции.
func (s *BookingService) emit(ctx context.Context, evt notify.BookingEvent) {
	if evt.Type == "" {
		return
	}
	if err := s.notifier.Publish(ctx, evt); err != nil {
		log.Printf("notify: publish %s failed: %v", evt.Type, err)
	}
}
