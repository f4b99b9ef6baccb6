package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/coworkly/booking-core/internal/clock"
	"github.com/coworkly/booking-core/internal/config"
	"github.com/coworkly/booking-core/internal/model"
	"github.com/coworkly/booking-core/internal/notify"
	"github.com/coworkly/booking-core/internal/repository"
)

// Frozen "now" for all service tests: 2025-03-10 09:00 UTC.
var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// at returns a moment on the test day.
func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

// openTestDB opens an in-memory sqlite with a minimal schema mirroring
// the production tables, including the model-declared foreign key
// actions. TranslateError keeps unique-violation handling identical to
// postgres (gorm.ErrDuplicatedKey).
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}

	schema := []string{
		`CREATE TABLE zones (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			closure_reason TEXT,
			closed_until DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE places (
			id TEXT PRIMARY KEY,
			zone_id TEXT NOT NULL,
			name TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME,
			updated_at DATETIME,
			FOREIGN KEY (zone_id) REFERENCES zones (id) ON DELETE CASCADE
		);`,
		`CREATE TABLE slots (
			id TEXT PRIMARY KEY,
			place_id TEXT NOT NULL,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME,
			updated_at DATETIME,
			UNIQUE (place_id, start_time, end_time),
			FOREIGN KEY (place_id) REFERENCES places (id) ON DELETE CASCADE
		);`,
		`CREATE TABLE bookings (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			slot_id TEXT,
			status TEXT NOT NULL,
			zone_name TEXT,
			zone_address TEXT,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			cancellation_reason TEXT,
			created_at DATETIME,
			updated_at DATETIME,
			FOREIGN KEY (slot_id) REFERENCES slots (id) ON DELETE SET NULL
		);`,
		`CREATE TABLE events (
			id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			created_at DATETIME,
			user_id TEXT,
			booking_id TEXT,
			payload TEXT
		);`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func newTestBookingService(db *gorm.DB) *BookingService {
	return NewBookingService(
		db,
		&config.AppConfig{MaxBookingHours: 12},
		clock.NewFixed(testNow),
		notify.NopNotifier{},
		repository.NewGormBookingRepository(db),
	)
}

func newTestZoneService(db *gorm.DB) *ZoneService {
	return NewZoneService(
		db,
		clock.NewFixed(testNow),
		notify.NopNotifier{},
		repository.NewGormZoneRepository(db),
		repository.NewGormPlaceRepository(db),
		repository.NewGormSlotRepository(db),
	)
}

// seedZone creates a zone with n active places named "Место 1..n".
func seedZone(t *testing.T, db *gorm.DB, name string, active bool, places int) (uuid.UUID, []uuid.UUID) {
	t.Helper()

	zoneID := uuid.New()
	if err := db.Create(&model.Zone{
		ID:       zoneID,
		Name:     name,
		Address:  "Тестовая улица, 1",
		IsActive: active,
	}).Error; err != nil {
		t.Fatalf("seed zone: %v", err)
	}

	placeIDs := make([]uuid.UUID, 0, places)
	for i := 1; i <= places; i++ {
		placeID := uuid.New()
		if err := db.Create(&model.Place{
			ID:       placeID,
			ZoneID:   zoneID,
			Name:     fmt.Sprintf("Место %d", i),
			IsActive: true,
		}).Error; err != nil {
			t.Fatalf("seed place: %v", err)
		}
		placeIDs = append(placeIDs, placeID)
	}
	return zoneID, placeIDs
}

func seedSlot(t *testing.T, db *gorm.DB, placeID uuid.UUID, start, end time.Time, available bool) uuid.UUID {
	t.Helper()

	slotID := uuid.New()
	if err := db.Create(&model.Slot{
		ID:          slotID,
		PlaceID:     placeID,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: available,
	}).Error; err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	return slotID
}

func seedBooking(
	t *testing.T,
	db *gorm.DB,
	userID, slotID uuid.UUID,
	status model.BookingStatus,
	start, end time.Time,
) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	if err := db.Create(&model.Booking{
		ID:        bookingID,
		UserID:    userID,
		SlotID:    &slotID,
		Status:    status,
		StartTime: start,
		EndTime:   end,
	}).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return bookingID
}

// assertBookingCode checks that err is a BookingError with the given code.
func assertBookingCode(t *testing.T, err error, code string) {
	t.Helper()

	var be *BookingError
	if !errors.As(err, &be) {
		t.Fatalf("error = %v, want BookingError with code %s", err, code)
	}
	if be.Code != code {
		t.Fatalf("error code = %s, want %s", be.Code, code)
	}
}

func countEvents(t *testing.T, db *gorm.DB, evtType model.EventType) int64 {
	t.Helper()

	var n int64
	if err := db.Model(&model.Event{}).Where("event_type = ?", evtType).Count(&n).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	return n
}
