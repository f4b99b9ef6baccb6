package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/coworkly/booking-core/internal/clock"
	"github.com/coworkly/booking-core/internal/config"
	"github.com/coworkly/booking-core/internal/model"
	"github.com/coworkly/booking-core/internal/notify"
	"github.com/coworkly/booking-core/internal/repository"
	"github.com/coworkly/booking-core/internal/service"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// newTestServer wires the full stack on an in-memory sqlite.
func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
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

	clk := clock.NewFixed(testNow)
	cfg := &config.AppConfig{MaxBookingHours: 12}
	bookingSvc := service.NewBookingService(db, cfg, clk, notify.NopNotifier{}, repository.NewGormBookingRepository(db))
	zoneSvc := service.NewZoneService(db, clk, notify.NopNotifier{},
		repository.NewGormZoneRepository(db),
		repository.NewGormPlaceRepository(db),
		repository.NewGormSlotRepository(db),
	)

	e := echo.New()
	RegisterRoutes(e, NewBookingHandler(bookingSvc), NewZoneHandler(zoneSvc))
	return e, db
}

func seedZoneWithPlace(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()

	zoneID := uuid.New()
	if err := db.Create(&model.Zone{ID: zoneID, Name: "Зона", IsActive: true}).Error; err != nil {
		t.Fatalf("seed zone: %v", err)
	}
	if err := db.Create(&model.Place{
		ID: uuid.New(), ZoneID: zoneID, Name: "Место 1", IsActive: true,
	}).Error; err != nil {
		t.Fatalf("seed place: %v", err)
	}
	return zoneID
}

func doJSON(e *echo.Echo, method, path, body string, userID uuid.UUID, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if userID != uuid.Nil {
		req.Header.Set("X-User-ID", userID.String())
	}
	if role != "" {
		req.Header.Set("X-User-Role", role)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIdentityMiddleware(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/zones", "", uuid.Nil, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no identity: status = %d, want 401", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/zones", "", uuid.New(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("with identity: status = %d, want 200", rec.Code)
	}
}

func TestAdminOnlyRoutes(t *testing.T) {
	e, _ := newTestServer(t)
	user := uuid.New()

	rec := doJSON(e, http.MethodGet, "/admin/statistics", "", user, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("plain user on admin route: status = %d, want 403", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/admin/statistics", "", user, "admin")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin on admin route: status = %d, want 200", rec.Code)
	}
}

func TestCreateBookingByTimeRange_ErrorCodeMapping(t *testing.T) {
	e, db := newTestServer(t)
	zoneID := seedZoneWithPlace(t, db)
	userA := uuid.New()
	userB := uuid.New()

	// Unknown zone: coded 400 with a stable error_code.
	rec := doJSON(e, http.MethodPost, "/bookings/range",
		`{"zone_id":"`+uuid.NewString()+`","date":"2025-03-10","start_hour":10,"end_hour":12}`,
		userA, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown zone: status = %d, want 400", rec.Code)
	}
	var body struct {
		ErrorCode string `json:"error_code"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.ErrorCode != service.CodeZoneInactive {
		t.Fatalf("error_code = %q, want %q", body.ErrorCode, service.CodeZoneInactive)
	}

	// Successful booking.
	rec = doJSON(e, http.MethodPost, "/bookings/range",
		`{"zone_id":"`+zoneID.String()+`","date":"2025-03-10","start_hour":10,"end_hour":12}`,
		userA, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// Capacity conflict maps to 409.
	rec = doJSON(e, http.MethodPost, "/bookings/range",
		`{"zone_id":"`+zoneID.String()+`","date":"2025-03-10","start_hour":11,"end_hour":13}`,
		userB, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("capacity conflict: status = %d, want 409", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.ErrorCode != service.CodeZoneCapacityExceeded {
		t.Fatalf("error_code = %q, want %q", body.ErrorCode, service.CodeZoneCapacityExceeded)
	}
}

func TestCreateBooking_SilentContract(t *testing.T) {
	e, _ := newTestServer(t)

	// Unknown slot is answered with a detail-free 404.
	rec := doJSON(e, http.MethodPost, "/bookings",
		`{"slot_id":"`+uuid.NewString()+`"}`, uuid.New(), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown slot: status = %d, want 404", rec.Code)
	}
}
