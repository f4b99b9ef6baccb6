package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Тип доменного события.
type EventType string

const (
	EventTypeBookingCreated   EventType = "booking_created"
	EventTypeBookingCancelled EventType = "booking_cancelled"
	EventTypeBookingExtended  EventType = "booking_extended"
	EventTypeZoneClosed       EventType = "zone_closed"
)

// events — outbox доменных событий. Строка создаётся в той же транзакции,
// что и изменение брони; публикация в брокер идёт уже после коммита.
type Event struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	EventType EventType `gorm:"type:varchar(64);not null;index"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`

	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	BookingID *uuid.UUID `gorm:"type:uuid;index"`

	// Полезная нагрузка события в том виде, в котором она уходит в брокер.
	Payload datatypes.JSON `gorm:"type:jsonb"`

	Booking *Booking `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}
