package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// bookings — бронирование слота пользователем.
// Создаётся только в статусе active; переходы в cancelled и completed
// терминальны. Продление брони никогда не изменяет исходную запись —
// создаётся новая бронь на интервал продолжения.
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Nullable: при каскадном удалении зоны (зона → места → слоты)
	// ссылка обнуляется, а строка брони остаётся как история.
	SlotID *uuid.UUID `gorm:"type:uuid;index"`

	Status BookingStatus `gorm:"type:varchar(32);not null;index"`

	// Денормализованные поля зоны: история остаётся читабельной,
	// даже если зону потом переименуют или удалят.
	ZoneName    string `gorm:"type:varchar(255)"`
	ZoneAddress string `gorm:"type:text"`

	// Копируются из слота при создании.
	StartTime time.Time `gorm:"type:timestamp with time zone;not null;index"`
	EndTime   time.Time `gorm:"type:timestamp with time zone;not null;index"`

	CancellationReason *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Slot *Slot `gorm:"foreignKey:SlotID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}
