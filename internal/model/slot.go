package model

import (
	"time"

	"github.com/google/uuid"
)

// slots — конкретный интервал времени [StartTime, EndTime) на месте.
// Уникальность (place_id, start_time, end_time) — последняя линия защиты
// от конкурентного создания одинаковых слотов.
type Slot struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	PlaceID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_slot_place_interval"`

	StartTime time.Time `gorm:"type:timestamp with time zone;not null;index;uniqueIndex:uq_slot_place_interval"`
	EndTime   time.Time `gorm:"type:timestamp with time zone;not null;uniqueIndex:uq_slot_place_interval"`

	// false, пока на слот ссылается активное бронирование;
	// возвращается в true при отмене брони или закрытии зоны.
	IsAvailable bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Place *Place `gorm:"foreignKey:PlaceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
