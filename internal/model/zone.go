package model

import (
	"time"

	"github.com/google/uuid"
)

// zones — зона коворкинга (область бронирования).
// Вместимость зоны равна количеству её активных мест.
type Zone struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Name    string `gorm:"type:varchar(255);not null"`
	Address string `gorm:"type:text"`

	IsActive bool `gorm:"not null;default:true;index"`

	// Причина и срок закрытия зоны. Заполняются админской операцией
	// закрытия; очищаются при реактивации, когда ClosedUntil прошёл.
	ClosureReason *string    `gorm:"type:text"`
	ClosedUntil   *time.Time `gorm:"type:timestamp with time zone"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Places []Place `gorm:"foreignKey:ZoneID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
