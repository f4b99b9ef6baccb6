// Package notify отвечает за доставку доменных событий внешнему
// notifier-сервису. Доставка — fire-and-forget: ошибка публикации
// логируется и никогда не влияет на исход операции бронирования.
package notify

import "time"

// Тип события для внешнего потребителя.
const (
	TypeBookingCreated   = "booking_created"
	TypeBookingCancelled = "booking_cancelled"
	TypeBookingExtended  = "booking_extended"
	TypeZoneClosed       = "zone_closed"
)

// BookingEvent — полезная нагрузка, уходящая в брокер. Содержит всё,
// что нужно потребителю для письма/пуша без похода в основную БД.
type BookingEvent struct {
	Type      string `json:"type"`
	BookingID string `json:"booking_id,omitempty"`
	UserID    string `json:"user_id"`
	ZoneName  string `json:"zone_name"`
	Reason    string `json:"reason,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	EmittedAt string `json:"emitted_at"`
}

// FormatTime приводит метку к формату события (RFC3339, UTC).
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
