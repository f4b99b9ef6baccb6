package service

// Коды ошибок создания брони по интервалу. Строки — внешний контракт:
// гейтвей и тесты матчатся на них, менять нельзя.
const (
	CodeInvalidDate          = "INVALID_DATE"
	CodeInvalidTimeRange     = "INVALID_TIME_RANGE"
	CodeTimeLimitExceeded    = "TIME_LIMIT_EXCEEDED"
	CodeZoneInactive         = "ZONE_INACTIVE"
	CodeUserConflict         = "USER_CONFLICT"
	CodeZoneCapacityExceeded = "ZONE_CAPACITY_EXCEEDED"
	CodeNoAvailablePlaces    = "NO_AVAILABLE_PLACES"
)

// Коды ошибок продления брони.
const (
	CodeBookingNotFound        = "booking_not_found"
	CodeBookingExpired         = "booking_expired"
	CodePermissionDenied       = "permission_denied"
	CodeInvalidStatus          = "invalid_status"
	CodeInvalidData            = "invalid_data"
	CodeSlotNotFound           = "slot_not_found"
	CodeMaxDurationExceeded    = "max_duration_exceeded"
	CodeUserTimeConflict       = "user_time_conflict"
	CodeExtendZoneNotFound     = "zone_not_found"
	CodeExtendCapacityExceeded = "zone_capacity_exceeded"
	CodeSlotUnavailable        = "slot_unavailable"
	CodeSlotPartiallyOccupied  = "slot_partially_occupied"
	CodeIntegrityError         = "integrity_error"
)

// BookingError — тегированная ошибка операций с кодовым контрактом
// (создание по интервалу, продление). Код стабилен, сообщение — для
// человека.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return e.Code + ": " + e.Message
}

func newBookingError(code, message string) *BookingError {
	return &BookingError{Code: code, Message: message}
}
