package http

import (
	"net/http"

	"github.com/coworkly/booking-core/internal/service"
)

// codeStatus переводит стабильный код доменной ошибки в HTTP-статус.
// Неизвестный код — 400: контракт кодов важнее точности статуса.
func codeStatus(code string) int {
	switch code {
	case service.CodeBookingNotFound, service.CodeSlotNotFound, service.CodeExtendZoneNotFound:
		return http.StatusNotFound
	case service.CodePermissionDenied:
		return http.StatusForbidden
	case service.CodeUserConflict, service.CodeUserTimeConflict,
		service.CodeZoneCapacityExceeded, service.CodeExtendCapacityExceeded,
		service.CodeNoAvailablePlaces, service.CodeSlotUnavailable,
		service.CodeSlotPartiallyOccupied, service.CodeIntegrityError:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
