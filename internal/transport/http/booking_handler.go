package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/coworkly/booking-core/internal/model"
	"github.com/coworkly/booking-core/internal/repository"
	"github.com/coworkly/booking-core/internal/service"
)

// BookingHandler — маршруты жизненного цикла бронирований.
type BookingHandler struct {
	bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Create — POST /bookings, бронь конкретного слота. Тихий контракт
// сервиса транслируется в 404 без деталей.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var body struct {
		SlotID string `json:"slot_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	slotID, err := uuid.Parse(body.SlotID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot_id"})
	}

	booking, err := h.bookings.CreateBooking(c.Request().Context(), uid, slotID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if booking == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "slot unavailable"})
	}
	return c.JSON(http.StatusCreated, booking)
}

// CreateByTimeRange — POST /bookings/range.
func (h *BookingHandler) CreateByTimeRange(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var body struct {
		ZoneID      string `json:"zone_id"`
		Date        string `json:"date"`
		StartHour   int    `json:"start_hour"`
		StartMinute int    `json:"start_minute"`
		EndHour     int    `json:"end_hour"`
		EndMinute   int    `json:"end_minute"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	zoneID, err := uuid.Parse(body.ZoneID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid zone_id"})
	}

	booking, err := h.bookings.CreateBookingByTimeRange(c.Request().Context(), uid, service.CreateByTimeRangeInput{
		ZoneID:      zoneID,
		Date:        body.Date,
		StartHour:   body.StartHour,
		StartMinute: body.StartMinute,
		EndHour:     body.EndHour,
		EndMinute:   body.EndMinute,
	})
	if err != nil {
		return bookingErrorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, booking)
}

// Cancel — POST /bookings/:id/cancel. Доступно владельцу и админу.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	booking, err := h.bookings.CancelBooking(c.Request().Context(), uid, bookingID, isAdmin(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if booking == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, booking)
}

// Extend — POST /bookings/:id/extend. По умолчанию продление на час.
func (h *BookingHandler) Extend(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	var body struct {
		ExtendHours   int `json:"extend_hours"`
		ExtendMinutes int `json:"extend_minutes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ExtendHours == 0 && body.ExtendMinutes == 0 {
		body.ExtendHours = 1
	}

	booking, err := h.bookings.ExtendBooking(c.Request().Context(), uid, bookingID, body.ExtendHours, body.ExtendMinutes)
	if err != nil {
		return bookingErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

// History — GET /bookings/history с фильтрами и пагинацией.
func (h *BookingHandler) History(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	filters := repository.HistoryFilters{}
	if v := c.QueryParam("status"); v != "" {
		filters.Status = model.BookingStatus(v)
	}
	if v := c.QueryParam("zone_id"); v != "" {
		zoneID, err := uuid.Parse(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid zone_id"})
		}
		filters.ZoneID = &zoneID
	}
	if v := c.QueryParam("date_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date_from"})
		}
		filters.DateFrom = &t
	}
	if v := c.QueryParam("date_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date_to"})
		}
		filters.DateTo = &t
	}

	page := intQueryParam(c, "page", 1)
	pageSize := intQueryParam(c, "page_size", 20)

	result, err := h.bookings.BookingHistory(c.Request().Context(), uid, filters, page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":     result.Items,
		"page":      result.Page,
		"page_size": result.PageSize,
		"total":     result.Total,
		"has_next":  result.HasNext,
		"has_prev":  result.HasPrev,
	})
}

// bookingErrorResponse отдаёт кодовую ошибку как {error_code, message};
// всё прочее — 500 без деталей.
func bookingErrorResponse(c echo.Context, err error) error {
	var be *service.BookingError
	if errors.As(err, &be) {
		return c.JSON(codeStatus(be.Code), echo.Map{
			"error_code": be.Code,
			"message":    be.Message,
		})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
