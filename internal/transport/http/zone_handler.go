package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/coworkly/booking-core/internal/service"
)

// ZoneHandler — маршруты зон, мест и статистики.
type ZoneHandler struct {
	zones *service.ZoneService
}

func NewZoneHandler(zones *service.ZoneService) *ZoneHandler {
	return &ZoneHandler{zones: zones}
}

// List — GET /zones?include_inactive=true.
func (h *ZoneHandler) List(c echo.Context) error {
	includeInactive := c.QueryParam("include_inactive") == "true"

	zones, err := h.zones.ListZones(c.Request().Context(), includeInactive)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	out := make([]echo.Map, 0, len(zones))
	for _, z := range zones {
		out = append(out, echo.Map{
			"id":                 z.Zone.ID,
			"name":               z.Zone.Name,
			"address":            z.Zone.Address,
			"is_active":          z.Zone.IsActive,
			"closure_reason":     z.Zone.ClosureReason,
			"closed_until":       z.Zone.ClosedUntil,
			"active_bookings":    z.ActiveBookings,
			"cancelled_bookings": z.CancelledBookings,
			"current_occupancy":  z.CurrentOccupancy,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Places — GET /zones/:id/places.
func (h *ZoneHandler) Places(c echo.Context) error {
	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid zone id"})
	}
	places, err := h.zones.ListPlaces(c.Request().Context(), zoneID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, places)
}

// Slots — GET /places/:id/slots?date=YYYY-MM-DD.
func (h *ZoneHandler) Slots(c echo.Context) error {
	placeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid place id"})
	}
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	slots, err := h.zones.ListSlots(c.Request().Context(), placeID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, slots)
}

// CreateZone — POST /admin/zones.
func (h *ZoneHandler) CreateZone(c echo.Context) error {
	var body struct {
		Name        string `json:"name"`
		Address     string `json:"address"`
		IsActive    *bool  `json:"is_active"`
		PlacesCount int    `json:"places_count"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	zone, err := h.zones.CreateZone(c.Request().Context(), service.ZoneCreateInput{
		Name:        body.Name,
		Address:     body.Address,
		IsActive:    isActive,
		PlacesCount: body.PlacesCount,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusCreated, zone)
}

// UpdateZone — PATCH /admin/zones/:id.
func (h *ZoneHandler) UpdateZone(c echo.Context) error {
	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid zone id"})
	}

	var body struct {
		Name         *string `json:"name"`
		Address      *string `json:"address"`
		IsActive     *bool   `json:"is_active"`
		ClearClosure bool    `json:"clear_closure"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	zone, err := h.zones.UpdateZone(c.Request().Context(), zoneID, service.ZoneUpdateInput{
		Name:         body.Name,
		Address:      body.Address,
		IsActive:     body.IsActive,
		ClearClosure: body.ClearClosure,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if zone == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "zone not found"})
	}
	return c.JSON(http.StatusOK, zone)
}

// DeleteZone — DELETE /admin/zones/:id.
func (h *ZoneHandler) DeleteZone(c echo.Context) error {
	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid zone id"})
	}
	deleted, err := h.zones.DeleteZone(c.Request().Context(), zoneID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "zone not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// CloseZone — POST /admin/zones/:id/close. Возвращает отменённые брони.
func (h *ZoneHandler) CloseZone(c echo.Context) error {
	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid zone id"})
	}

	var body struct {
		Reason   string    `json:"reason"`
		FromTime time.Time `json:"from_time"`
		ToTime   time.Time `json:"to_time"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !body.ToTime.After(body.FromTime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to_time must be after from_time"})
	}

	affected, err := h.zones.CloseZone(c.Request().Context(), zoneID, body.Reason, body.FromTime, body.ToTime)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"cancelled_bookings": affected,
		"count":              len(affected),
	})
}

// GlobalStatistics — GET /admin/statistics.
func (h *ZoneHandler) GlobalStatistics(c echo.Context) error {
	stats, err := h.zones.GlobalStatistics(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total_active_bookings":    stats.TotalActiveBookings,
		"total_cancelled_bookings": stats.TotalCancelledBookings,
		"users_present_now":        stats.UsersPresentNow,
	})
}

// ZoneStatistics — GET /admin/statistics/zones.
func (h *ZoneHandler) ZoneStatistics(c echo.Context) error {
	stats, err := h.zones.ZoneStatisticsAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, stats)
}

// intQueryParam — числовой query-параметр с дефолтом.
func intQueryParam(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
