package http

import "github.com/labstack/echo/v4"

// RegisterRoutes монтирует все маршруты движка. Аутентификация — забота
// гейтвея; здесь только проверка наличия identity и роли admin на
// админских маршрутах.
func RegisterRoutes(e *echo.Echo, bookings *BookingHandler, zones *ZoneHandler) {
	api := e.Group("", Identity())

	api.GET("/zones", zones.List)
	api.GET("/zones/:id/places", zones.Places)
	api.GET("/places/:id/slots", zones.Slots)

	api.POST("/bookings", bookings.Create)
	api.POST("/bookings/range", bookings.CreateByTimeRange)
	api.POST("/bookings/:id/cancel", bookings.Cancel)
	api.POST("/bookings/:id/extend", bookings.Extend)
	api.GET("/bookings/history", bookings.History)

	admin := api.Group("/admin", AdminOnly())
	admin.POST("/zones", zones.CreateZone)
	admin.PATCH("/zones/:id", zones.UpdateZone)
	admin.DELETE("/zones/:id", zones.DeleteZone)
	admin.POST("/zones/:id/close", zones.CloseZone)
	admin.GET("/statistics", zones.GlobalStatistics)
	admin.GET("/statistics/zones", zones.ZoneStatistics)
}
