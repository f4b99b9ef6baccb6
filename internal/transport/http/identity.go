package http

// identity.go — извлечение личности вызывающего. Аутентификацию делает
// внешний гейтвей: сюда запрос приходит уже с проверенными заголовками
// X-User-ID (uuid) и X-User-Role. Движок этим заголовкам доверяет.

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	ctxUserID = "user_id"
	ctxRole   = "user_role"

	roleAdmin = "admin"
)

var errNoIdentity = errors.New("no user identity")

// Identity кладёт личность из заголовков гейтвея в контекст запроса.
// Запросы без валидного X-User-ID отклоняются.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := uuid.Parse(c.Request().Header.Get(headerUserID))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			c.Set(ctxUserID, id)
			c.Set(ctxRole, c.Request().Header.Get(headerUserRole))
			return next(c)
		}
	}
}

// AdminOnly пропускает только запросы с ролью admin.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !isAdmin(c) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "admin role required"})
			}
			return next(c)
		}
	}
}

// userID достаёт uuid пользователя из контекста запроса.
func userID(c echo.Context) (uuid.UUID, error) {
	if id, ok := c.Get(ctxUserID).(uuid.UUID); ok {
		return id, nil
	}
	return uuid.Nil, errNoIdentity
}

func isAdmin(c echo.Context) bool {
	role, _ := c.Get(ctxRole).(string)
	return role == roleAdmin
}
