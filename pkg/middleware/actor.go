// Файл: pkg/middleware/actor.go

package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/pkg/constants"
	"asset-system/pkg/contextkeys"
)

// ActorMiddleware кладёт имя актора из заголовка X-User-Name в контекст запроса.
// Реальной аутентификации в системе нет: имя используется только
// для записи в журнал истории.
type ActorMiddleware struct {
	logger *zap.Logger
}

func NewActorMiddleware(logger *zap.Logger) *ActorMiddleware {
	return &ActorMiddleware{logger: logger}
}

func (m *ActorMiddleware) WithActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userName := strings.TrimSpace(c.Request().Header.Get("X-User-Name"))
		if userName == "" {
			userName = constants.DefaultUserName
		}

		ctx := context.WithValue(c.Request().Context(), contextkeys.UserNameKey, userName)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// UserNameFromContext достаёт имя актора, положенное WithActor.
func UserNameFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(contextkeys.UserNameKey).(string); ok && name != "" {
		return name
	}
	return constants.DefaultUserName
}
