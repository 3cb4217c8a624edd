package controllers

import (
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HealthController struct {
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	logger      *zap.Logger
}

func NewHealthController(dbPool *pgxpool.Pool, redisClient *redis.Client, logger *zap.Logger) *HealthController {
	return &HealthController{
		dbPool:      dbPool,
		redisClient: redisClient,
		logger:      logger,
	}
}

// Check пингует Postgres и Redis; сервис считается живым,
// только когда отвечают оба.
func (c *HealthController) Check(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	status := map[string]string{
		"database": "ok",
		"redis":    "ok",
	}
	code := http.StatusOK

	if err := c.dbPool.Ping(reqCtx); err != nil {
		c.logger.Error("healthcheck: база данных недоступна", zap.Error(err))
		status["database"] = "unavailable"
		code = http.StatusServiceUnavailable
	}
	if err := c.redisClient.Ping(reqCtx).Err(); err != nil {
		c.logger.Error("healthcheck: redis недоступен", zap.Error(err))
		status["redis"] = "unavailable"
		code = http.StatusServiceUnavailable
	}

	return ctx.JSON(code, status)
}
