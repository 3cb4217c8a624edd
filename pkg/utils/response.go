package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "asset-system/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HTTPResponse — единый конверт ответа API.
// {success, data?, error?, message?}
type HTTPResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Total   *uint64     `json:"total,omitempty"`
}

func SuccessResponse(ctx echo.Context, data interface{}, message string, code int, total ...uint64) error {
	response := &HTTPResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
	if len(total) > 0 {
		response.Total = &total[0]
	}
	return ctx.JSON(code, response)
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	// Сентинельные ошибки проверяются первыми: контроллеры оборачивают
	// ошибки сервисов в HttpError с кодом 500, и без этой проверки
	// «запись не найдена» превращалась бы во внутреннюю ошибку.
	for sentinel, code := range ErrorList {
		if errors.Is(err, sentinel) {
			return c.JSON(code, &HTTPResponse{Success: false, Error: sentinel.Error()})
		}
	}

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil && httpErr.Code >= 500 {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}
		response := &HTTPResponse{Success: false, Error: httpErr.Message}
		if httpErr.Details != nil {
			response.Data = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, &HTTPResponse{
			Success: false,
			Error:   "Ошибка валидации: " + strings.Join(msgs, "; "),
		})
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, &HTTPResponse{
		Success: false,
		Error:   "Внутренняя ошибка сервера",
	})
}
