package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/services"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/utils"
)

type HistoryController struct {
	historyService services.HistoryServiceInterface
	logger         *zap.Logger
}

func NewHistoryController(
	service services.HistoryServiceInterface,
	logger *zap.Logger,
) *HistoryController {
	return &HistoryController{
		historyService: service,
		logger:         logger,
	}
}

func (c *HistoryController) GetAll(ctx echo.Context) error {
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	offset, _ := strconv.Atoi(ctx.QueryParam("offset"))

	res, err := c.historyService.GetAll(ctx.Request().Context(), limit, offset)
	if err != nil {
		c.logger.Error("GetAll: ошибка при получении журнала истории", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Журнал истории успешно получен", http.StatusOK)
}

func (c *HistoryController) GetRecent(ctx echo.Context) error {
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))

	res, err := c.historyService.GetRecent(ctx.Request().Context(), limit)
	if err != nil {
		c.logger.Error("GetRecent: ошибка при получении последних событий", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Последние события успешно получены", http.StatusOK)
}

func (c *HistoryController) GetByEquipmentID(ctx echo.Context) error {
	equipmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.historyService.GetByEquipmentID(ctx.Request().Context(), equipmentID)
	if err != nil {
		c.logger.Error("GetByEquipmentID: ошибка при получении истории оборудования",
			zap.Uint64("equipmentId", equipmentID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "История оборудования успешно получена", http.StatusOK)
}

func (c *HistoryController) GetByEntityType(ctx echo.Context) error {
	entityType := ctx.Param("entityType")
	if entityType == "" {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewBadRequestError("не указан тип сущности"),
			c.logger,
		)
	}

	res, err := c.historyService.GetByEntityType(ctx.Request().Context(), entityType)
	if err != nil {
		c.logger.Error("GetByEntityType: ошибка при получении истории",
			zap.String("entityType", entityType), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "История успешно получена", http.StatusOK)
}

func (c *HistoryController) Create(ctx echo.Context) error {
	var payload dto.CreateHistoryDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("Create: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.historyService.Create(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("Create: ошибка при записи события истории", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Событие истории записано", http.StatusCreated)
}
