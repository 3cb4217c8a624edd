package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/services"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/utils"
)

type PurchaseController struct {
	purchaseService services.PurchaseServiceInterface
	logger          *zap.Logger
}

func NewPurchaseController(
	service services.PurchaseServiceInterface,
	logger *zap.Logger,
) *PurchaseController {
	return &PurchaseController{
		purchaseService: service,
		logger:          logger,
	}
}

func (c *PurchaseController) GetPurchases(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.purchaseService.GetPurchases(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetPurchases: ошибка при получении списка закупок", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Список закупок успешно получен", http.StatusOK, total)
}

func (c *PurchaseController) FindPurchase(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.purchaseService.FindPurchase(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("FindPurchase: ошибка при поиске закупки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Закупка успешно найдена", http.StatusOK)
}

func (c *PurchaseController) CreatePurchase(ctx echo.Context) error {
	var payload dto.CreatePurchaseDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreatePurchase: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.purchaseService.CreatePurchase(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreatePurchase: ошибка при создании закупки", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Закупка успешно создана", http.StatusCreated)
}

func (c *PurchaseController) UpdatePurchase(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdatePurchaseDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("UpdatePurchase: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.purchaseService.UpdatePurchase(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdatePurchase: ошибка при обновлении закупки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Закупка успешно обновлена", http.StatusOK)
}

func (c *PurchaseController) DeletePurchase(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.purchaseService.DeletePurchase(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeletePurchase: ошибка при удалении закупки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Закупка успешно удалена", http.StatusOK)
}

func (c *PurchaseController) Approve(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.purchaseService.Approve(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("Approve: ошибка при одобрении закупки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Закупка одобрена", http.StatusOK)
}

func (c *PurchaseController) Reject(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.RejectPurchaseDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}

	res, err := c.purchaseService.Reject(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("Reject: ошибка при отклонении закупки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Закупка отклонена", http.StatusOK)
}

func (c *PurchaseController) Acquire(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.purchaseService.Acquire(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("Acquire: ошибка при отметке о приобретении", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Закупка отмечена как приобретённая", http.StatusOK)
}

func (c *PurchaseController) ConvertToEquipment(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ConvertPurchaseDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.purchaseService.ConvertToEquipment(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("ConvertToEquipment: ошибка при конвертации закупки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Закупка конвертирована в оборудование", http.StatusCreated)
}

func (c *PurchaseController) GetStats(ctx echo.Context) error {
	stats, err := c.purchaseService.GetStats(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetStats: ошибка при получении статистики закупок", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, stats, "Статистика закупок успешно получена", http.StatusOK)
}
