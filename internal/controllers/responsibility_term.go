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

type TermController struct {
	termService services.TermServiceInterface
	logger      *zap.Logger
}

func NewTermController(
	service services.TermServiceInterface,
	logger *zap.Logger,
) *TermController {
	return &TermController{
		termService: service,
		logger:      logger,
	}
}

func (c *TermController) FindTerm(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.termService.FindTerm(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("FindTerm: ошибка при поиске терма", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Терм успешно найден", http.StatusOK)
}

func (c *TermController) GetByEquipmentID(ctx echo.Context) error {
	equipmentID, err := parseIDParam(ctx, "equipmentId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.termService.GetByEquipmentID(ctx.Request().Context(), equipmentID)
	if err != nil {
		c.logger.Error("GetByEquipmentID: ошибка при получении термов",
			zap.Uint64("equipmentId", equipmentID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Термы успешно получены", http.StatusOK)
}

func (c *TermController) CreateTerm(ctx echo.Context) error {
	var payload dto.CreateTermDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateTerm: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.termService.CreateTerm(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateTerm: ошибка при создании терма", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Терм успешно создан", http.StatusCreated)
}

func (c *TermController) UpdateStatus(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateTermStatusDTO
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

	res, err := c.termService.UpdateStatus(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdateStatus: ошибка при смене статуса терма", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Статус терма успешно изменён", http.StatusOK)
}

func (c *TermController) AttachPdf(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.AttachTermPdfDTO
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

	res, err := c.termService.AttachPdf(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("AttachPdf: ошибка при обновлении PDF терма", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "PDF терма успешно обновлён", http.StatusOK)
}

func (c *TermController) DeleteTerm(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.termService.DeleteTerm(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteTerm: ошибка при удалении терма", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Терм успешно удалён", http.StatusOK)
}
